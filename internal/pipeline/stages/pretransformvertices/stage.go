// Package pretransformvertices bakes every node's world transform into
// its referenced meshes' vertex data and collapses the scene hierarchy
// to a single root, for consumers that have no notion of a node graph
// and expect vertex data already in world space.
package pretransformvertices

import (
	"github.com/aurorafx/sceneimport/internal/pipeline/core"
	"github.com/aurorafx/sceneimport/internal/pipeline/shared"
	"github.com/aurorafx/sceneimport/internal/properties"
	"github.com/aurorafx/sceneimport/internal/scene"
)

// PropertyKeepHierarchy disables collapsing and only bakes transforms
// in place, leaving the node graph untouched. Default: collapse.
const PropertyKeepHierarchy = "pretransform-vertices.keep-hierarchy"

// Stage implements core.Stage for PreTransformVertices.
type Stage struct {
	shared.BaseStage

	keepHierarchy bool
}

// New returns the stage.
func New() *Stage {
	return &Stage{
		BaseStage: shared.NewBaseStage("pretransform-vertices", "Pre-Transform Vertices", core.PreTransformVertices),
	}
}

// SetupProperties implements core.Stage.
func (s *Stage) SetupProperties(props *properties.Store) {
	s.keepHierarchy = props.GetInteger(PropertyKeepHierarchy, 0) != 0
}

// Execute implements core.Stage.
func (s *Stage) Execute(ctx *core.Context) error {
	sc := ctx.Scene()
	baked := make([]*scene.Mesh, 0, len(sc.Meshes))

	bakeNode(sc, sc.Root, scene.Identity4(), &baked)

	sc.Meshes = baked
	if !s.keepHierarchy {
		newRoot := &scene.Node{Name: sc.Root.Name}
		for i := range baked {
			newRoot.MeshIndex = append(newRoot.MeshIndex, i)
		}
		sc.Root = newRoot
	}
	return nil
}

// bakeNode recurses the hierarchy, transforming a copy of each
// referenced mesh by the accumulated world matrix and appending it to
// baked. Per-node bakes are never deduplicated: two nodes sharing a
// mesh under different transforms legitimately need two distinct
// baked copies.
func bakeNode(sc *scene.Scene, node *scene.Node, parentWorld scene.Mat4, baked *[]*scene.Mesh) {
	world := parentWorld.Mul(node.Transform)

	newIndices := make([]int, 0, len(node.MeshIndex))
	for _, idx := range node.MeshIndex {
		if idx < 0 || idx >= len(sc.Meshes) {
			continue
		}
		copyMesh := transformMesh(sc.Meshes[idx], world)
		*baked = append(*baked, copyMesh)
		newIndices = append(newIndices, len(*baked)-1)
	}
	node.MeshIndex = newIndices
	node.Transform = scene.Identity4()

	for _, child := range node.Children {
		bakeNode(sc, child, world, baked)
	}
}

func transformMesh(mesh *scene.Mesh, world scene.Mat4) *scene.Mesh {
	out := *mesh
	out.Positions = make([]scene.Vec3, len(mesh.Positions))
	for i, p := range mesh.Positions {
		out.Positions[i] = world.MulVec3(p)
	}
	if len(mesh.Normals) > 0 {
		out.Normals = make([]scene.Vec3, len(mesh.Normals))
		for i, n := range mesh.Normals {
			out.Normals[i] = world.MulDir(n)
		}
	}
	return &out
}
