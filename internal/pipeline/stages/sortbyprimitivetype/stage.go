// Package sortbyprimitivetype splits a mesh whose faces mix primitive
// types (points, lines, triangles, polygons) into one mesh per type,
// so renderers that issue one draw call per primitive topology never
// see a mixed index buffer. It also stamps Mesh.PrimitiveTypes.
package sortbyprimitivetype

import (
	"github.com/aurorafx/sceneimport/internal/pipeline/core"
	"github.com/aurorafx/sceneimport/internal/pipeline/shared"
	"github.com/aurorafx/sceneimport/internal/properties"
	"github.com/aurorafx/sceneimport/internal/scene"
)

// Property keys controlling which primitive types get dropped entirely
// instead of split into their own mesh, e.g. stray point/line debris
// left over from a CAD export.
const (
	PropertyRemovePoints = "sort-by-primitive-type.remove-points"
	PropertyRemoveLines  = "sort-by-primitive-type.remove-lines"
)

// Stage implements core.Stage for SortByPrimitiveType.
type Stage struct {
	shared.BaseStage

	removePoints bool
	removeLines  bool
}

// New returns the stage.
func New() *Stage {
	return &Stage{
		BaseStage: shared.NewBaseStage("sort-by-primitive-type", "Sort By Primitive Type", core.SortByPrimitiveType),
	}
}

// SetupProperties implements core.Stage.
func (s *Stage) SetupProperties(props *properties.Store) {
	s.removePoints = props.GetInteger(PropertyRemovePoints, 0) != 0
	s.removeLines = props.GetInteger(PropertyRemoveLines, 0) != 0
}

// Execute implements core.Stage.
func (s *Stage) Execute(ctx *core.Context) error {
	sc := ctx.Scene()
	newMeshes := make([]*scene.Mesh, 0, len(sc.Meshes))
	remap := make(map[int][]int, len(sc.Meshes))

	for i, mesh := range sc.Meshes {
		split := splitByType(mesh, s.removePoints, s.removeLines)
		indices := make([]int, 0, len(split))
		for _, m := range split {
			newMeshes = append(newMeshes, m)
			indices = append(indices, len(newMeshes)-1)
		}
		remap[i] = indices
	}

	sc.Meshes = newMeshes
	remapNode(sc.Root, remap)
	return nil
}

func splitByType(mesh *scene.Mesh, removePoints, removeLines bool) []*scene.Mesh {
	buckets := map[scene.PrimitiveType][]scene.Face{}
	for _, f := range mesh.Faces {
		t := f.Type()
		if removePoints && t == scene.PrimitivePoint {
			continue
		}
		if removeLines && t == scene.PrimitiveLine {
			continue
		}
		buckets[t] = append(buckets[t], f)
	}

	if len(buckets) <= 1 {
		for t := range buckets {
			mesh.Faces = buckets[t]
			mesh.PrimitiveTypes = t
			return []*scene.Mesh{mesh}
		}
		mesh.Faces = nil
		return []*scene.Mesh{mesh}
	}

	out := make([]*scene.Mesh, 0, len(buckets))
	for t, faces := range buckets {
		copyMesh := *mesh
		copyMesh.Faces = faces
		copyMesh.PrimitiveTypes = t
		out = append(out, &copyMesh)
	}
	return out
}

func remapNode(n *scene.Node, remap map[int][]int) {
	var newIndices []int
	for _, idx := range n.MeshIndex {
		newIndices = append(newIndices, remap[idx]...)
	}
	n.MeshIndex = newIndices
	for _, c := range n.Children {
		remapNode(c, remap)
	}
}
