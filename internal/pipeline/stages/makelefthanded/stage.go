// Package makelefthanded converts the scene from the canonical
// right-handed coordinate system to left-handed by negating Z on every
// position, normal and tangent/bitangent, and flipping triangle
// winding so front faces stay front faces under the new handedness.
package makelefthanded

import (
	"github.com/aurorafx/sceneimport/internal/pipeline/core"
	"github.com/aurorafx/sceneimport/internal/pipeline/shared"
	"github.com/aurorafx/sceneimport/internal/scene"
)

// Stage implements core.Stage for MakeLeftHanded.
type Stage struct {
	shared.BaseStage
}

// New returns the stage.
func New() *Stage {
	return &Stage{
		BaseStage: shared.NewBaseStage("make-left-handed", "Make Left Handed", core.MakeLeftHanded),
	}
}

// Execute implements core.Stage.
func (s *Stage) Execute(ctx *core.Context) error {
	for _, mesh := range ctx.Scene().Meshes {
		negateZ(mesh.Positions)
		negateZ(mesh.Normals)
		negateZ(mesh.Tangents)
		negateZ(mesh.Bitangents)
		for fi, f := range mesh.Faces {
			if f.Type() == scene.PrimitiveTriangle {
				mesh.Faces[fi].Indices[1], mesh.Faces[fi].Indices[2] = f.Indices[2], f.Indices[1]
			}
		}
	}
	negateNodeZ(ctx.Scene().Root)
	return nil
}

func negateZ(vs []scene.Vec3) {
	for i := range vs {
		vs[i].Z = -vs[i].Z
	}
}

// negateNodeZ negates the translation component of every node's
// transform; full left/right-hand conversion of rotation/scale
// components is out of scope for node transforms (meshes are already
// baked per-pretransformvertices where that matters).
func negateNodeZ(n *scene.Node) {
	n.Transform[14] = -n.Transform[14]
	for _, c := range n.Children {
		negateNodeZ(c)
	}
}
