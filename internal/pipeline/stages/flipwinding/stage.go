// Package flipwinding reverses the index order of every triangle,
// converting between clockwise and counter-clockwise front-face
// conventions without touching vertex data.
package flipwinding

import (
	"github.com/aurorafx/sceneimport/internal/pipeline/core"
	"github.com/aurorafx/sceneimport/internal/pipeline/shared"
)

// Stage implements core.Stage for FlipWinding.
type Stage struct {
	shared.BaseStage
}

// New returns the stage.
func New() *Stage {
	return &Stage{
		BaseStage: shared.NewBaseStage("flip-winding", "Flip Winding", core.FlipWinding),
	}
}

// Execute implements core.Stage.
func (s *Stage) Execute(ctx *core.Context) error {
	for _, mesh := range ctx.Scene().Meshes {
		for fi, f := range mesh.Faces {
			for l, r := 0, len(f.Indices)-1; l < r; l, r = l+1, r-1 {
				mesh.Faces[fi].Indices[l], mesh.Faces[fi].Indices[r] = f.Indices[r], f.Indices[l]
			}
		}
	}
	return nil
}
