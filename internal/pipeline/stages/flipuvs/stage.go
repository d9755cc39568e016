// Package flipuvs flips the V coordinate of every texture-coordinate
// channel, converting between the top-left and bottom-left UV origin
// conventions different engines expect.
package flipuvs

import (
	"github.com/aurorafx/sceneimport/internal/pipeline/core"
	"github.com/aurorafx/sceneimport/internal/pipeline/shared"
)

// Stage implements core.Stage for FlipUVs.
type Stage struct {
	shared.BaseStage
}

// New returns the stage.
func New() *Stage {
	return &Stage{
		BaseStage: shared.NewBaseStage("flip-uvs", "Flip UVs", core.FlipUVs),
	}
}

// Execute implements core.Stage.
func (s *Stage) Execute(ctx *core.Context) error {
	for _, mesh := range ctx.Scene().Meshes {
		for c := range mesh.TexCoords {
			for i := range mesh.TexCoords[c] {
				mesh.TexCoords[c][i].Y = 1 - mesh.TexCoords[c][i].Y
			}
		}
	}
	return nil
}
