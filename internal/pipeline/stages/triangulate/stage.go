// Package triangulate fan-splits every polygon face (more than three
// indices) into triangles. Points and lines pass through unchanged;
// this stage never merges or removes vertices, only index lists.
package triangulate

import (
	"github.com/aurorafx/sceneimport/internal/pipeline/core"
	"github.com/aurorafx/sceneimport/internal/pipeline/shared"
	"github.com/aurorafx/sceneimport/internal/scene"
)

// Stage implements core.Stage for Triangulate.
type Stage struct {
	shared.BaseStage
}

// New returns the stage.
func New() *Stage {
	return &Stage{
		BaseStage: shared.NewBaseStage("triangulate", "Triangulate", core.Triangulate),
	}
}

// Execute implements core.Stage.
func (s *Stage) Execute(ctx *core.Context) error {
	for _, mesh := range ctx.Scene().Meshes {
		mesh.Faces = triangulateFaces(mesh.Faces)
	}
	return nil
}

func triangulateFaces(faces []scene.Face) []scene.Face {
	out := make([]scene.Face, 0, len(faces))
	for _, f := range faces {
		if f.Type() != scene.PrimitivePolygon {
			out = append(out, f)
			continue
		}
		anchor := f.Indices[0]
		for i := 1; i+1 < len(f.Indices); i++ {
			out = append(out, scene.Face{Indices: []uint32{anchor, f.Indices[i], f.Indices[i+1]}})
		}
	}
	return out
}
