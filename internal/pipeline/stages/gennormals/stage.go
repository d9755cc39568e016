// Package gennormals computes per-face-vertex normals (flat shading:
// every vertex of a face gets that face's geometric normal, so shared
// edges show a hard crease). It is mutually exclusive with
// gensmoothnormals; the dispatcher's flag validation enforces that.
package gennormals

import (
	"math"

	"github.com/aurorafx/sceneimport/internal/pipeline/core"
	"github.com/aurorafx/sceneimport/internal/pipeline/shared"
	"github.com/aurorafx/sceneimport/internal/scene"
)

// Stage implements core.Stage for GenNormals.
type Stage struct {
	shared.BaseStage
}

// New returns the stage.
func New() *Stage {
	return &Stage{
		BaseStage: shared.NewBaseStage("gen-normals", "Generate Normals", core.GenNormals),
	}
}

// Execute implements core.Stage.
func (s *Stage) Execute(ctx *core.Context) error {
	for _, mesh := range ctx.Scene().Meshes {
		if mesh.HasNormals() {
			continue
		}
		generateFlat(mesh)
	}
	return nil
}

func generateFlat(mesh *scene.Mesh) {
	normals := make([]scene.Vec3, len(mesh.Positions))
	for _, f := range mesh.Faces {
		if f.Type() != scene.PrimitiveTriangle {
			continue
		}
		a, b, c := f.Indices[0], f.Indices[1], f.Indices[2]
		n := mesh.Positions[b].Sub(mesh.Positions[a]).Cross(mesh.Positions[c].Sub(mesh.Positions[a]))
		n = normalize(n)
		normals[a] = n
		normals[b] = n
		normals[c] = n
	}
	mesh.Normals = normals
}

func normalize(v scene.Vec3) scene.Vec3 {
	lenSq := v.Dot(v)
	if lenSq == 0 {
		return v
	}
	inv := float32(1) / float32(math.Sqrt(float64(lenSq)))
	return v.Scale(inv)
}
