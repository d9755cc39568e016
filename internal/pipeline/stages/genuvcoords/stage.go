// Package genuvcoords fabricates a default UV channel for meshes that
// carry none, using a planar projection onto the mesh's dominant axis
// pair. Real spherical/cylindrical unwraps aren't modeled; this exists
// so later stages (transform, flip) always have a channel 0 to act on.
package genuvcoords

import (
	"github.com/aurorafx/sceneimport/internal/pipeline/core"
	"github.com/aurorafx/sceneimport/internal/pipeline/shared"
	"github.com/aurorafx/sceneimport/internal/scene"
)

// Stage implements core.Stage for GenUVCoords.
type Stage struct {
	shared.BaseStage
}

// New returns the stage.
func New() *Stage {
	return &Stage{
		BaseStage: shared.NewBaseStage("gen-uv-coords", "Generate UV Coordinates", core.GenUVCoords),
	}
}

// Execute implements core.Stage.
func (s *Stage) Execute(ctx *core.Context) error {
	for _, mesh := range ctx.Scene().Meshes {
		if mesh.HasTexCoords(0) || len(mesh.Positions) == 0 {
			continue
		}
		generatePlanar(mesh)
	}
	return nil
}

// generatePlanar projects each vertex onto the plane formed by the two
// axes with the largest extent, normalized into [0, 1].
func generatePlanar(mesh *scene.Mesh) {
	min, max := bounds(mesh.Positions)
	extent := max.Sub(min)

	axisU, axisV := dominantAxes(extent)

	uvs := make([]scene.Vec2, len(mesh.Positions))
	for i, p := range mesh.Positions {
		uvs[i] = scene.Vec2{
			X: normalizedComponent(p, min, extent, axisU),
			Y: normalizedComponent(p, min, extent, axisV),
		}
	}

	mesh.TexCoords[0] = uvs
	mesh.NumUVComponents[0] = 2
}

func bounds(positions []scene.Vec3) (min, max scene.Vec3) {
	min, max = positions[0], positions[0]
	for _, p := range positions[1:] {
		min = componentMin(min, p)
		max = componentMax(max, p)
	}
	return min, max
}

func componentMin(a, b scene.Vec3) scene.Vec3 {
	return scene.Vec3{X: minF(a.X, b.X), Y: minF(a.Y, b.Y), Z: minF(a.Z, b.Z)}
}

func componentMax(a, b scene.Vec3) scene.Vec3 {
	return scene.Vec3{X: maxF(a.X, b.X), Y: maxF(a.Y, b.Y), Z: maxF(a.Z, b.Z)}
}

func minF(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// dominantAxes returns the indices (0=X,1=Y,2=Z) of the two axes with
// the largest extent, i.e. the axes to project onto.
func dominantAxes(extent scene.Vec3) (int, int) {
	e := [3]float32{extent.X, extent.Y, extent.Z}
	smallest := 0
	for i := 1; i < 3; i++ {
		if e[i] < e[smallest] {
			smallest = i
		}
	}
	switch smallest {
	case 0:
		return 1, 2
	case 1:
		return 0, 2
	default:
		return 0, 1
	}
}

func normalizedComponent(p, min, extent scene.Vec3, axis int) float32 {
	var val, lo, ext float32
	switch axis {
	case 0:
		val, lo, ext = p.X, min.X, extent.X
	case 1:
		val, lo, ext = p.Y, min.Y, extent.Y
	default:
		val, lo, ext = p.Z, min.Z, extent.Z
	}
	if ext == 0 {
		return 0
	}
	return (val - lo) / ext
}
