// Package transformtexcoords applies a material-declared UV transform
// (scale, offset, rotation) to the mesh's texture coordinates, baking
// it in so renderers that lack texture-matrix support still sample
// correctly.
package transformtexcoords

import (
	"math"

	"github.com/aurorafx/sceneimport/internal/pipeline/core"
	"github.com/aurorafx/sceneimport/internal/pipeline/shared"
	"github.com/aurorafx/sceneimport/internal/scene"
)

// Material property keys carrying the UV transform for channel 0.
// Formats that support more than one transformed channel are not
// modeled; this mirrors what the reference OBJ importer can produce.
const (
	PropertyUVScaleU    = "uv-transform.scale-u"
	PropertyUVScaleV    = "uv-transform.scale-v"
	PropertyUVOffsetU   = "uv-transform.offset-u"
	PropertyUVOffsetV   = "uv-transform.offset-v"
	PropertyUVRotation  = "uv-transform.rotation" // radians
)

// Stage implements core.Stage for TransformTexCoords.
type Stage struct {
	shared.BaseStage
}

// New returns the stage.
func New() *Stage {
	return &Stage{
		BaseStage: shared.NewBaseStage("transform-tex-coords", "Transform Texture Coordinates", core.TransformTexCoords),
	}
}

// Execute implements core.Stage.
func (s *Stage) Execute(ctx *core.Context) error {
	sc := ctx.Scene()
	for _, mesh := range sc.Meshes {
		if !mesh.HasTexCoords(0) {
			continue
		}
		if mesh.MaterialIndex < 0 || mesh.MaterialIndex >= len(sc.Materials) {
			continue
		}
		mat := sc.Materials[mesh.MaterialIndex]
		xf, ok := transformFor(mat)
		if !ok {
			continue
		}
		applyTransform(mesh.TexCoords[0], xf)
	}
	return nil
}

type transform struct {
	scaleU, scaleV   float32
	offsetU, offsetV float32
	rotation         float32
}

func transformFor(mat *scene.Material) (transform, bool) {
	xf := transform{scaleU: 1, scaleV: 1}
	found := false

	if p, ok := mat.Get(PropertyUVScaleU); ok {
		xf.scaleU = p.Float
		found = true
	}
	if p, ok := mat.Get(PropertyUVScaleV); ok {
		xf.scaleV = p.Float
		found = true
	}
	if p, ok := mat.Get(PropertyUVOffsetU); ok {
		xf.offsetU = p.Float
		found = true
	}
	if p, ok := mat.Get(PropertyUVOffsetV); ok {
		xf.offsetV = p.Float
		found = true
	}
	if p, ok := mat.Get(PropertyUVRotation); ok {
		xf.rotation = p.Float
		found = true
	}
	return xf, found
}

func applyTransform(coords []scene.Vec2, xf transform) {
	sin, cos := float32(math.Sin(float64(xf.rotation))), float32(math.Cos(float64(xf.rotation)))
	for i, uv := range coords {
		u := uv.X*xf.scaleU
		v := uv.Y*xf.scaleV
		ru := u*cos - v*sin
		rv := u*sin + v*cos
		coords[i] = scene.Vec2{X: ru + xf.offsetU, Y: rv + xf.offsetV}
	}
}
