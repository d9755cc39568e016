// Package gentangents computes a per-vertex tangent/bitangent basis
// from triangle UVs and normals, for meshes carrying texture
// coordinates but no tangent-space data. There is no dedicated request
// flag for this stage: it activates whenever normal generation runs
// and the mesh has a UV channel, since tangent-space generation always
// needs normals as an input.
package gentangents

import (
	"math"

	"github.com/aurorafx/sceneimport/internal/pipeline/core"
	"github.com/aurorafx/sceneimport/internal/pipeline/shared"
	"github.com/aurorafx/sceneimport/internal/scene"
)

const activationFlags = core.GenNormals | core.GenSmoothNormals

// Stage implements core.Stage for tangent-space generation.
type Stage struct {
	shared.BaseStage
}

// New returns the stage.
func New() *Stage {
	return &Stage{
		BaseStage: shared.NewBaseStage("gen-tangents", "Generate Tangents", activationFlags),
	}
}

// Execute implements core.Stage.
func (s *Stage) Execute(ctx *core.Context) error {
	for _, mesh := range ctx.Scene().Meshes {
		if mesh.HasTangentsAndBitangents() || !mesh.HasNormals() || !mesh.HasTexCoords(0) {
			continue
		}
		generate(mesh)
	}
	return nil
}

func generate(mesh *scene.Mesh) {
	tangents := make([]scene.Vec3, len(mesh.Positions))
	bitangents := make([]scene.Vec3, len(mesh.Positions))

	for _, f := range mesh.Faces {
		if f.Type() != scene.PrimitiveTriangle {
			continue
		}
		a, b, c := f.Indices[0], f.Indices[1], f.Indices[2]

		edge1 := mesh.Positions[b].Sub(mesh.Positions[a])
		edge2 := mesh.Positions[c].Sub(mesh.Positions[a])

		uv1 := sub2(mesh.TexCoords[0][b], mesh.TexCoords[0][a])
		uv2 := sub2(mesh.TexCoords[0][c], mesh.TexCoords[0][a])

		det := uv1.X*uv2.Y - uv2.X*uv1.Y
		if det == 0 {
			continue
		}
		r := 1 / det

		tangent := scene.Vec3{
			X: (edge1.X*uv2.Y - edge2.X*uv1.Y) * r,
			Y: (edge1.Y*uv2.Y - edge2.Y*uv1.Y) * r,
			Z: (edge1.Z*uv2.Y - edge2.Z*uv1.Y) * r,
		}
		bitangent := scene.Vec3{
			X: (edge2.X*uv1.X - edge1.X*uv2.X) * r,
			Y: (edge2.Y*uv1.X - edge1.Y*uv2.X) * r,
			Z: (edge2.Z*uv1.X - edge1.Z*uv2.X) * r,
		}

		for _, idx := range [3]uint32{a, b, c} {
			tangents[idx] = tangents[idx].Add(tangent)
			bitangents[idx] = bitangents[idx].Add(bitangent)
		}
	}

	for i := range tangents {
		n := mesh.Normals[i]
		t := orthogonalize(tangents[i], n)
		tangents[i] = normalize(t)
		bitangents[i] = normalize(n.Cross(t))
	}

	mesh.Tangents = tangents
	mesh.Bitangents = bitangents
}

// orthogonalize applies Gram-Schmidt to keep t perpendicular to n.
func orthogonalize(t, n scene.Vec3) scene.Vec3 {
	return t.Sub(n.Scale(n.Dot(t)))
}

func sub2(a, b scene.Vec2) scene.Vec2 {
	return scene.Vec2{X: a.X - b.X, Y: a.Y - b.Y}
}

func normalize(v scene.Vec3) scene.Vec3 {
	lenSq := v.Dot(v)
	if lenSq == 0 {
		return v
	}
	return v.Scale(1 / float32(math.Sqrt(float64(lenSq))))
}
