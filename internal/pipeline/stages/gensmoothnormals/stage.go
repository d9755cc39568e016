// Package gensmoothnormals computes per-vertex normals averaged across
// every face touching a position, using the pass-wide spatial index to
// find coincident vertices without an O(n^2) scan. Mutually exclusive
// with gennormals.
package gensmoothnormals

import (
	"math"

	"github.com/aurorafx/sceneimport/internal/pipeline/core"
	"github.com/aurorafx/sceneimport/internal/pipeline/shared"
	"github.com/aurorafx/sceneimport/internal/properties"
	"github.com/aurorafx/sceneimport/internal/scene"
)

// PropertyCreaseAngle is the maximum angle, in radians, between two
// face normals for them to still be smoothed together. Faces meeting
// at a sharper angle keep a hard edge.
const PropertyCreaseAngle = "gen-smooth-normals.crease-angle"

const defaultCreaseAngle = 3.14159265 // effectively smooth everything

const epsilon = 1e-5

// Stage implements core.Stage for GenSmoothNormals.
type Stage struct {
	shared.BaseStage

	creaseAngle float32
}

// New returns the stage.
func New() *Stage {
	return &Stage{
		BaseStage:   shared.NewBaseStage("gen-smooth-normals", "Generate Smooth Normals", core.GenSmoothNormals),
		creaseAngle: defaultCreaseAngle,
	}
}

// SetupProperties implements core.Stage.
func (s *Stage) SetupProperties(props *properties.Store) {
	s.creaseAngle = float32(props.GetFloat(PropertyCreaseAngle, defaultCreaseAngle))
}

// Execute implements core.Stage.
func (s *Stage) Execute(ctx *core.Context) error {
	sc := ctx.Scene()
	pass := ctx.PassState()

	for mi, mesh := range sc.Meshes {
		if mesh.HasNormals() {
			continue
		}
		faceNormals := faceNormalsOf(mesh)
		cosThreshold := float32(math.Cos(float64(s.creaseAngle)))

		smooth := make([]scene.Vec3, len(mesh.Positions))
		idx := pass.IndexFor(mi)

		for vi := range mesh.Positions {
			faces := facesTouching(mesh, vi)
			if len(faces) == 0 {
				continue
			}
			ref := faceNormals[faces[0]]
			sum := ref

			if idx != nil {
				for _, coincident := range idx.FindNear(mesh.Positions[vi], epsilon) {
					if coincident == vi {
						continue
					}
					for _, f := range facesTouching(mesh, coincident) {
						if faceNormals[f].Dot(ref) >= cosThreshold {
							sum = sum.Add(faceNormals[f])
						}
					}
				}
			}
			for _, f := range faces[1:] {
				if faceNormals[f].Dot(ref) >= cosThreshold {
					sum = sum.Add(faceNormals[f])
				}
			}
			smooth[vi] = normalize(sum)
		}
		mesh.Normals = smooth
	}
	return nil
}

func faceNormalsOf(mesh *scene.Mesh) []scene.Vec3 {
	normals := make([]scene.Vec3, len(mesh.Faces))
	for i, f := range mesh.Faces {
		if f.Type() != scene.PrimitiveTriangle {
			continue
		}
		a, b, c := f.Indices[0], f.Indices[1], f.Indices[2]
		n := mesh.Positions[b].Sub(mesh.Positions[a]).Cross(mesh.Positions[c].Sub(mesh.Positions[a]))
		normals[i] = normalize(n)
	}
	return normals
}

func facesTouching(mesh *scene.Mesh, vertexIndex int) []int {
	var faces []int
	for fi, f := range mesh.Faces {
		for _, idx := range f.Indices {
			if int(idx) == vertexIndex {
				faces = append(faces, fi)
				break
			}
		}
	}
	return faces
}

func normalize(v scene.Vec3) scene.Vec3 {
	lenSq := v.Dot(v)
	if lenSq == 0 {
		return v
	}
	inv := float32(1) / float32(math.Sqrt(float64(lenSq)))
	return v.Scale(inv)
}
