// Package findinvaliddata scans each mesh for structurally invalid
// vertex data (NaN/Inf normals, out-of-range face indices, and
// per-vertex arrays whose length doesn't match the vertex count) and
// drops the offending channel or face rather than let it reach a
// renderer.
package findinvaliddata

import (
	"math"

	"github.com/aurorafx/sceneimport/internal/pipeline/core"
	"github.com/aurorafx/sceneimport/internal/pipeline/shared"
	"github.com/aurorafx/sceneimport/internal/scene"
)

// Stage implements core.Stage for FindInvalidData.
type Stage struct {
	shared.BaseStage
}

// New returns the stage.
func New() *Stage {
	return &Stage{
		BaseStage: shared.NewBaseStage("find-invalid-data", "Find Invalid Data", core.FindInvalidData),
	}
}

// Execute implements core.Stage.
func (s *Stage) Execute(ctx *core.Context) error {
	for _, mesh := range ctx.Scene().Meshes {
		cleanMesh(mesh)
	}
	return nil
}

func cleanMesh(mesh *scene.Mesh) {
	n := mesh.VertexCount()

	mesh.Faces = dropOutOfRangeFaces(mesh.Faces, n)

	if len(mesh.Normals) != n {
		mesh.Normals = nil
	}
	if len(mesh.Tangents) != n || len(mesh.Bitangents) != n {
		mesh.Tangents = nil
		mesh.Bitangents = nil
	}
	for i := range mesh.Colors {
		if len(mesh.Colors[i]) != 0 && len(mesh.Colors[i]) != n {
			mesh.Colors[i] = nil
		}
	}
	for i := range mesh.TexCoords {
		if len(mesh.TexCoords[i]) != 0 && len(mesh.TexCoords[i]) != n {
			mesh.TexCoords[i] = nil
			mesh.NumUVComponents[i] = 0
		}
	}

	if hasNonFiniteVec3(mesh.Normals) {
		mesh.Normals = nil
	}
}

func dropOutOfRangeFaces(faces []scene.Face, vertexCount int) []scene.Face {
	kept := make([]scene.Face, 0, len(faces))
	for _, f := range faces {
		valid := true
		for _, idx := range f.Indices {
			if int(idx) >= vertexCount {
				valid = false
				break
			}
		}
		if valid {
			kept = append(kept, f)
		}
	}
	return kept
}

func hasNonFiniteVec3(vs []scene.Vec3) bool {
	for _, v := range vs {
		if !isFinite(v.X) || !isFinite(v.Y) || !isFinite(v.Z) {
			return true
		}
	}
	return false
}

func isFinite(f float32) bool {
	v := float64(f)
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
