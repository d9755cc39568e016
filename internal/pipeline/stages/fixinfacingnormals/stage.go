// Package fixinfacingnormals flips triangle winding (and the vertex
// normal, where present) when a face's geometric normal points opposite
// to its stored normal, correcting meshes exported with inconsistent
// facing.
package fixinfacingnormals

import (
	"github.com/aurorafx/sceneimport/internal/pipeline/core"
	"github.com/aurorafx/sceneimport/internal/pipeline/shared"
	"github.com/aurorafx/sceneimport/internal/scene"
)

// Stage implements core.Stage for FixInfacingNormals.
type Stage struct {
	shared.BaseStage
}

// New returns the stage.
func New() *Stage {
	return &Stage{
		BaseStage: shared.NewBaseStage("fix-infacing-normals", "Fix Infacing Normals", core.FixInfacingNormals),
	}
}

// Execute implements core.Stage.
func (s *Stage) Execute(ctx *core.Context) error {
	for _, mesh := range ctx.Scene().Meshes {
		if !mesh.HasNormals() {
			continue
		}
		fixMesh(mesh)
	}
	return nil
}

// fixMesh flips winding and per-vertex normals on triangles whose
// geometric normal disagrees with the stored one. Normals are assumed
// unshared between faces (the dispatcher's "pseudo-indexed verbose"
// layout guarantees this for freshly imported meshes); a mesh that
// welds vertices before running this stage may see a flip bleed into
// an adjacent, already-correct triangle.
func fixMesh(mesh *scene.Mesh) {
	for fi, f := range mesh.Faces {
		if f.Type() != scene.PrimitiveTriangle {
			continue
		}
		a, b, c := f.Indices[0], f.Indices[1], f.Indices[2]
		geoNormal := mesh.Positions[b].Sub(mesh.Positions[a]).Cross(mesh.Positions[c].Sub(mesh.Positions[a]))

		stored := mesh.Normals[a].Add(mesh.Normals[b]).Add(mesh.Normals[c])
		if geoNormal.Dot(stored) < 0 {
			mesh.Faces[fi].Indices[1], mesh.Faces[fi].Indices[2] = c, b
			mesh.Normals[a] = mesh.Normals[a].Scale(-1)
			mesh.Normals[b] = mesh.Normals[b].Scale(-1)
			mesh.Normals[c] = mesh.Normals[c].Scale(-1)
		}
	}
}
