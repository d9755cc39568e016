// Package finddegenerates removes faces that reference the same
// vertex index more than once and triangles with (near) zero area,
// before any later stage spends work generating data from them.
package finddegenerates

import (
	"github.com/aurorafx/sceneimport/internal/pipeline/core"
	"github.com/aurorafx/sceneimport/internal/pipeline/shared"
	"github.com/aurorafx/sceneimport/internal/properties"
	"github.com/aurorafx/sceneimport/internal/scene"
)

// PropertyRemove controls whether degenerate faces are dropped
// (default) or merely left in place after detection, for callers that
// want to inspect rather than clean.
const PropertyRemove = "find-degenerates.remove"

// areaEpsilon is the minimum cross-product magnitude below which a
// triangle is considered degenerate.
const areaEpsilon = 1e-10

// Stage implements core.Stage for FindDegenerates.
type Stage struct {
	shared.BaseStage

	remove bool
}

// New returns the stage.
func New() *Stage {
	return &Stage{
		BaseStage: shared.NewBaseStage("find-degenerates", "Find Degenerates", core.FindDegenerates),
		remove:    true,
	}
}

// SetupProperties implements core.Stage.
func (s *Stage) SetupProperties(props *properties.Store) {
	s.remove = props.GetInteger(PropertyRemove, 1) != 0
}

// Execute implements core.Stage.
func (s *Stage) Execute(ctx *core.Context) error {
	if !s.remove {
		return nil
	}
	for _, mesh := range ctx.Scene().Meshes {
		mesh.Faces = filterDegenerate(mesh)
	}
	return nil
}

func filterDegenerate(mesh *scene.Mesh) []scene.Face {
	kept := make([]scene.Face, 0, len(mesh.Faces))
	for _, f := range mesh.Faces {
		if hasDuplicateIndex(f) {
			continue
		}
		if f.Type() == scene.PrimitiveTriangle && isZeroArea(mesh, f) {
			continue
		}
		kept = append(kept, f)
	}
	return kept
}

func hasDuplicateIndex(f scene.Face) bool {
	seen := make(map[uint32]bool, len(f.Indices))
	for _, idx := range f.Indices {
		if seen[idx] {
			return true
		}
		seen[idx] = true
	}
	return false
}

func isZeroArea(mesh *scene.Mesh, f scene.Face) bool {
	a := mesh.Positions[f.Indices[0]]
	b := mesh.Positions[f.Indices[1]]
	c := mesh.Positions[f.Indices[2]]
	cross := b.Sub(a).Cross(c.Sub(a))
	areaSq := cross.Dot(cross)
	return areaSq < areaEpsilon
}
