// Package spatialsort provides the marker stage pair that builds and
// tears down the pass-wide spatial index: Build constructs one
// spatialindex.Index per mesh and stores it in the pass state; Destroy
// releases them. Everything between the two in the registry's stage
// order (normal generation, tangent generation, join-identical-vertices)
// may assume the index for its mesh is present and valid.
package spatialsort

import (
	"github.com/aurorafx/sceneimport/internal/pipeline/core"
	"github.com/aurorafx/sceneimport/internal/pipeline/shared"
	"github.com/aurorafx/sceneimport/internal/spatialindex"
)

// buildFlags is the union of the flags of the stages that run inside
// the build/destroy window (flat and smooth normal generation, which
// also gate tangent generation, and join-identical-vertices), so the
// pair only runs when one of them does. Of these, only smooth-normal
// generation and join-identical-vertices read the index.
const buildFlags = core.GenNormals | core.GenSmoothNormals | core.JoinIdenticalVertices

// BuildStage constructs the per-mesh spatial indexes.
type BuildStage struct {
	shared.BaseStage
}

// NewBuild returns the build marker stage.
func NewBuild() *BuildStage {
	return &BuildStage{
		BaseStage: shared.NewBaseStage("spatial-sort-build", "Spatial Sort (Build)", buildFlags),
	}
}

// Execute implements core.Stage.
func (s *BuildStage) Execute(ctx *core.Context) error {
	sc := ctx.Scene()
	pass := ctx.PassState()
	indexes := make([]*spatialindex.Index, len(sc.Meshes))
	for i, mesh := range sc.Meshes {
		idx, err := spatialindex.Build(mesh)
		if err != nil {
			return err
		}
		indexes[i] = idx
	}
	pass.SpatialIndexes = indexes
	return nil
}

// DestroyStage tears down the per-mesh spatial indexes.
type DestroyStage struct {
	shared.BaseStage
}

// NewDestroy returns the destroy marker stage.
func NewDestroy() *DestroyStage {
	return &DestroyStage{
		BaseStage: shared.NewBaseStage("spatial-sort-destroy", "Spatial Sort (Destroy)", buildFlags),
	}
}

// Execute implements core.Stage.
func (s *DestroyStage) Execute(ctx *core.Context) error {
	ctx.PassState().Clear()
	return nil
}
