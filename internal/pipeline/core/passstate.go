package core

import "github.com/aurorafx/sceneimport/internal/spatialindex"

// PassState is the transient context shared across stages within one
// pipeline run. It is owned by the dispatcher, created once per
// ReadFile call, referenced (not owned) by every stage, and cleared
// after the import completes. The only data it currently carries is
// the spatial-sort index set, valid only between the matching
// spatial-sort-build and spatial-sort-destroy marker stages; stages
// outside that window must not touch it. One index is built per mesh,
// keyed by that mesh's position in Scene.Meshes at build time.
type PassState struct {
	SpatialIndexes []*spatialindex.Index
}

// NewPassState returns an empty PassState.
func NewPassState() *PassState {
	return &PassState{}
}

// IndexFor returns the spatial index built for the mesh at meshIndex,
// or nil if none was built (index out of range, or outside the
// build/destroy window).
func (p *PassState) IndexFor(meshIndex int) *spatialindex.Index {
	if meshIndex < 0 || meshIndex >= len(p.SpatialIndexes) {
		return nil
	}
	return p.SpatialIndexes[meshIndex]
}

// Clear releases every spatial index (if built and not already torn
// down) and resets the pass state for reuse by the next import.
func (p *PassState) Clear() {
	for _, idx := range p.SpatialIndexes {
		if idx != nil {
			_ = idx.Close()
		}
	}
	p.SpatialIndexes = nil
}
