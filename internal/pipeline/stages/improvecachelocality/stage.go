// Package improvecachelocality reorders each mesh's face array to
// improve post-transform vertex cache hit rate, using a greedy
// Forsyth-style algorithm: repeatedly emit the highest-scoring
// remaining face, where the score is how many of its indices are in a
// simulated FIFO vertex cache. The vertex array is left unchanged.
package improvecachelocality

import (
	"github.com/aurorafx/sceneimport/internal/pipeline/core"
	"github.com/aurorafx/sceneimport/internal/pipeline/shared"
	"github.com/aurorafx/sceneimport/internal/scene"
)

const cacheSize = 32

// Stage implements core.Stage for ImproveCacheLocality.
type Stage struct {
	shared.BaseStage
}

// New returns the stage.
func New() *Stage {
	return &Stage{
		BaseStage: shared.NewBaseStage("improve-cache-locality", "Improve Cache Locality", core.ImproveCacheLocality),
	}
}

// Execute implements core.Stage.
func (s *Stage) Execute(ctx *core.Context) error {
	for _, mesh := range ctx.Scene().Meshes {
		mesh.Faces = reorder(mesh)
	}
	return nil
}

// reorder greedily picks, at each step, the pending triangle with the
// most indices already present in a simulated FIFO vertex cache.
func reorder(mesh *scene.Mesh) []scene.Face {
	n := len(mesh.Faces)
	if n < 2 {
		return mesh.Faces
	}

	remaining := make([]bool, n)
	for i := range remaining {
		remaining[i] = true
	}

	// cache holds the most recently used vertex indices, most-recent last.
	var cache []uint32
	inCache := func(v uint32) bool {
		for _, c := range cache {
			if c == v {
				return true
			}
		}
		return false
	}
	touch := func(v uint32) {
		if inCache(v) {
			return
		}
		cache = append(cache, v)
		if len(cache) > cacheSize {
			cache = cache[len(cache)-cacheSize:]
		}
	}
	score := func(f scene.Face) int {
		hits := 0
		for _, idx := range f.Indices {
			if inCache(idx) {
				hits++
			}
		}
		return hits
	}

	out := make([]scene.Face, 0, n)
	left := n
	for left > 0 {
		best := -1
		bestScore := -1
		for i, ok := range remaining {
			if !ok {
				continue
			}
			sc := score(mesh.Faces[i])
			if sc > bestScore {
				bestScore = sc
				best = i
			}
		}
		f := mesh.Faces[best]
		out = append(out, f)
		remaining[best] = false
		left--
		for _, idx := range f.Indices {
			touch(idx)
		}
	}
	return out
}
