// Package limitboneweights caps the number of bones influencing any
// single vertex, dropping the smallest weights and renormalizing the
// remainder so the total influence still sums to 1.
package limitboneweights

import (
	"sort"

	"github.com/aurorafx/sceneimport/internal/pipeline/core"
	"github.com/aurorafx/sceneimport/internal/pipeline/shared"
	"github.com/aurorafx/sceneimport/internal/properties"
	"github.com/aurorafx/sceneimport/internal/scene"
)

// PropertyMaxWeights caps influences per vertex. Most real-time skinned
// renderers only budget four.
const PropertyMaxWeights = "limit-bone-weights.max-weights"

const defaultMaxWeights = 4

// Stage implements core.Stage for LimitBoneWeights.
type Stage struct {
	shared.BaseStage

	maxWeights int
}

// New returns the stage.
func New() *Stage {
	return &Stage{
		BaseStage:  shared.NewBaseStage("limit-bone-weights", "Limit Bone Weights", core.LimitBoneWeights),
		maxWeights: defaultMaxWeights,
	}
}

// SetupProperties implements core.Stage.
func (s *Stage) SetupProperties(props *properties.Store) {
	s.maxWeights = props.GetInteger(PropertyMaxWeights, defaultMaxWeights)
}

// Execute implements core.Stage.
func (s *Stage) Execute(ctx *core.Context) error {
	for _, mesh := range ctx.Scene().Meshes {
		if !mesh.HasBones() {
			continue
		}
		limitMesh(mesh, s.maxWeights)
	}
	return nil
}

func limitMesh(mesh *scene.Mesh, maxWeights int) {
	perVertex := make(map[uint32][]weightRef)
	for bi := range mesh.Bones {
		for wi, w := range mesh.Bones[bi].Weights {
			perVertex[w.VertexIndex] = append(perVertex[w.VertexIndex], weightRef{bone: bi, index: wi, weight: w.Weight})
		}
	}

	drop := make(map[int]map[int]bool, len(mesh.Bones))
	for _, refs := range perVertex {
		if len(refs) <= maxWeights {
			continue
		}
		sort.Slice(refs, func(i, j int) bool { return refs[i].weight > refs[j].weight })
		var total float32
		for _, r := range refs[:maxWeights] {
			total += r.weight
		}
		for _, r := range refs[maxWeights:] {
			if drop[r.bone] == nil {
				drop[r.bone] = make(map[int]bool)
			}
			drop[r.bone][r.index] = true
		}
		if total > 0 {
			for _, r := range refs[:maxWeights] {
				mesh.Bones[r.bone].Weights[r.index].Weight = r.weight / total
			}
		}
	}

	for bi := range mesh.Bones {
		if len(drop[bi]) == 0 {
			continue
		}
		kept := make([]scene.VertexWeight, 0, len(mesh.Bones[bi].Weights))
		for wi, w := range mesh.Bones[bi].Weights {
			if drop[bi][wi] {
				continue
			}
			kept = append(kept, w)
		}
		mesh.Bones[bi].Weights = kept
	}
}

type weightRef struct {
	bone   int
	index  int
	weight float32
}
