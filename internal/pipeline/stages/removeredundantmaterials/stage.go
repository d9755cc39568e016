// Package removeredundantmaterials merges materials that carry
// identical names and property sets, so downstream consumers don't issue
// redundant render-state changes for visually identical materials.
package removeredundantmaterials

import (
	"fmt"
	"sort"

	"github.com/aurorafx/sceneimport/internal/pipeline/core"
	"github.com/aurorafx/sceneimport/internal/pipeline/shared"
	"github.com/aurorafx/sceneimport/internal/scene"
)

// Stage implements core.Stage for RemoveRedundantMaterials.
type Stage struct {
	shared.BaseStage
}

// New returns the stage.
func New() *Stage {
	return &Stage{
		BaseStage: shared.NewBaseStage("remove-redundant-materials", "Remove Redundant Materials", core.RemoveRedundantMaterials),
	}
}

// Execute implements core.Stage.
func (s *Stage) Execute(ctx *core.Context) error {
	sc := ctx.Scene()
	if len(sc.Materials) < 2 {
		return nil
	}

	fingerprints := make([]string, len(sc.Materials))
	for i, m := range sc.Materials {
		fingerprints[i] = fingerprint(m)
	}

	// remap[i] is the surviving material index for original index i.
	remap := make([]int, len(sc.Materials))
	seen := make(map[string]int, len(sc.Materials))
	var kept []*scene.Material

	for i, fp := range fingerprints {
		if existing, ok := seen[fp]; ok {
			remap[i] = existing
			continue
		}
		kept = append(kept, sc.Materials[i])
		newIndex := len(kept) - 1
		seen[fp] = newIndex
		remap[i] = newIndex
	}

	if len(kept) == len(sc.Materials) {
		return nil
	}

	sc.Materials = kept
	for _, mesh := range sc.Meshes {
		if mesh.MaterialIndex >= 0 && mesh.MaterialIndex < len(remap) {
			mesh.MaterialIndex = remap[mesh.MaterialIndex]
		}
	}
	return nil
}

// fingerprint produces a stable string key from a material's name and
// property set; the properties are sorted so two same-named materials
// built with properties in a different order still compare equal.
func fingerprint(m *scene.Material) string {
	props := make([]string, len(m.Properties))
	for i, p := range m.Properties {
		props[i] = fmt.Sprintf("%s|%d|%v|%v|%v|%v", p.Key, p.Type, p.Float, p.String, p.Integer, p.Buffer)
	}
	sort.Strings(props)
	out := m.Name
	for _, p := range props {
		out += ";" + p
	}
	return out
}
