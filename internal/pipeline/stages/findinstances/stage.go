// Package findinstances detects meshes with byte-identical geometry
// referenced from more than one place and collapses them to a single
// shared mesh, so instanced geometry (a forest of identical trees, a
// prop repeated across a level) isn't duplicated in memory.
package findinstances

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"

	"github.com/aurorafx/sceneimport/internal/pipeline/core"
	"github.com/aurorafx/sceneimport/internal/pipeline/shared"
	"github.com/aurorafx/sceneimport/internal/scene"
)

// Stage implements core.Stage for FindInstances.
type Stage struct {
	shared.BaseStage
}

// New returns the stage.
func New() *Stage {
	return &Stage{
		BaseStage: shared.NewBaseStage("find-instances", "Find Instances", core.FindInstances),
	}
}

// Execute implements core.Stage.
func (s *Stage) Execute(ctx *core.Context) error {
	sc := ctx.Scene()
	if len(sc.Meshes) < 2 {
		return nil
	}

	fingerprints := make([]string, len(sc.Meshes))
	for i, m := range sc.Meshes {
		fingerprints[i] = fingerprint(m)
	}

	remap := make([]int, len(sc.Meshes))
	seen := make(map[string]int, len(sc.Meshes))
	var kept []*scene.Mesh

	for i, fp := range fingerprints {
		if existing, ok := seen[fp]; ok {
			remap[i] = existing
			continue
		}
		kept = append(kept, sc.Meshes[i])
		newIndex := len(kept) - 1
		seen[fp] = newIndex
		remap[i] = newIndex
	}

	if len(kept) == len(sc.Meshes) {
		return nil
	}

	sc.Meshes = kept
	remapNode(sc.Root, remap)
	return nil
}

func remapNode(n *scene.Node, remap []int) {
	for i, idx := range n.MeshIndex {
		if idx >= 0 && idx < len(remap) {
			n.MeshIndex[i] = remap[idx]
		}
	}
	for _, c := range n.Children {
		remapNode(c, remap)
	}
}

// fingerprint hashes a mesh's actual geometric content: every position,
// normal and first UV channel component, in order, plus face indices
// and material index. Two meshes only collapse into one instance if
// this hash matches, which means their vertex and index data is
// identical, not merely summed to the same total.
func fingerprint(m *scene.Mesh) string {
	h := sha256.New()

	var buf [8]byte
	writeFloat := func(f float32) {
		binary.LittleEndian.PutUint32(buf[:4], math.Float32bits(f))
		h.Write(buf[:4])
	}
	writeUint := func(v uint32) {
		binary.LittleEndian.PutUint32(buf[:4], v)
		h.Write(buf[:4])
	}

	for _, p := range m.Positions {
		writeFloat(p.X)
		writeFloat(p.Y)
		writeFloat(p.Z)
	}
	for _, n := range m.Normals {
		writeFloat(n.X)
		writeFloat(n.Y)
		writeFloat(n.Z)
	}
	for _, uv := range m.TexCoords[0] {
		writeFloat(uv.X)
		writeFloat(uv.Y)
	}
	for _, f := range m.Faces {
		for _, idx := range f.Indices {
			writeUint(idx)
		}
	}
	writeUint(uint32(m.MaterialIndex))

	return hex.EncodeToString(h.Sum(nil))
}
