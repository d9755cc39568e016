// Package joinidenticalvertices welds vertices that share the same
// position, normal, color and UV data into one, rewriting face indices
// to point at the surviving copy. This converts the "pseudo-indexed
// verbose" layout every importer produces into a properly indexed
// mesh, which is what allows GPU upload to use a single vertex buffer.
package joinidenticalvertices

import (
	"fmt"

	"github.com/aurorafx/sceneimport/internal/pipeline/core"
	"github.com/aurorafx/sceneimport/internal/pipeline/shared"
	"github.com/aurorafx/sceneimport/internal/scene"
	"github.com/aurorafx/sceneimport/internal/spatialindex"
)

// Stage implements core.Stage for JoinIdenticalVertices.
type Stage struct {
	shared.BaseStage
}

// New returns the stage.
func New() *Stage {
	return &Stage{
		BaseStage: shared.NewBaseStage("join-identical-vertices", "Join Identical Vertices", core.JoinIdenticalVertices),
	}
}

// Execute implements core.Stage.
func (s *Stage) Execute(ctx *core.Context) error {
	pass := ctx.PassState()
	for mi, mesh := range ctx.Scene().Meshes {
		idx := pass.IndexFor(mi)
		weld(mesh, idx)
	}
	return nil
}

func weld(mesh *scene.Mesh, idx *spatialindex.Index) {
	n := mesh.VertexCount()
	remap := make([]int, n)
	for i := range remap {
		remap[i] = -1
	}

	keyCache := make(map[int]string, n)
	keyOf := func(i int) string {
		if k, ok := keyCache[i]; ok {
			return k
		}
		k := vertexKey(mesh, i)
		keyCache[i] = k
		return k
	}

	seen := make(map[string]int, n)
	kept := 0

	for i := 0; i < n; i++ {
		if remap[i] != -1 {
			continue
		}
		k := keyOf(i)
		if existing, ok := seen[k]; ok {
			remap[i] = existing
			continue
		}
		remap[i] = kept
		seen[k] = kept
		kept++

		if idx == nil {
			continue
		}
		for _, candidate := range idx.FindNear(mesh.Positions[i], epsilon) {
			if candidate == i || remap[candidate] != -1 {
				continue
			}
			if keyOf(candidate) == k {
				remap[candidate] = remap[i]
			}
		}
	}

	compact(mesh, remap, kept)

	for fi, f := range mesh.Faces {
		newIndices := make([]uint32, len(f.Indices))
		for k, v := range f.Indices {
			newIndices[k] = uint32(remap[v])
		}
		mesh.Faces[fi].Indices = newIndices
	}

	remapBones(mesh, remap)
}

const epsilon = 1e-5

func vertexKey(mesh *scene.Mesh, i int) string {
	p := mesh.Positions[i]
	key := fmt.Sprintf("p:%.5f,%.5f,%.5f", p.X, p.Y, p.Z)
	if len(mesh.Normals) > i {
		n := mesh.Normals[i]
		key += fmt.Sprintf("|n:%.4f,%.4f,%.4f", n.X, n.Y, n.Z)
	}
	for c := range mesh.Colors {
		if len(mesh.Colors[c]) > i {
			col := mesh.Colors[c][i]
			key += fmt.Sprintf("|c%d:%.3f,%.3f,%.3f,%.3f", c, col.R, col.G, col.B, col.A)
		}
	}
	for u := range mesh.TexCoords {
		if len(mesh.TexCoords[u]) > i {
			uv := mesh.TexCoords[u][i]
			key += fmt.Sprintf("|u%d:%.5f,%.5f", u, uv.X, uv.Y)
		}
	}
	return key
}

// compact rewrites every per-vertex array down to kept unique entries,
// using remap (old index -> new index) to pick a representative.
func compact(mesh *scene.Mesh, remap []int, kept int) {
	newPositions := make([]scene.Vec3, kept)
	var newNormals, newTangents, newBitangents []scene.Vec3
	if len(mesh.Normals) > 0 {
		newNormals = make([]scene.Vec3, kept)
	}
	if mesh.HasTangentsAndBitangents() {
		newTangents = make([]scene.Vec3, kept)
		newBitangents = make([]scene.Vec3, kept)
	}
	var newColors [scene.MaxColorSets][]scene.Color4
	var newTexCoords [scene.MaxTexCoordSets][]scene.Vec2
	for c := range mesh.Colors {
		if len(mesh.Colors[c]) > 0 {
			newColors[c] = make([]scene.Color4, kept)
		}
	}
	for u := range mesh.TexCoords {
		if len(mesh.TexCoords[u]) > 0 {
			newTexCoords[u] = make([]scene.Vec2, kept)
		}
	}

	for old, nw := range remap {
		newPositions[nw] = mesh.Positions[old]
		if newNormals != nil {
			newNormals[nw] = mesh.Normals[old]
		}
		if newTangents != nil {
			newTangents[nw] = mesh.Tangents[old]
			newBitangents[nw] = mesh.Bitangents[old]
		}
		for c := range newColors {
			if newColors[c] != nil {
				newColors[c][nw] = mesh.Colors[c][old]
			}
		}
		for u := range newTexCoords {
			if newTexCoords[u] != nil {
				newTexCoords[u][nw] = mesh.TexCoords[u][old]
			}
		}
	}

	mesh.Positions = newPositions
	mesh.Normals = newNormals
	mesh.Tangents = newTangents
	mesh.Bitangents = newBitangents
	mesh.Colors = newColors
	mesh.TexCoords = newTexCoords
}

// remapBones translates every bone's vertex-weight pairs through remap
// (old vertex index -> new vertex index), the same table compact used
// for the per-vertex arrays. Weights that land on the same new vertex
// after welding are summed into one pair rather than kept as duplicates.
func remapBones(mesh *scene.Mesh, remap []int) {
	for bi := range mesh.Bones {
		bone := &mesh.Bones[bi]
		if len(bone.Weights) == 0 {
			continue
		}

		merged := make(map[uint32]float32, len(bone.Weights))
		order := make([]uint32, 0, len(bone.Weights))
		for _, w := range bone.Weights {
			nw := uint32(remap[w.VertexIndex])
			if _, ok := merged[nw]; !ok {
				order = append(order, nw)
			}
			merged[nw] += w.Weight
		}

		newWeights := make([]scene.VertexWeight, len(order))
		for i, vi := range order {
			newWeights[i] = scene.VertexWeight{VertexIndex: vi, Weight: merged[vi]}
		}
		bone.Weights = newWeights
	}
}
