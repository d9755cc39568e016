// Package splitlargemeshes breaks a mesh that exceeds a maximum
// triangle or vertex count into several smaller meshes, for renderers
// whose index buffers are limited to 16-bit indices or whose draw
// calls cap primitive counts. Two variants run at different points in
// the pipeline: by-triangle before normal generation, by-vertex after
// join-identical-vertices (see the stage registry for exact ordering).
package splitlargemeshes

import (
	"github.com/aurorafx/sceneimport/internal/pipeline/core"
	"github.com/aurorafx/sceneimport/internal/pipeline/shared"
	"github.com/aurorafx/sceneimport/internal/properties"
	"github.com/aurorafx/sceneimport/internal/scene"
)

// Property keys. The vertex default (65,535) matches a 16-bit index
// buffer; the triangle default is 1,000,000.
const (
	PropertyMaxTriangles = "split-large-meshes.max-triangles"
	PropertyMaxVertices  = "split-large-meshes.max-vertices"
)

const (
	defaultMaxTriangles = 1_000_000
	defaultMaxVertices  = 65_535
)

// axis selects which limit a Stage instance enforces.
type axis int

const (
	axisTriangle axis = iota
	axisVertex
)

// Stage implements core.Stage for one SplitLargeMeshes variant.
type Stage struct {
	shared.BaseStage

	axis        axis
	maxTriangles int
	maxVertices  int
}

// NewByTriangle returns the triangle-count-limited variant, run before
// normal generation.
func NewByTriangle() *Stage {
	return &Stage{
		BaseStage:    shared.NewBaseStage("split-large-meshes-by-triangle", "Split Large Meshes (Triangle Axis)", core.SplitLargeMeshes),
		axis:         axisTriangle,
		maxTriangles: defaultMaxTriangles,
	}
}

// NewByVertex returns the vertex-count-limited variant, run after
// join-identical-vertices.
func NewByVertex() *Stage {
	return &Stage{
		BaseStage:   shared.NewBaseStage("split-large-meshes-by-vertex", "Split Large Meshes (Vertex Axis)", core.SplitLargeMeshes),
		axis:        axisVertex,
		maxVertices: defaultMaxVertices,
	}
}

// SetupProperties implements core.Stage.
func (s *Stage) SetupProperties(props *properties.Store) {
	s.maxTriangles = props.GetInteger(PropertyMaxTriangles, defaultMaxTriangles)
	s.maxVertices = props.GetInteger(PropertyMaxVertices, defaultMaxVertices)
}

// Execute implements core.Stage.
func (s *Stage) Execute(ctx *core.Context) error {
	sc := ctx.Scene()
	newMeshes := make([]*scene.Mesh, 0, len(sc.Meshes))
	remap := make(map[int][]int, len(sc.Meshes))

	for i, mesh := range sc.Meshes {
		var parts []*scene.Mesh
		switch s.axis {
		case axisTriangle:
			parts = splitByTriangleCount(mesh, s.maxTriangles)
		default:
			parts = splitByVertexCount(mesh, s.maxVertices)
		}
		indices := make([]int, 0, len(parts))
		for _, p := range parts {
			newMeshes = append(newMeshes, p)
			indices = append(indices, len(newMeshes)-1)
		}
		remap[i] = indices
	}

	sc.Meshes = newMeshes
	remapNode(sc.Root, remap)
	return nil
}

func splitByTriangleCount(mesh *scene.Mesh, maxTriangles int) []*scene.Mesh {
	if maxTriangles <= 0 || len(mesh.Faces) <= maxTriangles {
		return []*scene.Mesh{mesh}
	}
	var out []*scene.Mesh
	for start := 0; start < len(mesh.Faces); start += maxTriangles {
		end := start + maxTriangles
		if end > len(mesh.Faces) {
			end = len(mesh.Faces)
		}
		out = append(out, sliceByFaces(mesh, mesh.Faces[start:end]))
	}
	return out
}

func splitByVertexCount(mesh *scene.Mesh, maxVertices int) []*scene.Mesh {
	if maxVertices <= 0 || mesh.VertexCount() <= maxVertices {
		return []*scene.Mesh{mesh}
	}

	var out []*scene.Mesh
	var faceGroup []scene.Face
	used := 0

	flush := func() {
		if len(faceGroup) > 0 {
			out = append(out, sliceByFaces(mesh, faceGroup))
		}
		faceGroup = nil
		used = 0
	}

	for _, f := range mesh.Faces {
		if used+len(f.Indices) > maxVertices && len(faceGroup) > 0 {
			flush()
		}
		faceGroup = append(faceGroup, f)
		used += len(f.Indices)
	}
	flush()
	return out
}

// sliceByFaces builds a new mesh containing only the vertices touched
// by faces, with indices remapped to the new compact vertex range.
// This assumes a pseudo-indexed verbose layout: no vertex is shared by
// faces outside the slice being extracted.
func sliceByFaces(mesh *scene.Mesh, faces []scene.Face) *scene.Mesh {
	out := &scene.Mesh{
		Name:            mesh.Name,
		MaterialIndex:   mesh.MaterialIndex,
		NumUVComponents: mesh.NumUVComponents,
		PrimitiveTypes:  mesh.PrimitiveTypes,
	}

	oldToNew := make(map[uint32]uint32, len(faces)*3)
	newFaces := make([]scene.Face, 0, len(faces))

	for _, f := range faces {
		newIndices := make([]uint32, len(f.Indices))
		for i, idx := range f.Indices {
			newIdx, ok := oldToNew[idx]
			if !ok {
				newIdx = uint32(len(out.Positions))
				oldToNew[idx] = newIdx
				appendVertex(out, mesh, idx)
			}
			newIndices[i] = newIdx
		}
		newFaces = append(newFaces, scene.Face{Indices: newIndices})
	}
	out.Faces = newFaces
	out.Bones = sliceBones(mesh.Bones, oldToNew)
	return out
}

// sliceBones filters each bone's weights down to the vertices present
// in oldToNew (old vertex index -> new vertex index in the split-off
// mesh), remapping VertexIndex to the new compact range. Bones left
// with no surviving weights are dropped.
func sliceBones(bones []scene.Bone, oldToNew map[uint32]uint32) []scene.Bone {
	if len(bones) == 0 {
		return nil
	}

	var out []scene.Bone
	for _, b := range bones {
		var weights []scene.VertexWeight
		for _, w := range b.Weights {
			newIdx, ok := oldToNew[w.VertexIndex]
			if !ok {
				continue
			}
			weights = append(weights, scene.VertexWeight{VertexIndex: newIdx, Weight: w.Weight})
		}
		if len(weights) == 0 {
			continue
		}
		out = append(out, scene.Bone{
			Name:         b.Name,
			Weights:      weights,
			OffsetMatrix: b.OffsetMatrix,
		})
	}
	return out
}

func appendVertex(out, mesh *scene.Mesh, idx uint32) {
	out.Positions = append(out.Positions, mesh.Positions[idx])
	if len(mesh.Normals) > 0 {
		out.Normals = append(out.Normals, mesh.Normals[idx])
	}
	if len(mesh.Tangents) > 0 {
		out.Tangents = append(out.Tangents, mesh.Tangents[idx])
	}
	if len(mesh.Bitangents) > 0 {
		out.Bitangents = append(out.Bitangents, mesh.Bitangents[idx])
	}
	for i := range mesh.Colors {
		if len(mesh.Colors[i]) > 0 {
			out.Colors[i] = append(out.Colors[i], mesh.Colors[i][idx])
		}
	}
	for i := range mesh.TexCoords {
		if len(mesh.TexCoords[i]) > 0 {
			out.TexCoords[i] = append(out.TexCoords[i], mesh.TexCoords[i][idx])
		}
	}
}

func remapNode(n *scene.Node, remap map[int][]int) {
	var newIndices []int
	for _, idx := range n.MeshIndex {
		newIndices = append(newIndices, remap[idx]...)
	}
	n.MeshIndex = newIndices
	for _, c := range n.Children {
		remapNode(c, remap)
	}
}
