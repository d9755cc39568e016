package gensmoothnormals

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurorafx/sceneimport/internal/pipeline/core"
	"github.com/aurorafx/sceneimport/internal/properties"
	"github.com/aurorafx/sceneimport/internal/scene"
	"github.com/aurorafx/sceneimport/internal/spatialindex"
)

func TestExecuteAveragesAcrossCoincidentVertices(t *testing.T) {
	// Two triangles sharing the edge (1,2) but with independent vertex
	// copies at the shared positions (pseudo-indexed verbose layout).
	// The spatial index is what lets the stage treat them as one.
	mesh := &scene.Mesh{
		Positions: []scene.Vec3{
			{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0},
			{X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: 1, Y: 1, Z: 0},
		},
		Faces: []scene.Face{
			{Indices: []uint32{0, 1, 2}},
			{Indices: []uint32{3, 5, 4}},
		},
	}
	sc := scene.New()
	sc.Meshes = []*scene.Mesh{mesh}

	pass := core.NewPassState()
	idx, err := spatialindex.Build(mesh)
	require.NoError(t, err)
	pass.SpatialIndexes = []*spatialindex.Index{idx}

	stage := New()
	ctx := core.NewContext(sc, properties.New(), pass, nil)
	require.NoError(t, stage.Execute(ctx))

	require.Len(t, mesh.Normals, 6)
	// both faces face +Z, so a coincident vertex should end up with a
	// normal still pointing +Z regardless of averaging.
	for _, n := range mesh.Normals {
		assert.InDelta(t, 1, n.Z, 1e-4)
	}
}

func TestExecuteSkipsMeshesWithExistingNormals(t *testing.T) {
	mesh := &scene.Mesh{
		Positions: []scene.Vec3{{X: 0, Y: 0, Z: 0}},
		Normals:   []scene.Vec3{{X: 0, Y: 1, Z: 0}},
	}
	sc := scene.New()
	sc.Meshes = []*scene.Mesh{mesh}

	stage := New()
	ctx := core.NewContext(sc, properties.New(), core.NewPassState(), nil)
	require.NoError(t, stage.Execute(ctx))

	assert.Equal(t, scene.Vec3{X: 0, Y: 1, Z: 0}, mesh.Normals[0])
}
