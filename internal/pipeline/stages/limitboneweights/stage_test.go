package limitboneweights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurorafx/sceneimport/internal/pipeline/core"
	"github.com/aurorafx/sceneimport/internal/properties"
	"github.com/aurorafx/sceneimport/internal/scene"
)

func TestExecuteDropsSmallestAndRenormalizes(t *testing.T) {
	mesh := &scene.Mesh{
		Positions: make([]scene.Vec3, 1),
		Bones: []scene.Bone{
			{Name: "a", Weights: []scene.VertexWeight{{VertexIndex: 0, Weight: 0.4}}},
			{Name: "b", Weights: []scene.VertexWeight{{VertexIndex: 0, Weight: 0.3}}},
			{Name: "c", Weights: []scene.VertexWeight{{VertexIndex: 0, Weight: 0.2}}},
			{Name: "d", Weights: []scene.VertexWeight{{VertexIndex: 0, Weight: 0.06}}},
			{Name: "e", Weights: []scene.VertexWeight{{VertexIndex: 0, Weight: 0.04}}},
		},
	}
	sc := scene.New()
	sc.Meshes = []*scene.Mesh{mesh}

	props := properties.New()
	props.SetInteger(PropertyMaxWeights, 4)

	stage := New()
	stage.SetupProperties(props)
	ctx := core.NewContext(sc, props, core.NewPassState(), nil)
	require.NoError(t, stage.Execute(ctx))

	assert.Empty(t, mesh.Bones[4].Weights)
	var total float32
	for _, b := range mesh.Bones[:4] {
		total += b.Weights[0].Weight
	}
	assert.InDelta(t, 1.0, total, 1e-5)
}

func TestExecuteLeavesVertexUnderLimitAlone(t *testing.T) {
	mesh := &scene.Mesh{
		Positions: make([]scene.Vec3, 1),
		Bones: []scene.Bone{
			{Name: "a", Weights: []scene.VertexWeight{{VertexIndex: 0, Weight: 0.6}}},
			{Name: "b", Weights: []scene.VertexWeight{{VertexIndex: 0, Weight: 0.4}}},
		},
	}
	sc := scene.New()
	sc.Meshes = []*scene.Mesh{mesh}

	stage := New()
	ctx := core.NewContext(sc, properties.New(), core.NewPassState(), nil)
	require.NoError(t, stage.Execute(ctx))

	assert.Equal(t, float32(0.6), mesh.Bones[0].Weights[0].Weight)
}
