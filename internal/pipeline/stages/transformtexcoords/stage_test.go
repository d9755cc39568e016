package transformtexcoords

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurorafx/sceneimport/internal/pipeline/core"
	"github.com/aurorafx/sceneimport/internal/properties"
	"github.com/aurorafx/sceneimport/internal/scene"
)

func TestExecuteAppliesScaleAndOffset(t *testing.T) {
	mat := scene.NewMaterial("tiled")
	mat.Set(scene.MaterialProperty{Key: PropertyUVScaleU, Type: scene.PropertyFloat, Float: 2})
	mat.Set(scene.MaterialProperty{Key: PropertyUVScaleV, Type: scene.PropertyFloat, Float: 2})
	mat.Set(scene.MaterialProperty{Key: PropertyUVOffsetU, Type: scene.PropertyFloat, Float: 0.5})

	mesh := &scene.Mesh{MaterialIndex: 0}
	mesh.TexCoords[0] = []scene.Vec2{{X: 0.25, Y: 0.25}}

	sc := scene.New()
	sc.Materials = []*scene.Material{mat}
	sc.Meshes = []*scene.Mesh{mesh}

	stage := New()
	ctx := core.NewContext(sc, properties.New(), core.NewPassState(), nil)
	require.NoError(t, stage.Execute(ctx))

	assert.InDelta(t, 1.0, mesh.TexCoords[0][0].X, 1e-6)
	assert.InDelta(t, 0.5, mesh.TexCoords[0][0].Y, 1e-6)
}

func TestExecuteNoopWithoutTransformProperties(t *testing.T) {
	mat := scene.NewMaterial("plain")
	mesh := &scene.Mesh{MaterialIndex: 0}
	mesh.TexCoords[0] = []scene.Vec2{{X: 0.25, Y: 0.25}}

	sc := scene.New()
	sc.Materials = []*scene.Material{mat}
	sc.Meshes = []*scene.Mesh{mesh}

	stage := New()
	ctx := core.NewContext(sc, properties.New(), core.NewPassState(), nil)
	require.NoError(t, stage.Execute(ctx))

	assert.Equal(t, scene.Vec2{X: 0.25, Y: 0.25}, mesh.TexCoords[0][0])
}
