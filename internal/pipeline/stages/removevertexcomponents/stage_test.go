package removevertexcomponents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurorafx/sceneimport/internal/pipeline/core"
	"github.com/aurorafx/sceneimport/internal/properties"
	"github.com/aurorafx/sceneimport/internal/scene"
)

func TestExecuteDropsSelectedComponents(t *testing.T) {
	mesh := &scene.Mesh{
		Normals:   []scene.Vec3{{X: 0, Y: 1, Z: 0}},
		Positions: []scene.Vec3{{X: 0, Y: 0, Z: 0}},
	}
	sc := scene.New()
	sc.Meshes = []*scene.Mesh{mesh}

	props := properties.New()
	props.SetInteger(PropertyDropNormals, 1)

	stage := New()
	stage.SetupProperties(props)

	ctx := core.NewContext(sc, props, core.NewPassState(), nil)
	require.NoError(t, stage.Execute(ctx))

	assert.Empty(t, mesh.Normals)
	assert.NotEmpty(t, mesh.Positions)
}

func TestIsActiveOnlyForOwnFlag(t *testing.T) {
	stage := New()
	assert.True(t, stage.IsActive(core.RemoveVertexComponents))
	assert.False(t, stage.IsActive(core.Triangulate))
}
