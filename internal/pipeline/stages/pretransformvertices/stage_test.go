package pretransformvertices

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurorafx/sceneimport/internal/pipeline/core"
	"github.com/aurorafx/sceneimport/internal/properties"
	"github.com/aurorafx/sceneimport/internal/scene"
)

func translation(x, y, z float32) scene.Mat4 {
	m := scene.Identity4()
	m[12], m[13], m[14] = x, y, z
	return m
}

func TestExecuteBakesTransformAndFlattensHierarchy(t *testing.T) {
	mesh := &scene.Mesh{Positions: []scene.Vec3{{X: 0, Y: 0, Z: 0}}}

	sc := scene.New()
	sc.Meshes = []*scene.Mesh{mesh}

	child := &scene.Node{Name: "child", Transform: translation(1, 2, 3), MeshIndex: []int{0}}
	sc.Root.AddChild(child)

	stage := New()
	ctx := core.NewContext(sc, properties.New(), core.NewPassState(), nil)
	require.NoError(t, stage.Execute(ctx))

	require.Len(t, sc.Meshes, 1)
	assert.Equal(t, scene.Vec3{X: 1, Y: 2, Z: 3}, sc.Meshes[0].Positions[0])
	assert.Empty(t, sc.Root.Children)
	assert.Equal(t, []int{0}, sc.Root.MeshIndex)
}

func TestExecuteKeepsHierarchyWhenConfigured(t *testing.T) {
	mesh := &scene.Mesh{Positions: []scene.Vec3{{X: 0, Y: 0, Z: 0}}}

	sc := scene.New()
	sc.Meshes = []*scene.Mesh{mesh}

	child := &scene.Node{Name: "child", Transform: translation(1, 0, 0), MeshIndex: []int{0}}
	sc.Root.AddChild(child)

	props := properties.New()
	props.SetInteger(PropertyKeepHierarchy, 1)

	stage := New()
	stage.SetupProperties(props)
	ctx := core.NewContext(sc, props, core.NewPassState(), nil)
	require.NoError(t, stage.Execute(ctx))

	require.Len(t, sc.Root.Children, 1)
	assert.Equal(t, scene.Vec3{X: 1, Y: 0, Z: 0}, sc.Meshes[0].Positions[0])
}
