package splitlargemeshes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurorafx/sceneimport/internal/pipeline/core"
	"github.com/aurorafx/sceneimport/internal/properties"
	"github.com/aurorafx/sceneimport/internal/scene"
)

func buildMesh(triangleCount int) *scene.Mesh {
	mesh := &scene.Mesh{}
	for i := 0; i < triangleCount; i++ {
		base := uint32(len(mesh.Positions))
		mesh.Positions = append(mesh.Positions,
			scene.Vec3{X: float32(i)}, scene.Vec3{X: float32(i) + 1}, scene.Vec3{X: float32(i) + 2})
		mesh.Faces = append(mesh.Faces, scene.Face{Indices: []uint32{base, base + 1, base + 2}})
	}
	return mesh
}

func TestExecuteByTriangleSplitsAboveLimit(t *testing.T) {
	mesh := buildMesh(5)
	sc := scene.New()
	sc.Meshes = []*scene.Mesh{mesh}
	sc.Root.MeshIndex = []int{0}

	props := properties.New()
	props.SetInteger(PropertyMaxTriangles, 2)

	stage := NewByTriangle()
	stage.SetupProperties(props)
	ctx := core.NewContext(sc, props, core.NewPassState(), nil)
	require.NoError(t, stage.Execute(ctx))

	assert.Len(t, sc.Meshes, 3)
	assert.Len(t, sc.Root.MeshIndex, 3)
	total := 0
	for _, m := range sc.Meshes {
		total += m.FaceCount()
	}
	assert.Equal(t, 5, total)
}

func TestExecuteByVertexLeavesSmallMeshUntouched(t *testing.T) {
	mesh := buildMesh(2)
	sc := scene.New()
	sc.Meshes = []*scene.Mesh{mesh}
	sc.Root.MeshIndex = []int{0}

	stage := NewByVertex()
	ctx := core.NewContext(sc, properties.New(), core.NewPassState(), nil)
	require.NoError(t, stage.Execute(ctx))

	assert.Len(t, sc.Meshes, 1)
}

func TestExecuteByTriangleSplitPreservesBoneWeights(t *testing.T) {
	mesh := buildMesh(4)
	mesh.Bones = []scene.Bone{
		{
			Name: "root",
			Weights: []scene.VertexWeight{
				{VertexIndex: 0, Weight: 1.0},
				{VertexIndex: 1, Weight: 0.5},
				{VertexIndex: 9, Weight: 1.0},
				{VertexIndex: 10, Weight: 0.5},
			},
		},
	}
	sc := scene.New()
	sc.Meshes = []*scene.Mesh{mesh}
	sc.Root.MeshIndex = []int{0}

	props := properties.New()
	props.SetInteger(PropertyMaxTriangles, 2)

	stage := NewByTriangle()
	stage.SetupProperties(props)
	ctx := core.NewContext(sc, props, core.NewPassState(), nil)
	require.NoError(t, stage.Execute(ctx))

	require.Len(t, sc.Meshes, 2)

	for _, part := range sc.Meshes {
		require.Len(t, part.Bones, 1)
		for _, w := range part.Bones[0].Weights {
			assert.Less(t, int(w.VertexIndex), part.VertexCount())
		}
	}

	firstWeights := sc.Meshes[0].Bones[0].Weights
	assert.Equal(t, uint32(0), firstWeights[0].VertexIndex)
	assert.Equal(t, uint32(1), firstWeights[1].VertexIndex)

	secondWeights := sc.Meshes[1].Bones[0].Weights
	assert.Equal(t, uint32(3), secondWeights[0].VertexIndex)
	assert.Equal(t, uint32(4), secondWeights[1].VertexIndex)
}
