package objimporter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurorafx/sceneimport/internal/properties"
	"github.com/aurorafx/sceneimport/internal/testutil"
)

const cubeOBJ = `# simple triangle
v 0.0 0.0 0.0
v 1.0 0.0 0.0
v 0.0 1.0 0.0
vt 0.0 0.0
vt 1.0 0.0
vt 0.0 1.0
vn 0.0 0.0 1.0
f 1/1/1 2/2/1 3/3/1
`

func TestInternReadFileDecodesTriangle(t *testing.T) {
	ioh := testutil.NewFakeIO().WithTextFile("triangle.obj", cubeOBJ)

	im := New()
	sc, err := im.InternReadFile("triangle.obj", ioh)
	require.NoError(t, err)
	require.Len(t, sc.Meshes, 1)

	mesh := sc.Meshes[0]
	assert.Equal(t, 3, mesh.VertexCount())
	assert.Equal(t, 1, mesh.FaceCount())
	assert.True(t, mesh.HasNormals())
	assert.True(t, mesh.HasTexCoords(0))
	require.Len(t, sc.Materials, 1)
	assert.Equal(t, 0, mesh.MaterialIndex)
}

func TestInternReadFileRejectsEmptyGeometry(t *testing.T) {
	ioh := testutil.NewFakeIO().WithTextFile("empty.obj", "# nothing here\n")

	im := New()
	_, err := im.InternReadFile("empty.obj", ioh)
	assert.Error(t, err)
}

func TestInternReadFileSkipsMaterialsWhenDisabled(t *testing.T) {
	ioh := testutil.NewFakeIO().WithTextFile("triangle.obj", cubeOBJ)

	im := New()
	props := properties.New()
	props.SetInteger(PropertyImportMaterials, 0)
	im.SetupProperties(props)

	sc, err := im.InternReadFile("triangle.obj", ioh)
	require.NoError(t, err)
	assert.Empty(t, sc.Materials)
	assert.Equal(t, -1, sc.Meshes[0].MaterialIndex)
}

func TestCanReadByExtension(t *testing.T) {
	im := New()
	assert.True(t, im.CanRead("mesh.obj", nil, false))
	assert.False(t, im.CanRead("mesh.fbx", nil, false))
}

func TestCanReadBySignature(t *testing.T) {
	ioh := testutil.NewFakeIO().WithTextFile("noext", "mtllib foo.mtl\nv 0 0 0\n")
	im := New()
	assert.True(t, im.CanRead("noext", ioh, true))
	assert.False(t, im.CanRead("noext", ioh, false))
}

func TestResolveIndexRelative(t *testing.T) {
	idx, err := resolveIndex("-1", 5)
	require.NoError(t, err)
	assert.Equal(t, 4, idx)

	_, err = resolveIndex("0", 5)
	assert.Error(t, err)
}

func TestInternReadFileTriangulatesPolygon(t *testing.T) {
	quadOBJ := strings.Join([]string{
		"v 0 0 0", "v 1 0 0", "v 1 1 0", "v 0 1 0", "f 1 2 3 4",
	}, "\n")
	ioh := testutil.NewFakeIO().WithTextFile("quad.obj", quadOBJ)

	im := New()
	sc, err := im.InternReadFile("quad.obj", ioh)
	require.NoError(t, err)
	assert.Equal(t, 2, sc.Meshes[0].FaceCount())
}
