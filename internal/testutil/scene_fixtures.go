package testutil

import "github.com/aurorafx/sceneimport/internal/scene"

// TriangleMesh returns a single-triangle mesh with three distinct
// vertex positions and no normals, UVs, or bones: the minimal shape
// several pipeline stages (gennormals, findinvaliddata,
// validatedatastructure) use as their baseline fixture.
func TriangleMesh(name string) *scene.Mesh {
	return &scene.Mesh{
		Name: name,
		Positions: []scene.Vec3{
			{X: 0, Y: 0, Z: 0},
			{X: 1, Y: 0, Z: 0},
			{X: 0, Y: 1, Z: 0},
		},
		Faces: []scene.Face{{Indices: []uint32{0, 1, 2}}},
	}
}

// CubeMesh returns an 8-vertex, 12-triangle unit cube, useful for
// stages that need more than one face (improvecachelocality,
// splitlargemeshes, sortbyprimitivetype).
func CubeMesh(name string) *scene.Mesh {
	positions := []scene.Vec3{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0},
		{X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 0, Y: 1, Z: 1},
	}
	quads := [][4]uint32{
		{0, 1, 2, 3}, {4, 5, 6, 7}, {0, 1, 5, 4},
		{2, 3, 7, 6}, {1, 2, 6, 5}, {3, 0, 4, 7},
	}
	faces := make([]scene.Face, 0, len(quads)*2)
	for _, q := range quads {
		faces = append(faces,
			scene.Face{Indices: []uint32{q[0], q[1], q[2]}},
			scene.Face{Indices: []uint32{q[2], q[3], q[0]}},
		)
	}
	return &scene.Mesh{Name: name, Positions: positions, Faces: faces}
}

// SingleMeshScene returns a minimal, structurally valid scene holding
// one mesh, referenced from the root node.
func SingleMeshScene(mesh *scene.Mesh) *scene.Scene {
	sc := scene.New()
	sc.Meshes = []*scene.Mesh{mesh}
	sc.Root.MeshIndex = []int{0}
	return sc
}

// FlatMaterial returns a material carrying a single float property,
// the shape tests that only need a nonempty material typically want.
func FlatMaterial(name string, key string, value float32) *scene.Material {
	m := scene.NewMaterial(name)
	m.Set(scene.MaterialProperty{Key: key, Type: scene.PropertyFloat, Float: value})
	return m
}
