// Package preprocessor implements the fixed, unconditional scene
// normalization the dispatcher runs once between decode and the
// post-processing pipeline. Unlike pipeline stages, it never activates
// on a request flag; every successful decode runs through it.
package preprocessor

import "github.com/aurorafx/sceneimport/internal/scene"

// Run applies every normalization pass to sc in place.
func Run(sc *scene.Scene) {
	if sc == nil {
		return
	}
	for _, mesh := range sc.Meshes {
		deriveBitangents(mesh)
	}
}

// deriveBitangents fills in a missing bitangent channel from
// normal x tangent, per the canonical invariant that a mesh carrying
// both normals and tangents need not also store bitangents.
func deriveBitangents(mesh *scene.Mesh) {
	if len(mesh.Tangents) == 0 || len(mesh.Normals) == 0 || len(mesh.Bitangents) > 0 {
		return
	}
	if len(mesh.Tangents) != len(mesh.Normals) {
		return
	}
	bitangents := make([]scene.Vec3, len(mesh.Normals))
	for i := range bitangents {
		bitangents[i] = mesh.Normals[i].Cross(mesh.Tangents[i])
	}
	mesh.Bitangents = bitangents
}
