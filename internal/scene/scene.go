// Package scene defines the canonical in-memory asset graph produced by
// every importer and mutated in place by the post-processing pipeline.
//
// A Scene is the single contract every format decoder must satisfy and
// every pipeline stage may assume: one root node, flat arrays of meshes,
// materials, animations, textures, cameras and lights, plus a small flag
// bitset carrying the "incomplete" marker.
package scene

import "github.com/oklog/ulid/v2"

// DiagnosticID returns a new sortable, unique identifier for tagging a
// scene or stage run in verbose diagnostic logging. Not persisted as
// part of the scene graph itself, just a correlation token for the
// runner's per-stage validation trace.
func DiagnosticID() string {
	return ulid.Make().String()
}

// Flags describes scene-level markers.
type Flags uint32

const (
	// FlagIncomplete permits a scene with empty mesh arrays, e.g. a
	// skeleton-only or camera-only file.
	FlagIncomplete Flags = 1 << iota
)

// Has reports whether f includes the given bit.
func (f Flags) Has(bit Flags) bool {
	return f&bit != 0
}

// Scene is the root of the canonical graph.
type Scene struct {
	Root       *Node
	Meshes     []*Mesh
	Materials  []*Material
	Animations []*Animation
	Textures   []*Texture
	Cameras    []*Camera
	Lights     []*Light
	Flags      Flags
}

// New returns an empty scene with a bare root node.
func New() *Scene {
	return &Scene{
		Root: &Node{Name: "RootNode"},
	}
}

// Node is a named transform in the scene hierarchy.
type Node struct {
	Name      string
	Transform Mat4
	Parent    *Node
	Children  []*Node
	MeshIndex []int
}

// AddChild appends child to n's child list and sets its parent.
func (n *Node) AddChild(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// Camera is a simple attribute struct referenced by name from a node.
type Camera struct {
	Name          string
	AspectRatio   float32
	NearClip      float32
	FarClip       float32
	HorizontalFOV float32
}

// LightType enumerates the supported light kinds.
type LightType int

const (
	LightUndefined LightType = iota
	LightDirectional
	LightPoint
	LightSpot
)

// Light is a simple attribute struct referenced by name from a node.
type Light struct {
	Name          string
	Type          LightType
	ColorDiffuse  [3]float32
	ColorSpecular [3]float32
	ColorAmbient  [3]float32
	AttenuationConstant  float32
	AttenuationLinear    float32
	AttenuationQuadratic float32
	AngleInnerCone float32
	AngleOuterCone float32
}
