package scene

import "unsafe"

// MemoryRequirements reports a per-category byte estimate of a scene's
// in-memory footprint. It is a pure function of the scene: no allocation
// happens as a side effect of decoding or importing, only of walking.
type MemoryRequirements struct {
	Nodes      int64
	Meshes     int64
	Materials  int64
	Animations int64
	Textures   int64
	Cameras    int64
	Lights     int64
	Total      int64
}

const (
	vec3Size  = int64(unsafe.Sizeof(Vec3{}))
	vec2Size  = int64(unsafe.Sizeof(Vec2{}))
	colorSize = int64(unsafe.Sizeof(Color4{}))
	mat4Size  = int64(unsafe.Sizeof(Mat4{}))
	quatSize  = int64(unsafe.Sizeof(Quat{}))
)

// GetMemoryRequirements walks s and sums byte costs per category. The
// walker is a pure read: it must never mutate the scene.
func GetMemoryRequirements(s *Scene) MemoryRequirements {
	var req MemoryRequirements

	req.Nodes = walkNodes(s.Root)

	for _, m := range s.Meshes {
		req.Meshes += meshBytes(m)
	}

	for _, mat := range s.Materials {
		req.Materials += materialBytes(mat)
	}

	for _, anim := range s.Animations {
		req.Animations += animationBytes(anim)
	}

	for _, tex := range s.Textures {
		req.Textures += int64(unsafe.Sizeof(Texture{})) + tex.RawByteSize()
	}

	req.Cameras = int64(len(s.Cameras)) * int64(unsafe.Sizeof(Camera{}))
	req.Lights = int64(len(s.Lights)) * int64(unsafe.Sizeof(Light{}))

	req.Total = req.Nodes + req.Meshes + req.Materials + req.Animations + req.Textures + req.Cameras + req.Lights
	return req
}

func walkNodes(n *Node) int64 {
	if n == nil {
		return 0
	}
	size := mat4Size + int64(len(n.Name)) + int64(len(n.MeshIndex))*8
	for _, c := range n.Children {
		size += walkNodes(c)
	}
	return size
}

func meshBytes(m *Mesh) int64 {
	if m == nil {
		return 0
	}
	size := int64(len(m.Positions)) * vec3Size
	size += int64(len(m.Normals)) * vec3Size
	size += int64(len(m.Tangents)) * vec3Size
	size += int64(len(m.Bitangents)) * vec3Size

	for i := 0; i < MaxColorSets; i++ {
		size += int64(len(m.Colors[i])) * colorSize
	}
	for i := 0; i < MaxTexCoordSets; i++ {
		size += int64(len(m.TexCoords[i])) * vec2Size
	}

	for _, f := range m.Faces {
		size += int64(len(f.Indices)) * 4
	}

	for _, b := range m.Bones {
		size += int64(len(b.Weights))*8 + mat4Size + int64(len(b.Name))
	}

	return size
}

func materialBytes(mat *Material) int64 {
	if mat == nil {
		return 0
	}
	size := int64(len(mat.Name))
	for _, p := range mat.Properties {
		size += int64(len(p.Key)) + int64(len(p.String)) + int64(len(p.Buffer)) + 16
	}
	return size
}

// animationBytes sums the byte cost of one animation. Each channel is
// walked by its own loop index. The source this design is derived from
// had a bug where the outer animation index shadowed the inner channel
// index; here every loop variable is scoped to its own range clause so
// the mistake cannot recur.
func animationBytes(anim *Animation) int64 {
	if anim == nil {
		return 0
	}
	size := int64(len(anim.Name)) + 16
	for _, ch := range anim.Channels {
		size += int64(len(ch.NodeName))
		size += int64(len(ch.PositionKeys)) * (8 + vec3Size)
		size += int64(len(ch.RotationKeys)) * (8 + quatSize)
		size += int64(len(ch.ScalingKeys)) * (8 + vec3Size)
	}
	return size
}
