package scene

import "fmt"

// Validate checks the canonical invariants a scene must satisfy at every
// stage boundary: reachability of every node from the root, mesh index
// bounds, non-empty meshes unless the scene is marked incomplete, and
// non-decreasing animation key times. It returns the first violation
// found, or nil if the scene is well-formed.
func Validate(s *Scene) error {
	if s == nil {
		return fmt.Errorf("scene: nil scene")
	}
	if s.Root == nil {
		return fmt.Errorf("scene: missing root node")
	}
	if s.Root.Parent != nil {
		return fmt.Errorf("scene: root node must not have a parent")
	}

	meshCount := len(s.Meshes)
	if err := validateNode(s.Root, meshCount, make(map[*Node]bool)); err != nil {
		return err
	}

	if !s.Flags.Has(FlagIncomplete) {
		if meshCount < 1 {
			return fmt.Errorf("scene: meshCount must be >= 1 unless incomplete")
		}
		for i, m := range s.Meshes {
			if m.VertexCount() < 1 {
				return fmt.Errorf("scene: mesh %d has zero vertices", i)
			}
			if m.FaceCount() < 1 {
				return fmt.Errorf("scene: mesh %d has zero faces", i)
			}
		}
	}

	for i, anim := range s.Animations {
		if err := validateAnimation(anim); err != nil {
			return fmt.Errorf("scene: animation %d (%s): %w", i, anim.Name, err)
		}
	}

	return nil
}

func validateNode(n *Node, meshCount int, visited map[*Node]bool) error {
	if visited[n] {
		return fmt.Errorf("scene: cycle detected at node %q", n.Name)
	}
	visited[n] = true

	for _, idx := range n.MeshIndex {
		if idx < 0 || idx >= meshCount {
			return fmt.Errorf("scene: node %q references out-of-range mesh index %d", n.Name, idx)
		}
	}

	for _, c := range n.Children {
		if c.Parent != n {
			return fmt.Errorf("scene: node %q child %q has mismatched parent pointer", n.Name, c.Name)
		}
		if err := validateNode(c, meshCount, visited); err != nil {
			return err
		}
	}
	return nil
}

func validateAnimation(anim *Animation) error {
	for ci, ch := range anim.Channels {
		last := -1.0
		for _, k := range ch.PositionKeys {
			if k.Time < last {
				return fmt.Errorf("channel %d (%s): position keys not time-ordered", ci, ch.NodeName)
			}
			last = k.Time
		}
		last = -1.0
		for _, k := range ch.RotationKeys {
			if k.Time < last {
				return fmt.Errorf("channel %d (%s): rotation keys not time-ordered", ci, ch.NodeName)
			}
			last = k.Time
		}
		last = -1.0
		for _, k := range ch.ScalingKeys {
			if k.Time < last {
				return fmt.Errorf("channel %d (%s): scaling keys not time-ordered", ci, ch.NodeName)
			}
			last = k.Time
		}
	}
	return nil
}

// IsVerboseIndexed reports whether mesh m still satisfies the
// "pseudo-indexed verbose" invariant: no vertex index appears twice
// across its faces. Once join-vertices has run this no longer holds
// and callers should not assume it.
func IsVerboseIndexed(m *Mesh) bool {
	seen := make(map[uint32]bool, m.VertexCount())
	for _, f := range m.Faces {
		for _, idx := range f.Indices {
			if seen[idx] {
				return false
			}
			seen[idx] = true
		}
	}
	return true
}
