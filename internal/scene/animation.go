package scene

// DurationDerive is the sentinel Animation.Duration value meaning
// "derive from the longest channel".
const DurationDerive = -1

// DefaultTicksPerSecond is substituted when Animation.TicksPerSecond is 0.
const DefaultTicksPerSecond = 25.0

// VectorKey is a (time, value) sample in a position or scaling track.
type VectorKey struct {
	Time  float64
	Value Vec3
}

// QuatKey is a (time, value) sample in a rotation track.
type QuatKey struct {
	Time  float64
	Value Quat
}

// Quat is a quaternion, W first to match the canonical wire order.
type Quat struct {
	W, X, Y, Z float32
}

// NodeChannel carries the three key tracks animating a single node.
type NodeChannel struct {
	NodeName      string
	PositionKeys  []VectorKey
	RotationKeys  []QuatKey
	ScalingKeys   []VectorKey
}

// Animation is a named, independently-playable set of node channels.
type Animation struct {
	Name           string
	Duration       float64
	TicksPerSecond float64
	Channels       []NodeChannel
}

// EffectiveDuration resolves the -1 sentinel against the channels' own
// key times, returning the longest time seen across any track.
func (a *Animation) EffectiveDuration() float64 {
	if a.Duration != DurationDerive {
		return a.Duration
	}
	var longest float64
	for _, ch := range a.Channels {
		if n := len(ch.PositionKeys); n > 0 && ch.PositionKeys[n-1].Time > longest {
			longest = ch.PositionKeys[n-1].Time
		}
		if n := len(ch.RotationKeys); n > 0 && ch.RotationKeys[n-1].Time > longest {
			longest = ch.RotationKeys[n-1].Time
		}
		if n := len(ch.ScalingKeys); n > 0 && ch.ScalingKeys[n-1].Time > longest {
			longest = ch.ScalingKeys[n-1].Time
		}
	}
	return longest
}

// EffectiveTicksPerSecond resolves the 0 sentinel to DefaultTicksPerSecond.
func (a *Animation) EffectiveTicksPerSecond() float64 {
	if a.TicksPerSecond == 0 {
		return DefaultTicksPerSecond
	}
	return a.TicksPerSecond
}
