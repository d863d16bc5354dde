package domain

import "time"

// Sample is one progress observation parsed from encoder output. Either
// field may be absent.
type Sample struct {
	Speed       float64
	HasSpeed    bool
	Position    time.Duration
	HasPosition bool
}

func SpeedSample(speed float64) Sample {
	return Sample{Speed: speed, HasSpeed: speed > 0}
}

func PositionSample(pos time.Duration) Sample {
	return Sample{Position: pos, HasPosition: true}
}

// Empty reports whether the sample carries neither a speed nor a position.
func (s Sample) Empty() bool {
	return !s.HasSpeed && !s.HasPosition
}

// Merge layers next on top of s: present fields in next win, absent fields
// inherit from s.
func (s Sample) Merge(next Sample) Sample {
	out := s
	if next.HasSpeed {
		out.Speed = next.Speed
		out.HasSpeed = true
	}
	if next.HasPosition {
		out.Position = next.Position
		out.HasPosition = true
	}
	return out
}
