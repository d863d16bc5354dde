package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSample_Merge(t *testing.T) {
	tests := []struct {
		name string
		prev Sample
		next Sample
		want Sample
	}{
		{
			name: "empty next keeps everything",
			prev: Sample{Speed: 2, HasSpeed: true, Position: time.Second, HasPosition: true},
			next: Sample{},
			want: Sample{Speed: 2, HasSpeed: true, Position: time.Second, HasPosition: true},
		},
		{
			name: "speed only replaces speed",
			prev: Sample{Speed: 2, HasSpeed: true, Position: time.Second, HasPosition: true},
			next: SpeedSample(3.5),
			want: Sample{Speed: 3.5, HasSpeed: true, Position: time.Second, HasPosition: true},
		},
		{
			name: "position only replaces position",
			prev: SpeedSample(1.2),
			next: PositionSample(9 * time.Second),
			want: Sample{Speed: 1.2, HasSpeed: true, Position: 9 * time.Second, HasPosition: true},
		},
		{
			name: "from empty",
			prev: Sample{},
			next: PositionSample(0),
			want: Sample{HasPosition: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.prev.Merge(tt.next))
		})
	}
}

func TestSample_MergeNeverClearsFields(t *testing.T) {
	seq := []Sample{
		SpeedSample(1.0),
		{},
		PositionSample(2 * time.Second),
		{},
		SpeedSample(0),
		{},
	}

	var acc Sample
	for _, s := range seq {
		acc = acc.Merge(s)
	}

	assert.True(t, acc.HasSpeed)
	assert.Equal(t, 1.0, acc.Speed)
	assert.True(t, acc.HasPosition)
	assert.Equal(t, 2*time.Second, acc.Position)

	assert.Equal(t, acc, acc.Merge(Sample{}), "merging an empty sample is idempotent")
}

func TestSpeedSample_RejectsNonPositive(t *testing.T) {
	assert.True(t, SpeedSample(0).Empty())
	assert.True(t, SpeedSample(-1).Empty())
	assert.False(t, SpeedSample(0.1).Empty())
}
