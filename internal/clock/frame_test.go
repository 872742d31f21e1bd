package clock

import (
	"math"
	"testing"
	"time"
)

func TestFrameClockDelta(t *testing.T) {
	tests := []struct {
		name     string
		elapsed  time.Duration
		expected float64
	}{
		{"nominal frame", 16 * time.Millisecond, 1},
		{"half frame", 8 * time.Millisecond, 0.5},
		{"double frame", 32 * time.Millisecond, 2},
		{"clamped stall", 2 * time.Second, 3},
		{"zero", 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewFrameClock(16*time.Millisecond, 3)
			c.Start(epoch)
			got := c.Delta(epoch.Add(tc.elapsed))
			if math.Abs(got-tc.expected) > 1e-9 {
				t.Errorf("Delta() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestFrameClockFirstDeltaIsOne(t *testing.T) {
	c := NewFrameClock(16*time.Millisecond, 3)
	if d := c.Delta(epoch.Add(time.Hour)); d != 1 {
		t.Errorf("first Delta() = %v, expected 1", d)
	}
	if d := c.Delta(epoch.Add(time.Hour + 16*time.Millisecond)); d != 1 {
		t.Errorf("second Delta() = %v, expected 1", d)
	}

	c.Reset()
	if d := c.Delta(epoch); d != 1 {
		t.Errorf("Delta() after Reset = %v, expected 1", d)
	}
}
