package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the built-in configuration. It mirrors
// defaults/flappy.yaml and is used when the embedded file cannot be parsed.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		Physics: Physics{
			Gravity:        0.4,
			JumpImpulse:    -7,
			PipeSpeed:      3,
			NominalFrameMs: 16,
			MaxDelta:       3,
		},
		Pipes: Pipes{
			Gap:          130,
			Width:        52,
			MinEdge:      80,
			IntervalMs:   1800,
			FirstDelayMs: 1500,
			ScoreX:       50,
			RetireX:      -60,
		},
		Bird: Bird{
			X:          50,
			Width:      34,
			Height:     24,
			StartRatio: 0.4,
		},
		World: World{
			GroundHeight: 112,
		},
		Clouds: Clouds{
			IntervalMs:  6000,
			MinWidth:    60,
			WidthRange:  40,
			HeightRatio: 0.6,
			TopOffset:   20,
			BandRatio:   0.7,
			SpeedsS:     []float64{8, 10, 12},
		},
		Timing: Timing{
			StartDelayMs:  50,
			InitialFlapMs: 50,
			PromptFadeMs:  300,
		},
		Terminal: Terminal{
			CellWidth:  12,
			CellHeight: 24,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultFlappyYAML
}
