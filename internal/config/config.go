// Package config provides YAML-based configuration loading for the flappy
// game. All world distances are in pixels and all durations in milliseconds;
// frontends that draw in terminal cells scale through the Terminal section.
package config

import (
	"fmt"
	"time"
)

// FlappyConfig contains all tunables for a game session.
type FlappyConfig struct {
	Physics  Physics  `yaml:"physics"`
	Pipes    Pipes    `yaml:"pipes"`
	Bird     Bird     `yaml:"bird"`
	World    World    `yaml:"world"`
	Clouds   Clouds   `yaml:"clouds"`
	Timing   Timing   `yaml:"timing"`
	Terminal Terminal `yaml:"terminal"`
}

// Physics defines integration parameters.
type Physics struct {
	Gravity        float64 `yaml:"gravity"`          // Added to velocity per nominal frame
	JumpImpulse    float64 `yaml:"jump_impulse"`     // Velocity set by a flap (negative = up)
	PipeSpeed      float64 `yaml:"pipe_speed"`       // Pixels pipes move left per nominal frame
	NominalFrameMs int     `yaml:"nominal_frame_ms"` // Duration that yields deltaTime == 1
	MaxDelta       float64 `yaml:"max_delta"`        // Upper clamp for deltaTime
}

// Pipes defines obstacle geometry and spawning.
type Pipes struct {
	Gap          float64 `yaml:"gap"`            // Vertical clearance between segments
	Width        float64 `yaml:"width"`          // Horizontal footprint
	MinEdge      float64 `yaml:"min_edge"`       // Minimum segment height at top and bottom
	IntervalMs   int     `yaml:"interval_ms"`    // Spawn period while playing
	FirstDelayMs int     `yaml:"first_delay_ms"` // Delay before the first pipe
	ScoreX       float64 `yaml:"score_x"`        // A pipe scores once its x drops below this
	RetireX      float64 `yaml:"retire_x"`       // A pipe is removed once its x drops below this
}

// Bird defines the player sprite.
type Bird struct {
	X          float64 `yaml:"x"`           // Fixed horizontal position (left edge)
	Width      float64 `yaml:"width"`       // Hitbox width
	Height     float64 `yaml:"height"`      // Hitbox height
	StartRatio float64 `yaml:"start_ratio"` // Start position as a fraction of playable height
}

// World defines static scenery.
type World struct {
	GroundHeight float64 `yaml:"ground_height"` // Ground band at the bottom of the play area
}

// Clouds defines decorative background spawning.
type Clouds struct {
	IntervalMs  int       `yaml:"interval_ms"`
	MinWidth    float64   `yaml:"min_width"`
	WidthRange  float64   `yaml:"width_range"`  // Width is MinWidth + rand*WidthRange
	HeightRatio float64   `yaml:"height_ratio"` // Height is Width*HeightRatio
	TopOffset   float64   `yaml:"top_offset"`   // Minimum distance from the top
	BandRatio   float64   `yaml:"band_ratio"`   // Band height as a fraction of playable height
	SpeedsS     []float64 `yaml:"speeds_s"`     // Traversal durations in seconds
}

// Timing defines the delays of the start sequence and prompt transitions.
type Timing struct {
	StartDelayMs  int `yaml:"start_delay_ms"`  // Start signal to first frame
	InitialFlapMs int `yaml:"initial_flap_ms"` // First frame to automatic flap
	PromptFadeMs  int `yaml:"prompt_fade_ms"`  // Prompt opacity transition
}

// Terminal maps world pixels to terminal cells.
type Terminal struct {
	CellWidth  float64 `yaml:"cell_width"`
	CellHeight float64 `yaml:"cell_height"`
}

// NominalFrame returns the frame duration that corresponds to deltaTime 1.
func (c FlappyConfig) NominalFrame() time.Duration {
	return ms(c.Physics.NominalFrameMs)
}

// PipeInterval returns the pipe spawn period.
func (c FlappyConfig) PipeInterval() time.Duration {
	return ms(c.Pipes.IntervalMs)
}

// FirstPipeDelay returns the delay before the first pipe of a run.
func (c FlappyConfig) FirstPipeDelay() time.Duration {
	return ms(c.Pipes.FirstDelayMs)
}

// CloudInterval returns the cloud spawn period.
func (c FlappyConfig) CloudInterval() time.Duration {
	return ms(c.Clouds.IntervalMs)
}

// StartDelay returns the delay between a start signal and the first frame.
func (c FlappyConfig) StartDelay() time.Duration {
	return ms(c.Timing.StartDelayMs)
}

// InitialFlapDelay returns the delay between the first frame and the
// automatic opening flap.
func (c FlappyConfig) InitialFlapDelay() time.Duration {
	return ms(c.Timing.InitialFlapMs)
}

// PromptFade returns the prompt opacity transition duration.
func (c FlappyConfig) PromptFade() time.Duration {
	return ms(c.Timing.PromptFadeMs)
}

func ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}

// Validate reports the first setting that would make the simulation
// degenerate.
func (c FlappyConfig) Validate() error {
	switch {
	case c.Physics.NominalFrameMs <= 0:
		return fmt.Errorf("config: physics.nominal_frame_ms must be positive, got %d", c.Physics.NominalFrameMs)
	case c.Physics.MaxDelta <= 0:
		return fmt.Errorf("config: physics.max_delta must be positive, got %v", c.Physics.MaxDelta)
	case c.Pipes.Gap <= 0:
		return fmt.Errorf("config: pipes.gap must be positive, got %v", c.Pipes.Gap)
	case c.Pipes.Width <= 0:
		return fmt.Errorf("config: pipes.width must be positive, got %v", c.Pipes.Width)
	case c.Pipes.MinEdge < 0:
		return fmt.Errorf("config: pipes.min_edge must not be negative, got %v", c.Pipes.MinEdge)
	case c.Pipes.IntervalMs <= 0:
		return fmt.Errorf("config: pipes.interval_ms must be positive, got %d", c.Pipes.IntervalMs)
	case c.Bird.Width <= 0 || c.Bird.Height <= 0:
		return fmt.Errorf("config: bird size must be positive, got %vx%v", c.Bird.Width, c.Bird.Height)
	case c.Bird.StartRatio < 0 || c.Bird.StartRatio > 1:
		return fmt.Errorf("config: bird.start_ratio must be within [0, 1], got %v", c.Bird.StartRatio)
	case c.World.GroundHeight < 0:
		return fmt.Errorf("config: world.ground_height must not be negative, got %v", c.World.GroundHeight)
	case c.Clouds.IntervalMs <= 0:
		return fmt.Errorf("config: clouds.interval_ms must be positive, got %d", c.Clouds.IntervalMs)
	case len(c.Clouds.SpeedsS) == 0:
		return fmt.Errorf("config: clouds.speeds_s must list at least one duration")
	case c.Terminal.CellWidth <= 0 || c.Terminal.CellHeight <= 0:
		return fmt.Errorf("config: terminal cell size must be positive, got %vx%v", c.Terminal.CellWidth, c.Terminal.CellHeight)
	}
	for _, s := range c.Clouds.SpeedsS {
		if s <= 0 {
			return fmt.Errorf("config: clouds.speeds_s entries must be positive, got %v", s)
		}
	}
	return nil
}
