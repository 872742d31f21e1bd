package flappy

import (
	"math"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// gapBias skews the random split of a pipe pair. Values above 1 push the
// draw toward the low end of [0, 1).
const gapBias = 1.5

// PipePair is a top and bottom segment sharing a horizontal position.
// Top + Gap + Bottom always equals Floor, the playable height at spawn time.
type PipePair struct {
	ID     PipeID
	X      float64 // Left edge, decreasing over time
	Width  float64
	Top    float64 // Height of the top segment
	Bottom float64 // Height of the bottom segment
	Floor  float64 // Y where the bottom segment rests
	Scored bool    // Set once when the pair passes the bird
}

// TopBox returns the collision box of the top segment.
func (p PipePair) TopBox() core.Box {
	return core.NewBox(p.X, 0, p.Width, p.Top)
}

// BottomBox returns the collision box of the bottom segment. It keeps the
// geometry the pair spawned with even if the play area is resized later.
func (p PipePair) BottomBox() core.Box {
	return core.NewBox(p.X, p.Floor-p.Bottom, p.Width, p.Bottom)
}

// PipeManager owns the ordered sequence of pipe pairs. Order is spawn order,
// which is also left-to-right order since every pipe moves at the same speed.
type PipeManager struct {
	pipes  []PipePair
	cfg    config.Pipes
	speed  float64
	random func() float64
	nextID PipeID
}

// NewPipeManager creates a pipe manager. random must return values in [0, 1).
func NewPipeManager(cfg config.Pipes, speed float64, random func() float64) *PipeManager {
	return &PipeManager{
		pipes:  make([]PipePair, 0, 8),
		cfg:    cfg,
		speed:  speed,
		random: random,
	}
}

// Reset clears all pipes and returns the ones that were active so their
// visuals can be released.
func (pm *PipeManager) Reset() []PipePair {
	removed := pm.pipes
	pm.pipes = make([]PipePair, 0, 8)
	return removed
}

// Spawn appends a new pipe pair at the right edge of the play area.
func (pm *PipeManager) Spawn(playWidth, playable float64) PipePair {
	top, bottom := pm.split(playable)
	pm.nextID++
	p := PipePair{
		ID:     pm.nextID,
		X:      playWidth,
		Width:  pm.cfg.Width,
		Top:    top,
		Bottom: bottom,
		Floor:  playable,
	}
	pm.pipes = append(pm.pipes, p)
	return p
}

// split divides the space left over by the gap between the two segments,
// keeping MinEdge clearance at both ends when the play area allows it.
func (pm *PipeManager) split(playable float64) (top, bottom float64) {
	available := playable - pm.cfg.Gap
	lo := pm.cfg.MinEdge
	hi := available - pm.cfg.MinEdge
	if hi < lo {
		// Too short for both clearances: center the gap
		top = available / 2
		return top, available - top
	}
	top = lo + math.Pow(pm.random(), gapBias)*(hi-lo)
	return top, available - top
}

// Update moves every pipe left by speed*dt, scores pipes that crossed the
// score line and retires pipes past the retire line. It returns how many
// pipes scored this tick and the retired pipes. Survivors keep their order.
func (pm *PipeManager) Update(dt float64) (scored int, retired []PipePair) {
	step := pm.speed * dt
	for i := range pm.pipes {
		pm.pipes[i].X -= step
		if !pm.pipes[i].Scored && pm.pipes[i].X < pm.cfg.ScoreX {
			pm.pipes[i].Scored = true
			scored++
		}
	}

	kept := pm.pipes[:0]
	for _, p := range pm.pipes {
		if p.X < pm.cfg.RetireX {
			retired = append(retired, p)
			continue
		}
		kept = append(kept, p)
	}
	pm.pipes = kept

	return scored, retired
}

// Pipes returns the active pipes in left-to-right order.
func (pm *PipeManager) Pipes() []PipePair {
	return pm.pipes
}
