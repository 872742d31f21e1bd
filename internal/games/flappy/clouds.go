package flappy

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

// Cloud is a decorative background entity. It never takes part in scoring
// or collision.
type Cloud struct {
	ID        CloudID
	X         float64 // Left edge
	Y         float64 // Top edge
	Width     float64
	Height    float64
	Traversal float64 // Seconds to cross the play area

	tween *gween.Tween
}

// CloudManager spawns clouds and animates them across the play area.
// A cloud removes itself once its traversal finishes.
type CloudManager struct {
	clouds []*Cloud
	cfg    config.Clouds
	random func() float64
	nextID CloudID
}

// NewCloudManager creates a cloud manager. random must return values in [0, 1).
func NewCloudManager(cfg config.Clouds, random func() float64) *CloudManager {
	return &CloudManager{
		cfg:    cfg,
		random: random,
	}
}

// Spawn creates a cloud at the right edge with a random size, height in the
// upper band of the playable area and one of the configured speeds.
func (cm *CloudManager) Spawn(playWidth, playable float64) Cloud {
	width := cm.cfg.MinWidth + cm.random()*cm.cfg.WidthRange
	y := cm.cfg.TopOffset + cm.random()*playable*cm.cfg.BandRatio
	idx := int(cm.random() * float64(len(cm.cfg.SpeedsS)))
	if idx >= len(cm.cfg.SpeedsS) {
		idx = len(cm.cfg.SpeedsS) - 1
	}
	traversal := cm.cfg.SpeedsS[idx]

	cm.nextID++
	c := &Cloud{
		ID:        cm.nextID,
		X:         playWidth,
		Y:         y,
		Width:     width,
		Height:    width * cm.cfg.HeightRatio,
		Traversal: traversal,
		tween:     gween.New(float32(playWidth), float32(-width), float32(traversal), ease.Linear),
	}
	cm.clouds = append(cm.clouds, c)
	return *c
}

// Update advances every traversal by dt seconds. It returns the clouds that
// are still moving and the ones whose traversal completed; completed clouds
// are no longer tracked.
func (cm *CloudManager) Update(dt float64) (moved, finished []Cloud) {
	kept := cm.clouds[:0]
	for _, c := range cm.clouds {
		x, done := c.tween.Update(float32(dt))
		c.X = float64(x)
		if done {
			finished = append(finished, *c)
			continue
		}
		moved = append(moved, *c)
		kept = append(kept, c)
	}
	// Drop references held past the new length
	for i := len(kept); i < len(cm.clouds); i++ {
		cm.clouds[i] = nil
	}
	cm.clouds = kept
	return moved, finished
}

// Reset drops all clouds and returns them so their visuals can be released.
func (cm *CloudManager) Reset() []Cloud {
	removed := cm.Clouds()
	cm.clouds = nil
	return removed
}

// Clouds returns a snapshot of the tracked clouds.
func (cm *CloudManager) Clouds() []Cloud {
	out := make([]Cloud, 0, len(cm.clouds))
	for _, c := range cm.clouds {
		out = append(out, *c)
	}
	return out
}
