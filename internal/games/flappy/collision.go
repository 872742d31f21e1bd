package flappy

import "github.com/vovakirdan/tui-flappy/internal/core"

// Collides reports whether the bird touches the ground, leaves through the
// ceiling or sits inside a pipe segment. Geometry comes from tracked state
// only.
func Collides(bird core.Box, pipes []PipePair, playable float64) bool {
	if bird.Bottom() > playable {
		return true
	}
	if bird.Top() < 0 {
		return true
	}
	for _, p := range pipes {
		if hitsPipe(bird, p) {
			return true
		}
	}
	return false
}

// hitsPipe checks a single pair: the bird must be inside the pipe column and
// outside the gap.
func hitsPipe(bird core.Box, p PipePair) bool {
	if !bird.OverlapsX(p.TopBox()) {
		return false
	}
	return bird.Top() < p.TopBox().Bottom() || bird.Bottom() > p.BottomBox().Top()
}
