// Package scene keeps a retained view of a flappy session. It implements
// flappy.Renderer so the game can push updates into it, and frontends read
// it back when they draw a frame.
package scene

import (
	"sort"

	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

// Bird is the drawable state of the player.
type Bird struct {
	X, Y          float64
	Width, Height float64
	Rotation      float64 // Degrees, positive tilts the beak down
}

// Pipe is the drawable state of a pipe pair. Top and Bottom are segment
// heights; the bottom segment rests on Floor.
type Pipe struct {
	ID     flappy.PipeID
	X      float64
	Width  float64
	Top    float64
	Bottom float64
	Floor  float64
}

// BottomY returns the y of the bottom segment's upper edge.
func (p Pipe) BottomY() float64 {
	return p.Floor - p.Bottom
}

// Cloud is the drawable state of a cloud.
type Cloud struct {
	ID            flappy.CloudID
	X, Y          float64
	Width, Height float64
}

// Overlay is the drawable state of a prompt.
type Overlay struct {
	Visible bool
	Opacity float64
}

// Scene is a retained set of drawable entities in world pixels.
// It is not safe for concurrent use; the owner serializes game updates and
// draws on one goroutine.
type Scene struct {
	bird    Bird
	pipes   map[flappy.PipeID]*Pipe
	clouds  map[flappy.CloudID]*Cloud
	prompts map[flappy.Prompt]Overlay
	score   int
}

// New creates an empty scene whose bird uses the given hitbox geometry.
func New(birdX, birdW, birdH float64) *Scene {
	return &Scene{
		bird:    Bird{X: birdX, Width: birdW, Height: birdH},
		pipes:   make(map[flappy.PipeID]*Pipe),
		clouds:  make(map[flappy.CloudID]*Cloud),
		prompts: make(map[flappy.Prompt]Overlay),
	}
}

var _ flappy.Renderer = (*Scene)(nil)

// MoveBird updates the bird's position and tilt.
func (s *Scene) MoveBird(y, rotation float64) {
	s.bird.Y = y
	s.bird.Rotation = rotation
}

// AddPipe creates a pipe entity.
func (s *Scene) AddPipe(p flappy.PipePair) {
	s.pipes[p.ID] = &Pipe{ID: p.ID, X: p.X, Width: p.Width, Top: p.Top, Bottom: p.Bottom, Floor: p.Floor}
}

// MovePipe updates a pipe's horizontal position. Unknown IDs are ignored.
func (s *Scene) MovePipe(id flappy.PipeID, x float64) {
	if p, ok := s.pipes[id]; ok {
		p.X = x
	}
}

// RemovePipe releases a pipe entity.
func (s *Scene) RemovePipe(id flappy.PipeID) {
	delete(s.pipes, id)
}

// AddCloud creates a cloud entity.
func (s *Scene) AddCloud(c flappy.Cloud) {
	s.clouds[c.ID] = &Cloud{ID: c.ID, X: c.X, Y: c.Y, Width: c.Width, Height: c.Height}
}

// MoveCloud updates a cloud's horizontal position. Unknown IDs are ignored.
func (s *Scene) MoveCloud(id flappy.CloudID, x float64) {
	if c, ok := s.clouds[id]; ok {
		c.X = x
	}
}

// RemoveCloud releases a cloud entity.
func (s *Scene) RemoveCloud(id flappy.CloudID) {
	delete(s.clouds, id)
}

// SetPrompt updates a prompt overlay.
func (s *Scene) SetPrompt(p flappy.Prompt, visible bool, opacity float64) {
	s.prompts[p] = Overlay{Visible: visible, Opacity: opacity}
}

// SetScore updates the score display.
func (s *Scene) SetScore(score int) {
	s.score = score
}

// Bird returns the bird entity.
func (s *Scene) Bird() Bird {
	return s.bird
}

// Pipes returns the pipe entities ordered left to right.
func (s *Scene) Pipes() []Pipe {
	out := make([]Pipe, 0, len(s.pipes))
	for _, p := range s.pipes {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Clouds returns the cloud entities in spawn order.
func (s *Scene) Clouds() []Cloud {
	out := make([]Cloud, 0, len(s.clouds))
	for _, c := range s.clouds {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Prompt returns the overlay state of a prompt.
func (s *Scene) Prompt(p flappy.Prompt) Overlay {
	return s.prompts[p]
}

// Score returns the displayed score.
func (s *Scene) Score() int {
	return s.score
}
