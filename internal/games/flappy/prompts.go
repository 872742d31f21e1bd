package flappy

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

type promptState struct {
	visible bool
	opacity float64
	tween   *gween.Tween
}

// Prompts tracks visibility and opacity transitions of the overlay messages.
type Prompts struct {
	states [2]promptState
	fade   float32 // seconds
}

// NewPrompts creates prompts that fade over the given duration.
func NewPrompts(fade time.Duration) *Prompts {
	return &Prompts{fade: float32(fade.Seconds())}
}

// Set shows or hides a prompt with an immediate opacity.
func (p *Prompts) Set(kind Prompt, visible bool, opacity float64) {
	p.states[kind] = promptState{visible: visible, opacity: opacity}
}

// Show makes a prompt visible and fades it in from its current opacity.
func (p *Prompts) Show(kind Prompt) {
	s := &p.states[kind]
	s.visible = true
	p.fadeTo(s, 1)
}

// FadeOut fades a prompt to transparent. It stays visible until Hide.
func (p *Prompts) FadeOut(kind Prompt) {
	p.fadeTo(&p.states[kind], 0)
}

// Hide removes a prompt immediately.
func (p *Prompts) Hide(kind Prompt) {
	p.states[kind] = promptState{}
}

func (p *Prompts) fadeTo(s *promptState, target float64) {
	if p.fade <= 0 {
		s.opacity = target
		s.tween = nil
		return
	}
	s.tween = gween.New(float32(s.opacity), float32(target), p.fade, ease.OutQuad)
}

// Update advances running transitions by dt seconds and reports whether any
// opacity changed.
func (p *Prompts) Update(dt float64) bool {
	changed := false
	for i := range p.states {
		s := &p.states[i]
		if s.tween == nil {
			continue
		}
		v, done := s.tween.Update(float32(dt))
		s.opacity = float64(v)
		if done {
			s.tween = nil
		}
		changed = true
	}
	return changed
}

// State returns the visibility and opacity of a prompt.
func (p *Prompts) State(kind Prompt) (visible bool, opacity float64) {
	s := p.states[kind]
	return s.visible, s.opacity
}
