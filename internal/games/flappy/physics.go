package flappy

import "github.com/vovakirdan/tui-flappy/internal/core"

// Rotation limits in degrees for the bird sprite.
const (
	minRotation = -20.0
	maxRotation = 60.0
)

// Bird is the player's vertical state plus its fixed hitbox geometry.
type Bird struct {
	Y        float64 // Top edge, pixels from the top of the play area
	Velocity float64 // Pixels per nominal frame, positive is down
	X        float64 // Fixed left edge
	Width    float64
	Height   float64
}

// Fall integrates gravity over dt nominal frames. Velocity is updated first
// and the new velocity moves the bird (semi-implicit Euler). There is no
// terminal velocity.
func (b *Bird) Fall(gravity, dt float64) {
	b.Velocity += gravity * dt
	b.Y += b.Velocity * dt
}

// Flap overrides the current velocity with the jump impulse. It does not
// add to the accumulated fall speed.
func (b *Bird) Flap(impulse float64) {
	b.Velocity = impulse
}

// Rotation returns the sprite tilt in degrees derived from velocity.
func (b Bird) Rotation() float64 {
	return core.ClampF(b.Velocity*2, minRotation, maxRotation)
}

// Reset places the bird at y with zero velocity.
func (b *Bird) Reset(y float64) {
	b.Y = y
	b.Velocity = 0
}

// Box returns the bird's hitbox.
func (b Bird) Box() core.Box {
	return core.NewBox(b.X, b.Y, b.Width, b.Height)
}
