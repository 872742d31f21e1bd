package core

// Color represents a foreground color for a screen cell.
// Values map to ANSI 256-color codes in the platform layer.
type Color uint8

// Palette used by the flappy scene.
const (
	ColorDefault   Color = iota
	ColorSky             // dim background details
	ColorCloud           // clouds
	ColorPipe            // pipe body
	ColorPipeCap         // pipe rim
	ColorBird            // bird body
	ColorBeak            // bird beak / heading glyph
	ColorGround          // ground band
	ColorText            // HUD and prompts
	ColorTextFaded       // prompts mid-fade
	ColorAlert           // game over title
)
