package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/scene"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:   lipgloss.NewStyle(),
	core.ColorSky:       lipgloss.NewStyle().Foreground(lipgloss.Color("24")),
	core.ColorCloud:     lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
	core.ColorPipe:      lipgloss.NewStyle().Foreground(lipgloss.Color("70")),
	core.ColorPipeCap:   lipgloss.NewStyle().Foreground(lipgloss.Color("113")),
	core.ColorBird:      lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
	core.ColorBeak:      lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGround:    lipgloss.NewStyle().Foreground(lipgloss.Color("136")),
	core.ColorText:      lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
	core.ColorTextFaded: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorAlert:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
}

// Glyphs used by the terminal scene.
const (
	glyphCloud     = '░'
	glyphPipe      = '█'
	glyphPipeCap   = '▓'
	glyphGroundTop = '▀'
	glyphGround    = '▒'
	glyphBird      = '●'
)

// fadedBelow is the opacity under which prompt text is drawn dimmed.
const fadedBelow = 0.5

// Painter draws a retained scene into a character buffer, mapping world
// pixels to cells.
type Painter struct {
	CellW, CellH float64
	GroundHeight float64
}

// Paint clears the screen and draws the scene back to front: clouds, pipes,
// ground, bird, score and prompts.
func (p Painter) Paint(s *scene.Scene, screen *core.Screen) {
	screen.Clear()

	for _, c := range s.Clouds() {
		box := core.NewBox(c.X, c.Y, c.Width, c.Height)
		screen.FillRect(box.Cells(p.CellW, p.CellH), glyphCloud, core.ColorCloud)
	}

	groundRow := p.groundRow(screen)
	for _, pipe := range s.Pipes() {
		p.paintPipe(screen, pipe)
	}

	screen.DrawHLine(0, groundRow, screen.Width(), glyphGroundTop, core.ColorGround)
	for y := groundRow + 1; y < screen.Height(); y++ {
		screen.DrawHLine(0, y, screen.Width(), glyphGround, core.ColorGround)
	}

	p.paintBird(screen, s.Bird())

	screen.DrawTextCentered(0, fmt.Sprintf(" %d ", s.Score()), core.ColorText)

	if o := s.Prompt(flappy.PromptStart); o.Visible {
		paintPrompt(screen, o, core.ColorText,
			"FLAPPY",
			"space or click to start",
		)
	}
	if o := s.Prompt(flappy.PromptGameOver); o.Visible {
		paintPrompt(screen, o, core.ColorAlert,
			"GAME OVER",
			fmt.Sprintf("score %d", s.Score()),
			"space or click to retry",
		)
	}
}

// groundRow returns the first row of the ground band.
func (p Painter) groundRow(screen *core.Screen) int {
	rows := int(math.Ceil(p.GroundHeight / p.CellH))
	return max(screen.Height()-rows, 0)
}

// paintPipe draws both segments of a pipe pair with a rim at the gap.
func (p Painter) paintPipe(screen *core.Screen, pipe scene.Pipe) {
	top := core.NewBox(pipe.X, 0, pipe.Width, pipe.Top).Cells(p.CellW, p.CellH)
	bottom := core.NewBox(pipe.X, pipe.BottomY(), pipe.Width, pipe.Bottom).Cells(p.CellW, p.CellH)

	screen.FillRect(top, glyphPipe, core.ColorPipe)
	screen.FillRect(bottom, glyphPipe, core.ColorPipe)

	if top.H > 0 {
		screen.DrawHLine(top.X-1, top.Bottom()-1, top.W+2, glyphPipeCap, core.ColorPipeCap)
	}
	if bottom.H > 0 {
		screen.DrawHLine(bottom.X-1, bottom.Y, bottom.W+2, glyphPipeCap, core.ColorPipeCap)
	}
}

// paintBird draws the bird body with a heading glyph on its right edge.
func (p Painter) paintBird(screen *core.Screen, b scene.Bird) {
	r := core.NewBox(b.X, b.Y, b.Width, b.Height).Cells(p.CellW, p.CellH)
	screen.FillRect(r, glyphBird, core.ColorBird)
	screen.SetColored(r.Right()-1, r.Y, beakGlyph(b.Rotation), core.ColorBeak)
}

// beakGlyph picks an arrow for the bird's tilt in degrees.
func beakGlyph(rotation float64) rune {
	switch {
	case rotation < -5:
		return '↗'
	case rotation > 20:
		return '↘'
	default:
		return '→'
	}
}

// paintPrompt draws a boxed, centered message. Prompts mid-fade are dimmed.
func paintPrompt(screen *core.Screen, o scene.Overlay, title core.Color, lines ...string) {
	if o.Opacity <= 0 {
		return
	}
	if o.Opacity < fadedBelow {
		title = core.ColorTextFaded
	}
	body := core.ColorText
	if o.Opacity < fadedBelow {
		body = core.ColorTextFaded
	}

	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	box := core.NewRect(0, 0, width+4, len(lines)+2)
	box.X = (screen.Width() - box.W) / 2
	box.Y = (screen.Height() - box.H) / 2

	screen.FillRect(box, ' ', core.ColorDefault)
	screen.DrawBox(box, body)
	for i, l := range lines {
		c := body
		if i == 0 {
			c = title
		}
		screen.DrawTextCentered(box.Y+1+i, l, c)
	}
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
