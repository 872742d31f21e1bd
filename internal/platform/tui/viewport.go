package tui

import "github.com/vovakirdan/tui-flappy/internal/config"

// CellViewport exposes a terminal area as a play area in world pixels.
// The game queries it on demand, so a resize is seen by the next spawn.
type CellViewport struct {
	Cols, Rows int
	CellW      float64
	CellH      float64
}

// NewCellViewport creates a viewport of cols x rows cells scaled by the
// terminal section of the configuration.
func NewCellViewport(cols, rows int, t config.Terminal) *CellViewport {
	return &CellViewport{
		Cols:  max(cols, 1),
		Rows:  max(rows, 1),
		CellW: t.CellWidth,
		CellH: t.CellHeight,
	}
}

// Resize changes the cell dimensions.
func (v *CellViewport) Resize(cols, rows int) {
	v.Cols = max(cols, 1)
	v.Rows = max(rows, 1)
}

// PlayWidth returns the width in world pixels.
func (v *CellViewport) PlayWidth() float64 {
	return float64(v.Cols) * v.CellW
}

// PlayHeight returns the height in world pixels.
func (v *CellViewport) PlayHeight() float64 {
	return float64(v.Rows) * v.CellH
}
