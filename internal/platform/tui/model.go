package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/scene"
)

// footerRows is the number of terminal rows reserved for the help footer.
const footerRows = 1

// Model is the Bubble Tea model for a flappy session.
// The session, scene and buffer live behind pointers so value copies made
// by Bubble Tea share them.
type Model struct {
	game     *flappy.Game
	scene    *scene.Scene
	screen   *core.Screen
	viewport *CellViewport
	painter  Painter
	config   core.RuntimeConfig
	keys     KeyMap
	help     help.Model
	quitting bool
}

// NewModel creates a model sized for cfg.ScreenW x cfg.ScreenH cells.
// A zero seed is replaced with one from the clock.
func NewModel(fc config.FlappyConfig, cfg core.RuntimeConfig, logger *log.Logger) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	rows := max(cfg.ScreenH-footerRows, 1)
	vp := NewCellViewport(cfg.ScreenW, rows, fc.Terminal)
	sc := scene.New(fc.Bird.X, fc.Bird.Width, fc.Bird.Height)
	game := flappy.New(fc, vp, time.Now(),
		flappy.WithRenderer(sc),
		flappy.WithLogger(logger),
		flappy.WithSeed(cfg.Seed),
	)

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:     game,
		scene:    sc,
		screen:   core.NewScreen(vp.Cols, vp.Rows),
		viewport: vp,
		painter: Painter{
			CellW:        fc.Terminal.CellWidth,
			CellH:        fc.Terminal.CellHeight,
			GroundHeight: fc.World.GroundHeight,
		},
		config: cfg,
		keys:   DefaultKeyMap(),
		help:   h,
	}
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.game.Handle(SignalForMouse(msg))
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		m.game.Frame(time.Time(msg))
		return m, tickCmd(m.config.TickRate)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	m.game.Handle(m.keys.SignalForKey(msg))
	return m, nil
}

// handleResize processes window resize events. The play area follows the
// new size at once; an idle session is also reset so the bird starts from
// the new layout.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.help.Width = msg.Width

	m.viewport.Resize(msg.Width, msg.Height-footerRows)
	m.screen.Resize(m.viewport.Cols, m.viewport.Rows)

	if m.game.State() == flappy.StateIdle {
		m.game.Reset()
	}
	return m, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.painter.Paint(m.scene, m.screen)
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys)
}

// Game returns the session driven by the model.
func (m Model) Game() *flappy.Game {
	return m.game
}

// Run starts the Bubble Tea program in the current terminal.
func Run(fc config.FlappyConfig, cfg core.RuntimeConfig, logger *log.Logger) error {
	p := tea.NewProgram(
		NewModel(fc, cfg, logger),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("terminal session: %w", err)
	}
	return nil
}
