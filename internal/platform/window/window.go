// Package window runs a flappy session in a desktop window with Ebitengine.
// It draws the retained scene in world pixels, one pixel per world unit.
package window

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/scene"
)

var (
	colorSky       = color.RGBA{R: 112, G: 197, B: 206, A: 255}
	colorCloud     = color.RGBA{R: 255, G: 255, B: 255, A: 200}
	colorPipe      = color.RGBA{R: 115, G: 191, B: 46, A: 255}
	colorPipeCap   = color.RGBA{R: 84, G: 140, B: 34, A: 255}
	colorGround    = color.RGBA{R: 222, G: 216, B: 149, A: 255}
	colorGrass     = color.RGBA{R: 93, G: 168, B: 48, A: 255}
	colorBird      = color.RGBA{R: 247, G: 212, B: 36, A: 255}
	colorBeak      = color.RGBA{R: 240, G: 120, B: 30, A: 255}
	colorPromptBox = color.RGBA{R: 0, G: 0, B: 0, A: 160}
)

const (
	rimHeight   = 16 // pipe rim thickness at the gap
	rimOverhang = 3  // pipe rim overhang on each side
	grassHeight = 8
	glyphW      = 6 // debug font cell width
)

// Game adapts a flappy session to ebiten.Game.
type Game struct {
	game     *flappy.Game
	scene    *scene.Scene
	viewport *flappy.FixedViewport
	cfg      config.FlappyConfig
	bird     *ebiten.Image
}

// NewGame creates a window game with a play area of width x height pixels.
func NewGame(fc config.FlappyConfig, rt core.RuntimeConfig, logger *log.Logger) *Game {
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}
	vp := &flappy.FixedViewport{W: float64(rt.ScreenW), H: float64(rt.ScreenH)}
	sc := scene.New(fc.Bird.X, fc.Bird.Width, fc.Bird.Height)

	return &Game{
		game: flappy.New(fc, vp, time.Now(),
			flappy.WithRenderer(sc),
			flappy.WithLogger(logger),
			flappy.WithSeed(rt.Seed),
		),
		scene:    sc,
		viewport: vp,
		cfg:      fc,
	}
}

// Update reads input and advances the session to the current time.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	for _, k := range []ebiten.Key{ebiten.KeySpace, ebiten.KeyArrowUp, ebiten.KeyW, ebiten.KeyEnter} {
		if inpututil.IsKeyJustPressed(k) {
			g.game.Handle(core.SignalFlap)
			break
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) ||
		len(inpututil.AppendJustPressedTouchIDs(nil)) > 0 {
		g.game.Handle(core.SignalTap)
	}

	g.game.Frame(time.Now())
	return nil
}

// Draw paints the scene back to front.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colorSky)

	for _, c := range g.scene.Clouds() {
		fillRect(screen, c.X, c.Y, c.Width, c.Height, colorCloud)
	}

	playable := g.viewport.H - g.cfg.World.GroundHeight
	for _, p := range g.scene.Pipes() {
		fillRect(screen, p.X, 0, p.Width, p.Top, colorPipe)
		fillRect(screen, p.X-rimOverhang, p.Top-rimHeight, p.Width+2*rimOverhang, rimHeight, colorPipeCap)
		fillRect(screen, p.X, p.BottomY(), p.Width, p.Bottom, colorPipe)
		fillRect(screen, p.X-rimOverhang, p.BottomY(), p.Width+2*rimOverhang, rimHeight, colorPipeCap)
	}

	fillRect(screen, 0, playable, g.viewport.W, g.cfg.World.GroundHeight, colorGround)
	fillRect(screen, 0, playable, g.viewport.W, grassHeight, colorGrass)

	g.drawBird(screen)

	score := fmt.Sprintf("SCORE %d", g.scene.Score())
	ebitenutil.DebugPrintAt(screen, score, int(g.viewport.W)/2-len(score)*glyphW/2, 8)

	if o := g.scene.Prompt(flappy.PromptStart); o.Visible {
		g.drawPrompt(screen, o, "FLAPPY", "space, click or tap to start")
	}
	if o := g.scene.Prompt(flappy.PromptGameOver); o.Visible {
		g.drawPrompt(screen, o, "GAME OVER", score, "space, click or tap to retry")
	}
}

// drawBird draws the bird sprite rotated about its center.
func (g *Game) drawBird(screen *ebiten.Image) {
	b := g.scene.Bird()
	if g.bird == nil {
		w, h := int(b.Width), int(b.Height)
		g.bird = ebiten.NewImage(w, h)
		g.bird.Fill(colorBird)
		vector.DrawFilledRect(g.bird, float32(w)*0.7, float32(h)*0.35, float32(w)*0.3, float32(h)*0.3, colorBeak, false)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-b.Width/2, -b.Height/2)
	op.GeoM.Rotate(b.Rotation * math.Pi / 180)
	op.GeoM.Translate(b.X+b.Width/2, b.Y+b.Height/2)
	screen.DrawImage(g.bird, op)
}

// drawPrompt draws a centered panel whose darkness follows the prompt
// opacity. Text is only drawn once the panel is mostly opaque.
func (g *Game) drawPrompt(screen *ebiten.Image, o scene.Overlay, lines ...string) {
	if o.Opacity <= 0 {
		return
	}
	width := 0
	for _, l := range lines {
		width = max(width, len(l)*glyphW)
	}
	w := float64(width + 24)
	h := float64(len(lines)*16 + 16)
	x := (g.viewport.W - w) / 2
	y := (g.viewport.H - g.cfg.World.GroundHeight - h) / 2

	panel := colorPromptBox
	panel.A = uint8(float64(panel.A) * core.ClampF(o.Opacity, 0, 1))
	fillRect(screen, x, y, w, h, panel)

	if o.Opacity < 0.5 {
		return
	}
	for i, l := range lines {
		lx := int(g.viewport.W)/2 - len(l)*glyphW/2
		ebitenutil.DebugPrintAt(screen, l, lx, int(y)+8+i*16)
	}
}

// Layout makes the play area follow the window. An idle session is reset so
// the bird starts from the new layout.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := float64(outsideWidth), float64(outsideHeight)
	if w != g.viewport.W || h != g.viewport.H {
		g.viewport.W, g.viewport.H = w, h
		if g.game.State() == flappy.StateIdle {
			g.game.Reset()
		}
	}
	return outsideWidth, outsideHeight
}

func fillRect(dst *ebiten.Image, x, y, w, h float64, c color.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	vector.DrawFilledRect(dst, float32(x), float32(y), float32(w), float32(h), c, false)
}

// Run opens a resizable window of rt.ScreenW x rt.ScreenH pixels and blocks
// until it is closed.
func Run(fc config.FlappyConfig, rt core.RuntimeConfig, logger *log.Logger) error {
	ebiten.SetWindowSize(rt.ScreenW, rt.ScreenH)
	ebiten.SetWindowTitle("Flappy")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if rt.TickRate > 0 {
		ebiten.SetTPS(rt.TickRate)
	}

	if err := ebiten.RunGame(NewGame(fc, rt, logger)); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("window session: %w", err)
	}
	return nil
}
