// Package flappy implements a Flappy Bird-style game session.
// The player flaps a bird through gaps in a stream of scrolling pipes. The
// session is driven entirely by Frame calls and input signals from a
// frontend; it owns no goroutines and never blocks.
package flappy

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/clock"
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// State is the phase of a session.
type State int

const (
	StateIdle     State = iota // waiting for the first start signal
	StatePlaying               // frames advance physics
	StateGameOver              // waiting for a restart signal
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	case StateGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// Session is a read-only snapshot of the gameplay state.
type Session struct {
	State  State
	Score  int
	Bird   Bird
	Pipes  []PipePair
	Clouds []Cloud
}

// Playing reports whether the snapshot was taken during a run.
func (s Session) Playing() bool {
	return s.State == StatePlaying
}

// Game is the top-level controller of a session: it owns the bird, pipes,
// clouds and prompts, and the timers that drive them.
type Game struct {
	cfg      config.FlappyConfig
	viewport Viewport
	renderer Renderer
	logger   *log.Logger
	rng      *rand.Rand

	sched  *clock.Scheduler
	frames *clock.FrameClock

	bird    Bird
	pipes   *PipeManager
	clouds  *CloudManager
	prompts *Prompts

	state          State
	score          int
	startY         float64
	frameRequested bool
	lastAnim       time.Time

	pipeTimer   clock.Handle
	cloudTimer  clock.Handle
	startTimers []clock.Handle // pending steps of the start sequence
}

// Option customizes a Game.
type Option func(*Game)

// WithRenderer sets the renderer that receives visual updates.
func WithRenderer(r Renderer) Option {
	return func(g *Game) {
		if r != nil {
			g.renderer = r
		}
	}
}

// WithLogger sets the logger used for state transitions.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithSeed makes pipe and cloud placement reproducible.
func WithSeed(seed int64) Option {
	return func(g *Game) {
		g.rng = rand.New(rand.NewSource(seed))
	}
}

// New creates an idle session whose clock starts at now. The cloud timer
// starts immediately and runs for the lifetime of the session.
func New(cfg config.FlappyConfig, viewport Viewport, now time.Time, opts ...Option) *Game {
	g := &Game{
		cfg:      cfg,
		viewport: viewport,
		renderer: nopRenderer{},
		logger:   log.New(io.Discard),
		sched:    clock.NewScheduler(now),
		frames:   clock.NewFrameClock(cfg.NominalFrame(), cfg.Physics.MaxDelta),
		prompts:  NewPrompts(cfg.PromptFade()),
		lastAnim: now,
		bird: Bird{
			X:      cfg.Bird.X,
			Width:  cfg.Bird.Width,
			Height: cfg.Bird.Height,
		},
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(now.UnixNano()))
	}
	g.pipes = NewPipeManager(cfg.Pipes, cfg.Physics.PipeSpeed, g.rng.Float64)
	g.clouds = NewCloudManager(cfg.Clouds, g.rng.Float64)

	g.Reset()
	return g
}

// playable returns the play-area height above the ground band.
func (g *Game) playable() float64 {
	return g.viewport.PlayHeight() - g.cfg.World.GroundHeight
}

// Reset returns the session to idle: score zero, bird at its start height,
// no pipes, no clouds, start prompt shown. All gameplay timers are cancelled
// and the cloud timer restarts with an immediate spawn.
func (g *Game) Reset() {
	g.state = StateIdle
	g.score = 0
	g.startY = g.playable() * g.cfg.Bird.StartRatio
	g.bird.Reset(g.startY)
	g.frames.Reset()
	g.stopGameplay()

	g.renderer.SetScore(0)
	g.renderer.MoveBird(g.bird.Y, 0)

	g.prompts.Set(PromptStart, true, 1)
	g.prompts.Set(PromptGameOver, false, 0)
	g.syncPrompts()

	for _, p := range g.pipes.Reset() {
		g.renderer.RemovePipe(p.ID)
	}
	for _, c := range g.clouds.Reset() {
		g.renderer.RemoveCloud(c.ID)
	}

	g.sched.Cancel(g.cloudTimer)
	g.spawnCloud()
	g.cloudTimer = g.sched.Every(g.cfg.CloudInterval(), g.spawnCloud)
}

// stopGameplay cancels the frame request, the pipe timer and any pending
// start-sequence steps. Safe to call repeatedly.
func (g *Game) stopGameplay() {
	g.frameRequested = false
	g.sched.Cancel(g.pipeTimer)
	g.pipeTimer = 0
	for _, h := range g.startTimers {
		g.sched.Cancel(h)
	}
	g.startTimers = g.startTimers[:0]
}

// Start begins a new run from idle or game over. It is ignored while a run
// is in progress.
func (g *Game) Start() {
	if g.state == StatePlaying {
		return
	}

	g.Reset()
	g.state = StatePlaying
	g.prompts.FadeOut(PromptStart)
	g.prompts.FadeOut(PromptGameOver)
	g.syncPrompts()
	g.logger.Debug("run started", "startY", g.startY)

	g.startTimers = append(g.startTimers, g.sched.After(g.cfg.StartDelay(), g.beginLoop))
}

// beginLoop is the second step of the start sequence: prompts go away, the
// bird is placed, the frame loop starts and the pipe and flap steps are
// scheduled.
func (g *Game) beginLoop() {
	if g.state != StatePlaying {
		return
	}
	g.prompts.Hide(PromptStart)
	g.prompts.Hide(PromptGameOver)
	g.syncPrompts()

	g.frames.Start(g.sched.Now())
	g.bird.Reset(g.startY)
	g.renderer.MoveBird(g.bird.Y, g.bird.Rotation())
	g.frameRequested = true

	g.startTimers = append(g.startTimers,
		g.sched.After(g.cfg.FirstPipeDelay(), g.beginPipes),
		g.sched.After(g.cfg.InitialFlapDelay(), g.Jump),
	)
}

// beginPipes spawns the first pipe and starts the periodic pipe timer.
func (g *Game) beginPipes() {
	if g.state != StatePlaying {
		return
	}
	g.spawnPipe()
	g.pipeTimer = g.sched.Every(g.cfg.PipeInterval(), g.spawnPipe)
}

func (g *Game) spawnPipe() {
	if g.state != StatePlaying {
		return
	}
	p := g.pipes.Spawn(g.viewport.PlayWidth(), g.playable())
	g.renderer.AddPipe(p)
}

func (g *Game) spawnCloud() {
	c := g.clouds.Spawn(g.viewport.PlayWidth(), g.playable())
	g.renderer.AddCloud(c)
}

// Jump applies a flap impulse. It is a no-op unless a run is in progress.
func (g *Game) Jump() {
	if g.state != StatePlaying {
		return
	}
	g.bird.Flap(g.cfg.Physics.JumpImpulse)
	g.renderer.MoveBird(g.bird.Y, g.bird.Rotation())
}

// Handle applies an input signal. Both signals flap during a run and start
// a new run otherwise.
func (g *Game) Handle(sig core.Signal) {
	switch sig {
	case core.SignalFlap, core.SignalTap:
		if g.state == StatePlaying {
			g.Jump()
			return
		}
		g.Start()
	}
}

// Frame is called once per display refresh with a monotonically increasing
// timestamp. It fires due timers, advances decorative animation by wall
// time and, if a frame was requested during a run, performs one update tick.
func (g *Game) Frame(now time.Time) {
	g.sched.Advance(now)
	g.animate(now)

	if g.state != StatePlaying || !g.frameRequested {
		return
	}
	g.frameRequested = false
	if g.Step(g.frames.Delta(now)) {
		g.frameRequested = true
	}
}

// animate moves clouds and prompt fades by the wall time since the last frame.
func (g *Game) animate(now time.Time) {
	dt := now.Sub(g.lastAnim).Seconds()
	if dt < 0 {
		dt = 0
	}
	g.lastAnim = now

	moved, finished := g.clouds.Update(dt)
	for _, c := range moved {
		g.renderer.MoveCloud(c.ID, c.X)
	}
	for _, c := range finished {
		g.renderer.RemoveCloud(c.ID)
	}

	if g.prompts.Update(dt) {
		g.syncPrompts()
	}
}

// Step performs one update tick of dt nominal frames: gravity, pipes, then
// collision. It reports whether the run continues. Outside a run it does
// nothing and returns false.
func (g *Game) Step(dt float64) bool {
	if g.state != StatePlaying {
		return false
	}

	g.bird.Fall(g.cfg.Physics.Gravity, dt)
	g.renderer.MoveBird(g.bird.Y, g.bird.Rotation())

	scored, retired := g.pipes.Update(dt)
	for _, p := range g.pipes.Pipes() {
		g.renderer.MovePipe(p.ID, p.X)
	}
	for _, p := range retired {
		g.renderer.RemovePipe(p.ID)
	}
	if scored > 0 {
		g.score += scored
		g.renderer.SetScore(g.score)
	}

	if Collides(g.bird.Box(), g.pipes.Pipes(), g.playable()) {
		g.gameOver()
		return false
	}
	return true
}

// gameOver halts the frame loop and the pipe timer and reveals the game
// over prompt. The cloud timer keeps running.
func (g *Game) gameOver() {
	if g.state != StatePlaying {
		return
	}
	g.state = StateGameOver
	g.stopGameplay()
	g.prompts.Show(PromptGameOver)
	g.syncPrompts()
	g.logger.Debug("game over", "score", g.score)
}

func (g *Game) syncPrompts() {
	for _, kind := range []Prompt{PromptStart, PromptGameOver} {
		visible, opacity := g.prompts.State(kind)
		g.renderer.SetPrompt(kind, visible, opacity)
	}
}

// State returns the current phase.
func (g *Game) State() State {
	return g.state
}

// Score returns the current score.
func (g *Game) Score() int {
	return g.score
}

// Session returns a snapshot of the gameplay state.
func (g *Game) Session() Session {
	pipes := make([]PipePair, len(g.pipes.Pipes()))
	copy(pipes, g.pipes.Pipes())
	return Session{
		State:  g.state,
		Score:  g.score,
		Bird:   g.bird,
		Pipes:  pipes,
		Clouds: g.clouds.Clouds(),
	}
}
