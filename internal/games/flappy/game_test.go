package flappy

import (
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

var epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

const frame = 16 * time.Millisecond

// recorder is a Renderer that keeps counters and the latest values.
type recorder struct {
	birdY, rotation float64
	score           int
	pipes           map[PipeID]float64
	pipesAdded      int
	pipesRemoved    int
	clouds          map[CloudID]float64
	cloudsAdded     int
	cloudsRemoved   int
	prompts         map[Prompt][2]float64 // visible (0/1), opacity
}

func newRecorder() *recorder {
	return &recorder{
		pipes:   make(map[PipeID]float64),
		clouds:  make(map[CloudID]float64),
		prompts: make(map[Prompt][2]float64),
	}
}

func (r *recorder) MoveBird(y, rotation float64)  { r.birdY, r.rotation = y, rotation }
func (r *recorder) AddPipe(p PipePair)            { r.pipes[p.ID] = p.X; r.pipesAdded++ }
func (r *recorder) MovePipe(id PipeID, x float64) { r.pipes[id] = x }
func (r *recorder) RemovePipe(id PipeID)          { delete(r.pipes, id); r.pipesRemoved++ }
func (r *recorder) AddCloud(c Cloud)              { r.clouds[c.ID] = c.X; r.cloudsAdded++ }
func (r *recorder) MoveCloud(id CloudID, x float64) {
	r.clouds[id] = x
}
func (r *recorder) RemoveCloud(id CloudID) { delete(r.clouds, id); r.cloudsRemoved++ }
func (r *recorder) SetScore(score int)     { r.score = score }
func (r *recorder) SetPrompt(p Prompt, visible bool, opacity float64) {
	v := 0.0
	if visible {
		v = 1
	}
	r.prompts[p] = [2]float64{v, opacity}
}

// resizable is a Viewport whose size tests can change between runs.
type resizable struct{ w, h float64 }

func (v *resizable) PlayWidth() float64  { return v.w }
func (v *resizable) PlayHeight() float64 { return v.h }

func newTestGame(t *testing.T, cfg config.FlappyConfig) (*Game, *recorder) {
	t.Helper()
	rec := newRecorder()
	g := New(cfg, FixedViewport{W: 400, H: 600}, epoch, WithSeed(1), WithRenderer(rec))
	return g, rec
}

// runFrames calls Frame every 16ms from the current scheduler time up to end.
// If keepAloft is set the bird flaps whenever it sinks below its start height.
func runFrames(g *Game, end time.Time, keepAloft bool) {
	for now := g.sched.Now().Add(frame); !now.After(end); now = now.Add(frame) {
		if keepAloft && g.state == StatePlaying && g.bird.Y > g.startY {
			g.Jump()
		}
		g.Frame(now)
	}
}

func TestNewGameIsIdle(t *testing.T) {
	g, rec := newTestGame(t, config.DefaultFlappyConfig())

	if g.State() != StateIdle {
		t.Errorf("State() = %v, expected idle", g.State())
	}
	if rec.cloudsAdded != 1 {
		t.Errorf("clouds added = %d, expected an immediate cloud", rec.cloudsAdded)
	}
	if p := rec.prompts[PromptStart]; p[0] != 1 || p[1] != 1 {
		t.Errorf("start prompt = %v, expected visible and opaque", p)
	}
	if p := rec.prompts[PromptGameOver]; p[0] != 0 {
		t.Errorf("game over prompt = %v, expected hidden", p)
	}
	// 40% of 600-112
	if math.Abs(g.bird.Y-195.2) > eps {
		t.Errorf("bird Y = %v, expected 195.2", g.bird.Y)
	}
}

func TestIdleFramesDoNotMoveBird(t *testing.T) {
	g, _ := newTestGame(t, config.DefaultFlappyConfig())
	before := g.Session().Bird

	runFrames(g, epoch.Add(2*time.Second), false)

	if g.Session().Bird != before {
		t.Errorf("bird moved while idle: %+v -> %+v", before, g.Session().Bird)
	}
	if g.Step(1) {
		t.Error("Step while idle should report false")
	}
	if g.Session().Bird != before {
		t.Error("Step while idle should not move the bird")
	}
}

func TestJumpWhileIdleIsNoop(t *testing.T) {
	g, _ := newTestGame(t, config.DefaultFlappyConfig())
	g.Jump()
	if g.bird.Velocity != 0 {
		t.Errorf("Jump while idle set velocity %v", g.bird.Velocity)
	}
}

func TestStartSequence(t *testing.T) {
	g, rec := newTestGame(t, config.DefaultFlappyConfig())
	startY := g.startY

	g.Handle(core.SignalFlap)
	if g.State() != StatePlaying {
		t.Fatalf("State() = %v after start signal", g.State())
	}

	// Loop has not begun yet
	g.Frame(epoch.Add(16 * time.Millisecond))
	g.Frame(epoch.Add(48 * time.Millisecond))
	if g.bird.Y != startY || g.bird.Velocity != 0 {
		t.Fatalf("bird moved before loop start: Y=%v V=%v", g.bird.Y, g.bird.Velocity)
	}
	if p := rec.prompts[PromptStart]; p[0] != 1 {
		t.Error("start prompt should still be visible while fading")
	}

	// Loop begins at 50ms; the first tick has zero elapsed time
	g.Frame(epoch.Add(50 * time.Millisecond))
	if !g.frameRequested {
		t.Fatal("frame loop should be running after the start delay")
	}
	if p := rec.prompts[PromptStart]; p[0] != 0 {
		t.Error("start prompt should be hidden once the loop begins")
	}

	g.Frame(epoch.Add(66 * time.Millisecond))
	if math.Abs(g.bird.Velocity-0.4) > eps || math.Abs(g.bird.Y-(startY+0.4)) > eps {
		t.Errorf("after one nominal frame: Y=%v V=%v", g.bird.Y, g.bird.Velocity)
	}

	// Opening flap fires at 100ms, then 34ms of gravity
	g.Frame(epoch.Add(100 * time.Millisecond))
	expected := -7 + 0.4*(34.0/16.0)
	if math.Abs(g.bird.Velocity-expected) > 1e-6 {
		t.Errorf("velocity after opening flap = %v, expected %v", g.bird.Velocity, expected)
	}
	if rec.rotation >= 0 {
		t.Errorf("rising bird should tilt up, rotation %v", rec.rotation)
	}
}

func TestPipeSpawnSchedule(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	cfg.Physics.PipeSpeed = 0 // keep pipes at the right edge, away from the bird
	g, rec := newTestGame(t, cfg)

	g.Start()
	runFrames(g, epoch.Add(1536*time.Millisecond), true)
	g.Frame(epoch.Add(1549 * time.Millisecond))
	if rec.pipesAdded != 0 {
		t.Fatalf("pipes added before first delay: %d", rec.pipesAdded)
	}

	// 50ms start delay + 1500ms first pipe delay
	g.Frame(epoch.Add(1550 * time.Millisecond))
	if rec.pipesAdded != 1 {
		t.Fatalf("pipes added at 1550ms = %d, expected 1", rec.pipesAdded)
	}

	runFrames(g, epoch.Add(5200*time.Millisecond), true)
	if g.State() != StatePlaying {
		t.Fatalf("bird died during the schedule test at score %d", g.Score())
	}
	// Then every 1800ms: 3350, 5150
	if rec.pipesAdded != 3 {
		t.Errorf("pipes added by 5.2s = %d, expected 3", rec.pipesAdded)
	}
	for _, p := range g.Session().Pipes {
		if p.X != 400 {
			t.Errorf("pipe %d spawned at %v, expected right edge 400", p.ID, p.X)
		}
	}
}

func TestCollisionEndsRun(t *testing.T) {
	g, rec := newTestGame(t, config.DefaultFlappyConfig())
	g.Start()

	// Without flaps the bird hits the ground well before the first pipe
	runFrames(g, epoch.Add(1500*time.Millisecond), false)
	if g.State() != StateGameOver {
		t.Fatalf("State() = %v, expected game over", g.State())
	}
	if g.frameRequested {
		t.Error("frame request should be cancelled")
	}
	if p := rec.prompts[PromptGameOver]; p[0] != 1 {
		t.Error("game over prompt should be shown")
	}

	frozen := g.Session()
	cloudsBefore := rec.cloudsAdded
	runFrames(g, epoch.Add(13*time.Second), false)

	after := g.Session()
	if after.Bird != frozen.Bird || after.Score != frozen.Score {
		t.Errorf("state changed after game over: %+v -> %+v", frozen.Bird, after.Bird)
	}
	if rec.pipesAdded != 0 {
		t.Errorf("pipe timer kept running after game over: %d pipes", rec.pipesAdded)
	}
	if g.sched.Active(g.pipeTimer) {
		t.Error("pipe timer should be cancelled")
	}
	if rec.cloudsAdded <= cloudsBefore {
		t.Error("cloud timer should keep running after game over")
	}
	if g.Step(1) {
		t.Error("Step after game over should report false")
	}
	if p := rec.prompts[PromptGameOver]; p[1] != 1 {
		t.Errorf("game over prompt opacity = %v after fade, expected 1", p[1])
	}
}

func TestScoreOnlyWhilePlaying(t *testing.T) {
	g, rec := newTestGame(t, config.DefaultFlappyConfig())
	g.Start()
	g.Frame(epoch.Add(50 * time.Millisecond))

	// Full-height gap pipe just right of the score line
	g.pipes.pipes = append(g.pipes.pipes, PipePair{ID: 99, X: 51, Width: 52, Floor: g.playable()})

	if !g.Step(1) {
		t.Fatal("run ended unexpectedly")
	}
	if g.Score() != 1 || rec.score != 1 {
		t.Errorf("score = %d (renderer %d), expected 1", g.Score(), rec.score)
	}
	g.Step(1)
	if g.Score() != 1 {
		t.Errorf("score = %d after second tick, expected 1", g.Score())
	}

	g.gameOver()
	g.pipes.pipes = append(g.pipes.pipes, PipePair{ID: 100, X: 51, Width: 52, Floor: g.playable()})
	g.Step(1)
	if g.Score() != 1 {
		t.Errorf("score changed after game over: %d", g.Score())
	}
}

func TestStartIgnoredWhilePlaying(t *testing.T) {
	g, _ := newTestGame(t, config.DefaultFlappyConfig())
	g.Start()
	runFrames(g, epoch.Add(200*time.Millisecond), false)

	before := g.Session()
	timers := g.sched.Pending()
	g.Start()

	if g.State() != StatePlaying {
		t.Errorf("State() = %v after re-entrant start", g.State())
	}
	if g.Session().Bird != before.Bird {
		t.Error("re-entrant start should not reset the bird")
	}
	if g.sched.Pending() != timers {
		t.Errorf("re-entrant start scheduled timers: %d -> %d", timers, g.sched.Pending())
	}
}

func TestSignalsDuringRunFlap(t *testing.T) {
	for _, sig := range []core.Signal{core.SignalFlap, core.SignalTap} {
		t.Run(sig.String(), func(t *testing.T) {
			g, _ := newTestGame(t, config.DefaultFlappyConfig())
			g.Handle(sig)
			g.Frame(epoch.Add(50 * time.Millisecond))
			g.Frame(epoch.Add(66 * time.Millisecond))

			g.Handle(sig)
			if g.bird.Velocity != -7 {
				t.Errorf("velocity after %v = %v, expected -7", sig, g.bird.Velocity)
			}
		})
	}
}

func TestRestartAfterGameOver(t *testing.T) {
	for _, sig := range []core.Signal{core.SignalFlap, core.SignalTap} {
		t.Run(sig.String(), func(t *testing.T) {
			g, _ := newTestGame(t, config.DefaultFlappyConfig())
			g.Start()
			runFrames(g, epoch.Add(1500*time.Millisecond), false)
			if g.State() != StateGameOver {
				t.Fatalf("setup: State() = %v", g.State())
			}

			g.Handle(sig)
			if g.State() != StatePlaying {
				t.Errorf("State() = %v after %v on game over", g.State(), sig)
			}
		})
	}
}

func TestResetRestoresInitialState(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	rec := newRecorder()
	vp := &resizable{w: 400, h: 600}
	g := New(cfg, vp, epoch, WithSeed(3), WithRenderer(rec))

	g.Start()
	runFrames(g, epoch.Add(4*time.Second), true)
	g.score = 7

	vp.h = 700
	g.Reset()

	s := g.Session()
	if s.State != StateIdle || s.Score != 0 {
		t.Errorf("after Reset: state %v score %d", s.State, s.Score)
	}
	if math.Abs(s.Bird.Y-0.4*(700-112)) > eps || s.Bird.Velocity != 0 {
		t.Errorf("after Reset: bird %+v, expected Y=%v V=0", s.Bird, 0.4*(700-112))
	}
	if len(s.Pipes) != 0 || len(rec.pipes) != 0 {
		t.Errorf("after Reset: %d pipes tracked, %d rendered", len(s.Pipes), len(rec.pipes))
	}
	if len(s.Clouds) != 1 || len(rec.clouds) != 1 {
		t.Errorf("after Reset: %d clouds, expected the fresh one", len(s.Clouds))
	}
	if rec.score != 0 {
		t.Errorf("renderer score = %d after Reset", rec.score)
	}
	if g.frameRequested || g.sched.Active(g.pipeTimer) {
		t.Error("Reset should stop the frame loop and pipe timer")
	}
}

func TestCloudTimerRestartsOnReset(t *testing.T) {
	g, rec := newTestGame(t, config.DefaultFlappyConfig())

	runFrames(g, epoch.Add(5*time.Second), false)
	g.Reset()
	added := rec.cloudsAdded

	// The period restarts from the reset, not from the original schedule
	runFrames(g, epoch.Add(10900*time.Millisecond), false)
	if rec.cloudsAdded != added {
		t.Errorf("cloud spawned %d times before the restarted period elapsed", rec.cloudsAdded-added)
	}
	runFrames(g, epoch.Add(11100*time.Millisecond), false)
	if rec.cloudsAdded != added+1 {
		t.Errorf("clouds added = %d, expected %d", rec.cloudsAdded, added+1)
	}
}

func TestCloudsRetireAfterTraversal(t *testing.T) {
	g, rec := newTestGame(t, config.DefaultFlappyConfig())

	runFrames(g, epoch.Add(13*time.Second), false)
	if rec.cloudsRemoved == 0 {
		t.Error("the first cloud should finish within 12s")
	}
	if len(g.Session().Clouds) != len(rec.clouds) {
		t.Errorf("tracked clouds %d, rendered %d", len(g.Session().Clouds), len(rec.clouds))
	}
}

func TestPipesRetireAndRendererFollows(t *testing.T) {
	g, rec := newTestGame(t, config.DefaultFlappyConfig())
	g.Start()
	g.Frame(epoch.Add(50 * time.Millisecond))

	// Open pipes so the bird survives regardless of its height
	for _, x := range []float64{-40, 200} {
		g.pipes.nextID++
		p := PipePair{ID: g.pipes.nextID, X: x, Width: 52, Floor: g.playable(), Scored: x < 50}
		g.pipes.pipes = append(g.pipes.pipes, p)
		rec.AddPipe(p)
	}

	for i := 0; i < 8; i++ {
		g.Jump()
		g.Step(1)
	}

	if len(g.Session().Pipes) != 1 {
		t.Fatalf("pipes = %+v, expected the left one retired", g.Session().Pipes)
	}
	if rec.pipesRemoved != 1 || len(rec.pipes) != 1 {
		t.Errorf("renderer removed %d, holds %d", rec.pipesRemoved, len(rec.pipes))
	}
	if x := rec.pipes[g.Session().Pipes[0].ID]; x != 176 {
		t.Errorf("rendered x = %v, expected 176", x)
	}
}

func TestGameDeterminism(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	run := func() Session {
		g := New(cfg, FixedViewport{W: 400, H: 600}, epoch, WithSeed(12345))
		g.Start()
		runFrames(g, epoch.Add(6*time.Second), true)
		return g.Session()
	}

	a, b := run(), run()
	if a.Score != b.Score || a.State != b.State || a.Bird != b.Bird {
		t.Errorf("runs diverged: %+v vs %+v", a, b)
	}
	if len(a.Pipes) != len(b.Pipes) {
		t.Fatalf("pipe counts differ: %d vs %d", len(a.Pipes), len(b.Pipes))
	}
	for i := range a.Pipes {
		if a.Pipes[i] != b.Pipes[i] {
			t.Errorf("pipe %d differs: %+v vs %+v", i, a.Pipes[i], b.Pipes[i])
		}
	}
}

func TestSlowFrameIsClamped(t *testing.T) {
	g, _ := newTestGame(t, config.DefaultFlappyConfig())
	g.Start()
	g.Frame(epoch.Add(50 * time.Millisecond))
	y := g.bird.Y

	// A 2s stall counts as three nominal frames. The opening flap fires
	// during the stall, so the tick starts from the jump impulse.
	g.Frame(epoch.Add(2050 * time.Millisecond))

	v := -7 + 0.4*3
	if math.Abs(g.bird.Velocity-v) > eps {
		t.Errorf("velocity after stall = %v, expected %v", g.bird.Velocity, v)
	}
	if math.Abs(g.bird.Y-(y+v*3)) > eps {
		t.Errorf("Y after stall = %v, expected %v", g.bird.Y, y+v*3)
	}
	if g.State() != StatePlaying {
		t.Errorf("State() = %v, expected the run to continue", g.State())
	}
}

func TestStallSpawnsAtMostOnePipe(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	cfg.Physics.Gravity = 0
	cfg.Physics.JumpImpulse = 0
	cfg.Physics.PipeSpeed = 0
	g, rec := newTestGame(t, cfg)

	g.Start()
	runFrames(g, epoch.Add(1700*time.Millisecond), false)
	if rec.pipesAdded != 1 {
		t.Fatalf("setup: pipes added = %d, expected 1", rec.pipesAdded)
	}

	// A 10s stall covers five pipe periods
	g.Frame(epoch.Add(11700 * time.Millisecond))
	if rec.pipesAdded != 2 {
		t.Errorf("pipes added after stall = %d, expected 2", rec.pipesAdded)
	}

	// The timer resumes on its 1800ms grid: 1550 + 6*1800 = 12350
	g.Frame(epoch.Add(12349 * time.Millisecond))
	if rec.pipesAdded != 2 {
		t.Errorf("pipe spawned before the next slot: %d", rec.pipesAdded)
	}
	g.Frame(epoch.Add(12350 * time.Millisecond))
	if rec.pipesAdded != 3 {
		t.Errorf("pipes added at next slot = %d, expected 3", rec.pipesAdded)
	}
}

func TestResizeKeepsSpawnedPipeGeometry(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	cfg.Physics.PipeSpeed = 0
	vp := &resizable{w: 400, h: 600}
	g := New(cfg, vp, epoch, WithSeed(5))

	g.Start()
	runFrames(g, epoch.Add(1600*time.Millisecond), true)
	if len(g.Session().Pipes) != 1 {
		t.Fatalf("setup: %d pipes", len(g.Session().Pipes))
	}

	vp.h = 800
	runFrames(g, epoch.Add(1700*time.Millisecond), true)

	p := g.Session().Pipes[0]
	if p.Floor != 488 {
		t.Errorf("Floor = %v, expected the spawn-time playable height 488", p.Floor)
	}
	if math.Abs(p.Top+cfg.Pipes.Gap+p.Bottom-p.Floor) > eps {
		t.Errorf("top %v + gap + bottom %v != floor %v", p.Top, p.Bottom, p.Floor)
	}
	if got := p.BottomBox().Top() - p.TopBox().Bottom(); math.Abs(got-cfg.Pipes.Gap) > eps {
		t.Errorf("gap after resize = %v, expected %v", got, cfg.Pipes.Gap)
	}
}
