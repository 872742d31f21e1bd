package flappy

// PipeID identifies a pipe pair for the lifetime of a session.
type PipeID uint64

// CloudID identifies a cloud for the lifetime of a session.
type CloudID uint64

// Prompt names one of the overlay messages.
type Prompt int

const (
	PromptStart    Prompt = iota // "press space to start"
	PromptGameOver               // shown after a collision
)

// String returns a human-readable name for the prompt.
func (p Prompt) String() string {
	switch p {
	case PromptStart:
		return "start"
	case PromptGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// Renderer receives every visible change of the session. Implementations
// keep their own retained view of the entities; the game never reads back
// from a renderer.
type Renderer interface {
	MoveBird(y, rotation float64)
	AddPipe(p PipePair)
	MovePipe(id PipeID, x float64)
	RemovePipe(id PipeID)
	AddCloud(c Cloud)
	MoveCloud(id CloudID, x float64)
	RemoveCloud(id CloudID)
	SetPrompt(p Prompt, visible bool, opacity float64)
	SetScore(score int)
}

// Viewport reports the current size of the play area in world pixels,
// ground band included. The size may change between runs.
type Viewport interface {
	PlayWidth() float64
	PlayHeight() float64
}

// FixedViewport is a Viewport with constant dimensions.
type FixedViewport struct {
	W, H float64
}

// PlayWidth returns the play-area width.
func (v FixedViewport) PlayWidth() float64 { return v.W }

// PlayHeight returns the play-area height.
func (v FixedViewport) PlayHeight() float64 { return v.H }

// nopRenderer discards all updates.
type nopRenderer struct{}

func (nopRenderer) MoveBird(float64, float64)       {}
func (nopRenderer) AddPipe(PipePair)                {}
func (nopRenderer) MovePipe(PipeID, float64)        {}
func (nopRenderer) RemovePipe(PipeID)               {}
func (nopRenderer) AddCloud(Cloud)                  {}
func (nopRenderer) MoveCloud(CloudID, float64)      {}
func (nopRenderer) RemoveCloud(CloudID)             {}
func (nopRenderer) SetPrompt(Prompt, bool, float64) {}
func (nopRenderer) SetScore(int)                    {}
