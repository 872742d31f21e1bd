package core

// RuntimeConfig contains settings the platform passes to a game session.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters (or pixels for the window frontend)
	ScreenH  int   // Screen height in characters (or pixels for the window frontend)
	TickRate int   // Frame requests per second (default 60)
	Seed     int64 // RNG seed; 0 means the platform picks one from the clock
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}
