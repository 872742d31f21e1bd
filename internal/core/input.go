package core

// Signal is a discrete input delivered by a frontend to the game.
// Frontends translate raw keys, clicks and touches into signals so the game
// never sees device details.
type Signal int

const (
	SignalNone Signal = iota
	SignalFlap        // designated key (space, up, w)
	SignalTap         // touch or mouse click
)

// String returns a human-readable name for the signal.
func (s Signal) String() string {
	switch s {
	case SignalNone:
		return "None"
	case SignalFlap:
		return "Flap"
	case SignalTap:
		return "Tap"
	default:
		return "Unknown"
	}
}
