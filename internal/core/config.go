package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the round has ended
	Paused   bool // Whether a started round is suspended
}

// Event is a notable occurrence during a simulation tick. The platform
// consumes events for audio cues, haptic pulses and debug logging; the
// simulation never acts on them itself.
type Event int

const (
	EventNone      Event = iota
	EventFired           // a bolt left the shooter
	EventScored          // a bolt consumed a matching target
	EventMissed          // a bolt reached the restart trigger with the wrong color
	EventRoundOver       // the countdown expired
	EventRestarted       // the restart trigger was hit and a new round began
)

// String returns a short lowercase tag for log fields.
func (e Event) String() string {
	switch e {
	case EventFired:
		return "fired"
	case EventScored:
		return "scored"
	case EventMissed:
		return "missed"
	case EventRoundOver:
		return "round_over"
	case EventRestarted:
		return "restarted"
	default:
		return "none"
	}
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}
