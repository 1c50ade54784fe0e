package core

// Action represents a semantic game action, abstracted from physical key
// presses. Games work with high-level intents rather than raw input.
type Action int

const (
	ActionNone         Action = iota
	ActionFire                // Space, Enter - fire a bolt from the shooter
	ActionCycle               // Tab, C - cycle the charge to the next palette color
	ActionConfirm             // Enter - confirm selection in menu
	ActionBack                // B, Escape - go back to menu
	ActionRestart             // R key - restart round after game over
	ActionQuit                // Q, Ctrl+C - exit game/session
	ActionPause               // P - suspend/resume the round
	ActionSessionStart        // synthesized by the platform when the session gains focus
	ActionSessionEnd          // synthesized by the platform when the session loses focus
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionFire:
		return "Fire"
	case ActionCycle:
		return "Cycle"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	case ActionSessionStart:
		return "SessionStart"
	case ActionSessionEnd:
		return "SessionEnd"
	default:
		return "Unknown"
	}
}

// Axis identifies a continuous input channel in [-1, 1].
// The platform synthesizes axis values from held aim keys; an analog
// source would feed them directly.
type Axis int

const (
	AxisYaw   Axis = iota // horizontal aim: -1 full left, +1 full right
	AxisPitch             // vertical aim: -1 full down, +1 full up
)

// InputFrame represents the input state for a single simulation tick:
// the edge-triggered actions that fired this frame plus the current value
// of each continuous axis.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	// Using a map allows checking multiple actions without order dependency.
	Actions map[Action]bool

	// Axes holds continuous channel values, clamped to [-1, 1].
	// A missing entry reads as 0 (centered).
	Axes map[Axis]float64
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
		Axes:    make(map[Axis]float64),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// SetAxis records a continuous channel value, clamped to [-1, 1].
func (f *InputFrame) SetAxis(a Axis, v float64) {
	if f.Axes == nil {
		f.Axes = make(map[Axis]float64)
	}
	f.Axes[a] = ClampF(v, -1, 1)
}

// Axis returns the current value of a continuous channel, 0 if unset.
func (f InputFrame) Axis(a Axis) float64 {
	if f.Axes == nil {
		return 0
	}
	return f.Axes[a]
}

// Clear resets all actions and axes for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	for k := range f.Axes {
		delete(f.Axes, k)
	}
}
