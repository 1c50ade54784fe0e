package gallery

import "github.com/vovakirdan/chromashot/internal/core"

// Phase is the round state. Exactly one phase holds at any instant and
// transitions are total: Ready -> Playing -> GameOver -> Playing (restart).
type Phase uint8

const (
	PhaseReady Phase = iota
	PhasePlaying
	PhaseGameOver
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "ready"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// TimerBand is the countdown urgency derived from the remaining fraction.
// Because the countdown is monotonic within a round, the band only
// escalates; it never reverts until the next Prepare.
type TimerBand uint8

const (
	BandCalm     TimerBand = iota // fraction >= 0.50
	BandWarn                      // fraction in [0.25, 0.50)
	BandCritical                  // fraction < 0.25
)

// RestartTrigger is the single special target present only during
// GameOver: a bolt of the required color within its radius restarts the
// round.
type RestartTrigger struct {
	Pos    core.Vec3
	Color  Color
	Radius float64
}

// Session owns the round state machine: phase, score, countdown and the
// restart trigger. It knows nothing about targets or bolts; the Game
// wires field and scheduler side effects to its transitions.
type Session struct {
	phase     Phase
	score     int
	countdown float64
	duration  float64

	displayCap int

	// suspended is set when a running round is paused back to Ready by a
	// session-ended signal; cleared by Start and Prepare.
	suspended bool

	// trigger template, installed on the GameOver transition.
	triggerPos    core.Vec3
	triggerColor  Color
	triggerRadius float64
	trigger       *RestartTrigger
}

// NewSession creates a session for rounds of the given duration with the
// restart trigger template to install on game over.
func NewSession(duration float64, displayCap int, trigger RestartTrigger) *Session {
	s := &Session{
		duration:      duration,
		displayCap:    displayCap,
		triggerPos:    trigger.Pos,
		triggerColor:  trigger.Color,
		triggerRadius: trigger.Radius,
	}
	s.Prepare()
	return s
}

// Prepare resets the session to a fresh round: score 0, countdown at full
// duration, phase Ready, restart trigger cleared. Idempotent.
func (s *Session) Prepare() {
	s.phase = PhaseReady
	s.score = 0
	s.countdown = s.duration
	s.suspended = false
	s.trigger = nil
}

// Start transitions Ready or GameOver into Playing. Calling it while
// already Playing only reasserts the phase.
func (s *Session) Start() {
	s.phase = PhasePlaying
	s.suspended = false
	s.trigger = nil
}

// Tick elapses dt seconds of countdown. Only valid work happens while
// Playing; in any other phase the countdown is frozen. Returns true when
// this call ended the round.
func (s *Session) Tick(dt float64) bool {
	if s.phase != PhasePlaying {
		return false
	}
	s.countdown = core.ClampF(s.countdown-dt, 0, s.duration)
	if s.countdown <= 0 {
		return s.endRound()
	}
	return false
}

// endRound transitions Playing into GameOver and installs the restart
// trigger. Guarded against re-entry: a second call while already
// GameOver is a no-op.
func (s *Session) endRound() bool {
	if s.phase == PhaseGameOver {
		return false
	}
	s.phase = PhaseGameOver
	s.trigger = &RestartTrigger{
		Pos:    s.triggerPos,
		Color:  s.triggerColor,
		Radius: s.triggerRadius,
	}
	return true
}

// HandleSessionStarted reacts to the platform's session-started signal.
func (s *Session) HandleSessionStarted() {
	s.Start()
}

// HandleSessionEnded reacts to the platform's session-ended signal.
// A running round reverts to Ready without losing score or countdown:
// a pause, not a reset. Tick is gated on Playing, so no round time
// elapses while suspended.
func (s *Session) HandleSessionEnded() {
	if s.phase != PhasePlaying {
		return
	}
	s.phase = PhaseReady
	s.suspended = true
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Suspended reports whether a running round is currently paused.
func (s *Session) Suspended() bool {
	return s.suspended
}

// Score returns the internal, unbounded score.
func (s *Session) Score() int {
	return s.score
}

// AddScore increments the score by one hit.
func (s *Session) AddScore() {
	s.score++
}

// DisplayScore returns the score clamped to the HUD cap.
func (s *Session) DisplayScore() int {
	if s.displayCap > 0 && s.score > s.displayCap {
		return s.displayCap
	}
	return s.score
}

// Countdown returns the remaining round time in seconds.
func (s *Session) Countdown() float64 {
	return s.countdown
}

// Duration returns the configured full round duration.
func (s *Session) Duration() float64 {
	return s.duration
}

// Fraction returns countdown/duration in [0, 1].
func (s *Session) Fraction() float64 {
	if s.duration <= 0 {
		return 0
	}
	return s.countdown / s.duration
}

// Band returns the urgency band for the current countdown fraction.
func (s *Session) Band() TimerBand {
	switch f := s.Fraction(); {
	case f >= 0.5:
		return BandCalm
	case f >= 0.25:
		return BandWarn
	default:
		return BandCritical
	}
}

// Trigger returns the restart trigger, or nil outside GameOver.
func (s *Session) Trigger() *RestartTrigger {
	return s.trigger
}
