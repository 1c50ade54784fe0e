package gallery

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/vovakirdan/chromashot/internal/config"
	"github.com/vovakirdan/chromashot/internal/core"
	"github.com/vovakirdan/chromashot/internal/registry"
)

// Visual characters for rendering
const (
	CrosshairGlyph = '+'
	BoltGlyph      = '•'
	TriggerGlyph   = '◎'
)

// Mode represents the game mode.
type Mode int

const (
	ModeGallery Mode = iota // 60 second round against the full orb ring
	ModeBlitz               // half the time, smaller field, faster respawns
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// reducedMotion disables the shrink tween when set
var reducedMotion bool

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	p, ok := config.ParsePreset(preset)
	if !ok {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// SetReducedMotion disables the hit shrink animation: consumed orbs
// disappear on the next tick instead of easing out.
func SetReducedMotion(enabled bool) {
	reducedMotion = enabled
}

// Game implements the color-matching shooting gallery. The player stands
// at the origin, aims with yaw and pitch, and fires colored bolts at a
// ring of orbs; only a bolt matching an orb's color consumes it.
type Game struct {
	// Game mode
	mode Mode

	// Round machinery
	session *Session
	field   *Field
	bolts   *Projectiles
	sched   *scheduler
	rng     *rand.Rand

	// Aim state: yaw around the vertical axis, pitch clamped to the
	// configured limit, and the charge color the next bolt fires with.
	yaw    float64
	pitch  float64
	charge Color

	// Per-round statistics, reset by prepareRound
	shots int
	hits  int

	// Events collected during the current Step
	events []core.Event

	// Configuration
	runtime core.RuntimeConfig
	cfg     config.GalleryConfig
	dt      float64 // seconds per simulation tick

	minScreenW     int
	minScreenH     int
	screenTooSmall bool
}

// New creates a new gallery game instance (standard mode).
func New() *Game {
	return &Game{mode: ModeGallery}
}

// NewBlitz creates a new gallery game instance in blitz mode.
func NewBlitz() *Game {
	return &Game{mode: ModeBlitz}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.mode == ModeBlitz {
		return "blitz"
	}
	return "gallery"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.mode == ModeBlitz {
		return "Gallery (Blitz)"
	}
	return "Gallery"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	// Load game config
	cfg, err := g.loadConfig()
	if err != nil {
		cfg = g.defaultConfig()
	}

	// Apply difficulty preset if set
	if difficultyPreset != "" {
		config.ApplyGalleryPreset(&cfg, difficultyPreset)
	}
	if reducedMotion {
		cfg.Targets.ShrinkSeconds = 0
	}

	g.cfg = cfg

	// Check screen size
	g.minScreenW = 40
	g.minScreenH = 12
	g.screenTooSmall = runtime.ScreenW < g.minScreenW || runtime.ScreenH < g.minScreenH

	g.dt = 1.0 / 60
	if runtime.TickRate > 0 {
		g.dt = 1.0 / float64(runtime.TickRate)
	}

	trigColor, _ := ParseColor(cfg.Restart.Color)
	g.session = NewSession(cfg.Round.DurationSeconds, cfg.Round.ScoreDisplayCap, RestartTrigger{
		Pos:    core.V3(cfg.Restart.X, cfg.Restart.Y, cfg.Restart.Z),
		Color:  trigColor,
		Radius: cfg.Restart.Radius,
	})

	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.field = NewField(cfg.Targets)
	g.field.Populate(g.rng)
	g.bolts = NewProjectiles(cfg.Bolts.Speed, cfg.Bolts.TTLSeconds)
	g.sched = newScheduler()

	g.yaw = 0
	g.pitch = 0
	g.charge = ColorBlue
	g.shots = 0
	g.hits = 0
	g.events = nil
}

// loadConfig loads the mode's config file.
func (g *Game) loadConfig() (config.GalleryConfig, error) {
	if g.mode == ModeBlitz {
		return config.LoadBlitz(configPath)
	}
	return config.LoadGallery(configPath)
}

// defaultConfig returns the mode's embedded fallback.
func (g *Game) defaultConfig() config.GalleryConfig {
	if g.mode == ModeBlitz {
		return config.DefaultBlitzConfig()
	}
	return config.DefaultGalleryConfig()
}

// Step advances the game by one tick.
//
// Per-frame order: session signals, countdown, aim/cycle/fire input, bolt
// advance, delayed effects and shrink tweens, collisions, expiry. A bolt
// that both reaches a target and runs out of lifetime inside one tick
// scores, because the collision pass runs before expiry.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.screenTooSmall {
		return g.result()
	}

	g.events = g.events[:0]

	// Session lifecycle and round control
	if in.Has(core.ActionSessionStart) {
		g.session.HandleSessionStarted()
	}
	if in.Has(core.ActionSessionEnd) {
		g.session.HandleSessionEnded()
	}
	if in.Has(core.ActionPause) {
		g.togglePause()
	}
	if in.Has(core.ActionRestart) && g.session.Phase() == PhaseGameOver {
		g.restartRound()
		g.emit(core.EventRestarted)
	}

	// Countdown
	if g.session.Tick(g.dt) {
		g.onRoundOver()
	}

	// Aim, charge cycling, firing
	g.updateAim(in)
	if in.Has(core.ActionCycle) {
		g.charge = g.charge.Next()
	}
	if in.Has(core.ActionFire) {
		g.fire()
	}

	// Bolt flight
	g.bolts.Advance(g.dt)

	// Delayed effects: orb hide at shrink end, respawn after the delay
	for _, ev := range g.sched.Advance(g.dt) {
		g.applyEvent(ev)
	}
	g.updateShrinks()

	// Scoring
	g.resolveCollisions()

	// Lifetime expiry, after collisions so a scoring bolt always scores
	g.bolts.Expire()

	return g.result()
}

// updateAim integrates the aim axes into yaw and pitch. A positive yaw
// axis turns right, a positive pitch axis aims up; pitch is clamped to
// the configured limit while yaw wraps freely.
func (g *Game) updateAim(in core.InputFrame) {
	rate := g.cfg.Shooter.TurnRate
	g.yaw -= in.Axis(core.AxisYaw) * rate * g.dt
	g.pitch += in.Axis(core.AxisPitch) * rate * g.dt

	if g.yaw > math.Pi {
		g.yaw -= 2 * math.Pi
	} else if g.yaw < -math.Pi {
		g.yaw += 2 * math.Pi
	}
	g.pitch = core.ClampF(g.pitch, -g.cfg.Shooter.PitchLimit, g.cfg.Shooter.PitchLimit)
}

// fire spawns a bolt of the current charge color from the shooter along
// the aim direction. Firing is allowed in every phase; only the
// collision pass decides whether a bolt can score or restart.
func (g *Game) fire() {
	g.bolts.Spawn(g.eye(), g.orientation(), g.charge)
	g.shots++
	g.emit(core.EventFired)
}

// togglePause maps the pause key onto the session signal pair: pausing a
// running round is the same transition as losing the session, resuming
// is the same as regaining it.
func (g *Game) togglePause() {
	switch {
	case g.session.Phase() == PhasePlaying:
		g.session.HandleSessionEnded()
	case g.session.Suspended():
		g.session.HandleSessionStarted()
	}
}

// onRoundOver applies the field side of the countdown expiring: every
// orb hides and all pending shrink and respawn effects are cancelled.
// The session has already installed the restart trigger.
func (g *Game) onRoundOver() {
	g.field.HideAll()
	g.sched.Reset()
	g.emit(core.EventRoundOver)
}

// prepareRound resets the round: session back to Ready with a full
// countdown and zero score, every orb revealed at full scale, pending
// effects cancelled, statistics cleared. Live bolts are left flying;
// they expire on their own. Idempotent.
func (g *Game) prepareRound() {
	g.session.Prepare()
	g.sched.Reset()
	g.field.RevealAll()
	g.shots = 0
	g.hits = 0
}

// restartRound runs the full restart protocol: a fresh prepare followed
// immediately by start, so the new round is already Playing when the
// rest of the frame runs.
func (g *Game) restartRound() {
	g.prepareRound()
	g.session.Start()
}

// applyEvent performs a due delayed effect. The queue is cleared on every
// round teardown, so an effect always belongs to the round it was
// scheduled in: a hidden orb hides and starts its respawn delay, a due
// respawn relocates and reveals its orb.
func (g *Game) applyEvent(ev timedEvent) {
	switch ev.kind {
	case eventShrinkDone:
		g.field.Hide(ev.target)
		g.sched.After(g.cfg.Targets.RespawnDelaySeconds, eventRespawn, ev.target)
	case eventRespawn:
		g.field.RespawnOne(ev.target, g.rng)
	}
}

// updateShrinks advances the scale tween of every shrinking orb. The
// tween eases out, fast at first and settling toward zero until the
// shrink-done event hides the orb.
func (g *Game) updateShrinks() {
	dur := g.cfg.Targets.ShrinkSeconds
	if dur <= 0 {
		return
	}
	now := g.sched.Now()
	for _, t := range g.field.All() {
		if !t.Shrinking {
			continue
		}
		p := core.ClampF((now-t.ShrinkStart)/dur, 0, 1)
		g.field.SetScale(t.ID, (1-p)*(1-p))
	}
}

// eye returns the shooter position.
func (g *Game) eye() core.Vec3 {
	return core.V3(0, g.cfg.Shooter.EyeHeight, 0)
}

// orientation returns the current aim orientation.
func (g *Game) orientation() core.Quat {
	return core.QuatYawPitch(g.yaw, g.pitch)
}

// camera returns the projection camera, locked to the aim so the
// crosshair stays at screen center.
func (g *Game) camera() core.Camera {
	return core.NewCamera(g.eye(), g.orientation())
}

// emit records an event for this Step's result.
func (g *Game) emit(e core.Event) {
	g.events = append(g.events, e)
}

// result packages the current state and the events collected this Step.
func (g *Game) result() core.StepResult {
	res := core.StepResult{State: g.State()}
	if len(g.events) > 0 {
		res.Events = append([]core.Event(nil), g.events...)
	}
	return res
}

// drawable is one projected entity awaiting painter-order drawing.
type drawable struct {
	x, y  int
	depth float64
	glyph rune
	color core.Color
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	// Check for screen too small
	if g.screenTooSmall {
		msg := "Window too small"
		hint := fmt.Sprintf("Need %dx%d", g.minScreenW, g.minScreenH)
		dst.DrawTextCentered(dst.Height()/2-1, msg)
		dst.DrawTextCentered(dst.Height()/2+1, hint)
		return
	}

	g.renderWorld(dst)
	g.renderCrosshair(dst)
	g.renderHUD(dst)
	g.renderOverlay(dst)
}

// renderWorld projects orbs, the restart trigger and bolts, then draws
// them far to near so closer entities overdraw distant ones.
func (g *Game) renderWorld(dst *core.Screen) {
	cam := g.camera()
	w, h := dst.Width(), dst.Height()

	var draws []drawable
	for _, t := range g.field.All() {
		if !t.Visible || t.Scale <= 0 {
			continue
		}
		if x, y, depth, ok := cam.Project(t.Pos, w, h); ok {
			draws = append(draws, drawable{x, y, depth, orbGlyph(depth, t.Scale), t.Color.Cell()})
		}
	}
	if trig := g.session.Trigger(); trig != nil {
		if x, y, depth, ok := cam.Project(trig.Pos, w, h); ok {
			draws = append(draws, drawable{x, y, depth, TriggerGlyph, trig.Color.Cell()})
		}
	}
	for _, b := range g.bolts.Live() {
		if x, y, depth, ok := cam.Project(b.Pos, w, h); ok {
			draws = append(draws, drawable{x, y, depth, BoltGlyph, b.Color.Cell()})
		}
	}

	sort.Slice(draws, func(i, j int) bool {
		return draws[i].depth > draws[j].depth
	})
	for _, d := range draws {
		dst.SetCell(d.x, d.y, d.glyph, d.color)
	}
}

// orbGlyph picks a glyph for an orb from its projected depth and its
// shrink presence.
func orbGlyph(depth, scale float64) rune {
	if scale < 0.35 {
		return '·'
	}
	if scale < 0.7 {
		return '○'
	}
	switch {
	case depth < 5:
		return '●'
	case depth < 9:
		return '○'
	default:
		return '·'
	}
}

// renderCrosshair draws the aim marker at screen center in the current
// charge color.
func (g *Game) renderCrosshair(dst *core.Screen) {
	dst.SetCell(dst.Width()/2, dst.Height()/2, CrosshairGlyph, g.charge.Cell())
}

// renderHUD draws the score, charge color and countdown.
func (g *Game) renderHUD(dst *core.Screen) {
	// Score on left
	dst.DrawText(1, 0, fmt.Sprintf("Score: %d", g.session.DisplayScore()))

	// Charge in center
	label := "Charge: "
	charge := fmt.Sprintf("■ %s", g.charge)
	x := (dst.Width() - len(label) - len([]rune(charge))) / 2
	dst.DrawText(x, 0, label)
	dst.DrawTextColored(x+len(label), 0, charge, g.charge.Cell())

	// Countdown on right, colored by urgency
	timer := fmt.Sprintf("Time: %4.1f", g.session.Countdown())
	dst.DrawTextColored(dst.Width()-len(timer)-1, 0, timer, bandColor(g.session.Band()))

	// Countdown bar on row 1
	barW := dst.Width() - 2
	filled := int(g.session.Fraction() * float64(barW))
	if filled > 0 {
		dst.DrawHLine(1, 1, filled, '━', bandColor(g.session.Band()))
	}
	if filled < barW {
		dst.DrawHLine(1+filled, 1, barW-filled, '─', core.ColorGray)
	}
}

// bandColor maps countdown urgency to a HUD color.
func bandColor(b TimerBand) core.Color {
	switch b {
	case BandCalm:
		return core.ColorBrightGreen
	case BandWarn:
		return core.ColorBrightYellow
	default:
		return core.ColorBrightRed
	}
}

// renderOverlay draws game state messages.
func (g *Game) renderOverlay(dst *core.Screen) {
	switch g.session.Phase() {
	case PhaseReady:
		if g.session.Suspended() {
			g.drawMessageBox(dst, (dst.Height()-5)/2, "PAUSED", "Press P to resume")
		} else {
			dst.DrawTextCentered(dst.Height()-1, "Get ready...")
		}

	case PhaseGameOver:
		stats := fmt.Sprintf("Score: %d   Shots: %d   Acc: %.0f%%", g.session.Score(), g.shots, g.accuracy()*100)
		hint := "Press R to restart"
		if trig := g.session.Trigger(); trig != nil {
			hint = fmt.Sprintf("Shoot the %s orb or press R", trig.Color)
		}
		// Bottom-anchored so the restart orb stays in view.
		g.drawMessageBox(dst, dst.Height()-8, "GAME OVER", stats, hint)
	}
}

// accuracy returns hits over shots for the current round.
func (g *Game) accuracy() float64 {
	if g.shots == 0 {
		return 0
	}
	return float64(g.hits) / float64(g.shots)
}

// drawMessageBox draws a message box centered horizontally with its top
// edge at the given row. Each line gets its own row with a blank row
// above it.
func (g *Game) drawMessageBox(dst *core.Screen, boxY int, title string, lines ...string) {
	w := dst.Width()

	boxW := len(title)
	for _, line := range lines {
		boxW = core.Max(boxW, len(line))
	}
	boxW += 4
	boxH := 3 + 2*len(lines)
	boxX := (w - boxW) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorDefault)

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	for i, line := range lines {
		dst.DrawText(boxX+(boxW-len(line))/2, boxY+3+2*i, line)
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.session.Score(),
		GameOver: g.session.Phase() == PhaseGameOver,
		Paused:   g.session.Suspended(),
	}
}

// Shots returns the number of bolts fired since the round was prepared.
func (g *Game) Shots() int {
	return g.shots
}

// Hits returns the number of orbs consumed since the round was prepared.
func (g *Game) Hits() int {
	return g.hits
}

// RoundSeconds returns the configured round duration.
func (g *Game) RoundSeconds() float64 {
	return g.session.Duration()
}

// Charge returns the color the next bolt fires with.
func (g *Game) Charge() Color {
	return g.charge
}

// Register the games with the registry
func init() {
	registry.Register("gallery", func() registry.Game {
		return New()
	})
	registry.Register("blitz", func() registry.Game {
		return NewBlitz()
	})
}
