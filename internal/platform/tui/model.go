package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/chromashot/internal/audio"
	"github.com/vovakirdan/chromashot/internal/core"
	"github.com/vovakirdan/chromashot/internal/registry"
	"github.com/vovakirdan/chromashot/internal/session"
)

// aimHoldTicks is how many simulation ticks an aim key or pointer offset
// keeps steering after its last event. Bridges keyboard autorepeat gaps
// without turning taps into long sweeps.
const aimHoldTicks = 5

// roundStats is implemented by modes that report per-round statistics.
type roundStats interface {
	Shots() int
	Hits() int
	RoundSeconds() float64
}

// RunOptions carries the platform collaborators for a play session.
// Zero values degrade gracefully: no registry means no persistence, no
// sounds means silence, no logger means discarded logs.
type RunOptions struct {
	Sessions  *session.Registry
	SessionID session.ID
	Handle    string
	Sounds    *audio.Player
	Logger    *log.Logger
}

// Model is the Bubble Tea model for running a shooting round.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	sessions   *session.Registry
	sessionID  session.ID
	handle     string
	sounds     *audio.Player
	logger     *log.Logger
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keymap     *KeyMapper

	// Aim latches: the last key/pointer deflection keeps applying for a
	// few ticks so held keys steer smoothly despite discrete key events.
	yawHold        float64
	pitchHold      float64
	yawHoldTicks   int
	pitchHoldTicks int

	started  bool // Session-start signal already sent
	quitting bool
}

// NewModel creates a new Bubble Tea model for the given mode.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts RunOptions) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.SessionID == "" {
		opts.SessionID = session.NewID()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		sessions:   opts.Sessions,
		sessionID:  opts.SessionID,
		handle:     opts.Handle,
		sounds:     opts.Sounds,
		logger:     opts.Logger,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keymap:     NewKeyMapper(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	// Initialize the game
	m.game.Reset(m.config)
	// Note: gameState will be set on first tick (value receiver limitation)

	// Start the tick loop
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.FocusMsg:
		// Refocus resumes a paused round. It must never start a fresh
		// one, so anything but the paused state ignores the signal.
		if m.gameState.Paused {
			m.inputFrame.Set(core.ActionSessionStart)
			m.logger.Debug("session signal", "signal", "focus")
		}
		return m, nil

	case tea.BlurMsg:
		m.inputFrame.Set(core.ActionSessionEnd)
		m.logger.Debug("session signal", "signal", "blur")
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keymap.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionFire, core.ActionCycle, core.ActionPause:
		m.inputFrame.Set(action)
	case core.ActionRestart:
		if m.gameState.GameOver {
			m.inputFrame.Set(core.ActionRestart)
		}
	}

	if yaw, pitch, ok := m.keymap.MapAimKey(msg); ok {
		if yaw != 0 {
			m.yawHold = yaw
			m.yawHoldTicks = aimHoldTicks
		}
		if pitch != 0 {
			m.pitchHold = pitch
			m.pitchHoldTicks = aimHoldTicks
		}
	}

	return m, nil
}

// handleMouse lets the pointer stand in for head aim: offset from screen
// center steers, left button fires, right button cycles the charge.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.inputFrame.Set(core.ActionFire)
		case tea.MouseButtonRight:
			m.inputFrame.Set(core.ActionCycle)
		}

	case tea.MouseActionMotion:
		cx := float64(m.config.ScreenW) / 2
		cy := float64(m.config.ScreenH) / 2
		if cx > 0 && cy > 0 {
			m.yawHold = core.ClampF((float64(msg.X)-cx)/cx, -1, 1)
			m.pitchHold = core.ClampF((cy-float64(msg.Y))/cy, -1, 1)
			m.yawHoldTicks = aimHoldTicks
			m.pitchHoldTicks = aimHoldTicks
		}
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	// Update screen size
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	// Reinitialize game with new dimensions if needed
	// Note: This resets the round - could be improved to preserve state
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	// Launching the terminal program is what "starting the session"
	// means here, so the very first tick carries the start signal.
	if !m.started {
		m.inputFrame.Set(core.ActionSessionStart)
		m.started = true
		m.logger.Debug("session signal", "signal", "start")
	}

	// Apply aim latches
	if m.yawHoldTicks > 0 {
		m.inputFrame.SetAxis(core.AxisYaw, m.yawHold)
		m.yawHoldTicks--
	}
	if m.pitchHoldTicks > 0 {
		m.inputFrame.SetAxis(core.AxisPitch, m.pitchHold)
		m.pitchHoldTicks--
	}

	// Run game simulation
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	for _, ev := range result.Events {
		m.handleEvent(ev)
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

// handleEvent reacts to one simulation event with a cue, a log line, or
// a round save. The simulation itself never performs these side effects.
func (m *Model) handleEvent(ev core.Event) {
	switch ev {
	case core.EventFired:
		if m.sounds != nil {
			m.sounds.PlayFire()
		}

	case core.EventScored:
		if m.sounds != nil {
			m.sounds.PlayScore()
		}

	case core.EventMissed:
		// Wrong color at the restart trigger: feedback is log-only
		m.logger.Debug("restart trigger ignored mismatched bolt", "mode", m.game.ID())

	case core.EventRoundOver:
		if m.sounds != nil {
			m.sounds.PlayRoundOver()
		}
		m.saveRound()

	case core.EventRestarted:
		if m.sounds != nil {
			m.sounds.PlayRestart()
		}
	}
}

// saveRound records the finished round through the session registry.
func (m *Model) saveRound() {
	if m.sessions == nil {
		return
	}

	res := session.RoundResult{
		SessionID: m.sessionID,
		Handle:    m.handle,
		Mode:      m.game.ID(),
		Score:     m.gameState.Score,
	}
	if stats, ok := m.game.(roundStats); ok {
		res.Shots = stats.Shots()
		res.Hits = stats.Hits()
		res.Duration = stats.RoundSeconds()
	}

	// An idle round (no shots, no score) carries no information
	if res.Score == 0 && res.Shots == 0 {
		return
	}

	if err := m.sessions.RecordResult(res); err != nil {
		m.logger.Warn("could not save round", "mode", res.Mode, "err", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	// Render current state
	m.game.Render(m.screen)

	// Create screenshots directory
	dir := filepath.Join(os.Getenv("HOME"), ".chromashot", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	// Save screenshot
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	// Render game to screen buffer
	m.game.Render(m.screen)

	// Convert screen to string
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program for one play session.
func Run(game registry.Game, cfg core.RuntimeConfig, opts RunOptions) error {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),      // Use alternate screen buffer
		tea.WithMouseAllMotion(), // Pointer aim needs motion without a held button
		tea.WithReportFocus(),    // Focus loss pauses the round
	)

	_, err := p.Run()
	return err
}
