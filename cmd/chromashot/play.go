package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/chromashot/internal/audio"
	"github.com/vovakirdan/chromashot/internal/core"
	"github.com/vovakirdan/chromashot/internal/games/gallery"
	"github.com/vovakirdan/chromashot/internal/platform/tui"
	"github.com/vovakirdan/chromashot/internal/registry"
	"github.com/vovakirdan/chromashot/internal/session"
	"github.com/vovakirdan/chromashot/internal/settings"
	"github.com/vovakirdan/chromashot/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagHandle     string
	flagMute       bool
)

var playCmd = &cobra.Command{
	Use:   "play <mode>",
	Short: "Play a round",
	Long: `Start playing the specified mode.

Controls:
  Arrows/WASD  - Aim
  Space/F      - Fire
  Tab/C        - Cycle charge color
  Mouse        - Aim (hold pointer off-center), left fires, right cycles
  P/Esc        - Pause
  R            - Restart (after round over)
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Longer rounds, bigger hit windows, quicker respawns
  normal - The canonical tuning
  hard   - Short rounds, tight hit windows, slow respawns
  fixed  - Exactly the numbers from the config file

Examples:
  chromashot play gallery
  chromashot play blitz --difficulty hard
  chromashot play gallery --difficulty fixed
  chromashot play gallery --config ./my-gallery.yaml
  chromashot play gallery --handle ada --mute`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom gameplay config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagHandle, "handle", "", "Player handle for the scoreboard (persisted)")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound effects")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]

	// Check if mode exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'chromashot list' to see available modes.")
		os.Exit(1)
	}

	// Get terminal size early for the difficulty selector
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Create runtime config
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	gallery.SetConfigPath(flagConfig)
	gallery.SetDifficultyPreset(flagDifficulty)

	// No explicit difficulty: let the player pick
	if flagDifficulty == "" {
		preset, updatedCfg, selErr := tui.RunDifficultySelector(cfg)
		if selErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", selErr)
			os.Exit(1)
		}
		cfg = updatedCfg

		// User pressed back or quit
		if preset == nil {
			return
		}
		gallery.SetDifficultyPreset(string(*preset))
	}

	// Create game instance
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating mode: %v\n", err)
		os.Exit(1)
	}

	env := newPlayEnv()
	defer env.Close()
	gallery.SetReducedMotion(env.settings.Get().ReducedMotion)

	// Run the round
	if runErr := tui.Run(game, cfg, env.runOptions()); runErr != nil {
		env.Close()
		fmt.Fprintf(os.Stderr, "Error running round: %v\n", runErr)
		os.Exit(1)
	}
}

// playEnv bundles the platform collaborators for local play: storage,
// the session registry, persisted settings, sound, and a file logger.
// Every part degrades on its own, so a broken database or a missing
// audio device never blocks a round.
type playEnv struct {
	store    *storage.Store
	sessions *session.Registry
	player   *session.Player
	settings *settings.Manager
	sounds   *audio.Player
	logger   *log.Logger
	logFile  *os.File
}

// newPlayEnv assembles the local play environment from the global flags
// and persisted settings.
func newPlayEnv() *playEnv {
	logger, logFile := openLogger()

	// Persisted settings (handle, mute, volume)
	store, storeErr := settings.OpenStore()
	if storeErr != nil {
		logger.Warn("settings storage unavailable", "err", storeErr)
	}
	manager, loadErr := settings.NewManager(store)
	if loadErr != nil {
		logger.Warn("could not load settings", "err", loadErr)
	}

	// A handle given on the command line is kept for next time
	if flagHandle != "" {
		manager.SetHandle(flagHandle)
		if saveErr := manager.Save(); saveErr != nil {
			logger.Warn("could not save settings", "err", saveErr)
		}
	}

	prefs := manager.Get()
	handle := prefs.Handle
	if handle == "" {
		handle = os.Getenv("USER")
	}

	// Sound
	sounds := audio.NewPlayer()
	sounds.SetVolume(prefs.Volume)
	sounds.SetMuted(prefs.Mute || flagMute)
	if !prefs.Mute && !flagMute {
		if audioErr := sounds.Initialize(); audioErr != nil {
			logger.Warn("audio unavailable", "err", audioErr)
		}
	}

	// Round storage
	rounds, dbErr := storage.Open(flagDBPath)
	if dbErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open rounds database: %v\n", dbErr)
		// Continue without storage; rounds just won't persist
		rounds = nil
	}

	// Session registry with the storage as its saver
	sessions := session.NewRegistry()
	if rounds != nil {
		sessions.SetResultSaver(rounds)
	}
	player := session.NewPlayer(session.NewID(), handle, "local")
	sessions.Register(player)

	return &playEnv{
		store:    rounds,
		sessions: sessions,
		player:   player,
		settings: manager,
		sounds:   sounds,
		logger:   logger,
		logFile:  logFile,
	}
}

// runOptions returns the tui options for this environment.
func (e *playEnv) runOptions() tui.RunOptions {
	return tui.RunOptions{
		Sessions:  e.sessions,
		SessionID: e.player.ID(),
		Handle:    e.player.Handle(),
		Sounds:    e.sounds,
		Logger:    e.logger,
	}
}

// Close releases everything the environment holds. Safe to call twice.
func (e *playEnv) Close() {
	if e.sessions != nil && e.player != nil {
		e.sessions.Unregister(e.player.ID())
		e.player = nil
	}
	if e.sounds != nil {
		e.sounds.Cleanup()
		e.sounds = nil
	}
	if e.store != nil {
		e.store.Close()
		e.store = nil
	}
	if e.logFile != nil {
		e.logFile.Close()
		e.logFile = nil
	}
}

// openLogger opens the session log file under ~/.chromashot. The TUI
// owns the terminal, so log lines must not go to stderr while a round
// is on screen.
func openLogger() (*log.Logger, *os.File) {
	home, err := os.UserHomeDir()
	if err != nil {
		return log.New(io.Discard), nil
	}
	dir := filepath.Join(home, ".chromashot")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return log.New(io.Discard), nil
	}

	f, err := os.OpenFile(filepath.Join(dir, "chromashot.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return log.New(io.Discard), nil
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "chromashot",
	})
	return logger, f
}
