// chromashot is a color-matching shooting gallery played in the terminal.
//
// Usage:
//
//	chromashot list              - List available modes
//	chromashot play <mode>       - Play a round
//	chromashot menu              - Start menu to pick modes interactively
//	chromashot serve             - Start SSH server for remote play
//	chromashot scores <mode>     - Show high scores for a mode
//	chromashot stats [mode]      - Show aggregate round statistics
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible rounds
//	--db <path>     - Set database path (default: ~/.chromashot/rounds.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import modes to register them
	_ "github.com/vovakirdan/chromashot/internal/games/gallery"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "chromashot",
	Short: "Chromashot - Color-matching target shooting in your terminal",
	Long: `Chromashot is a terminal shooting gallery. Aim across a ring of
colored orbs and fire bolts; only a bolt matching an orb's color
takes it down. Cycle your charge color, chase the clock, and shoot
the restart trigger to go again.

Available commands:
  list     - Show all available modes
  play     - Play a round of a specific mode
  menu     - Interactive mode picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores
  stats    - View aggregate round statistics

Examples:
  chromashot list
  chromashot play gallery
  chromashot menu
  chromashot serve --ssh :2222
  chromashot scores gallery`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.chromashot/rounds.db", "Path to rounds database")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(statsCmd)
}
