package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chromashot/internal/registry"
	"github.com/vovakirdan/chromashot/internal/storage"
)

var statsCmd = &cobra.Command{
	Use:   "stats [mode]",
	Short: "Show aggregate round statistics",
	Long: `Display aggregate statistics across all recorded rounds.

Without arguments, shows a summary for every mode. With a mode ID,
shows the detailed breakdown for that mode.

Examples:
  chromashot stats
  chromashot stats gallery`,
	Args: cobra.MaximumNArgs(1),
	Run:  runStats,
}

func runStats(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening rounds database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if len(args) == 1 {
		runModeStats(store, args[0])
		return
	}

	all, err := store.GetAllModeStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving statistics: %v\n", err)
		os.Exit(1)
	}

	if len(all) == 0 {
		fmt.Println("No rounds recorded yet.")
		return
	}

	// Stable output order
	modes := make([]string, 0, len(all))
	for mode := range all {
		modes = append(modes, mode)
	}
	sort.Strings(modes)

	fmt.Println("Round statistics:")
	fmt.Println()
	fmt.Printf("  %-10s  %-7s  %-6s  %-8s  %-5s  %s\n", "Mode", "Rounds", "High", "Avg", "Acc", "Last played")
	fmt.Printf("  %-10s  %-7s  %-6s  %-8s  %-5s  %s\n", "----", "------", "----", "---", "---", "-----------")

	for _, mode := range modes {
		s := all[mode]
		fmt.Printf("  %-10s  %-7d  %-6d  %-8.1f  %4.0f%%  %s\n",
			s.Mode, s.RoundsCount, s.HighScore, s.AvgScore, s.Accuracy()*100,
			s.LastPlayed.Format("2006-01-02 15:04"))
	}
}

func runModeStats(store *storage.Store, gameID string) {
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'chromashot list' to see available modes.")
		os.Exit(1)
	}

	stats, err := store.GetModeStats(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving statistics: %v\n", err)
		os.Exit(1)
	}

	if stats.RoundsCount == 0 {
		fmt.Printf("No rounds recorded for %q yet.\n", gameID)
		return
	}

	fmt.Printf("Statistics - %s\n", gameID)
	fmt.Println()
	fmt.Printf("  Rounds played:  %d\n", stats.RoundsCount)
	fmt.Printf("  High score:     %d\n", stats.HighScore)
	fmt.Printf("  Average score:  %.1f\n", stats.AvgScore)
	fmt.Printf("  Shots fired:    %d\n", stats.TotalShots)
	fmt.Printf("  Hits:           %d\n", stats.TotalHits)
	fmt.Printf("  Accuracy:       %.0f%%\n", stats.Accuracy()*100)
	fmt.Printf("  Last played:    %s\n", stats.LastPlayed.Format("2006-01-02 15:04"))
}
