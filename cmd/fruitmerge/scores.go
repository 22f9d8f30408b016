package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-fruitmerge/internal/registry"
	"github.com/vovakirdan/tui-fruitmerge/internal/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores <variant>",
	Short: "Show high scores for a variant",
	Long: `Display the top high scores for the specified variant, with the
largest fruit reached in each run.

Examples:
  fruitmerge scores fruitmerge
  fruitmerge scores fruitmerge_mini --limit 25`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
}

// tierLabel names a tier when the game can, else prints its index.
func tierLabel(game registry.Game, tier int) string {
	if tn, ok := game.(registry.TierNamer); ok {
		return tn.TierName(tier)
	}
	return fmt.Sprintf("tier %d", tier+1)
}

func runScores(cmd *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'fruitmerge list' to see available variants.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}

	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'fruitmerge play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-10s  %-12s  %-14s  %s\n", "Rank", "Score", "Player", "Largest", "When")
	fmt.Printf("  %-4s  %-10s  %-12s  %-14s  %s\n", "----", "-----", "------", "-------", "----")

	for i, entry := range scores {
		player := entry.Player
		if player == "" {
			player = "-"
		}
		fmt.Printf("  %-4d  %-10s  %-12s  %-14s  %s\n",
			i+1,
			humanize.Comma(int64(entry.Score)),
			player,
			tierLabel(game, entry.MaxTier),
			humanize.Time(entry.CreatedAt),
		)
	}

	stats, err := store.GetGameStats(gameID)
	if err != nil {
		return
	}
	fmt.Println()
	fmt.Printf("Best: %s  Runs: %s  Average: %s  Largest fruit: %s\n",
		humanize.Comma(int64(stats.HighScore)),
		humanize.Comma(int64(stats.GamesCount)),
		humanize.CommafWithDigits(stats.AvgScore, 1),
		tierLabel(game, stats.BestTier),
	)
}
