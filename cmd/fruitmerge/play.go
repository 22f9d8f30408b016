package main

import (
	"fmt"
	"io"
	"os"
	"os/user"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-fruitmerge/internal/config"
	"github.com/vovakirdan/tui-fruitmerge/internal/core"
	"github.com/vovakirdan/tui-fruitmerge/internal/games/fruitmerge"
	"github.com/vovakirdan/tui-fruitmerge/internal/platform/tui"
	"github.com/vovakirdan/tui-fruitmerge/internal/registry"
	"github.com/vovakirdan/tui-fruitmerge/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing the specified variant (default: fruitmerge).

Controls:
  Left/Right, A/D  - Move the drop position
  Mouse            - Aim with the pointer, click to drop
  Space/Down       - Drop the next fruit
  Enter            - Start from the title card
  P                - Pause
  R                - Restart
  Esc/B            - Back (paused or after game over)
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Shorter drop cooldown, danger line higher up the jar
  normal - Values from the config file
  hard   - Longer drop cooldown

Examples:
  fruitmerge play
  fruitmerge play fruitmerge_mini
  fruitmerge play --difficulty hard
  fruitmerge play --config ./my-fruits.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

// terminalConfig builds a runtime config sized to the current terminal.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	cfg.Seed = flagSeed
	return cfg
}

// applyGameFlags validates --config and --difficulty and hands them to the
// game package before any instance is created.
func applyGameFlags(variant string) (config.DifficultyPreset, error) {
	preset := config.DifficultyNormal
	if flagDifficulty != "" {
		preset = config.ParsePreset(flagDifficulty)
		if preset == "" {
			return "", fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", flagDifficulty)
		}
	}

	if flagConfig != "" {
		if _, err := config.Load(variant, flagConfig); err != nil {
			return "", err
		}
	}

	fruitmerge.SetConfigPath(flagConfig)
	fruitmerge.SetDifficultyPreset(preset)
	return preset, nil
}

// playerName is recorded with local scores.
func playerName() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return os.Getenv("USER")
}

func runPlay(cmd *cobra.Command, args []string) {
	variant := config.VariantClassic
	if len(args) > 0 {
		variant = args[0]
	}

	if !registry.Exists(variant) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", variant)
		fmt.Fprintln(os.Stderr, "Run 'fruitmerge list' to see available variants.")
		os.Exit(1)
	}

	preset, err := applyGameFlags(variant)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog := mustLogger(io.Discard)
	defer closeLog()

	game, err := registry.Create(variant)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	_, runErr := tui.Run(game, store, terminalConfig(),
		tui.WithLogger(logger),
		tui.WithPlayer(playerName(), ""),
		tui.WithDifficulty(preset),
	)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		closeLog()
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
