// fruitmerge is a terminal fruit-merging puzzle: drop fruits into a jar,
// merge equal ones into bigger ones, and keep the pile below the line.
//
// Usage:
//
//	fruitmerge list              - List available variants
//	fruitmerge play [variant]    - Play a variant (default: fruitmerge)
//	fruitmerge menu              - Start menu to pick a variant interactively
//	fruitmerge serve             - Start SSH server for remote play
//	fruitmerge scores <variant>  - Show high scores for a variant
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.fruitmerge/scores.db)
//	--log-file <path>     - Write logs to a file
//	--log-level <level>   - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/tui-fruitmerge/internal/games/fruitmerge"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "fruitmerge",
	Short: "Fruit Merge - a physics merge puzzle in your terminal",
	Long: `Fruit Merge drops fruits into a jar. Two fruits of the same kind that
touch merge into the next bigger fruit and score points. The run ends when
the pile settles above the danger line.

Available commands:
  list     - Show all available variants
  play     - Play a variant directly
  menu     - Interactive variant picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores

Examples:
  fruitmerge play
  fruitmerge play fruitmerge_mini --difficulty easy
  fruitmerge menu
  fruitmerge serve --ssh :2222
  fruitmerge scores fruitmerge`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.fruitmerge/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// newLogger builds the logger for interactive commands. Without --log-file
// it discards output, since anything on stderr would tear the alt screen.
// The returned close function must be called before exit.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	w := fallback
	closeFn := func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "fruitmerge",
		Level:           level,
	})
	return logger, closeFn, nil
}

// mustLogger is newLogger for commands that exit on bad flags.
func mustLogger(fallback io.Writer) (*log.Logger, func()) {
	logger, closeFn, err := newLogger(fallback)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return logger, closeFn
}
