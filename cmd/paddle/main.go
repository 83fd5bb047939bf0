// paddle is a terminal Pong game.
//
// Usage:
//
//	paddle list              - List available games
//	paddle play [game]       - Play a game (default: pong)
//	paddle menu              - Pick a mode and difficulty interactively
//	paddle serve             - Start SSH server for remote play
//	paddle scores [game]     - Show high scores and recent matches
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.paddle/scores.db)
//	--log-level <level>  - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/tui-paddle/internal/games/pong"
)

const defaultGame = "pong"

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "paddle",
	Short: "Paddle - Pong in your terminal",
	Long: `Paddle is a terminal Pong game. Play against the CPU or a friend
on the same keyboard, locally or over SSH.

Available commands:
  list     - Show all available games
  play     - Start a match directly
  menu     - Pick a mode and difficulty
  serve    - Start SSH server for remote play
  scores   - View high scores and recent matches

Examples:
  paddle play
  paddle play --players 2
  paddle menu
  paddle serve --ssh :2222
  paddle scores`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.paddle/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// newLogger builds the command's logger at the --log-level level.
// Full-screen commands own the terminal, so they log to
// ~/.paddle/paddle.log instead; if the file cannot be opened logs are
// dropped. The returned closer releases the file.
func newLogger(fullScreen bool) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var (
		w      io.Writer = os.Stderr
		closer io.Closer = io.NopCloser(nil)
	)
	if fullScreen {
		w = io.Discard
		if f, openErr := openLogFile(); openErr == nil {
			w, closer = f, f
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "paddle",
		Level:           level,
	})
	return logger, closer, nil
}

// openLogFile opens ~/.paddle/paddle.log for appending.
func openLogFile() (*os.File, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(home, ".paddle")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "paddle.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
}
