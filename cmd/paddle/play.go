package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-paddle/internal/config"
	"github.com/vovakirdan/tui-paddle/internal/core"
	"github.com/vovakirdan/tui-paddle/internal/games/pong"
	termrunner "github.com/vovakirdan/tui-paddle/internal/platform/term"
	"github.com/vovakirdan/tui-paddle/internal/platform/tui"
	"github.com/vovakirdan/tui-paddle/internal/registry"
	"github.com/vovakirdan/tui-paddle/internal/storage"
)

// Drawing backends for play.
const (
	backendTUI   = "tui"
	backendTcell = "tcell"
)

var (
	flagConfig     string
	flagDifficulty string
	flagBackend    string
	flagPlayers    int
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a match",
	Long: `Start a match of the specified game (default: pong).

Controls:
  W/S          - Left paddle up/down
  Up/Down, K/J - Right paddle in a two-player game, else left paddle
  Space/Enter  - Serve now
  P/Esc        - Pause
  R            - Restart (after game over)
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Backends:
  tui    - Bubble Tea renderer with help and screenshots (default)
  tcell  - Draws straight to the terminal through tcell

Examples:
  paddle play
  paddle play --players 2
  paddle play --difficulty hard
  paddle play --backend tcell
  paddle play --config ./my-pong.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagBackend, "backend", backendTUI, "Drawing backend: tui, tcell")
	playCmd.Flags().IntVar(&flagPlayers, "players", 1, "Local players: 1 (vs CPU) or 2")
}

// gameArg returns the game named on the command line, or the default.
func gameArg(args []string) (string, error) {
	gameID := defaultGame
	if len(args) > 0 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return "", fmt.Errorf("unknown game %q, run 'paddle list' to see available games", gameID)
	}
	return gameID, nil
}

// runtimeConfig builds a runtime config sized to the terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// checkGameConfig loads the Pong config the games will load on Reset.
// An empty path checks the user and working-directory configs.
func checkGameConfig(path string) error {
	if _, err := config.LoadPong(path); err != nil {
		return fmt.Errorf("pong config: %w", err)
	}
	return nil
}

// openStore opens the scores database. Games still run without one.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID, err := gameArg(args)
	if err != nil {
		return err
	}

	preset, ok := config.ParsePreset(flagDifficulty)
	if !ok {
		return fmt.Errorf("invalid --difficulty %q: want easy, normal, hard or fixed", flagDifficulty)
	}
	if flagPlayers < 1 || flagPlayers > 2 {
		return fmt.Errorf("invalid --players %d: want 1 or 2", flagPlayers)
	}
	if flagBackend != backendTUI && flagBackend != backendTcell {
		return fmt.Errorf("invalid --backend %q: want %s or %s", flagBackend, backendTUI, backendTcell)
	}

	// Fail before taking over the terminal if the config is broken
	if err := checkGameConfig(flagConfig); err != nil {
		return err
	}
	pong.SetConfigPath(flagConfig)

	logger, closer, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closer.Close()

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()
	cfg.Players = flagPlayers
	cfg.Difficulty = string(preset)

	logger.Info("match started", "game", gameID, "players", cfg.Players, "difficulty", cfg.Difficulty, "backend", flagBackend)

	if flagBackend == backendTcell {
		return playTcell(game, store, cfg, logger)
	}
	return tui.Run(tui.NewModel(game, store, cfg).WithLogger(logger))
}

// playTcell runs the game on the tcell backend until quit or interrupt.
func playTcell(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner, err := termrunner.NewRunner(game, store, cfg, termrunner.WithLogger(logger))
	if err != nil {
		return err
	}
	return runner.Run(ctx)
}
