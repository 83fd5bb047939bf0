package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-paddle/internal/platform/tui"
	"github.com/vovakirdan/tui-paddle/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a mode and difficulty from a menu",
	Long: `Start paddle in interactive menu mode.

Pick a match against the CPU or a second player, set the difficulty
with Left/Right and press Enter. After a match you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Left/Right   - Change difficulty
  Enter/Space  - Select
  Tab          - High scores
  Q            - Quit

Examples:
  paddle menu
  paddle menu --fps 30
  paddle menu --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	if err := checkGameConfig(""); err != nil {
		return err
	}

	logger, closer, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closer.Close()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()

	// Menu loop
	for {
		menu, err := tui.RunMenu(cfg)
		if err != nil {
			return err
		}

		// Keep terminal size and difficulty for the next round
		cfg = menu.Config()

		switch menu.Choice() {
		case tui.ChoiceQuit, tui.ChoiceNone:
			return nil

		case tui.ChoiceScores:
			goBack, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}
			continue
		}

		game, err := registry.Create(defaultGame)
		if err != nil {
			return err
		}

		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}
		logger.Info("match started", "game", defaultGame, "players", cfg.Players, "difficulty", cfg.Difficulty)

		if err := tui.Run(tui.NewModel(game, store, cfg).WithLogger(logger)); err != nil {
			logger.Error("game ended with error", "error", err)
		}
	}
}
