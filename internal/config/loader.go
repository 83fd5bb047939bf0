package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-paddle/internal/entity"
)

// load reads a game config.
// Search order: customPath -> ~/.paddle/configs/<name> -> ./configs/<name> -> embedded -> fallback.
// Only a broken customPath is an error; the other locations are skipped if unreadable.
func load[T any](name, customPath string, embedded []byte, fallback func() T) (T, error) {
	var cfg T

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{filepath.Join("configs", name)}
	if userCfgPath := userConfigPath(name); userCfgPath != "" {
		candidates = append([]string{userCfgPath}, candidates...)
	}
	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var c T
		if err := yaml.Unmarshal(data, &c); err == nil {
			return c, nil
		}
	}

	if err := yaml.Unmarshal(embedded, &cfg); err != nil {
		return fallback(), nil
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".paddle", "configs", filename)
}

// LoadPong loads Pong configuration and validates it.
func LoadPong(customPath string) (PongConfig, error) {
	cfg, err := load("pong.yaml", customPath, defaultPongYAML, DefaultPongConfig)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid pong config: %w", err)
	}
	return cfg, nil
}

// Validate checks that the field fits the entity row bounds and that
// paddles and speeds make a playable game.
func (c PongConfig) Validate() error {
	var errs []error
	if c.Field.Width < 2*c.Paddles.Offset+4 {
		errs = append(errs, fmt.Errorf("field width %d too small for paddle offset %d", c.Field.Width, c.Paddles.Offset))
	}
	if c.Field.Height < 3 || c.Field.Height > entity.MaxY+1 {
		errs = append(errs, fmt.Errorf("field height %d outside [3, %d]", c.Field.Height, entity.MaxY+1))
	}
	if c.Paddles.Height < 1 || c.Paddles.Height >= c.Field.Height {
		errs = append(errs, fmt.Errorf("paddle height %d must be in [1, %d)", c.Paddles.Height, c.Field.Height))
	}
	if c.Paddles.Offset < 0 {
		errs = append(errs, fmt.Errorf("paddle offset %d is negative", c.Paddles.Offset))
	}
	if c.Physics.BallSpeed <= 0 {
		errs = append(errs, fmt.Errorf("ball speed %v must be positive", c.Physics.BallSpeed))
	}
	if c.Physics.MaxBallSpeed < c.Physics.BallSpeed {
		errs = append(errs, fmt.Errorf("max ball speed %v below ball speed %v", c.Physics.MaxBallSpeed, c.Physics.BallSpeed))
	}
	if c.Gameplay.WinScore < 1 {
		errs = append(errs, fmt.Errorf("win score %d must be at least 1", c.Gameplay.WinScore))
	}
	return errors.Join(errs...)
}

// ApplyPongPreset modifies the config based on a difficulty preset.
func ApplyPongPreset(cfg *PongConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Paddles.Height++
		cfg.CPU.MaxSkill = min(cfg.CPU.MaxSkill, 0.8)
	case DifficultyHard:
		cfg.Paddles.Height = max(cfg.Paddles.Height-1, 2)
		cfg.Physics.BallSpeed *= 1.25
		cfg.Physics.MaxBallSpeed = max(cfg.Physics.MaxBallSpeed, cfg.Physics.BallSpeed)
	}
}
