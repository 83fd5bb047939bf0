package config

import (
	_ "embed"
)

//go:embed defaults/pong.yaml
var defaultPongYAML []byte

// DefaultPongConfig returns the default Pong configuration.
// It mirrors defaults/pong.yaml and is used if the embedded file fails to parse.
func DefaultPongConfig() PongConfig {
	return PongConfig{
		Field: PongField{
			Width:  56,
			Height: 20,
			Border: true,
		},
		Physics: PongPhysics{
			BallSpeed:    50,
			PaddleSpeed:  60,
			MaxBallSpeed: 150,
			SpinFactor:   30,
			SpeedUp:      1.05,
		},
		Paddles: PongPaddles{
			Height: 4,
			Offset: 2,
		},
		Gameplay: PongGameplay{
			WinScore:   5,
			ServeDelay: 60,
		},
		CPU: PongCPU{
			MinSkill: 0.6,
			MaxSkill: 0.95,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "time",
				MaxAt: 36000, // 10 minutes at 60fps
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "pong":
		return defaultPongYAML
	default:
		return nil
	}
}
