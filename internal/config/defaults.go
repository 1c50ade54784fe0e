package config

import (
	_ "embed"
)

//go:embed defaults/gallery.yaml
var defaultGalleryYAML []byte

//go:embed defaults/blitz.yaml
var defaultBlitzYAML []byte

// DefaultGalleryConfig returns the canonical gallery configuration:
// a 60 second round against 12 orbs on a ring at eye level.
func DefaultGalleryConfig() GalleryConfig {
	return GalleryConfig{
		Round: RoundConfig{
			DurationSeconds: 60,
			ScoreDisplayCap: 99,
		},
		Targets: TargetsConfig{
			Count:               12,
			RingRadius:          6.0,
			RadiusJitter:        0.5,
			RespawnRadiusJitter: 1.5,
			HeightCenter:        1.6,
			HeightSpread:        0.8,
			HitRadius:           1.0,
			ShrinkSeconds:       0.3,
			RespawnDelaySeconds: 1.0,
		},
		Bolts: BoltsConfig{
			Speed:      10.0,
			TTLSeconds: 1.0,
		},
		Shooter: ShooterConfig{
			TurnRate:   2.4,
			PitchLimit: 1.2,
			EyeHeight:  1.6,
		},
		Restart: RestartConfig{
			Radius: 0.3,
			Color:  "blue",
			X:      0,
			Y:      1.35,
			Z:      -4,
		},
	}
}

// DefaultBlitzConfig returns the blitz variant: half the round time
// against a smaller field with a tighter hit window and faster respawns.
func DefaultBlitzConfig() GalleryConfig {
	cfg := DefaultGalleryConfig()
	cfg.Round.DurationSeconds = 30
	cfg.Targets.Count = 10
	cfg.Targets.HitRadius = 0.8
	cfg.Targets.RespawnDelaySeconds = 0.6
	return cfg
}

// GetDefaultYAML returns the embedded default YAML for a mode.
func GetDefaultYAML(modeID string) []byte {
	switch modeID {
	case "gallery":
		return defaultGalleryYAML
	case "blitz":
		return defaultBlitzYAML
	default:
		return nil
	}
}
