package config

// DifficultyPreset represents a named difficulty level. Presets are
// applied on top of the loaded config before a round starts; they never
// change mid-round.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI string into a preset.
// Returns DifficultyNormal and false if the string is not recognized.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s), true
	default:
		return DifficultyNormal, false
	}
}

// ApplyGalleryPreset adjusts the gameplay knobs for a preset.
// "fixed" and "normal" leave the canonical numbers untouched; easy and
// hard trade round time, hit window and respawn tempo.
func ApplyGalleryPreset(cfg *GalleryConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Round.DurationSeconds *= 1.5
		cfg.Targets.HitRadius *= 1.25
		cfg.Targets.RespawnDelaySeconds *= 0.8
	case DifficultyHard:
		cfg.Round.DurationSeconds *= 0.75
		cfg.Targets.HitRadius *= 0.8
		cfg.Targets.RespawnDelaySeconds *= 1.25
	}
}
