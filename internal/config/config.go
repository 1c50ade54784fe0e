// Package config provides YAML-based game configuration loading and
// difficulty presets for the chromashot platform.
package config

// GalleryConfig contains all tuning for a shooting gallery round.
// The embedded defaults carry the canonical gameplay numbers; custom
// files and presets only nudge them.
type GalleryConfig struct {
	Round   RoundConfig   `yaml:"round"`
	Targets TargetsConfig `yaml:"targets"`
	Bolts   BoltsConfig   `yaml:"bolts"`
	Shooter ShooterConfig `yaml:"shooter"`
	Restart RestartConfig `yaml:"restart"`
}

// RoundConfig defines round timing and score display.
type RoundConfig struct {
	DurationSeconds float64 `yaml:"duration_seconds"`
	ScoreDisplayCap int     `yaml:"score_display_cap"`
}

// TargetsConfig defines the orb field: placement geometry, hit window and
// the hit/respawn cycle timing.
type TargetsConfig struct {
	Count               int     `yaml:"count"`
	RingRadius          float64 `yaml:"ring_radius"`
	RadiusJitter        float64 `yaml:"radius_jitter"`
	RespawnRadiusJitter float64 `yaml:"respawn_radius_jitter"`
	HeightCenter        float64 `yaml:"height_center"`
	HeightSpread        float64 `yaml:"height_spread"`
	HitRadius           float64 `yaml:"hit_radius"`
	ShrinkSeconds       float64 `yaml:"shrink_seconds"`
	RespawnDelaySeconds float64 `yaml:"respawn_delay_seconds"`
}

// BoltsConfig defines bolt flight parameters.
type BoltsConfig struct {
	Speed      float64 `yaml:"speed"`
	TTLSeconds float64 `yaml:"ttl_seconds"`
}

// ShooterConfig defines the aim model.
type ShooterConfig struct {
	TurnRate   float64 `yaml:"turn_rate"`   // radians per second at full axis deflection
	PitchLimit float64 `yaml:"pitch_limit"` // max absolute pitch in radians
	EyeHeight  float64 `yaml:"eye_height"`  // shooter eye height above the floor
}

// RestartConfig defines the game-over restart trigger: a single orb at a
// fixed pose that restarts the round when hit with the required color.
type RestartConfig struct {
	Radius float64 `yaml:"radius"`
	Color  string  `yaml:"color"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Z      float64 `yaml:"z"`
}
