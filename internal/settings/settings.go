// Package settings persists player preferences across runs.
// Backed by gdata so the same code works on every platform; a nil
// store degrades to in-memory defaults and play never blocks on disk.
package settings

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Settings holds player preferences shared by all modes.
type Settings struct {
	Handle        string  `yaml:"handle"`         // Display name on the scoreboard
	Mute          bool    `yaml:"mute"`           // Disable all sound cues
	Volume        float64 `yaml:"volume"`         // Cue volume 0.0 ~ 1.0
	ReducedMotion bool    `yaml:"reduced_motion"` // Pop orbs instead of shrinking them
}

// Default returns the out-of-the-box preferences.
func Default() *Settings {
	return &Settings{
		Handle:        "",
		Mute:          false,
		Volume:        0.8,
		ReducedMotion: false,
	}
}

// Storage location within the gdata app directory
const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

// OpenStore opens the cross-platform preference store.
func OpenStore() (*gdata.Manager, error) {
	return gdata.Open(gdata.Config{
		AppName: "chromashot",
	})
}

// Manager loads and saves settings through gdata.
type Manager struct {
	store    *gdata.Manager // May be nil: in-memory mode
	settings *Settings
}

// NewManager creates a manager and loads any previously saved settings.
// The returned error reports a failed load; the manager is still usable
// with defaults, so callers may log it and move on.
func NewManager(store *gdata.Manager) (*Manager, error) {
	m := &Manager{
		store:    store,
		settings: Default(),
	}
	err := m.Load()
	return m, err
}

// Load reads settings from the store, falling back to defaults when the
// store is nil, the settings were never saved, or the data is unreadable.
func (m *Manager) Load() error {
	if m.store == nil {
		m.settings = Default()
		return nil
	}

	if !m.store.ObjectPropExists(settingsObject, settingsProperty) {
		m.settings = Default()
		return nil
	}

	data, err := m.store.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		m.settings = Default()
		return fmt.Errorf("settings: cannot load: %w", err)
	}

	var loaded Settings
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		m.settings = Default()
		return fmt.Errorf("settings: cannot unmarshal: %w", err)
	}

	m.settings = &loaded
	return nil
}

// Save writes the current settings to the store.
// A nil store makes this a no-op rather than an error.
func (m *Manager) Save() error {
	if m.store == nil {
		return nil
	}

	data, err := yaml.Marshal(m.settings)
	if err != nil {
		return fmt.Errorf("settings: cannot marshal: %w", err)
	}

	if err := m.store.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("settings: cannot save: %w", err)
	}

	return nil
}

// Get returns the current settings.
func (m *Manager) Get() *Settings {
	return m.settings
}

// SetHandle updates the display name in memory. Call Save to persist.
func (m *Manager) SetHandle(handle string) {
	m.settings.Handle = handle
}

// SetMute updates the mute flag in memory. Call Save to persist.
func (m *Manager) SetMute(mute bool) {
	m.settings.Mute = mute
}

// SetVolume updates the cue volume in memory, clamped to 0.0 ~ 1.0.
// Call Save to persist.
func (m *Manager) SetVolume(volume float64) {
	if volume < 0 {
		volume = 0
	}
	if volume > 1 {
		volume = 1
	}
	m.settings.Volume = volume
}

// SetReducedMotion updates the reduced motion flag in memory. Call Save to persist.
func (m *Manager) SetReducedMotion(reduced bool) {
	m.settings.ReducedMotion = reduced
}
