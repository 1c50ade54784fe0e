package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadGallery loads the gallery mode configuration.
// Search order: customPath -> ~/.chromashot/configs/gallery.yaml ->
// ./configs/gallery.yaml -> embedded default
func LoadGallery(customPath string) (GalleryConfig, error) {
	return loadMode(customPath, "gallery.yaml", defaultGalleryYAML, DefaultGalleryConfig)
}

// LoadBlitz loads the blitz mode configuration.
// Search order: customPath -> ~/.chromashot/configs/blitz.yaml ->
// ./configs/blitz.yaml -> embedded default
func LoadBlitz(customPath string) (GalleryConfig, error) {
	return loadMode(customPath, "blitz.yaml", defaultBlitzYAML, DefaultBlitzConfig)
}

// loadMode implements the shared search order for a mode config file.
func loadMode(customPath, filename string, embedded []byte, fallback func() GalleryConfig) (GalleryConfig, error) {
	var cfg GalleryConfig

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

	// Try user config directory
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", filename)); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(embedded, &cfg); err != nil {
		return fallback(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home
// is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".chromashot", "configs", filename)
}
