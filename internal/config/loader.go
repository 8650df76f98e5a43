package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the file looked up in the user and local config directories.
const ConfigFileName = "tanks.yaml"

// LoadTanks loads the arena configuration.
// Search order: customPath -> ~/.tanks/configs/tanks.yaml -> ./configs/tanks.yaml -> embedded default.
// Files are decoded on top of the defaults, so a file only needs the keys it changes.
func LoadTanks(customPath string) (TanksConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return TanksConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseTanks(data)
		if err != nil {
			return TanksConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return TanksConfig{}, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then the local configs directory
	for _, path := range []string{userConfigPath(ConfigFileName), filepath.Join("configs", ConfigFileName)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parseTanks(data); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseTanks(defaultTanksYAML)
	if err != nil || cfg.Validate() != nil {
		return DefaultTanksConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func parseTanks(data []byte) (TanksConfig, error) {
	cfg := DefaultTanksConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return TanksConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tanks", "configs", filename)
}

// ParsePreset converts a flag value to a Preset. Empty means classic.
func ParsePreset(s string) (Preset, error) {
	switch Preset(strings.ToLower(strings.TrimSpace(s))) {
	case "", PresetClassic:
		return PresetClassic, nil
	case PresetArsenal:
		return PresetArsenal, nil
	case PresetDuel:
		return PresetDuel, nil
	default:
		return "", fmt.Errorf("unknown preset %q (expected classic, arsenal or duel)", s)
	}
}

// ApplyPreset modifies the config for a rule preset.
//
//	classic - values as loaded
//	arsenal - each tank starts with half a rack of explosive charges
//	duel    - half health, faster reload
func ApplyPreset(cfg *TanksConfig, preset Preset) {
	switch preset {
	case PresetArsenal:
		cfg.Tank.StartingCharges = cfg.Bombs.Capacity / 2
	case PresetDuel:
		cfg.Tank.MaxHealth = cfg.Tank.MaxHealth / 2
		cfg.Tank.ReloadSeconds = cfg.Tank.ReloadSeconds / 2
	}
}
