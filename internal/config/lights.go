package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/smazurov/lightsd/internal/lights"
)

// LightsConfig names the sysfs control files for the two physical sinks.
type LightsConfig struct {
	Backlight string `toml:"backlight"`
	Indicator string `toml:"indicator"`
}

// Paths converts the config to controller paths.
func (c LightsConfig) Paths() lights.Paths {
	return lights.Paths{
		Backlight: c.Backlight,
		Indicator: c.Indicator,
	}
}

// LoadLightsConfig reads the [lights] section from a TOML config file.
// A missing file or missing keys fall back to the stock sysfs locations;
// a file that exists but does not parse is an error.
func LoadLightsConfig(configPath string) (LightsConfig, error) {
	cfg := LightsConfig{
		Backlight: lights.DefaultBacklightPath,
		Indicator: lights.DefaultIndicatorPath,
	}

	if configPath == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var raw struct {
		Lights LightsConfig `toml:"lights"`
	}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return cfg, fmt.Errorf("failed to parse TOML config: %w", err)
	}

	if raw.Lights.Backlight != "" {
		cfg.Backlight = raw.Lights.Backlight
	}
	if raw.Lights.Indicator != "" {
		cfg.Indicator = raw.Lights.Indicator
	}
	return cfg, nil
}
