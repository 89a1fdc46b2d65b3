// Package config loads application settings from a TOML file.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds everything metraj reads from its config file. All fields
// have working defaults so the app runs without any file present.
type Config struct {
	Company    Company    `toml:"company"`
	Estimation Estimation `toml:"estimation"`
}

// Company is printed on exported documents as the letterhead.
type Company struct {
	Name    string `toml:"name"`
	Address string `toml:"address"`
	Phone   string `toml:"phone"`
	Email   string `toml:"email"`
}

// Estimation tunes the calculation defaults.
type Estimation struct {
	// DefaultWasteFactor is used for formula rows that carry no factor
	// of their own.
	DefaultWasteFactor float64 `toml:"default_waste_factor"`
	// VATRate is the percentage applied on BOQ grand totals.
	VATRate  float64 `toml:"vat_rate"`
	Currency string  `toml:"currency"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Estimation: Estimation{
			DefaultWasteFactor: 0.05,
			VATRate:            20,
			Currency:           "TRY",
		},
	}
}

// Load reads configuration from path. When path is empty it falls back to
// $METRAJ_CONFIG, then ./metraj.toml. A missing fallback file is not an
// error; the defaults are returned. An explicitly given path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if path == "" {
		path = os.Getenv("METRAJ_CONFIG")
		explicit = path != ""
	}
	if path == "" {
		path = "metraj.toml"
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config file %s: %w", path, err)
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.Estimation.DefaultWasteFactor < 0 {
		return cfg, fmt.Errorf("config %s: default_waste_factor cannot be negative", path)
	}
	if cfg.Estimation.VATRate < 0 {
		return cfg, fmt.Errorf("config %s: vat_rate cannot be negative", path)
	}

	return cfg, nil
}
