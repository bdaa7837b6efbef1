package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/artemmak/showreel/pricing"
)

// LoadPricingFile reads a TOML price list. Keys missing from the file keep
// their pricing.DefaultConfig values.
func LoadPricingFile(path string) (pricing.Config, error) {
	cfg := pricing.DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read pricing file: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse pricing file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid pricing file %s: %w", path, err)
	}
	return cfg, nil
}

// WritePricingFile stores cfg as TOML, creating or truncating path
func WritePricingFile(path string, cfg pricing.Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create pricing file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("failed to write pricing file: %w", err)
	}
	return nil
}
