package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/aurceive/ttk_roster/internal/domain"

	"gopkg.in/yaml.v3"
)

const FileName = "ttk_config.yaml"

// Default returns the run configuration used when no file is present:
// every weapon against a medium shield, at levels 1 and 4 with and without headshots.
func Default() domain.Config {
	return domain.Config{
		Shield:         "medium",
		Levels:         []int{1, 4},
		HeadshotRatios: []float64{0, 1},
		MinimumRarity:  string(domain.RarityCommon),
		SortBy:         "ttk",
		Parallelism:    4,
		LogLevel:       "info",
	}
}

// Load reads the run configuration from path on top of Default.
// If the file doesn't exist, returns defaults.
func Load(path string) (domain.Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := Validate(cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the values that don't need the catalog to be checked.
func Validate(cfg domain.Config) error {
	if len(cfg.Levels) == 0 {
		return fmt.Errorf("levels must not be empty")
	}
	for _, l := range cfg.Levels {
		if l < domain.MinLevel || l > domain.MaxLevel {
			return fmt.Errorf("levels: %w: %d", domain.ErrInvalidLevel, l)
		}
	}
	if len(cfg.HeadshotRatios) == 0 {
		return fmt.Errorf("headshot_ratios must not be empty")
	}
	for _, r := range cfg.HeadshotRatios {
		if !(r >= 0 && r <= 1) {
			return fmt.Errorf("headshot_ratios: %w: %v", domain.ErrInvalidHeadshotRatio, r)
		}
	}
	if err := checkScenarioNames(cfg); err != nil {
		return err
	}
	if _, err := domain.ParseRarity(cfg.MinimumRarity); err != nil {
		return fmt.Errorf("minimum_rarity: %w", err)
	}
	if _, err := domain.ParseSortKey(cfg.SortBy); err != nil {
		return err
	}
	if _, err := ParseLogLevel(cfg.LogLevel); err != nil {
		return err
	}
	if cfg.Parallelism < 0 {
		return fmt.Errorf("parallelism must be >= 0, got %d", cfg.Parallelism)
	}
	return nil
}

func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unsupported log_level %q (supported: debug, info, warn, error)", s)
	}
}
