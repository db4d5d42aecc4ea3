package config

import (
	"fmt"

	"github.com/aurceive/ttk_roster/internal/domain"
)

// BuildScenarios crosses every configured level with every headshot ratio,
// levels outermost, both in config order.
func BuildScenarios(cfg domain.Config) []domain.Scenario {
	var scenarios []domain.Scenario
	for _, l := range cfg.Levels {
		for _, r := range cfg.HeadshotRatios {
			scenarios = append(scenarios, domain.Scenario{
				Name:          ScenarioName(l, r),
				Level:         l,
				HeadshotRatio: r,
			})
		}
	}
	return scenarios
}

func ScenarioName(level int, ratio float64) string {
	switch ratio {
	case 0:
		return fmt.Sprintf("Level %d - Normal Shots (0%% Headshots)", level)
	case 1:
		return fmt.Sprintf("Level %d - All Headshots (100%% Headshots)", level)
	default:
		return fmt.Sprintf("Level %d - %.4g%% Headshots", level, ratio*100)
	}
}

// checkScenarioNames rejects configs where two scenarios share a title,
// since results and table columns are keyed by it.
func checkScenarioNames(cfg domain.Config) error {
	seen := make(map[string]bool)
	for _, sc := range BuildScenarios(cfg) {
		if seen[sc.Name] {
			return fmt.Errorf("duplicate scenario %q (check levels and headshot_ratios for repeats)", sc.Name)
		}
		seen[sc.Name] = true
	}
	return nil
}
