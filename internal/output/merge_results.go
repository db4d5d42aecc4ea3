package output

import (
	"slices"

	"github.com/aurceive/ttk_roster/internal/domain"
)

// MergeResults merges computed results into base results, overwriting rows with
// the same scenario, weapon and shield. It returns a merged scenario order
// (computed first, then any base-only scenarios) and merged results sorted by
// weapon.
func MergeResults(baseScenarios []domain.Scenario, base map[string][]domain.Result, computedScenarios []domain.Scenario, computed map[string][]domain.Result) ([]domain.Scenario, map[string][]domain.Result) {
	scenarios := make([]domain.Scenario, 0, len(computedScenarios)+len(baseScenarios))
	scenarios = append(scenarios, computedScenarios...)
	for _, sc := range baseScenarios {
		if !slices.ContainsFunc(scenarios, func(s domain.Scenario) bool { return s.Name == sc.Name }) {
			scenarios = append(scenarios, sc)
		}
	}

	merged := make(map[string][]domain.Result, len(scenarios))
	for _, sc := range scenarios {
		// canonicalize by key
		m := make(map[resultKey]domain.Result)
		for _, r := range base[sc.Name] {
			m[keyOf(r)] = r
		}
		for _, r := range computed[sc.Name] {
			m[keyOf(r)] = r
		}
		arr := make([]domain.Result, 0, len(m))
		for _, r := range m {
			arr = append(arr, r)
		}
		SortResults(arr, domain.SortByName, false)
		merged[sc.Name] = arr
	}

	return scenarios, merged
}
