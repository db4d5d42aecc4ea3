package weapons

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/aurceive/ttk_roster/internal/catalog"
	"github.com/aurceive/ttk_roster/internal/domain"
)

// SelectByRarity splits the catalog weapons by the minimum rarity.
func SelectByRarity(cat *catalog.Catalog, minRarity domain.Rarity) (included []string, excluded []string) {
	for _, id := range cat.WeaponIDs() {
		w, err := cat.Weapon(id)
		if err != nil {
			continue
		}
		if w.Rarity.Rank() >= minRarity.Rank() {
			included = append(included, id)
		} else {
			excluded = append(excluded, id)
		}
	}
	return included, excluded
}

// Select returns the weapons a ranked run should cover.
//
// An explicit list wins over the rarity filter; its entries are matched
// case-insensitively and de-duplicated, and an unknown entry is an error.
func Select(cat *catalog.Catalog, names []string, minRarity domain.Rarity) ([]string, error) {
	if len(names) == 0 {
		included, _ := SelectByRarity(cat, minRarity)
		return included, nil
	}

	out := make([]string, 0, len(names))
	for _, n := range names {
		id := strings.ToLower(strings.TrimSpace(n))
		if id == "" {
			return nil, fmt.Errorf("weapons: empty weapon name")
		}
		if _, err := cat.Weapon(id); err != nil {
			return nil, fmt.Errorf("weapons: %w", err)
		}
		if slices.Contains(out, id) {
			continue
		}
		out = append(out, id)
	}
	return out, nil
}

func SortByRarityDescThenKey(weapons []string, cat *catalog.Catalog) []string {
	out := make([]string, 0, len(weapons))
	out = append(out, weapons...)
	sort.SliceStable(out, func(i, j int) bool {
		r1 := -1
		r2 := -1
		if w, err := cat.Weapon(out[i]); err == nil {
			r1 = w.Rarity.Rank()
		}
		if w, err := cat.Weapon(out[j]); err == nil {
			r2 = w.Rarity.Rank()
		}
		if r1 != r2 {
			return r1 > r2
		}
		return out[i] < out[j]
	})
	return out
}

// ComputeTotalRuns is the number of simulations a ranked run performs.
func ComputeTotalRuns(weaponsToRun []string, scenarios []domain.Scenario) int {
	return len(weaponsToRun) * len(scenarios)
}
