package output

import (
	"cmp"
	"slices"

	"github.com/aurceive/ttk_roster/internal/domain"
)

// SortResults orders results by key. Ties fall back to weapon then shield,
// so the order is stable across runs.
func SortResults(results []domain.Result, key domain.SortKey, descending bool) {
	slices.SortStableFunc(results, func(a, b domain.Result) int {
		var c int
		switch key {
		case domain.SortByDPS:
			c = cmp.Compare(a.DPS, b.DPS)
		case domain.SortByBullets:
			c = cmp.Compare(a.BulletsFired, b.BulletsFired)
		case domain.SortByName:
			c = cmp.Compare(a.Weapon, b.Weapon)
		default:
			c = cmp.Compare(a.TTK, b.TTK)
		}
		if descending {
			c = -c
		}
		if c != 0 {
			return c
		}
		if c = cmp.Compare(a.Weapon, b.Weapon); c != 0 {
			return c
		}
		return cmp.Compare(a.Shield, b.Shield)
	})
}
