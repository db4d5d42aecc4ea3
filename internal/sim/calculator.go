package sim

import (
	"github.com/aurceive/ttk_roster/internal/catalog"
	"github.com/aurceive/ttk_roster/internal/domain"
)

// Calculator answers stat and TTK queries against one catalog.
type Calculator struct {
	cat *catalog.Catalog
}

func NewCalculator(cat *catalog.Catalog) *Calculator {
	return &Calculator{cat: cat}
}

func (c *Calculator) Catalog() *catalog.Catalog {
	return c.cat
}

func (c *Calculator) ResolveStats(weaponID string, level int) (domain.ResolvedWeaponStats, error) {
	return c.cat.Resolve(weaponID, level)
}

// SimulateTTK validates every input before simulating, so a bad shield id
// is reported even when the weapon would fail too.
func (c *Calculator) SimulateTTK(weaponID, shieldID string, level int, headshotRatio float64, detailed bool) (domain.SimulationResult, error) {
	if _, err := c.cat.Weapon(weaponID); err != nil {
		return domain.SimulationResult{}, err
	}
	shield, err := c.cat.Shield(shieldID)
	if err != nil {
		return domain.SimulationResult{}, err
	}
	stats, err := c.cat.Resolve(weaponID, level)
	if err != nil {
		return domain.SimulationResult{}, err
	}
	if err := validateRatio(headshotRatio); err != nil {
		return domain.SimulationResult{}, err
	}
	return Simulate(stats, shield, headshotRatio,
		WithDetail(detailed),
		WithBaseHealth(c.cat.BaseHealth),
	)
}

// Evaluate runs one simulation and flattens it into a ranked-table row.
func (c *Calculator) Evaluate(weaponID, shieldID string, level int, headshotRatio float64) (domain.Result, error) {
	res, err := c.SimulateTTK(weaponID, shieldID, level, headshotRatio, false)
	if err != nil {
		return domain.Result{}, err
	}
	stats, err := c.cat.Resolve(weaponID, level)
	if err != nil {
		return domain.Result{}, err
	}
	return domain.Result{
		Weapon:          weaponID,
		Shield:          shieldID,
		Level:           level,
		HeadshotRatio:   headshotRatio,
		TTK:             res.TTK,
		BulletsFired:    res.BulletsFired,
		Reloads:         res.Reloads,
		Damage:          stats.Damage,
		DamagePerBullet: res.DamagePerBullet,
		FireRate:        stats.FireRate,
		DPS:             res.DPS,
	}, nil
}
