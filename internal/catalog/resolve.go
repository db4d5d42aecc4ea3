package catalog

import (
	"fmt"
	"math"

	"github.com/aurceive/ttk_roster/internal/domain"
)

// Resolve returns the stats of weaponID at level (1..4).
func (c *Catalog) Resolve(weaponID string, level int) (domain.ResolvedWeaponStats, error) {
	if level < domain.MinLevel || level > domain.MaxLevel {
		return domain.ResolvedWeaponStats{}, fmt.Errorf("%w: %d (must be in [%d..%d])", domain.ErrInvalidLevel, level, domain.MinLevel, domain.MaxLevel)
	}
	all, err := c.ResolveAll(weaponID)
	if err != nil {
		return domain.ResolvedWeaponStats{}, err
	}
	return all[level-1], nil
}

// ResolveAll returns the stats of weaponID for levels 1..4, in order.
func (c *Catalog) ResolveAll(weaponID string) ([domain.MaxLevel]domain.ResolvedWeaponStats, error) {
	weaponID = normalizeID(weaponID)
	c.mu.RLock()
	all, ok := c.resolved[weaponID]
	c.mu.RUnlock()
	if ok {
		return all, nil
	}

	w, err := c.Weapon(weaponID)
	if err != nil {
		return all, err
	}
	all = ResolveLevels(w, c.BaseDurability)

	// Two goroutines may both get here; they store identical values.
	c.mu.Lock()
	c.resolved[weaponID] = all
	c.mu.Unlock()
	return all, nil
}

// ResolveLevels applies the upgrade table of w on top of its base stats.
//
// Each defined modifier field is applied to the base stats (durability to
// the level 1 durability), so a tier states its total bonus. Undefined
// fields, and tiers without a modifier, carry over the previous tier.
func ResolveLevels(w domain.WeaponBase, baseDurability float64) [domain.MaxLevel]domain.ResolvedWeaponStats {
	var out [domain.MaxLevel]domain.ResolvedWeaponStats

	base := domain.ResolvedWeaponStats{
		WeaponID:           w.ID,
		Damage:             w.Damage,
		FireRate:           w.FireRate,
		MagSize:            w.MagSize,
		ReloadTime:         w.ReloadTime,
		Durability:         baseDurability,
		HeadshotMultiplier: w.HeadshotMultiplier,
	}
	out[0] = base

	for level := 2; level <= domain.MaxLevel; level++ {
		next := out[level-2]

		if m := w.Upgrades.For(level); m != nil {
			if m.FireRateIncrease != nil {
				next.FireRate = base.FireRate * (1 + *m.FireRateIncrease)
			}
			if m.MagSizeBonus != nil {
				next.MagSize = int(math.Floor(float64(base.MagSize) + *m.MagSizeBonus))
			}
			if m.ReloadReduction != nil {
				next.ReloadTime = base.ReloadTime * (1 - *m.ReloadReduction)
			}
			if m.DurabilityBonus != nil {
				next.Durability = base.Durability + *m.DurabilityBonus
			}
		}
		out[level-1] = next
	}
	return out
}
