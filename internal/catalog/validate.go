package catalog

import (
	"errors"
	"fmt"
	"math"

	"github.com/aurceive/ttk_roster/internal/domain"
)

// Validate checks every weapon and shield and reports all problems at once.
// Weapon problems wrap domain.ErrInvalidWeaponConfig, shield problems domain.ErrInvalidShield.
func (c *Catalog) Validate() error {
	var errs []error
	if !(c.BaseHealth > 0) || math.IsInf(c.BaseHealth, 0) {
		errs = append(errs, fmt.Errorf("%w: base_health must be > 0, got %v", domain.ErrInvalidWeaponConfig, c.BaseHealth))
	}
	if !(c.BaseDurability >= 0) || math.IsInf(c.BaseDurability, 0) {
		errs = append(errs, fmt.Errorf("%w: base_durability must be >= 0, got %v", domain.ErrInvalidWeaponConfig, c.BaseDurability))
	}
	for _, id := range c.WeaponIDs() {
		if err := ValidateWeapon(c.weapons[id]); err != nil {
			errs = append(errs, err)
		}
	}
	for _, id := range c.ShieldIDs() {
		if err := ValidateShield(c.shields[id]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func ValidateWeapon(w domain.WeaponBase) error {
	var problems []string
	if w.ID == "" {
		problems = append(problems, "id must not be empty")
	}
	if !(w.Damage > 0) || math.IsInf(w.Damage, 0) {
		problems = append(problems, fmt.Sprintf("damage must be > 0, got %v", w.Damage))
	}
	if !(w.FireRate > 0) || math.IsInf(w.FireRate, 0) {
		problems = append(problems, fmt.Sprintf("fire_rate must be > 0, got %v", w.FireRate))
	}
	if w.MagSize <= 0 {
		problems = append(problems, fmt.Sprintf("mag_size must be > 0, got %d", w.MagSize))
	}
	if !(w.ReloadTime >= 0) || math.IsInf(w.ReloadTime, 0) {
		problems = append(problems, fmt.Sprintf("reload_time must be >= 0, got %v", w.ReloadTime))
	}
	if !(w.HeadshotMultiplier >= 1) || math.IsInf(w.HeadshotMultiplier, 0) {
		problems = append(problems, fmt.Sprintf("headshot_multiplier must be >= 1, got %v", w.HeadshotMultiplier))
	}
	if !w.Rarity.Valid() {
		problems = append(problems, fmt.Sprintf("unsupported rarity %q", w.Rarity))
	}
	for level := 2; level <= domain.MaxLevel; level++ {
		m := w.Upgrades.For(level)
		if m == nil {
			continue
		}
		if m.FireRateIncrease != nil && !(*m.FireRateIncrease > -1 && finite(*m.FireRateIncrease)) {
			problems = append(problems, fmt.Sprintf("level%d.fire_rate_increase must be a finite value > -1, got %v", level, *m.FireRateIncrease))
		}
		if m.ReloadReduction != nil && !(*m.ReloadReduction <= 1 && finite(*m.ReloadReduction)) {
			problems = append(problems, fmt.Sprintf("level%d.reload_reduction must be a finite value <= 1, got %v", level, *m.ReloadReduction))
		}
		if m.MagSizeBonus != nil {
			// Resolved magazines are floor(base + bonus) and must fit an int.
			if v := float64(w.MagSize) + *m.MagSizeBonus; !(v >= 1) || v > math.MaxInt32 {
				problems = append(problems, fmt.Sprintf("level%d.mag_size_bonus must leave a magazine in [1, %d], got %v", level, math.MaxInt32, *m.MagSizeBonus))
			}
		}
		if m.DurabilityBonus != nil && !finite(*m.DurabilityBonus) {
			problems = append(problems, fmt.Sprintf("level%d.durability_bonus must be finite, got %v", level, *m.DurabilityBonus))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: weapon %q: %v", domain.ErrInvalidWeaponConfig, w.ID, problems)
	}
	return nil
}

func ValidateShield(s domain.ShieldProfile) error {
	var problems []string
	if s.ID == "" {
		problems = append(problems, "id must not be empty")
	}
	if !(s.DamageReduction >= 0 && s.DamageReduction < 1) {
		problems = append(problems, fmt.Sprintf("damage_reduction must be in [0,1), got %v", s.DamageReduction))
	}
	if !(s.Health >= 0) || math.IsInf(s.Health, 0) {
		problems = append(problems, fmt.Sprintf("health must be >= 0, got %v", s.Health))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: shield %q: %v", domain.ErrInvalidShield, s.ID, problems)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
