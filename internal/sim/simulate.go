package sim

import (
	"fmt"
	"math"

	"github.com/aurceive/ttk_roster/internal/domain"
)

// DefaultMaxBullets stops a simulation that cannot finish, e.g. when the
// catalog gives a weapon an absurdly small damage value.
const DefaultMaxBullets = 10000

type options struct {
	detailed   bool
	baseHealth float64
	maxBullets int
}

type Option func(*options)

// WithDetail records a reload/shot event trace in the result.
func WithDetail(on bool) Option {
	return func(o *options) { o.detailed = on }
}

// WithBaseHealth sets the target health the simulation starts from.
func WithBaseHealth(h float64) Option {
	return func(o *options) { o.baseHealth = h }
}

func WithMaxBullets(n int) Option {
	return func(o *options) { o.maxBullets = n }
}

// DamagePerBullet blends body and head damage by the expected headshot share.
func DamagePerBullet(damage, headshotRatio, headshotMultiplier float64) float64 {
	return damage*(1-headshotRatio) + damage*headshotRatio*headshotMultiplier
}

// Simulate fires stats at a target wearing shield until it dies.
//
// The first bullet of a full magazine costs no time; every other bullet
// costs 1/FireRate and every empty magazine costs ReloadTime. While the
// shield is up it absorbs the full bullet damage and health takes the
// reduced damage, including on the bullet that breaks the shield.
func Simulate(stats domain.ResolvedWeaponStats, shield domain.ShieldProfile, headshotRatio float64, opts ...Option) (domain.SimulationResult, error) {
	o := options{
		baseHealth: domain.DefaultBaseHealth,
		maxBullets: DefaultMaxBullets,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if err := validateRatio(headshotRatio); err != nil {
		return domain.SimulationResult{}, err
	}
	if err := validateStats(stats); err != nil {
		return domain.SimulationResult{}, err
	}
	if !(shield.DamageReduction >= 0 && shield.DamageReduction < 1) || !(shield.Health >= 0) {
		return domain.SimulationResult{}, fmt.Errorf("%w: %q: damage_reduction=%v health=%v", domain.ErrInvalidShield, shield.ID, shield.DamageReduction, shield.Health)
	}
	if !(o.baseHealth > 0) {
		return domain.SimulationResult{}, fmt.Errorf("%w: base health must be > 0, got %v", domain.ErrInvalidWeaponConfig, o.baseHealth)
	}

	dmg := DamagePerBullet(stats.Damage, headshotRatio, stats.HeadshotMultiplier)
	timePerBullet := 1.0 / stats.FireRate
	healthDamage := dmg * (1 - shield.DamageReduction)

	var (
		res        = domain.SimulationResult{DamagePerBullet: dmg}
		shieldHP   = shield.Health
		health     = o.baseHealth
		elapsed    = 0.0
		bulletsMag = stats.MagSize
	)

	for health > 0 {
		if res.BulletsFired >= o.maxBullets {
			return domain.SimulationResult{}, fmt.Errorf("%w: %q did not kill within %d bullets", domain.ErrInvalidWeaponConfig, stats.WeaponID, o.maxBullets)
		}

		if bulletsMag == 0 {
			elapsed += stats.ReloadTime
			bulletsMag = stats.MagSize
			res.Reloads++
			if o.detailed {
				res.Events = append(res.Events, domain.Event{
					Kind:         domain.EventReload,
					Time:         elapsed,
					ReloadNumber: res.Reloads,
				})
			}
		}

		if bulletsMag < stats.MagSize {
			elapsed += timePerBullet
		}
		bulletsMag--
		res.BulletsFired++

		ev := domain.Event{
			Kind:         domain.EventShot,
			Bullet:       res.BulletsFired,
			ShieldBefore: shieldHP,
			HealthBefore: health,
			ShieldActive: shieldHP > 0,
		}

		if shieldHP > 0 {
			shieldHP = math.Max(shieldHP-dmg, 0)
			health -= healthDamage
		} else {
			health -= dmg
		}

		if o.detailed {
			ev.Time = elapsed
			ev.ShieldAfter = shieldHP
			ev.HealthAfter = health
			ev.BulletsRemaining = bulletsMag
			res.Events = append(res.Events, ev)
		}
	}

	res.TTK = elapsed
	totalDamage := float64(res.BulletsFired) * dmg
	if elapsed > 0 {
		res.DPS = totalDamage / elapsed
	} else {
		res.DPS = math.Inf(1)
	}
	return res, nil
}

func validateRatio(r float64) error {
	if !(r >= 0 && r <= 1) {
		return fmt.Errorf("%w: %v (must be in [0,1])", domain.ErrInvalidHeadshotRatio, r)
	}
	return nil
}

func validateStats(s domain.ResolvedWeaponStats) error {
	switch {
	case !(s.FireRate > 0) || math.IsInf(s.FireRate, 0):
		return fmt.Errorf("%w: %q: fire rate must be > 0, got %v", domain.ErrInvalidWeaponConfig, s.WeaponID, s.FireRate)
	case s.MagSize <= 0:
		return fmt.Errorf("%w: %q: magazine size must be > 0, got %d", domain.ErrInvalidWeaponConfig, s.WeaponID, s.MagSize)
	case !(s.Damage > 0):
		return fmt.Errorf("%w: %q: damage must be > 0, got %v", domain.ErrInvalidWeaponConfig, s.WeaponID, s.Damage)
	case !(s.ReloadTime >= 0):
		return fmt.Errorf("%w: %q: reload time must be >= 0, got %v", domain.ErrInvalidWeaponConfig, s.WeaponID, s.ReloadTime)
	case !(s.HeadshotMultiplier >= 1):
		return fmt.Errorf("%w: %q: headshot multiplier must be >= 1, got %v", domain.ErrInvalidWeaponConfig, s.WeaponID, s.HeadshotMultiplier)
	}
	return nil
}
