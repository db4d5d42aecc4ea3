package domain

import (
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

const (
	MinLevel = 1
	MaxLevel = 4

	DefaultHeadshotMultiplier = 1.0
	DefaultBaseHealth         = 100.0
	DefaultBaseDurability     = 100.0
)

// WeaponBase holds the level-1 stats of a weapon as they appear in the catalog.
type WeaponBase struct {
	ID                 string   `yaml:"-"`
	Damage             float64  `yaml:"damage"`
	FireRate           float64  `yaml:"fire_rate"` // bullets per second
	MagSize            int      `yaml:"mag_size"`
	ReloadTime         float64  `yaml:"reload_time"` // seconds
	HeadshotMultiplier float64  `yaml:"headshot_multiplier"`
	Rarity             Rarity   `yaml:"rarity"`
	Upgrades           Upgrades `yaml:"upgrades"`
}

func (w *WeaponBase) UnmarshalYAML(value *yaml.Node) error {
	if err := checkKeys(value, "weapon",
		"damage", "fire_rate", "mag_size", "reload_time", "headshot_multiplier", "rarity", "upgrades",
	); err != nil {
		return err
	}

	type raw WeaponBase
	tmp := raw{
		HeadshotMultiplier: DefaultHeadshotMultiplier,
		Rarity:             RarityCommon,
	}
	if err := value.Decode(&tmp); err != nil {
		return err
	}
	*w = WeaponBase(tmp)
	return nil
}

// UpgradeModifier is the total bonus a weapon has at one upgrade tier.
// Every field is relative to the base (level 1) stats, never to the previous
// tier. A nil field leaves the stat as it was on the previous tier.
type UpgradeModifier struct {
	FireRateIncrease *float64 `yaml:"fire_rate_increase"`
	MagSizeBonus     *float64 `yaml:"mag_size_bonus"`
	ReloadReduction  *float64 `yaml:"reload_reduction"`
	DurabilityBonus  *float64 `yaml:"durability_bonus"`
}

func (m *UpgradeModifier) UnmarshalYAML(value *yaml.Node) error {
	if err := checkKeys(value, "upgrade",
		"fire_rate_increase", "mag_size_bonus", "reload_reduction", "durability_bonus",
	); err != nil {
		return err
	}
	type raw UpgradeModifier
	var tmp raw
	if err := value.Decode(&tmp); err != nil {
		return err
	}
	*m = UpgradeModifier(tmp)
	return nil
}

// Upgrades lists the modifiers per tier. Level 1 never has one.
type Upgrades struct {
	Level2 *UpgradeModifier `yaml:"level2"`
	Level3 *UpgradeModifier `yaml:"level3"`
	Level4 *UpgradeModifier `yaml:"level4"`
}

func (u *Upgrades) UnmarshalYAML(value *yaml.Node) error {
	if err := checkKeys(value, "upgrades", "level2", "level3", "level4"); err != nil {
		return err
	}
	type raw Upgrades
	var tmp raw
	if err := value.Decode(&tmp); err != nil {
		return err
	}
	*u = Upgrades(tmp)
	return nil
}

// For returns the modifier defined for level, or nil.
func (u Upgrades) For(level int) *UpgradeModifier {
	switch level {
	case 2:
		return u.Level2
	case 3:
		return u.Level3
	case 4:
		return u.Level4
	default:
		return nil
	}
}

func (u Upgrades) Empty() bool {
	return u.Level2 == nil && u.Level3 == nil && u.Level4 == nil
}

// ShieldProfile describes the shield worn by the target.
type ShieldProfile struct {
	ID              string  `yaml:"-"`
	DamageReduction float64 `yaml:"damage_reduction"`
	Health          float64 `yaml:"health"`
}

func (s *ShieldProfile) UnmarshalYAML(value *yaml.Node) error {
	if err := checkKeys(value, "shield", "damage_reduction", "health"); err != nil {
		return err
	}
	type raw ShieldProfile
	var tmp raw
	if err := value.Decode(&tmp); err != nil {
		return err
	}
	*s = ShieldProfile(tmp)
	return nil
}

// ResolvedWeaponStats are the concrete stats of a weapon at one upgrade level.
// Levels that change nothing compare equal.
type ResolvedWeaponStats struct {
	WeaponID           string
	Damage             float64
	FireRate           float64
	MagSize            int
	ReloadTime         float64
	Durability         float64
	HeadshotMultiplier float64
}

type EventKind int

const (
	EventShot EventKind = iota
	EventReload
)

func (k EventKind) String() string {
	switch k {
	case EventShot:
		return "shot"
	case EventReload:
		return "reload"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is one entry of the detailed simulation trace.
type Event struct {
	Kind             EventKind
	Time             float64
	Bullet           int
	ReloadNumber     int
	ShieldBefore     float64
	ShieldAfter      float64
	HealthBefore     float64
	HealthAfter      float64
	ShieldActive     bool
	BulletsRemaining int
}

// ShieldBroken reports whether this shot took the shield down.
func (e Event) ShieldBroken() bool {
	return e.Kind == EventShot && e.ShieldActive && e.ShieldAfter <= 0
}

type SimulationResult struct {
	TTK             float64
	BulletsFired    int
	Reloads         int
	DamagePerBullet float64
	DPS             float64
	Events          []Event
}

// Instant reports a kill by the very first bullet, where DPS is unbounded.
func (r SimulationResult) Instant() bool {
	return math.IsInf(r.DPS, 1)
}

// Scenario is one (level, headshot ratio) combination a batch is run for.
type Scenario struct {
	Name          string
	Level         int
	HeadshotRatio float64
}

// Result is one row of a ranked table.
type Result struct {
	Weapon          string
	Shield          string
	Level           int
	HeadshotRatio   float64
	TTK             float64
	BulletsFired    int
	Reloads         int
	Damage          float64
	DamagePerBullet float64
	FireRate        float64
	DPS             float64
}
