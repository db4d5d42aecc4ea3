// Package catalog holds the static weapon and shield tables and resolves
// per-level weapon stats from them.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/aurceive/ttk_roster/internal/domain"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
	defaultErr  error
)

// Catalog is read-only after Load. Resolved stats are memoized per weapon.
type Catalog struct {
	BaseHealth     float64
	BaseDurability float64

	weapons map[string]domain.WeaponBase
	shields map[string]domain.ShieldProfile

	mu       sync.RWMutex
	resolved map[string][domain.MaxLevel]domain.ResolvedWeaponStats
}

type file struct {
	BaseHealth     float64                         `yaml:"base_health"`
	BaseDurability float64                         `yaml:"base_durability"`
	Shields        map[string]domain.ShieldProfile `yaml:"shields"`
	Weapons        map[string]domain.WeaponBase    `yaml:"weapons"`
}

func (f *file) UnmarshalYAML(value *yaml.Node) error {
	if value != nil && value.Kind == yaml.MappingNode {
		allowed := map[string]struct{}{
			"base_health":     {},
			"base_durability": {},
			"shields":         {},
			"weapons":         {},
		}
		for i := 0; i+1 < len(value.Content); i += 2 {
			k := value.Content[i]
			if k.Kind != yaml.ScalarNode {
				continue
			}
			if _, ok := allowed[k.Value]; !ok {
				return fmt.Errorf("catalog: unsupported key %q", k.Value)
			}
		}
	}

	type raw file
	tmp := raw{
		BaseHealth:     domain.DefaultBaseHealth,
		BaseDurability: domain.DefaultBaseDurability,
	}
	if err := value.Decode(&tmp); err != nil {
		return err
	}
	*f = file(tmp)
	return nil
}

// Weapon and shield ids are matched case-insensitively.
func normalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// Load parses and validates a catalog document.
func Load(b []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	// An empty document never reaches UnmarshalYAML.
	if f.BaseHealth == 0 && f.BaseDurability == 0 && f.Weapons == nil && f.Shields == nil {
		f.BaseHealth = domain.DefaultBaseHealth
		f.BaseDurability = domain.DefaultBaseDurability
	}

	c := New(f.BaseHealth, f.BaseDurability)
	for key, w := range f.Weapons {
		id := normalizeID(key)
		if _, dup := c.weapons[id]; dup {
			return nil, fmt.Errorf("%w: weapon %q is defined twice (ids are case-insensitive)", domain.ErrInvalidWeaponConfig, id)
		}
		w.ID = id
		c.weapons[id] = w
	}
	for key, s := range f.Shields {
		id := normalizeID(key)
		if _, dup := c.shields[id]; dup {
			return nil, fmt.Errorf("%w: shield %q is defined twice (ids are case-insensitive)", domain.ErrInvalidShield, id)
		}
		s.ID = id
		c.shields[id] = s
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadFile reads a catalog from path.
func LoadFile(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog (%s): %w", path, err)
	}
	c, err := Load(b)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Default returns the built-in catalog. It is parsed once and shared.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCat, defaultErr = Load(defaultCatalog)
	})
	return defaultCat, defaultErr
}

// New returns an empty catalog. Use AddWeapon and AddShield to fill it, then Validate.
// Neither may be called once the catalog is shared.
func New(baseHealth, baseDurability float64) *Catalog {
	return &Catalog{
		BaseHealth:     baseHealth,
		BaseDurability: baseDurability,
		weapons:        make(map[string]domain.WeaponBase),
		shields:        make(map[string]domain.ShieldProfile),
		resolved:       make(map[string][domain.MaxLevel]domain.ResolvedWeaponStats),
	}
}

func (c *Catalog) AddWeapon(w domain.WeaponBase) {
	if w.HeadshotMultiplier == 0 {
		w.HeadshotMultiplier = domain.DefaultHeadshotMultiplier
	}
	if w.Rarity == "" {
		w.Rarity = domain.RarityCommon
	}
	w.ID = normalizeID(w.ID)
	c.weapons[w.ID] = w
	delete(c.resolved, w.ID)
}

func (c *Catalog) AddShield(s domain.ShieldProfile) {
	s.ID = normalizeID(s.ID)
	c.shields[s.ID] = s
}

func (c *Catalog) Weapon(id string) (domain.WeaponBase, error) {
	w, ok := c.weapons[normalizeID(id)]
	if !ok {
		return domain.WeaponBase{}, fmt.Errorf("%w: %q", domain.ErrInvalidWeapon, id)
	}
	return w, nil
}

func (c *Catalog) Shield(id string) (domain.ShieldProfile, error) {
	s, ok := c.shields[normalizeID(id)]
	if !ok {
		return domain.ShieldProfile{}, fmt.Errorf("%w: %q (known: %v)", domain.ErrInvalidShield, id, c.ShieldIDs())
	}
	return s, nil
}

// WeaponIDs returns all weapon ids in lexical order.
func (c *Catalog) WeaponIDs() []string {
	ids := make([]string, 0, len(c.weapons))
	for id := range c.weapons {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// ShieldIDs returns all shield ids in lexical order.
func (c *Catalog) ShieldIDs() []string {
	ids := make([]string, 0, len(c.shields))
	for id := range c.shields {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
