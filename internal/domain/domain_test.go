package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestConfigUnmarshal_RejectsUnknownKeys(t *testing.T) {
	t.Parallel()

	var cfg Config
	in := "" +
		"shield: medium\n" +
		"levels: [1, 4]\n" +
		"unknown_key: 123\n"

	err := yaml.Unmarshal([]byte(in), &cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown_key")
}

func TestConfigUnmarshal_KeepsDefaultsForAbsentKeys(t *testing.T) {
	t.Parallel()

	cfg := Config{Shield: "medium", Parallelism: 4, Levels: []int{1, 4}}
	in := "" +
		"levels: [2]\n" +
		"weapons:\n" +
		"  - kettle\n" +
		"  - ferro\n"

	require.NoError(t, yaml.Unmarshal([]byte(in), &cfg))
	assert.Equal(t, "medium", cfg.Shield)
	assert.Equal(t, 4, cfg.Parallelism)
	assert.Equal(t, []int{2}, cfg.Levels)
	assert.Equal(t, []string{"kettle", "ferro"}, cfg.Weapons)
}

func TestWeaponBaseUnmarshal_Defaults(t *testing.T) {
	t.Parallel()

	var w WeaponBase
	in := "damage: 10\nfire_rate: 7.5\nmag_size: 20\nreload_time: 3\n"
	require.NoError(t, yaml.Unmarshal([]byte(in), &w))

	assert.Equal(t, DefaultHeadshotMultiplier, w.HeadshotMultiplier)
	assert.Equal(t, RarityCommon, w.Rarity)
	assert.True(t, w.Upgrades.Empty())
}

func TestWeaponBaseUnmarshal_Upgrades(t *testing.T) {
	t.Parallel()

	in := "" +
		"damage: 67.5\n" +
		"fire_rate: 0.694\n" +
		"mag_size: 5\n" +
		"reload_time: 2\n" +
		"upgrades:\n" +
		"  level2: {fire_rate_increase: 0.175, mag_size_bonus: 1}\n" +
		"  level4: {durability_bonus: 0}\n"

	var w WeaponBase
	require.NoError(t, yaml.Unmarshal([]byte(in), &w))

	require.NotNil(t, w.Upgrades.For(2))
	assert.Nil(t, w.Upgrades.For(3))
	require.NotNil(t, w.Upgrades.For(4))
	assert.Nil(t, w.Upgrades.For(1))
	assert.Nil(t, w.Upgrades.For(5))

	lvl2 := w.Upgrades.For(2)
	require.NotNil(t, lvl2.FireRateIncrease)
	assert.InDelta(t, 0.175, *lvl2.FireRateIncrease, 1e-12)
	assert.Nil(t, lvl2.ReloadReduction)

	// An explicit zero is still a defined field.
	require.NotNil(t, w.Upgrades.Level4.DurabilityBonus)
	assert.Zero(t, *w.Upgrades.Level4.DurabilityBonus)
}

func TestWeaponBaseUnmarshal_RejectsUnknownUpgradeKey(t *testing.T) {
	t.Parallel()

	in := "" +
		"damage: 10\n" +
		"upgrades:\n" +
		"  level2: {bullet_velocity: 0.25}\n"

	var w WeaponBase
	err := yaml.Unmarshal([]byte(in), &w)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bullet_velocity")
}

func TestParseSortKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    SortKey
		wantErr bool
	}{
		{"", SortByTTK, false},
		{"ttk", SortByTTK, false},
		{"DPS", SortByDPS, false},
		{"bullets_fired", SortByBullets, false},
		{" name ", SortByName, false},
		{"damage", SortByTTK, true},
	}
	for _, tt := range tests {
		got, err := ParseSortKey(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "ParseSortKey(%q)", tt.in)
			continue
		}
		require.NoError(t, err, "ParseSortKey(%q)", tt.in)
		assert.Equal(t, tt.want, got, "ParseSortKey(%q)", tt.in)
	}
}

func TestParseRarity(t *testing.T) {
	t.Parallel()

	r, err := ParseRarity("")
	require.NoError(t, err)
	assert.Equal(t, RarityCommon, r)

	r, err = ParseRarity("Epic")
	require.NoError(t, err)
	assert.Equal(t, RarityEpic, r)
	assert.Greater(t, r.Rank(), RarityRare.Rank())

	_, err = ParseRarity("mythic")
	assert.Error(t, err)
	assert.False(t, Rarity("mythic").Valid())
}

func TestEventShieldBroken(t *testing.T) {
	t.Parallel()

	assert.True(t, Event{Kind: EventShot, ShieldActive: true, ShieldAfter: 0}.ShieldBroken())
	assert.False(t, Event{Kind: EventShot, ShieldActive: true, ShieldAfter: 5}.ShieldBroken())
	assert.False(t, Event{Kind: EventShot, ShieldActive: false}.ShieldBroken())
	assert.False(t, Event{Kind: EventReload}.ShieldBroken())
}
