package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aurceive/ttk_roster/internal/domain"

	"github.com/stretchr/testify/assert"
)

func sampleSummary() Summary {
	return Summary{
		Stats: domain.ResolvedWeaponStats{
			WeaponID: "test", Damage: 10, FireRate: 10, MagSize: 20,
			ReloadTime: 2, Durability: 100, HeadshotMultiplier: 1,
		},
		Level:      1,
		Shield:     domain.ShieldProfile{ID: "half", DamageReduction: 0.5, Health: 5},
		BaseHealth: 100,
		Result: domain.SimulationResult{
			TTK: 0.1, BulletsFired: 2, DamagePerBullet: 10, DPS: 200,
			Events: []domain.Event{
				{Kind: domain.EventShot, Bullet: 1, ShieldBefore: 5, ShieldAfter: 0, HealthBefore: 100, HealthAfter: 95, ShieldActive: true, BulletsRemaining: 19},
				{Kind: domain.EventShot, Time: 0.1, Bullet: 2, HealthBefore: 95, HealthAfter: -5, BulletsRemaining: 18},
			},
		},
	}
}

func TestPrintSummary(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	PrintSummary(&buf, sampleSummary())
	out := buf.String()

	assert.Contains(t, out, "Gun: test (Level 1)")
	assert.Contains(t, out, "Shield damage reduction: 50.0%")
	assert.Contains(t, out, "Time to Kill: 0.100 seconds")
	assert.Contains(t, out, "Bullets fired: 2")
	assert.NotContains(t, out, "Headshot ratio")
}

func TestPrintDetailedLog(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	PrintDetailedLog(&buf, sampleSummary())
	out := buf.String()

	assert.Equal(t, 1, strings.Count(out, "SHIELD BROKEN!"))
	assert.Equal(t, 1, strings.Count(out, "TARGET ELIMINATED"))
	assert.Contains(t, out, "Shield Health: 5.0 -> 0.0 (lost 5.0)")
	assert.Contains(t, out, "Health: 95.0 -> -5.0 (lost 100.0)")
	assert.Contains(t, out, "Total Bullets Fired: 2")
}

func TestPrintRanked(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	results := sampleResults()
	SortResults(results, domain.SortByTTK, false)
	PrintRanked(&buf, "Level 1 - Normal Shots (0% Headshots)", "medium", results)
	out := buf.String()

	assert.Contains(t, out, "Level 1 - Normal Shots (0% Headshots)")
	assert.Less(t, strings.Index(out, "anvil"), strings.Index(out, "ferro"))
	assert.Contains(t, out, "instant")

	buf.Reset()
	PrintRanked(&buf, "empty", "medium", nil)
	assert.Contains(t, buf.String(), "No results")
}

func TestPrintComparisonAndStats(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	PrintComparison(&buf, "kettle", "medium", []domain.Result{
		{Weapon: "kettle", Level: 1, HeadshotRatio: 0, TTK: 1.5, BulletsFired: 12},
		{Weapon: "kettle", Level: 4, HeadshotRatio: 1, TTK: 0.8, BulletsFired: 7},
	})
	out := buf.String()
	assert.Contains(t, out, "KETTLE - TTK Comparison Table")
	assert.Contains(t, out, "Headshots")

	buf.Reset()
	l1 := domain.ResolvedWeaponStats{WeaponID: "kettle", Damage: 10, FireRate: 7.415, MagSize: 20, ReloadTime: 3, Durability: 100}
	l2 := l1
	l2.ReloadTime = 2.61
	PrintStatsByLevel(&buf, "kettle", [domain.MaxLevel]domain.ResolvedWeaponStats{l1, l2, l2, l2})
	out = buf.String()
	assert.Contains(t, out, "KETTLE - Stats by Level")
	assert.Contains(t, out, "13.0%")
}
