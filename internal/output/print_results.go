package output

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/aurceive/ttk_roster/internal/domain"
)

// Summary is everything the summary and log printers show for one simulation.
type Summary struct {
	Stats         domain.ResolvedWeaponStats
	Level         int
	Shield        domain.ShieldProfile
	BaseHealth    float64
	HeadshotRatio float64
	Result        domain.SimulationResult
}

func rule(w io.Writer, n int) {
	fmt.Fprintln(w, strings.Repeat("=", n))
}

func formatDPS(v float64) string {
	if math.IsInf(v, 1) {
		return "instant"
	}
	return fmt.Sprintf("%.1f", v)
}

func PrintSummary(w io.Writer, s Summary) {
	fmt.Fprintln(w)
	rule(w, 60)
	fmt.Fprintln(w, "TTK Calculation Summary")
	rule(w, 60)
	fmt.Fprintf(w, "Gun: %s (Level %d)\n", s.Stats.WeaponID, s.Level)
	fmt.Fprintf(w, "  - Base damage per bullet: %g\n", s.Stats.Damage)
	if s.HeadshotRatio > 0 {
		fmt.Fprintf(w, "  - Headshot ratio: %.1f%%\n", s.HeadshotRatio*100)
		fmt.Fprintf(w, "  - Headshot multiplier: %gx\n", s.Stats.HeadshotMultiplier)
		fmt.Fprintf(w, "  - Effective damage per bullet: %.2f\n", s.Result.DamagePerBullet)
	} else {
		fmt.Fprintf(w, "  - Damage per bullet: %g\n", s.Result.DamagePerBullet)
	}
	fmt.Fprintf(w, "  - Firerate: %g bullets/second\n", s.Stats.FireRate)
	fmt.Fprintf(w, "  - Magazine size: %d\n", s.Stats.MagSize)
	fmt.Fprintf(w, "  - Reload time: %.3f seconds\n", s.Stats.ReloadTime)
	fmt.Fprintf(w, "  - Durability: %g\n", s.Stats.Durability)
	fmt.Fprintf(w, "Shield type: %s\n", s.Shield.ID)
	fmt.Fprintf(w, "  - Shield health: %g\n", s.Shield.Health)
	fmt.Fprintf(w, "  - Shield damage reduction: %.1f%%\n", s.Shield.DamageReduction*100)
	fmt.Fprintf(w, "Base health: %g\n", s.BaseHealth)
	fmt.Fprintf(w, "\nTime to Kill: %.3f seconds\n", s.Result.TTK)
	fmt.Fprintf(w, "Bullets fired: %d\n", s.Result.BulletsFired)
	fmt.Fprintf(w, "Reloads required: %d\n", s.Result.Reloads)
	fmt.Fprintf(w, "DPS: %s\n", formatDPS(s.Result.DPS))
	rule(w, 60)
	fmt.Fprintln(w)
}

// PrintDetailedLog prints every shot and reload of a detailed simulation.
// A result simulated without detail prints only the header and totals.
func PrintDetailedLog(w io.Writer, s Summary) {
	fmt.Fprintln(w)
	rule(w, 80)
	fmt.Fprintln(w, "Detailed Damage Log - Step by Step Breakdown")
	rule(w, 80)
	fmt.Fprintf(w, "Gun: %s (Level %d) | Shield: %s\n", s.Stats.WeaponID, s.Level, s.Shield.ID)
	rule(w, 80)
	fmt.Fprintln(w)

	last := len(s.Result.Events) - 1
	for i, ev := range s.Result.Events {
		fmt.Fprintf(w, "--- Entry #%d ---\n", i+1)
		switch ev.Kind {
		case domain.EventReload:
			fmt.Fprintln(w, "  Event: RELOAD")
			fmt.Fprintf(w, "  Time: %.3f seconds\n", ev.Time)
			fmt.Fprintln(w, "  Description: Magazine emptied. Reloading weapon...")
			fmt.Fprintf(w, "  Reload Number: %d\n", ev.ReloadNumber)
			fmt.Fprintf(w, "  Magazine Status: Refilled to %d bullets\n", s.Stats.MagSize)
		case domain.EventShot:
			fmt.Fprintln(w, "  Event: BULLET FIRED")
			fmt.Fprintf(w, "  Time: %.3f seconds\n", ev.Time)
			fmt.Fprintf(w, "  Bullet Number: #%d\n", ev.Bullet)
			fmt.Fprintf(w, "  Damage Dealt: %g\n", s.Result.DamagePerBullet)
			healthLost := ev.HealthBefore - ev.HealthAfter
			if ev.ShieldActive {
				fmt.Fprintln(w, "  Shield Status: ACTIVE")
				fmt.Fprintf(w, "    - Shield Health: %.1f -> %.1f (lost %.1f)\n", ev.ShieldBefore, ev.ShieldAfter, ev.ShieldBefore-ev.ShieldAfter)
				fmt.Fprintf(w, "    - Health: %.1f -> %.1f (lost %.1f due to shield reduction)\n", ev.HealthBefore, ev.HealthAfter, healthLost)
				if ev.ShieldBroken() {
					fmt.Fprintln(w, "    - SHIELD BROKEN! All future damage goes directly to health.")
				}
			} else {
				fmt.Fprintln(w, "  Shield Status: BROKEN (no protection)")
				fmt.Fprintln(w, "    - Shield Health: 0 (no shield)")
				fmt.Fprintf(w, "    - Health: %.1f -> %.1f (lost %.1f)\n", ev.HealthBefore, ev.HealthAfter, healthLost)
			}
			fmt.Fprintf(w, "  Magazine: %d bullets remaining\n", ev.BulletsRemaining)
			if i == last && ev.HealthAfter <= 0 {
				fmt.Fprintln(w, "  *** TARGET ELIMINATED! ***")
			}
		}
		fmt.Fprintln(w)
	}

	rule(w, 80)
	fmt.Fprintln(w, "Summary:")
	fmt.Fprintf(w, "  Final TTK: %.3f seconds\n", s.Result.TTK)
	fmt.Fprintf(w, "  Total Bullets Fired: %d\n", s.Result.BulletsFired)
	fmt.Fprintf(w, "  Total Reloads: %d\n", s.Result.Reloads)
	rule(w, 80)
	fmt.Fprintln(w)
}

// PrintComparison prints one weapon across scenarios, one row per result.
func PrintComparison(w io.Writer, weaponID, shieldID string, rows []domain.Result) {
	fmt.Fprintln(w)
	rule(w, 90)
	fmt.Fprintf(w, "%s - TTK Comparison Table\n", strings.ToUpper(weaponID))
	rule(w, 90)
	fmt.Fprintf(w, "Shield Type: %s\n", shieldID)
	rule(w, 90)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%-12s %-15s %-15s %-18s\n", "Level", "Shot Type", "TTK (seconds)", "Bullets to Kill")
	fmt.Fprintln(w, strings.Repeat("-", 90))
	for _, r := range rows {
		fmt.Fprintf(w, "%-12s %-15s %-15.3f %-18d\n", fmt.Sprintf("Level %d", r.Level), shotType(r.HeadshotRatio), r.TTK, r.BulletsFired)
	}
	rule(w, 90)
	fmt.Fprintln(w)
}

func shotType(ratio float64) string {
	switch ratio {
	case 0:
		return "Normal"
	case 1:
		return "Headshots"
	default:
		return fmt.Sprintf("%.0f%% Headshots", ratio*100)
	}
}

func PrintStatsByLevel(w io.Writer, weaponID string, levels [domain.MaxLevel]domain.ResolvedWeaponStats) {
	fmt.Fprintln(w)
	rule(w, 80)
	fmt.Fprintf(w, "%s - Stats by Level\n", strings.ToUpper(weaponID))
	rule(w, 80)
	fmt.Fprintln(w)

	base := levels[0]
	fmt.Fprintln(w, "Base Stats (Level 1):")
	fmt.Fprintf(w, "  Damage: %g | Fire Rate: %.3f BPS | Mag: %d | Reload: %.3fs | Durability: %g\n",
		base.Damage, base.FireRate, base.MagSize, base.ReloadTime, base.Durability)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%-8s %-10s %-12s %-6s %-15s %-12s %-15s\n", "Level", "Damage", "Fire Rate", "Mag", "Reload Time", "Durability", "Reload Reduction")
	fmt.Fprintln(w, strings.Repeat("-", 80))
	for i, st := range levels {
		reduction := 0.0
		if i > 0 && base.ReloadTime > 0 {
			reduction = (base.ReloadTime - st.ReloadTime) / base.ReloadTime * 100
		}
		fmt.Fprintf(w, "%-8d %-10g %-12.3f %-6d %-15.3f %-12g %.1f%%\n",
			i+1, st.Damage, st.FireRate, st.MagSize, st.ReloadTime, st.Durability, reduction)
	}
}

// PrintRanked prints results in the given order with a 1-based rank.
func PrintRanked(w io.Writer, title, shieldID string, results []domain.Result) {
	fmt.Fprintln(w)
	rule(w, 100)
	fmt.Fprintf(w, "All Guns Ranked - %s\n", title)
	rule(w, 100)
	fmt.Fprintf(w, "Shield Type: %s\n", shieldID)
	rule(w, 100)
	fmt.Fprintln(w)

	if len(results) == 0 {
		fmt.Fprintln(w, "No results")
		return
	}

	fmt.Fprintf(w, "%-6s %-12s %-10s %-10s %-10s %-10s %-10s %-12s %-10s\n",
		"Rank", "Gun Name", "TTK (s)", "Bullets", "Reloads", "Base Dmg", "Eff Dmg", "Fire Rate", "DPS")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	for i, r := range results {
		fmt.Fprintf(w, "%-6d %-12s %-10.3f %-10d %-10d %-10g %-10.2f %-12.3f %-10s\n",
			i+1, r.Weapon, r.TTK, r.BulletsFired, r.Reloads, r.Damage, r.DamagePerBullet, r.FireRate, formatDPS(r.DPS))
	}
	rule(w, 100)
	fmt.Fprintln(w)
}
