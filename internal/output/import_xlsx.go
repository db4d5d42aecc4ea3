package output

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aurceive/ttk_roster/internal/domain"

	"github.com/xuri/excelize/v2"
)

func parseFloatCell(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if strings.EqualFold(s, instantCell) {
		return math.Inf(1), true
	}
	// Handle percent formatting (e.g. "120.00%" or "120,00%")
	isPct := strings.HasSuffix(s, "%")
	if isPct {
		s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	}
	// Handle comma decimal separator.
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ",", ".")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if isPct {
		v /= 100.0
	}
	return v, true
}

func parseIntCell(s string) (int, bool) {
	v, ok := parseFloatCell(s)
	if !ok || math.IsInf(v, 0) {
		return 0, false
	}
	return int(v), true
}

// ImportResultsXLSX reads a table written by ExportResultsXLSX and returns the
// scenario column order and per-scenario results.
func ImportResultsXLSX(path string) ([]domain.Scenario, map[string][]domain.Result, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open xlsx %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	for _, s := range []string{resultsSheet, scenariosSheet} {
		if idx, _ := f.GetSheetIndex(s); idx == -1 {
			return nil, nil, fmt.Errorf("xlsx %q: missing sheet %q", filepath.Base(path), s)
		}
	}

	raw := excelize.Options{RawCellValue: true}

	var scenarios []domain.Scenario
	for row := 2; ; row++ {
		name, err := f.GetCellValue(scenariosSheet, cell(1, row))
		if err != nil {
			return nil, nil, fmt.Errorf("read %s!%s: %w", scenariosSheet, cell(1, row), err)
		}
		name = strings.TrimSpace(name)
		if name == "" {
			break
		}
		levelStr, _ := f.GetCellValue(scenariosSheet, cell(2, row), raw)
		ratioStr, _ := f.GetCellValue(scenariosSheet, cell(3, row), raw)
		level, ok := parseIntCell(levelStr)
		if !ok {
			return nil, nil, fmt.Errorf("xlsx %q: scenario %q: bad level %q", filepath.Base(path), name, levelStr)
		}
		ratio, ok := parseFloatCell(ratioStr)
		if !ok {
			return nil, nil, fmt.Errorf("xlsx %q: scenario %q: bad headshot ratio %q", filepath.Base(path), name, ratioStr)
		}
		scenarios = append(scenarios, domain.Scenario{Name: name, Level: level, HeadshotRatio: ratio})
	}

	// Block headers must line up with the scenario sheet.
	for i, sc := range scenarios {
		got, _ := f.GetCellValue(resultsSheet, cell(firstBlockCol+i*blockSize, 1))
		if strings.TrimSpace(got) != sc.Name {
			return nil, nil, fmt.Errorf("xlsx %q: column block %d is %q, want %q", filepath.Base(path), i+1, got, sc.Name)
		}
	}

	out := make(map[string][]domain.Result, len(scenarios))
	for row := 3; ; row++ {
		weapon, _ := f.GetCellValue(resultsSheet, cell(1, row))
		shield, _ := f.GetCellValue(resultsSheet, cell(2, row))
		weapon = strings.TrimSpace(weapon)
		shield = strings.TrimSpace(shield)
		if weapon == "" && shield == "" {
			break
		}
		if weapon == "" {
			// Skip malformed/partial rows.
			continue
		}

		for i, sc := range scenarios {
			start := firstBlockCol + i*blockSize
			values := make([]string, blockSize)
			for j := range values {
				values[j], _ = f.GetCellValue(resultsSheet, cell(start+j, row), raw)
			}
			ttk, ok := parseFloatCell(values[0])
			if !ok {
				continue
			}
			bullets, _ := parseIntCell(values[2])
			reloads, _ := parseIntCell(values[3])
			dmg, _ := parseFloatCell(values[4])
			eff, _ := parseFloatCell(values[5])
			fireRate, _ := parseFloatCell(values[6])
			dps, _ := parseFloatCell(values[7])

			out[sc.Name] = append(out[sc.Name], domain.Result{
				Weapon:          weapon,
				Shield:          shield,
				Level:           sc.Level,
				HeadshotRatio:   sc.HeadshotRatio,
				TTK:             ttk,
				BulletsFired:    bullets,
				Reloads:         reloads,
				Damage:          dmg,
				DamagePerBullet: eff,
				FireRate:        fireRate,
				DPS:             dps,
			})
		}
	}
	return scenarios, out, nil
}
