package output

import (
	"cmp"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"

	"github.com/aurceive/ttk_roster/internal/domain"

	"github.com/xuri/excelize/v2"
)

const (
	resultsSheet   = "Results"
	scenariosSheet = "Scenarios"

	// columns per scenario block
	blockSize = 8
	// first scenario block starts after Weapon and Shield
	firstBlockCol = 3

	instantCell = "instant"
)

var blockHeaders = [blockSize]string{"TTK (s)", "TTK %", "Bullets", "Reloads", "Base Dmg", "Eff Dmg", "Fire Rate", "DPS"}

type resultKey struct {
	Weapon string
	Shield string
}

func keyOf(r domain.Result) resultKey {
	return resultKey{Weapon: r.Weapon, Shield: r.Shield}
}

func colName(n int) string {
	// 1-indexed: 1 -> A, 26 -> Z, 27 -> AA
	if n <= 0 {
		return ""
	}
	out := ""
	for n > 0 {
		n--
		out = string(rune('A'+(n%26))) + out
		n /= 26
	}
	return out
}

func cell(col, row int) string {
	return fmt.Sprintf("%s%d", colName(col), row)
}

// bestTTK is the fastest kill among results; -1 when there is none.
func bestTTK(results []domain.Result) float64 {
	best := -1.0
	for _, r := range results {
		if best < 0 || r.TTK < best {
			best = r.TTK
		}
	}
	return best
}

// ttkRatio is a TTK relative to the best one. With an instant kill as the
// best, only other instant kills have a ratio.
func ttkRatio(ttk, best float64) (float64, bool) {
	switch {
	case best > 0:
		return ttk / best, true
	case best == 0 && ttk == 0:
		return 1, true
	default:
		return 0, false
	}
}

// rowOrder follows the primary scenario sorted by key, then appends rows
// only present in later scenarios by weapon name.
func rowOrder(scenarios []domain.Scenario, byScenario map[string][]domain.Result, key domain.SortKey, descending bool) []resultKey {
	var keys []resultKey
	seen := make(map[resultKey]bool)
	if len(scenarios) > 0 {
		primary := slices.Clone(byScenario[scenarios[0].Name])
		SortResults(primary, key, descending)
		for _, r := range primary {
			if !seen[keyOf(r)] {
				seen[keyOf(r)] = true
				keys = append(keys, keyOf(r))
			}
		}
	}
	var rest []resultKey
	for _, sc := range scenarios {
		for _, r := range byScenario[sc.Name] {
			if !seen[keyOf(r)] {
				seen[keyOf(r)] = true
				rest = append(rest, keyOf(r))
			}
		}
	}
	slices.SortFunc(rest, func(a, b resultKey) int {
		if c := cmp.Compare(a.Weapon, b.Weapon); c != 0 {
			return c
		}
		return cmp.Compare(a.Shield, b.Shield)
	})
	return append(keys, rest...)
}

// ExportResultsXLSX writes one block of columns per scenario and one row per
// (weapon, shield). A second sheet records the level and headshot ratio of
// each scenario so the table can be imported back.
func ExportResultsXLSX(path string, scenarios []domain.Scenario, byScenario map[string][]domain.Result, key domain.SortKey, descending bool) error {
	if len(scenarios) == 0 {
		return fmt.Errorf("export %q: no scenarios", path)
	}

	keys := rowOrder(scenarios, byScenario, key, descending)

	lookup := make(map[string]map[resultKey]domain.Result, len(scenarios))
	for _, sc := range scenarios {
		m := make(map[resultKey]domain.Result)
		for _, r := range byScenario[sc.Name] {
			m[keyOf(r)] = r
		}
		lookup[sc.Name] = m
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", resultsSheet); err != nil {
		return err
	}
	sheet := resultsSheet

	// Row 1: scenario name merged over its block. Row 2: metric names.
	f.SetCellValue(sheet, "A1", "Weapon")
	f.SetCellValue(sheet, "B1", "Shield")
	_ = f.MergeCell(sheet, "A1", "A2")
	_ = f.MergeCell(sheet, "B1", "B2")

	for i, sc := range scenarios {
		start := firstBlockCol + i*blockSize
		_ = f.MergeCell(sheet, cell(start, 1), cell(start+blockSize-1, 1))
		f.SetCellValue(sheet, cell(start, 1), sc.Name)
		for j, h := range blockHeaders {
			f.SetCellValue(sheet, cell(start+j, 2), h)
		}
	}

	headerStyleID, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Font:      &excelize.Font{Bold: true},
	})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", cell(firstBlockCol+len(scenarios)*blockSize-1, 2), headerStyleID); err != nil {
		return err
	}

	best := make(map[string]float64, len(scenarios))
	for _, sc := range scenarios {
		best[sc.Name] = bestTTK(byScenario[sc.Name])
	}

	for rowIdx, k := range keys {
		row := rowIdx + 3
		f.SetCellValue(sheet, cell(1, row), k.Weapon)
		f.SetCellValue(sheet, cell(2, row), k.Shield)

		for i, sc := range scenarios {
			r, ok := lookup[sc.Name][k]
			if !ok {
				continue
			}
			start := firstBlockCol + i*blockSize
			f.SetCellValue(sheet, cell(start, row), r.TTK)
			if pct, ok := ttkRatio(r.TTK, best[sc.Name]); ok {
				f.SetCellValue(sheet, cell(start+1, row), pct)
			}
			f.SetCellValue(sheet, cell(start+2, row), r.BulletsFired)
			f.SetCellValue(sheet, cell(start+3, row), r.Reloads)
			f.SetCellValue(sheet, cell(start+4, row), r.Damage)
			f.SetCellValue(sheet, cell(start+5, row), r.DamagePerBullet)
			f.SetCellValue(sheet, cell(start+6, row), r.FireRate)
			if math.IsInf(r.DPS, 1) {
				f.SetCellValue(sheet, cell(start+7, row), instantCell)
			} else {
				f.SetCellValue(sheet, cell(start+7, row), r.DPS)
			}
		}
	}

	// Percent formatting: 1.0 => 100%
	if len(keys) > 0 {
		styleID, err := f.NewStyle(&excelize.Style{NumFmt: 10})
		if err != nil {
			return err
		}
		lastRow := len(keys) + 2
		for i := range scenarios {
			pctCol := firstBlockCol + i*blockSize + 1
			if err := f.SetCellStyle(sheet, cell(pctCol, 3), cell(pctCol, lastRow), styleID); err != nil {
				return err
			}
		}
	}

	if _, err := f.NewSheet(scenariosSheet); err != nil {
		return err
	}
	f.SetCellValue(scenariosSheet, "A1", "Scenario")
	f.SetCellValue(scenariosSheet, "B1", "Level")
	f.SetCellValue(scenariosSheet, "C1", "Headshot Ratio")
	for i, sc := range scenarios {
		row := i + 2
		f.SetCellValue(scenariosSheet, cell(1, row), sc.Name)
		f.SetCellValue(scenariosSheet, cell(2, row), sc.Level)
		f.SetCellValue(scenariosSheet, cell(3, row), sc.HeadshotRatio)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save xlsx %q: %w", path, err)
	}
	return nil
}
