package app

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

func tableSuffix(shield string) string {
	return fmt.Sprintf("_ttk_roster_%s.xlsx", shield)
}

func defaultTablePath(outDir, shield string, now time.Time) string {
	// yearmonthday
	return filepath.Join(outDir, now.Format("20060102")+tableSuffix(shield))
}

func findExistingResultTable(outDir, shield string, now time.Time) (string, bool, error) {
	entries, err := os.ReadDir(outDir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, err
	}

	wantSuffix := tableSuffix(shield)
	today := now.Format("20060102")

	candidates := make([]string, 0, 8)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		// Only consider today's outputs.
		if !strings.HasPrefix(name, today) {
			continue
		}
		// Keep it strict: only our expected naming convention.
		if !strings.HasSuffix(name, wantSuffix) {
			continue
		}
		candidates = append(candidates, filepath.Join(outDir, name))
	}
	if len(candidates) == 0 {
		return "", false, nil
	}

	sort.Strings(candidates)
	return candidates[len(candidates)-1], true, nil
}
