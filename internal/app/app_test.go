package app

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aurceive/ttk_roster/internal/config"
	"github.com/aurceive/ttk_roster/internal/output"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

// runIn runs the app against a config file in a fresh temp dir.
func runIn(t *testing.T, configYAML string, opts Options) (code int, dir, stdout, stderr string) {
	t.Helper()
	dir = t.TempDir()
	path := filepath.Join(dir, config.FileName)
	if configYAML != "" {
		require.NoError(t, os.WriteFile(path, []byte(configYAML), 0o644))
	}
	var out, errOut bytes.Buffer
	opts.ConfigPath = path
	opts.Stdout = &out
	opts.Stderr = &errOut
	code = RunWithOptions(opts)
	return code, dir, out.String(), errOut.String()
}

func TestRun_RankDefaults(t *testing.T) {
	code, _, out, errOut := runIn(t, "", Options{})
	require.Equal(t, 0, code, errOut)

	assert.Contains(t, out, "Level 1 - Normal Shots (0% Headshots)")
	assert.Contains(t, out, "Level 1 - All Headshots (100% Headshots)")
	assert.Contains(t, out, "Level 4 - Normal Shots (0% Headshots)")
	assert.Contains(t, out, "Level 4 - All Headshots (100% Headshots)")
	assert.Contains(t, out, "kettle")
	assert.NotContains(t, out, "Exported results")
}

func TestRun_RankCustomRatioUsesTopLevel(t *testing.T) {
	code, _, out, errOut := runIn(t, "", Options{Headshot: floatPtr(0.35), Weapon: "kettle,ferro"})
	require.Equal(t, 0, code, errOut)

	assert.Contains(t, out, "Level 4 - 35% Headshots")
	assert.NotContains(t, out, "Level 1")
	assert.NotContains(t, out, "bobcat")
}

func TestRun_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"unknown mode", Options{Mode: "duel"}},
		{"summary without weapon", Options{Mode: ModeSummary}},
		{"compare with two weapons", Options{Mode: ModeCompare, Weapon: "kettle,ferro"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, _, errOut := runIn(t, "", tt.opts)
			assert.Equal(t, 2, code)
			assert.NotEmpty(t, errOut)
		})
	}
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name   string
		config string
		opts   Options
	}{
		{"unknown weapon", "", Options{Mode: ModeSummary, Weapon: "railgun"}},
		{"unknown shield", "", Options{Shield: "tower"}},
		{"level out of range", "", Options{Mode: ModeSummary, Weapon: "kettle", Level: intPtr(5)}},
		{"bad config key", "shieldz: heavy\n", Options{}},
		{"duplicate scenario", "levels: [4, 4]\n", Options{}},
		{"missing catalog", "catalog_path: nope.yaml\n", Options{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, _, errOut := runIn(t, tt.config, tt.opts)
			assert.Equal(t, 1, code)
			assert.NotEmpty(t, errOut)
		})
	}
}

func TestRun_Summary(t *testing.T) {
	code, _, out, errOut := runIn(t, "", Options{Mode: ModeSummary, Weapon: "kettle", Shield: "light"})
	require.Equal(t, 0, code, errOut)

	assert.Contains(t, out, "Gun: kettle (Level 1)")
	assert.Contains(t, out, "Bullets fired: 12")
	assert.NotContains(t, out, "Detailed Damage Log")
}

func TestRun_Log(t *testing.T) {
	code, _, out, errOut := runIn(t, "", Options{Mode: ModeLog, Weapon: "kettle", Shield: "light"})
	require.Equal(t, 0, code, errOut)

	assert.Contains(t, out, "Detailed Damage Log")
	assert.Contains(t, out, "SHIELD BROKEN!")
	assert.Contains(t, out, "TARGET ELIMINATED")
}

func TestRun_CompareAndStats(t *testing.T) {
	code, _, out, errOut := runIn(t, "", Options{Mode: ModeCompare, Weapon: "kettle"})
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "KETTLE - TTK Comparison Table")

	code, _, out, errOut = runIn(t, "", Options{Mode: ModeStats, Weapon: "kettle"})
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "KETTLE - Stats by Level")
	assert.NotContains(t, out, "FERRO")
}

func TestRun_ExportAndMerge(t *testing.T) {
	cfg := "output_table_path: out/ranked.xlsx\nweapons: [kettle]\nlevels: [1]\nheadshot_ratios: [0]\n"
	code, dir, out, errOut := runIn(t, cfg, Options{})
	require.Equal(t, 0, code, errOut)

	first := filepath.Join(dir, "out", "ranked.xlsx")
	assert.Contains(t, out, "Exported results to "+first)
	scenarios, results, err := output.ImportResultsXLSX(first)
	require.NoError(t, err)
	require.Len(t, scenarios, 1)
	require.Len(t, results[scenarios[0].Name], 1)

	// Second run ranks another weapon and merges the first table in.
	cfg2 := "output_table_path: merged.xlsx\nbase_table_path: " + first + "\nweapons: [ferro]\nlevels: [1]\nheadshot_ratios: [0]\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte(cfg2), 0o644))
	var stdout, stderr bytes.Buffer
	code = RunWithOptions(Options{ConfigPath: filepath.Join(dir, config.FileName), Stdout: &stdout, Stderr: &stderr})
	require.Equal(t, 0, code, stderr.String())

	_, merged, err := output.ImportResultsXLSX(filepath.Join(dir, "merged.xlsx"))
	require.NoError(t, err)
	var names []string
	for _, r := range merged[scenarios[0].Name] {
		names = append(names, r.Weapon)
	}
	assert.ElementsMatch(t, []string{"kettle", "ferro"}, names)
}

func TestRun_ExportDefaultPath(t *testing.T) {
	code, dir, _, errOut := runIn(t, "weapons: [kettle]\n", Options{XLSX: true})
	require.Equal(t, 0, code, errOut)

	want := defaultTablePath(filepath.Join(dir, "output", "ttk_roster"), "medium", time.Now())
	_, err := os.Stat(want)
	assert.NoError(t, err)
}

func TestFindRootFrom(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, config.FileName), nil, 0o644))
	nested := filepath.Join(root, "cmd", "ttk_roster")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	got, err := findRootFrom(nested)
	require.NoError(t, err)
	assert.Equal(t, root, got)

	_, err = findRootFrom(t.TempDir())
	if err != nil {
		assert.ErrorIs(t, err, ErrRootNotFound)
	}
}

func TestFindExistingResultTable(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	now := time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)

	_, ok, err := findExistingResultTable(filepath.Join(dir, "missing"), "medium", now)
	require.NoError(t, err)
	assert.False(t, ok)

	for _, name := range []string{
		"20240502_ttk_roster_medium.xlsx",
		"20240501_ttk_roster_medium.xlsx",
		"20240502_ttk_roster_heavy.xlsx",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	got, ok, err := findExistingResultTable(dir, "medium", now)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "20240502_ttk_roster_medium.xlsx"), got)
	assert.Equal(t, got, defaultTablePath(dir, "medium", now))
}

func TestAsExitError(t *testing.T) {
	t.Parallel()

	ee, ok := asExitError(ExitWithError(2, assert.AnError))
	require.True(t, ok)
	assert.Equal(t, 2, ee.Code)
	assert.ErrorIs(t, ee, assert.AnError)

	_, ok = asExitError(assert.AnError)
	assert.False(t, ok)
}

func TestRun_MixedCaseCatalogIDs(t *testing.T) {
	dir := t.TempDir()
	catalogYAML := "" +
		"shields:\n" +
		"  Medium: {damage_reduction: 0.5, health: 40}\n" +
		"weapons:\n" +
		"  Kettle: {damage: 10, fire_rate: 10, mag_size: 20, reload_time: 2}\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "guns.yaml"), []byte(catalogYAML), 0o644))
	cfgPath := filepath.Join(dir, config.FileName)
	require.NoError(t, os.WriteFile(cfgPath, []byte("catalog_path: guns.yaml\n"), 0o644))

	var stdout, stderr bytes.Buffer
	code := RunWithOptions(Options{ConfigPath: cfgPath, Mode: ModeSummary, Weapon: "Kettle", Stdout: &stdout, Stderr: &stderr})
	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), "Gun: kettle (Level 1)")
	assert.Contains(t, stdout.String(), "Bullets fired: 12")
}
