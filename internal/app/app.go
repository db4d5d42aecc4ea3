package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/aurceive/ttk_roster/internal/catalog"
	"github.com/aurceive/ttk_roster/internal/config"
	"github.com/aurceive/ttk_roster/internal/domain"
	"github.com/aurceive/ttk_roster/internal/output"
	"github.com/aurceive/ttk_roster/internal/sim"
	"github.com/aurceive/ttk_roster/internal/weapons"
)

const (
	ModeRank    = "rank"
	ModeSummary = "summary"
	ModeLog     = "log"
	ModeCompare = "compare"
	ModeStats   = "stats"
)

// Level used by the ranked tables when only a headshot ratio is given.
const customRatioLevel = domain.MaxLevel

type Options struct {
	// ConfigPath is the run configuration. Empty means ttk_config.yaml found
	// upward from the working directory, or defaults when there is none.
	ConfigPath string
	Mode       string
	// Weapon is one weapon id, or a comma separated list in rank mode.
	Weapon   string
	Shield   string
	Level    *int
	Headshot *float64
	XLSX     bool

	Stdout io.Writer
	Stderr io.Writer
}

// RunWithOptions executes the selected mode and returns the desired process exit code.
func RunWithOptions(opts Options) int {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts); err != nil {
		if ee, ok := asExitError(err); ok {
			if ee.Err != nil && ee.Code != 0 {
				fmt.Fprintln(opts.Stderr, ee.Err)
			}
			return ee.Code
		}
		fmt.Fprintln(opts.Stderr, err)
		return 1
	}
	return 0
}

type env struct {
	root   string
	cfg    domain.Config
	calc   *sim.Calculator
	stdout io.Writer
}

func run(ctx context.Context, opts Options) error {
	totalStart := time.Now()

	mode := strings.ToLower(strings.TrimSpace(opts.Mode))
	if mode == "" {
		mode = ModeRank
	}
	switch mode {
	case ModeRank, ModeSummary, ModeLog, ModeCompare, ModeStats:
	default:
		return ExitWithError(2, fmt.Errorf("unsupported mode %q (supported: rank, summary, log, compare, stats)", opts.Mode))
	}

	root, configPath, err := locateConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	applyOverrides(&cfg, opts)
	if err := config.Validate(cfg); err != nil {
		return err
	}

	level, _ := config.ParseLogLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(opts.Stderr, &slog.HandlerOptions{Level: level})))
	slog.Debug("config loaded", "path", configPath, "root", root)

	cat, err := loadCatalog(root, cfg.CatalogPath)
	if err != nil {
		return err
	}
	if _, err := cat.Shield(cfg.Shield); err != nil {
		return fmt.Errorf("shield: %w", err)
	}

	e := env{root: root, cfg: cfg, calc: sim.NewCalculator(cat), stdout: opts.Stdout}

	switch mode {
	case ModeSummary, ModeLog:
		err = e.summary(opts, mode == ModeLog)
	case ModeCompare:
		err = e.compare(opts)
	case ModeStats:
		err = e.stats(opts)
	default:
		err = e.rank(ctx, opts)
	}
	if err != nil {
		return err
	}

	slog.Debug("finished", "mode", mode, "elapsed", time.Since(totalStart).Round(time.Millisecond))
	return nil
}

func locateConfig(configPath string) (root string, path string, err error) {
	if configPath != "" {
		abs, err := filepath.Abs(configPath)
		if err != nil {
			return "", "", err
		}
		return filepath.Dir(abs), abs, nil
	}

	root, err = FindRoot()
	if errors.Is(err, ErrRootNotFound) {
		// No config anywhere: run with defaults from the working directory.
		root, err = os.Getwd()
	}
	if err != nil {
		return "", "", err
	}
	return root, filepath.Join(root, config.FileName), nil
}

func loadCatalog(root, path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	path = resolvePath(root, path)
	cat, err := catalog.LoadFile(path)
	if err != nil {
		return nil, err
	}
	slog.Info("catalog loaded", "path", path, "weapons", len(cat.WeaponIDs()), "shields", len(cat.ShieldIDs()))
	return cat, nil
}

// applyOverrides folds command line flags into the run configuration.
// A headshot ratio without a level ranks at the highest level only.
func applyOverrides(cfg *domain.Config, opts Options) {
	if s := strings.TrimSpace(opts.Shield); s != "" {
		cfg.Shield = strings.ToLower(s)
	}
	if names := splitWeapons(opts.Weapon); len(names) > 0 {
		cfg.Weapons = names
	}
	if opts.Level != nil {
		cfg.Levels = []int{*opts.Level}
	}
	if opts.Headshot != nil {
		cfg.HeadshotRatios = []float64{*opts.Headshot}
		if opts.Level == nil {
			cfg.Levels = []int{customRatioLevel}
		}
	}
}

func splitWeapons(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// singleWeapon is the weapon a per-weapon mode reports on.
func singleWeapon(opts Options, mode string) (string, error) {
	names := splitWeapons(opts.Weapon)
	if len(names) != 1 {
		return "", ExitWithError(2, fmt.Errorf("mode %s needs exactly one -weapon", mode))
	}
	return names[0], nil
}

func (e env) summary(opts Options, detailed bool) error {
	mode := ModeSummary
	if detailed {
		mode = ModeLog
	}
	weapon, err := singleWeapon(opts, mode)
	if err != nil {
		return err
	}

	level := domain.MinLevel
	if opts.Level != nil {
		level = *opts.Level
	}
	ratio := 0.0
	if opts.Headshot != nil {
		ratio = *opts.Headshot
	}

	res, err := e.calc.SimulateTTK(weapon, e.cfg.Shield, level, ratio, detailed)
	if err != nil {
		return err
	}
	stats, err := e.calc.ResolveStats(weapon, level)
	if err != nil {
		return err
	}
	shield, err := e.calc.Catalog().Shield(e.cfg.Shield)
	if err != nil {
		return err
	}

	s := output.Summary{
		Stats:         stats,
		Level:         level,
		Shield:        shield,
		BaseHealth:    e.calc.Catalog().BaseHealth,
		HeadshotRatio: ratio,
		Result:        res,
	}
	output.PrintSummary(e.stdout, s)
	if detailed {
		output.PrintDetailedLog(e.stdout, s)
	}
	return nil
}

func (e env) compare(opts Options) error {
	weapon, err := singleWeapon(opts, ModeCompare)
	if err != nil {
		return err
	}

	scenarios := config.BuildScenarios(e.cfg)
	rows := make([]domain.Result, 0, len(scenarios))
	for _, sc := range scenarios {
		r, err := e.calc.Evaluate(weapon, e.cfg.Shield, sc.Level, sc.HeadshotRatio)
		if err != nil {
			return err
		}
		rows = append(rows, r)
	}
	output.PrintComparison(e.stdout, weapon, e.cfg.Shield, rows)
	return nil
}

func (e env) stats(opts Options) error {
	cat := e.calc.Catalog()
	ids := splitWeapons(opts.Weapon)
	if len(ids) == 0 {
		ids = cat.WeaponIDs()
	}
	for _, id := range ids {
		levels, err := cat.ResolveAll(id)
		if err != nil {
			return err
		}
		output.PrintStatsByLevel(e.stdout, id, levels)
	}
	return nil
}

func (e env) rank(ctx context.Context, opts Options) error {
	cfg := e.cfg
	cat := e.calc.Catalog()

	minR, _ := domain.ParseRarity(cfg.MinimumRarity)
	selected, err := weapons.Select(cat, cfg.Weapons, minR)
	if err != nil {
		return err
	}
	if len(cfg.Weapons) == 0 {
		_, excluded := weapons.SelectByRarity(cat, minR)
		slog.Info("weapons selected", "minimum_rarity", minR, "included", len(selected), "excluded", len(excluded))
	}
	weaponsToRun := weapons.SortByRarityDescThenKey(selected, cat)

	scenarios := config.BuildScenarios(cfg)
	sortKey, _ := domain.ParseSortKey(cfg.SortBy)

	parallelism := cfg.Parallelism
	if parallelism == 0 {
		parallelism = runtime.GOMAXPROCS(0)
	}
	runner := sim.Runner{Eval: e.calc, Parallelism: parallelism}

	totalRuns := weapons.ComputeTotalRuns(weaponsToRun, scenarios)
	slog.Info("ranking weapons", "shield", cfg.Shield, "weapons", len(weaponsToRun), "scenarios", len(scenarios), "runs", totalRuns)

	resultsByScenario := make(map[string][]domain.Result, len(scenarios))
	completed := 0
	for _, sc := range scenarios {
		results, err := runner.Run(ctx, sim.JobsFor(weaponsToRun, cfg.Shield, sc))
		if err != nil {
			return fmt.Errorf("%s: %w", sc.Name, err)
		}
		output.SortResults(results, sortKey, cfg.Descending)
		resultsByScenario[sc.Name] = results
		output.PrintRanked(e.stdout, sc.Name, cfg.Shield, results)

		completed += len(results)
		slog.Debug("scenario done", "scenario", sc.Name, "progress", fmt.Sprintf("%d/%d", completed, totalRuns))
	}

	if !opts.XLSX && cfg.OutputTablePath == "" {
		return nil
	}
	return e.export(scenarios, resultsByScenario, sortKey)
}

func (e env) export(scenarios []domain.Scenario, resultsByScenario map[string][]domain.Result, sortKey domain.SortKey) error {
	cfg := e.cfg
	now := time.Now()

	outDir := filepath.Join(e.root, "output", "ttk_roster")

	path := resolvePath(e.root, cfg.OutputTablePath)
	if path == "" {
		if _, err := ensureOutputDir(e.root); err != nil {
			return err
		}
		path = defaultTablePath(outDir, cfg.Shield, now)
	}

	basePath := resolvePath(e.root, cfg.BaseTablePath)
	if basePath == "" {
		found, ok, err := findExistingResultTable(outDir, cfg.Shield, now)
		if err != nil {
			return err
		}
		if ok {
			basePath = found
		}
	}

	if basePath != "" {
		baseScenarios, base, err := output.ImportResultsXLSX(basePath)
		if err != nil {
			return fmt.Errorf("base table: %w", err)
		}
		scenarios, resultsByScenario = output.MergeResults(baseScenarios, base, scenarios, resultsByScenario)
		slog.Info("merged with existing table", "path", basePath, "scenarios", len(scenarios))
	}

	if err := output.ExportResultsXLSX(path, scenarios, resultsByScenario, sortKey, cfg.Descending); err != nil {
		return err
	}
	fmt.Fprintln(e.stdout, "Exported results to", path)
	return nil
}
