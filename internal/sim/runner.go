package sim

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aurceive/ttk_roster/internal/domain"

	"golang.org/x/sync/errgroup"
)

// Evaluator abstracts a single simulation.
// Runner only needs one result row per (weapon, shield, level, ratio).
type Evaluator interface {
	Evaluate(weaponID, shieldID string, level int, headshotRatio float64) (domain.Result, error)
}

type Job struct {
	Weapon        string
	Shield        string
	Level         int
	HeadshotRatio float64
}

func (j Job) String() string {
	return fmt.Sprintf("%s/%s/L%d/%.0f%%", j.Weapon, j.Shield, j.Level, j.HeadshotRatio*100)
}

// JobsFor builds one job per weapon for a scenario, keeping weapon order.
func JobsFor(weapons []string, shield string, sc domain.Scenario) []Job {
	jobs := make([]Job, 0, len(weapons))
	for _, w := range weapons {
		jobs = append(jobs, Job{Weapon: w, Shield: shield, Level: sc.Level, HeadshotRatio: sc.HeadshotRatio})
	}
	return jobs
}

// Runner evaluates independent jobs concurrently.
type Runner struct {
	Eval        Evaluator
	Parallelism int
}

// Run returns one result per job, in job order. The first failing job
// cancels the jobs not started yet and its error is returned.
func (r Runner) Run(ctx context.Context, jobs []Job) ([]domain.Result, error) {
	results := make([]domain.Result, len(jobs))
	if len(jobs) == 0 {
		return results, nil
	}

	limit := r.Parallelism
	if limit <= 0 {
		limit = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	start := time.Now()
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := r.Eval.Evaluate(job.Weapon, job.Shield, job.Level, job.HeadshotRatio)
			if err != nil {
				return fmt.Errorf("simulate %s: %w", job, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slog.Debug("batch simulated", "jobs", len(jobs), "parallelism", limit, "elapsed", time.Since(start).Round(time.Microsecond))
	return results, nil
}
