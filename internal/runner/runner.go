// Package runner executes pending plans in the background. It polls the
// plans table, loads the portfolio's projects, runs the sequencing engine
// and stores the result on the plan record.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/fieldplan/fieldplan/internal/plan"
	"github.com/fieldplan/fieldplan/internal/planner"
	"github.com/fieldplan/fieldplan/internal/project"
)

// Runner polls for pending plans and executes them one at a time.
type Runner struct {
	planRepo      plan.Repository
	projectRepo   project.Repository
	interval      time.Duration
	plansExecuted prometheus.Counter
	plansFailed   prometheus.Counter
}

// New creates a new Runner.
func New(planRepo plan.Repository, projectRepo project.Repository, interval time.Duration, executed, failed prometheus.Counter) *Runner {
	return &Runner{
		planRepo:      planRepo,
		projectRepo:   projectRepo,
		interval:      interval,
		plansExecuted: executed,
		plansFailed:   failed,
	}
}

// Start begins the polling loop. It blocks until ctx is cancelled.
func (r *Runner) Start(ctx context.Context) {
	slog.Info("runner started", "interval", r.interval.String())
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("runner stopped")
			return
		case <-ticker.C:
			r.poll(ctx)
		}
	}
}

func (r *Runner) poll(ctx context.Context) {
	status := plan.StatusPending
	result, err := r.planRepo.List(ctx, plan.ListFilter{
		Status: &status,
		Page:   1,
		Limit:  100,
	})
	if err != nil {
		slog.Error("runner: failed to list pending plans", "error", err)
		return
	}

	for i := range result.Plans {
		if ctx.Err() != nil {
			return
		}
		r.execute(ctx, &result.Plans[i])
	}
}

// execute runs a single plan through the sequencing engine. The plan is
// marked running first so a crash leaves an inspectable state rather than a
// silently re-run plan.
func (r *Runner) execute(ctx context.Context, p *plan.Plan) {
	if _, err := r.planRepo.UpdateStatus(ctx, p.ID, plan.StatusUpdate{Status: plan.StatusRunning}); err != nil {
		slog.Error("runner: failed to mark plan running", "plan", p.Name, "error", err)
		return
	}

	res, err := r.run(ctx, p)
	if err != nil {
		r.markError(ctx, p, err)
		return
	}

	total := res.Total
	if _, err := r.planRepo.UpdateStatus(ctx, p.ID, plan.StatusUpdate{
		Status:          plan.StatusComplete,
		Sequence:        res.Sequence,
		Production:      res.Production,
		TotalProduction: &total,
	}); err != nil {
		slog.Error("runner: failed to store plan result", "plan", p.Name, "error", err)
		return
	}

	r.plansExecuted.Inc()
	slog.Info("runner: plan complete",
		"plan", p.Name,
		"strategy", p.Strategy,
		"projects", len(res.Sequence),
		"total", res.Total,
		"duration", res.Duration.String(),
	)
}

func (r *Runner) run(ctx context.Context, p *plan.Plan) (*planner.Result, error) {
	projects, err := r.projectRepo.ListByPortfolio(ctx, p.PortfolioID)
	if err != nil {
		return nil, fmt.Errorf("loading portfolio projects: %w", err)
	}

	engineProjects := make([]planner.Project, 0, len(projects))
	for _, pr := range projects {
		points := make([]planner.Point, 0, len(pr.Profile))
		for _, pt := range pr.Profile {
			points = append(points, planner.Point{Year: pt.Year, Rate: pt.Rate})
		}
		profile, err := planner.NewProfile(points)
		if err != nil {
			return nil, fmt.Errorf("project %q: %w", pr.Name, err)
		}
		engineProjects = append(engineProjects, planner.Project{
			ID:        pr.ID,
			Name:      pr.Name,
			SpudYear:  pr.SpudYear,
			DrillDays: pr.DrillDays,
			Profile:   profile,
		})
	}

	eng, err := planner.New(engineProjects, p.StartDate, p.HorizonDays)
	if err != nil {
		return nil, err
	}
	return eng.Run(p.Strategy)
}

func (r *Runner) markError(ctx context.Context, p *plan.Plan, cause error) {
	msg := cause.Error()
	if _, err := r.planRepo.UpdateStatus(ctx, p.ID, plan.StatusUpdate{
		Status:  plan.StatusError,
		Failure: &msg,
	}); err != nil {
		slog.Error("runner: failed to mark plan as error", "plan", p.Name, "error", err)
		return
	}

	r.plansFailed.Inc()
	slog.Warn("runner: plan failed", "plan", p.Name, "reason", msg)
}
