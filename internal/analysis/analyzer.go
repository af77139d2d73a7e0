package analysis

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/drewk/recruiting-copilot/internal/config"
	"github.com/drewk/recruiting-copilot/internal/domain"
	"github.com/drewk/recruiting-copilot/internal/logger"
	"golang.org/x/sync/errgroup"
)

// ATSClient is the slice of the ATS provider the analyzer needs.
type ATSClient interface {
	// ListActiveJobs returns the tracked open jobs.
	// Parameters:
	//   - ctx: context for cancellation and deadlines.
	// Returns:
	//   - []domain.Job: tracked jobs.
	//   - error: non-nil if fetching fails.
	ListActiveJobs(ctx context.Context) ([]domain.Job, error)

	// ListCandidates returns all candidates on a job's pipeline.
	// Parameters:
	//   - ctx: context for cancellation and deadlines.
	//   - job: job whose candidates to fetch.
	// Returns:
	//   - []domain.Candidate: candidates with raw stage labels.
	//   - error: non-nil if fetching fails.
	ListCandidates(ctx context.Context, job domain.Job) ([]domain.Candidate, error)
}

// Analyzer runs the full funnel analysis: fetch candidates per tracked role,
// normalize and count stages, derive conversion metrics and health, and split
// the weekly sourcing budget. Every run recomputes from the provider; nothing
// intermediate is persisted.
type Analyzer struct {
	ats        ATSClient
	cfg        *config.PipelineConfig
	normalizer *Normalizer
	logger     *logger.Logger
	now        func() time.Time
}

// NewAnalyzer creates a new Analyzer.
// Parameters:
//   - ats: ATS provider client.
//   - cfg: static pipeline tables.
//   - log: logger instance.
// Returns:
//   - *Analyzer: initialized analyzer.
func NewAnalyzer(ats ATSClient, cfg *config.PipelineConfig, log *logger.Logger) *Analyzer {
	return &Analyzer{
		ats:        ats,
		cfg:        cfg,
		normalizer: NewNormalizer(cfg.Stages, cfg.StageAliases),
		logger:     log,
		now:        time.Now,
	}
}

// log returns a logger from context if available, otherwise returns the default logger
func (a *Analyzer) log(ctx context.Context) *logger.Logger {
	if l := logger.FromContext(ctx); l != nil {
		return l
	}
	return a.logger
}

// Analyze produces a complete pipeline snapshot. Candidate lists are fetched
// concurrently per job; a failure on any role aborts the whole run, since a
// partial role set would skew the sourcing allocation.
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - *domain.PipelineSnapshot: roles sorted ascending by priority plus allocation.
//   - error: non-nil if any provider call fails.
func (a *Analyzer) Analyze(ctx context.Context) (*domain.PipelineSnapshot, error) {
	start := a.now()

	jobs, err := a.ats.ListActiveJobs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active jobs: %w", err)
	}

	pipelines := make([]domain.RolePipeline, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			candidates, err := a.ats.ListCandidates(gctx, job)
			if err != nil {
				return fmt.Errorf("failed to list candidates for %q: %w", job.Title, err)
			}
			pipelines[i] = a.buildRolePipeline(job, candidates)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Ascending by priority; stable, so equal priorities keep job order
	sort.SliceStable(pipelines, func(i, j int) bool {
		return pipelines[i].Priority < pipelines[j].Priority
	})

	snapshot := &domain.PipelineSnapshot{
		GeneratedAt:        a.now().UTC(),
		Roles:              pipelines,
		SourcingAllocation: Allocate(pipelines, a.cfg.WeeklyCapacity),
	}

	logger.With(logger.Fields{
		logger.FieldDurationMs: a.now().Sub(start).Milliseconds(),
		logger.FieldCount:      len(pipelines),
	}).Info(ctx, "Pipeline analysis complete")

	return snapshot, nil
}

// buildRolePipeline derives one role's funnel summary from its candidates.
func (a *Analyzer) buildRolePipeline(job domain.Job, candidates []domain.Candidate) domain.RolePipeline {
	counts := CountByStage(a.normalizer, candidates)

	// Render the full canonical stage list, zero-filling omitted stages
	stages := make([]domain.PipelineStage, 0, len(a.cfg.Stages))
	for _, name := range a.cfg.Stages {
		stages = append(stages, domain.PipelineStage{Name: name, Count: counts[name]})
	}

	rates := ConversionRates(a.cfg.Stages, counts, a.cfg.HistoricalRates[job.Title])
	gap := GapToHire(rates)
	stuck := FindStuck(a.normalizer, a.cfg.StuckThresholds, candidates)

	priority, ok := a.cfg.RolePriorities[job.Title]
	if !ok {
		priority = 3
	}

	return domain.RolePipeline{
		JobID:           job.ID,
		JobTitle:        job.Title,
		Priority:        priority,
		Stages:          stages,
		TotalCandidates: len(candidates),
		StuckCandidates: stuck,
		ConversionRates: rates,
		GapToHire:       gap,
		HealthStatus:    DetermineHealth(rates, gap, counts),
		Bottleneck:      FindBottleneck(a.cfg.Stages, rates),
	}
}
