package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/drewk/recruiting-copilot/internal/domain"
	"github.com/drewk/recruiting-copilot/internal/logger"
	"github.com/drewk/recruiting-copilot/internal/trends"
)

// SnapshotSource provides the latest stored sourcing aggregate.
type SnapshotSource interface {
	GetLatest(ctx context.Context) (*domain.OutreachStats, error)
}

// TrendSource provides the week-over-week comparison.
type TrendSource interface {
	WeeklyReport(ctx context.Context) (*trends.Report, error)
}

// RecommendationStore persists generated recommendations.
type RecommendationStore interface {
	SaveForDate(ctx context.Context, date string, recs []domain.Recommendation) (int, error)
}

// Service fetches the sourcing inputs, runs the engine and persists the
// result. The pipeline snapshot is passed in by the caller since the analyzer
// owns provider fetching.
type Service struct {
	engine    *Engine
	snapshots SnapshotSource
	trends    TrendSource
	store     RecommendationStore
	logger    *logger.Logger
	now       func() time.Time
}

// NewService creates a new recommendation service.
// Parameters:
//   - engine: rule engine.
//   - snapshots: source of the latest sourcing aggregate.
//   - trendSource: source of the weekly trend report.
//   - store: persistence for generated recommendations.
//   - log: logger instance.
// Returns:
//   - *Service: initialized service.
func NewService(engine *Engine, snapshots SnapshotSource, trendSource TrendSource, store RecommendationStore, log *logger.Logger) *Service {
	return &Service{
		engine:    engine,
		snapshots: snapshots,
		trends:    trendSource,
		store:     store,
		logger:    log,
		now:       time.Now,
	}
}

// Generate builds today's recommendations from the given pipeline snapshot and
// whatever sourcing data is stored. Missing sourcing data only skips the
// sourcing and combined passes; it is not an error.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - pipeline: current funnel snapshot; may be nil.
// Returns:
//   - []domain.Recommendation: sorted recommendations.
//   - error: non-nil if loading stored sourcing data fails.
func (s *Service) Generate(ctx context.Context, pipeline *domain.PipelineSnapshot) ([]domain.Recommendation, error) {
	stats, err := s.snapshots.GetLatest(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load latest outreach snapshot: %w", err)
	}

	var report *trends.Report
	if stats != nil {
		report, err = s.trends.WeeklyReport(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to build trend report: %w", err)
		}
	}

	return s.engine.Generate(pipeline, stats, report), nil
}

// DailyActivities generates and formats today's activity lists.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - pipeline: current funnel snapshot; may be nil.
//   - forWhom: optional audience filter ("drew" or "blessing").
// Returns:
//   - *domain.DailyActivities: per-operator activity lists.
//   - error: non-nil if generation fails.
func (s *Service) DailyActivities(ctx context.Context, pipeline *domain.PipelineSnapshot, forWhom string) (*domain.DailyActivities, error) {
	recs, err := s.Generate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	activities := BuildDailyActivities(recs, forWhom)
	return &activities, nil
}

// SaveDaily generates today's recommendations and appends them to the store.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - pipeline: current funnel snapshot; may be nil.
// Returns:
//   - int: number of recommendations saved.
//   - error: non-nil if generation or persistence fails.
func (s *Service) SaveDaily(ctx context.Context, pipeline *domain.PipelineSnapshot) (int, error) {
	recs, err := s.Generate(ctx, pipeline)
	if err != nil {
		return 0, err
	}

	today := s.now().UTC().Format(domain.DateLayout)
	count, err := s.store.SaveForDate(ctx, today, recs)
	if err != nil {
		return 0, fmt.Errorf("failed to save recommendations: %w", err)
	}

	logger.With(logger.Fields{
		logger.FieldCount:        count,
		logger.FieldSnapshotDate: today,
	}).Info(ctx, "Daily recommendations saved")

	return count, nil
}
