package chat

import (
	"context"
	"time"

	"github.com/drewk/recruiting-copilot/internal/domain"
	"github.com/drewk/recruiting-copilot/internal/logger"
)

// PipelineSource produces the current funnel snapshot.
type PipelineSource interface {
	Analyze(ctx context.Context) (*domain.PipelineSnapshot, error)
}

// SnapshotSource provides the latest stored sourcing aggregate.
type SnapshotSource interface {
	GetLatest(ctx context.Context) (*domain.OutreachStats, error)
}

// ActivitySource builds the per-operator activity lists.
type ActivitySource interface {
	DailyActivities(ctx context.Context, pipeline *domain.PipelineSnapshot, forWhom string) (*domain.DailyActivities, error)
}

// Completer answers one user message under a system prompt.
type Completer interface {
	Complete(ctx context.Context, system, userMessage string) (string, error)
}

// Service answers questions about the pipeline by grounding the chat model in
// fresh analysis data.
type Service struct {
	completer  Completer
	pipeline   PipelineSource
	snapshots  SnapshotSource
	activities ActivitySource
	logger     *logger.Logger
	now        func() time.Time
}

// NewService creates a chat service.
// Parameters:
//   - completer: chat model client; nil disables chat.
//   - pipeline: source of the current funnel snapshot.
//   - snapshots: source of the latest sourcing aggregate.
//   - activities: source of per-operator activity lists.
//   - log: logger instance.
// Returns:
//   - *Service: initialized service.
func NewService(completer Completer, pipeline PipelineSource, snapshots SnapshotSource, activities ActivitySource, log *logger.Logger) *Service {
	return &Service{
		completer:  completer,
		pipeline:   pipeline,
		snapshots:  snapshots,
		activities: activities,
		logger:     log,
		now:        time.Now,
	}
}

// Ask answers one user question with current pipeline and sourcing context.
// Missing data sources degrade to placeholders in the prompt instead of
// failing the request; only the model call itself is fatal.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - userMessage: the user's question.
// Returns:
//   - string: model reply text.
//   - error: non-nil if chat is disabled or the model call fails.
func (s *Service) Ask(ctx context.Context, userMessage string) (string, error) {
	if s.completer == nil {
		return "⚠️ Chat is not configured. Add an Anthropic API key to enable it.", nil
	}

	pipeline, err := s.pipeline.Analyze(ctx)
	if err != nil {
		logger.CtxWarn(ctx, "Chat proceeding without pipeline data: %v", err)
		pipeline = nil
	}

	stats, err := s.snapshots.GetLatest(ctx)
	if err != nil {
		logger.CtxWarn(ctx, "Chat proceeding without sourcing data: %v", err)
		stats = nil
	}

	var activities *domain.DailyActivities
	if pipeline != nil {
		activities, err = s.activities.DailyActivities(ctx, pipeline, "")
		if err != nil {
			logger.CtxWarn(ctx, "Chat proceeding without activities: %v", err)
			activities = nil
		}
	}

	system := buildSystemPrompt(s.now(), pipeline, stats, activities)
	return s.completer.Complete(ctx, system, userMessage)
}
