package digest

import (
	"context"
	"fmt"
	"time"

	"github.com/drewk/recruiting-copilot/internal/domain"
	"github.com/drewk/recruiting-copilot/internal/logger"
)

// ActivitySource builds the per-operator activity lists for the digest.
type ActivitySource interface {
	DailyActivities(ctx context.Context, pipeline *domain.PipelineSnapshot, forWhom string) (*domain.DailyActivities, error)
}

// Message is a fully rendered digest ready for delivery.
type Message struct {
	Subject string `json:"subject"`
	Text    string `json:"text"`
	HTML    string `json:"html"`
}

// Service assembles and sends the daily digest email.
type Service struct {
	renderer   *Renderer
	sender     *Sender
	activities ActivitySource
	logger     *logger.Logger
	now        func() time.Time
}

// NewService creates a digest service.
// Parameters:
//   - renderer: digest body renderer.
//   - sender: email sender; may be nil for render-only use.
//   - activities: source of per-operator activity lists.
//   - log: logger instance.
// Returns:
//   - *Service: initialized service.
func NewService(renderer *Renderer, sender *Sender, activities ActivitySource, log *logger.Logger) *Service {
	return &Service{
		renderer:   renderer,
		sender:     sender,
		activities: activities,
		logger:     log,
		now:        time.Now,
	}
}

// Render builds the full digest message without sending it. A failure to
// build activities falls back to the snapshot-only digest rather than
// blocking delivery.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - snapshot: current funnel snapshot.
// Returns:
//   - *Message: rendered subject and bodies.
//   - error: currently always nil, reserved for future renderers.
func (s *Service) Render(ctx context.Context, snapshot *domain.PipelineSnapshot) (*Message, error) {
	activities, err := s.activities.DailyActivities(ctx, snapshot, "")
	if err != nil {
		logger.CtxWarn(ctx, "Failed to build activities for digest, using fallback: %v", err)
		activities = nil
	}

	actions := SourcingActions(snapshot)
	news := NewsItems(s.now().Weekday())

	return &Message{
		Subject: Subject(snapshot.GeneratedAt),
		Text:    s.renderer.RenderText(snapshot, activities, actions, news),
		HTML:    s.renderer.RenderHTML(snapshot, activities, actions, news),
	}, nil
}

// SendDaily renders and delivers the daily digest.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - snapshot: current funnel snapshot.
// Returns:
//   - string: provider message ID.
//   - error: non-nil if rendering or delivery fails.
func (s *Service) SendDaily(ctx context.Context, snapshot *domain.PipelineSnapshot) (string, error) {
	if s.sender == nil {
		return "", fmt.Errorf("no email sender configured")
	}

	msg, err := s.Render(ctx, snapshot)
	if err != nil {
		return "", err
	}
	return s.sender.Send(ctx, msg.Subject, msg.Text, msg.HTML)
}
