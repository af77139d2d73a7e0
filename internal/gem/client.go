package gem

import (
	"context"
	"fmt"
	"time"

	"github.com/drewk/recruiting-copilot/internal/config"
	"github.com/drewk/recruiting-copilot/internal/domain"
	"github.com/drewk/recruiting-copilot/internal/logger"
	"github.com/go-resty/resty/v2"
)

// Client talks to the Gem outreach API. Only sequences listed in the
// configured name→role map are aggregated; everything else is ignored.
type Client struct {
	client          *resty.Client
	sequenceRoles   map[string]string
	sequenceSenders map[string]string
}

// NewClient creates a new Gem client.
// Parameters:
//   - cfg: Gem configuration including base URL and API key.
//   - sequenceRoles: sequence name → sourcing role/category map.
//   - sequenceSenders: sequence name → sender map.
// Returns:
//   - *Client: initialized client.
func NewClient(cfg *config.GemConfig, sequenceRoles, sequenceSenders map[string]string) *Client {
	client := resty.New()
	client.SetBaseURL(cfg.BaseURL)
	client.SetHeader("X-Api-Key", cfg.APIKey)
	client.SetHeader("Content-Type", "application/json")
	client.SetTimeout(30 * time.Second)

	return &Client{
		client:          client,
		sequenceRoles:   sequenceRoles,
		sequenceSenders: sequenceSenders,
	}
}

type sequence struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Stats struct {
		Sent    int `json:"sent"`
		Opened  int `json:"opened"`
		Replied int `json:"replied"`
		Bounced int `json:"bounced"`
	} `json:"stats"`
}

// sequencePage covers the response shapes Gem serves: a "data" envelope with a
// cursor, or a "results" envelope.
type sequencePage struct {
	Data       []sequence `json:"data"`
	Results    []sequence `json:"results"`
	NextCursor string     `json:"next_cursor"`
}

// sequenceStatsResponse carries counters under either short or long key names.
type sequenceStatsResponse struct {
	Sent         int `json:"sent"`
	EmailsSent   int `json:"emails_sent"`
	Opened       int `json:"opened"`
	EmailsOpened int `json:"emails_opened"`
	Replied      int `json:"replied"`
	Replies      int `json:"replies"`
	Bounced      int `json:"bounced"`
	Bounces      int `json:"bounces"`
}

func firstNonZero(a, b int) int {
	if a != 0 {
		return a
	}
	return b
}

// listSequences fetches all sequences, following pagination cursors.
func (c *Client) listSequences(ctx context.Context) ([]sequence, error) {
	var sequences []sequence
	cursor := ""

	for {
		req := c.client.R().SetContext(ctx)
		if cursor != "" {
			req.SetQueryParam("cursor", cursor)
		}

		var page sequencePage
		resp, err := req.SetResult(&page).Get("/sequences")
		if err != nil {
			return nil, fmt.Errorf("failed to list gem sequences: %w", err)
		}
		if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
			return nil, fmt.Errorf("gem sequences returned HTTP %d: %s", resp.StatusCode(), string(resp.Body()))
		}

		sequences = append(sequences, page.Data...)
		sequences = append(sequences, page.Results...)

		if page.NextCursor == "" {
			break
		}
		cursor = page.NextCursor
	}

	return sequences, nil
}

// getSequenceStats fetches the stats endpoint for one sequence.
func (c *Client) getSequenceStats(ctx context.Context, id string) (*sequenceStatsResponse, error) {
	var stats sequenceStatsResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&stats).
		Get(fmt.Sprintf("/sequences/%s/stats", id))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch gem sequence stats: %w", err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return nil, fmt.Errorf("gem sequence stats returned HTTP %d", resp.StatusCode())
	}
	return &stats, nil
}

// GetOutreachStats fetches all tracked sequences and aggregates their counters
// by sequence, role and sender. Counters reported by Gem are cumulative.
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - *domain.OutreachStats: aggregated outreach counters.
//   - error: non-nil if the sequence listing fails.
func (c *Client) GetOutreachStats(ctx context.Context) (*domain.OutreachStats, error) {
	sequences, err := c.listSequences(ctx)
	if err != nil {
		return nil, err
	}

	stats := &domain.OutreachStats{
		BySequence: make(map[string]domain.SequenceStat),
		ByRole:     make(map[string]domain.StatTotals),
		BySender:   make(map[string]domain.StatTotals),
	}

	for _, seq := range sequences {
		role, tracked := c.sequenceRoles[seq.Name]
		if !tracked {
			continue
		}
		sender, ok := c.sequenceSenders[seq.Name]
		if !ok {
			sender = "Unknown"
		}

		sent := seq.Stats.Sent
		opened := seq.Stats.Opened
		replied := seq.Stats.Replied
		bounced := seq.Stats.Bounced

		// The per-sequence stats endpoint is more current than the embedded
		// counters; fall back to the embedded ones when it is unavailable
		if seqStats, err := c.getSequenceStats(ctx, seq.ID); err == nil {
			sent = firstNonZero(seqStats.Sent, seqStats.EmailsSent)
			opened = firstNonZero(seqStats.Opened, seqStats.EmailsOpened)
			replied = firstNonZero(seqStats.Replied, seqStats.Replies)
			bounced = firstNonZero(seqStats.Bounced, seqStats.Bounces)
		} else {
			logger.CtxWarn(ctx, "Falling back to embedded sequence stats for %q: %v", seq.Name, err)
		}

		replyRate := 0.0
		if sent > 0 {
			replyRate = float64(replied) / float64(sent)
		}

		stats.BySequence[seq.Name] = domain.SequenceStat{
			ID:        seq.ID,
			Sent:      sent,
			Opened:    opened,
			Replied:   replied,
			Bounced:   bounced,
			ReplyRate: replyRate,
			Role:      role,
			Sender:    sender,
		}

		addTotals(stats.ByRole, role, sent, opened, replied, bounced)
		addTotals(stats.BySender, sender, sent, opened, replied, bounced)
		stats.Totals.Sent += sent
		stats.Totals.Opened += opened
		stats.Totals.Replied += replied
		stats.Totals.Bounced += bounced
	}

	finalizeReplyRates(stats.ByRole)
	finalizeReplyRates(stats.BySender)
	if stats.Totals.Sent > 0 {
		stats.Totals.ReplyRate = float64(stats.Totals.Replied) / float64(stats.Totals.Sent)
	}

	return stats, nil
}

func addTotals(m map[string]domain.StatTotals, key string, sent, opened, replied, bounced int) {
	t := m[key]
	t.Sent += sent
	t.Opened += opened
	t.Replied += replied
	t.Bounced += bounced
	m[key] = t
}

func finalizeReplyRates(m map[string]domain.StatTotals) {
	for key, t := range m {
		if t.Sent > 0 {
			t.ReplyRate = float64(t.Replied) / float64(t.Sent)
		}
		m[key] = t
	}
}
