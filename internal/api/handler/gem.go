package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/drewk/recruiting-copilot/internal/domain"
	"github.com/drewk/recruiting-copilot/internal/trends"
	"github.com/gin-gonic/gin"
)

// SnapshotStore persists and reads date-keyed sourcing snapshots.
type SnapshotStore interface {
	Upsert(ctx context.Context, date string, stats *domain.OutreachStats) (uint, error)
	GetLatest(ctx context.Context) (*domain.OutreachStats, error)
}

// SequenceStatStore persists per-sequence counter rows.
type SequenceStatStore interface {
	Upsert(ctx context.Context, record *domain.SequenceStatRecord) error
}

// TrendSource provides the week-over-week comparison.
type TrendSource interface {
	WeeklyReport(ctx context.Context) (*trends.Report, error)
}

// SequenceInput is one sequence's counters in a snapshot submission.
type SequenceInput struct {
	SequenceName string `json:"sequence_name" binding:"required"`
	Role         string `json:"role"`
	Sender       string `json:"sender"`
	Sent         int    `json:"sent"`
	Opened       int    `json:"opened"`
	Replied      int    `json:"replied"`
	Bounced      int    `json:"bounced"`
}

// SnapshotInput is a complete sourcing snapshot submission.
type SnapshotInput struct {
	SnapshotDate string          `json:"snapshot_date"`
	Sequences    []SequenceInput `json:"sequences"`
	Notes        string          `json:"notes"`
}

// GemHandler handles sourcing snapshot endpoints.
type GemHandler struct {
	snapshots SnapshotStore
	sequences SequenceStatStore
	trends    TrendSource
	now       func() time.Time
}

// NewGemHandler creates a new sourcing data handler.
// Parameters:
//   - snapshots: snapshot store.
//   - sequences: per-sequence stat store.
//   - trendSource: trend report source.
// Returns:
//   - *GemHandler: initialized handler.
func NewGemHandler(snapshots SnapshotStore, sequences SequenceStatStore, trendSource TrendSource) *GemHandler {
	return &GemHandler{
		snapshots: snapshots,
		sequences: sequences,
		trends:    trendSource,
		now:       time.Now,
	}
}

// SaveSnapshot handles POST /api/gem/snapshot. Sequence-level counters are
// aggregated into role, sender and total summaries before storing; the raw
// rows are kept alongside the aggregate.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *GemHandler) SaveSnapshot(c *gin.Context) {
	var input SnapshotInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	date := input.SnapshotDate
	if date == "" {
		date = h.now().UTC().Format(domain.DateLayout)
	} else if _, err := time.Parse(domain.DateLayout, date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date format. Use YYYY-MM-DD",
		})
		return
	}

	ctx := c.Request.Context()
	for _, seq := range input.Sequences {
		record := domain.SequenceStatRecord{
			SnapshotDate: date,
			SequenceName: seq.SequenceName,
			Role:         seq.Role,
			Sender:       seq.Sender,
			Sent:         seq.Sent,
			Opened:       seq.Opened,
			Replied:      seq.Replied,
			Bounced:      seq.Bounced,
		}
		if err := h.sequences.Upsert(ctx, &record); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to save sequence stats: " + err.Error(),
			})
			return
		}
	}

	stats := aggregateSequences(input.Sequences, input.Notes)
	snapshotID, err := h.snapshots.Upsert(ctx, date, stats)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to save snapshot: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":          "success",
		"snapshot_id":     snapshotID,
		"snapshot_date":   date,
		"totals":          stats.Totals,
		"sequences_saved": len(input.Sequences),
	})
}

// GetLatest handles GET /api/gem/latest.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *GemHandler) GetLatest(c *gin.Context) {
	stats, err := h.snapshots.GetLatest(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load snapshot: " + err.Error(),
		})
		return
	}
	if stats == nil {
		c.JSON(http.StatusOK, gin.H{
			"status":  "no_data",
			"message": "No Gem data has been entered yet",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   stats,
	})
}

// GetTrends handles GET /api/gem/trends.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *GemHandler) GetTrends(c *gin.Context) {
	report, err := h.trends.WeeklyReport(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to compute trends: " + err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   report,
	})
}

// aggregateSequences rolls sequence-level counters up into the stored
// snapshot shape with reply rates per sequence, role, sender and overall.
func aggregateSequences(sequences []SequenceInput, notes string) *domain.OutreachStats {
	stats := &domain.OutreachStats{
		BySequence: make(map[string]domain.SequenceStat, len(sequences)),
		ByRole:     make(map[string]domain.StatTotals),
		BySender:   make(map[string]domain.StatTotals),
		Notes:      notes,
	}

	for _, seq := range sequences {
		stats.BySequence[seq.SequenceName] = domain.SequenceStat{
			Sent:      seq.Sent,
			Opened:    seq.Opened,
			Replied:   seq.Replied,
			Bounced:   seq.Bounced,
			ReplyRate: replyRate(seq.Replied, seq.Sent),
			Role:      seq.Role,
			Sender:    seq.Sender,
		}

		role := stats.ByRole[seq.Role]
		addCounters(&role, seq)
		stats.ByRole[seq.Role] = role

		sender := stats.BySender[seq.Sender]
		addCounters(&sender, seq)
		stats.BySender[seq.Sender] = sender

		stats.Totals.Sent += seq.Sent
		stats.Totals.Opened += seq.Opened
		stats.Totals.Replied += seq.Replied
		stats.Totals.Bounced += seq.Bounced
	}

	for key, totals := range stats.ByRole {
		totals.ReplyRate = replyRate(totals.Replied, totals.Sent)
		stats.ByRole[key] = totals
	}
	for key, totals := range stats.BySender {
		totals.ReplyRate = replyRate(totals.Replied, totals.Sent)
		stats.BySender[key] = totals
	}
	stats.Totals.ReplyRate = replyRate(stats.Totals.Replied, stats.Totals.Sent)

	return stats
}

func addCounters(totals *domain.StatTotals, seq SequenceInput) {
	totals.Sent += seq.Sent
	totals.Opened += seq.Opened
	totals.Replied += seq.Replied
	totals.Bounced += seq.Bounced
}

func replyRate(replied, sent int) float64 {
	if sent == 0 {
		return 0
	}
	return float64(replied) / float64(sent)
}
