package trends

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/drewk/recruiting-copilot/internal/domain"
)

// Trend directions. The ±15% dead-band keeps small fluctuations from
// flipping the direction.
const (
	DirectionUp     = "up"
	DirectionDown   = "down"
	DirectionSteady = "steady"

	deadBandPct = 15.0
)

// SnapshotStore is the slice of the snapshot repository the trend engine needs.
type SnapshotStore interface {
	// GetRange returns snapshots within [start, end], ascending by date.
	// Parameters:
	//   - ctx: context for cancellation and deadlines.
	//   - start: first date of the range, inclusive.
	//   - end: last date of the range, inclusive.
	// Returns:
	//   - []domain.OutreachStats: snapshots in date order.
	//   - error: non-nil if the query fails.
	GetRange(ctx context.Context, start, end string) ([]domain.OutreachStats, error)
}

// Trend compares one metric across two weekly windows.
type Trend struct {
	Current   float64 `json:"current"`
	Previous  float64 `json:"previous"`
	ChangePct float64 `json:"change_pct"`
	Direction string  `json:"direction"`
}

// Report is the week-over-week sourcing comparison. ThisWeek and LastWeek are
// the latest cumulative snapshot observed inside each window.
type Report struct {
	ThisWeek   domain.OutreachStats `json:"this_week"`
	LastWeek   domain.OutreachStats `json:"last_week"`
	Trends     map[string]Trend     `json:"trends"`
	HasData    bool                 `json:"has_data"`
	DataPoints int                  `json:"data_points"`
}

// Service computes week-over-week trends from stored snapshots.
type Service struct {
	store SnapshotStore
	now   func() time.Time
}

// NewService creates a new trend service.
// Parameters:
//   - store: snapshot store to read windows from.
// Returns:
//   - *Service: initialized service.
func NewService(store SnapshotStore) *Service {
	return &Service{store: store, now: time.Now}
}

// WeeklyReport compares this week ([today-6, today]) against the preceding
// 7-day window. Stored counters are cumulative as of their date, so each
// window aggregates to its latest snapshot rather than a sum; snapshots are
// ordered by explicit date, never map or insertion order.
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - *Report: trend comparison; HasData is false when this week's window is empty.
//   - error: non-nil if a store query fails.
func (s *Service) WeeklyReport(ctx context.Context) (*Report, error) {
	today := s.now().UTC()
	thisWeekStart := today.AddDate(0, 0, -6)
	lastWeekStart := thisWeekStart.AddDate(0, 0, -7)
	lastWeekEnd := thisWeekStart.AddDate(0, 0, -1)

	thisWeekData, err := s.store.GetRange(ctx,
		thisWeekStart.Format(domain.DateLayout), today.Format(domain.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to load this week's snapshots: %w", err)
	}
	lastWeekData, err := s.store.GetRange(ctx,
		lastWeekStart.Format(domain.DateLayout), lastWeekEnd.Format(domain.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to load last week's snapshots: %w", err)
	}

	thisWeek := latestInWindow(thisWeekData)
	lastWeek := latestInWindow(lastWeekData)

	return &Report{
		ThisWeek: thisWeek,
		LastWeek: lastWeek,
		Trends: map[string]Trend{
			"sent":    CalcTrend(float64(thisWeek.Totals.Sent), float64(lastWeek.Totals.Sent)),
			"replied": CalcTrend(float64(thisWeek.Totals.Replied), float64(lastWeek.Totals.Replied)),
			"reply_rate": CalcTrend(
				replyRatePct(thisWeek.Totals),
				replyRatePct(lastWeek.Totals),
			),
		},
		HasData:    len(thisWeekData) > 0,
		DataPoints: len(thisWeekData),
	}, nil
}

// latestInWindow reduces a window to its most recent cumulative snapshot.
// The store returns snapshots ascending by date, so the last element wins.
func latestInWindow(snapshots []domain.OutreachStats) domain.OutreachStats {
	if len(snapshots) == 0 {
		return domain.OutreachStats{}
	}
	return snapshots[len(snapshots)-1]
}

// CalcTrend compares a metric across two windows. change_pct is rounded to
// one decimal; a zero previous value maps to 100% when the current value is
// positive and 0% otherwise. Direction flips only beyond the ±15% dead-band.
// Parameters:
//   - current: this week's value.
//   - previous: last week's value.
// Returns:
//   - Trend: comparison with change percentage and direction.
func CalcTrend(current, previous float64) Trend {
	var changePct float64
	if previous == 0 {
		if current > 0 {
			changePct = 100
		}
	} else {
		changePct = (current - previous) / previous * 100
	}
	// Direction is judged on the raw percentage; rounding is display-only
	direction := DirectionSteady
	if changePct >= deadBandPct {
		direction = DirectionUp
	} else if changePct <= -deadBandPct {
		direction = DirectionDown
	}
	changePct = math.Round(changePct*10) / 10

	return Trend{
		Current:   current,
		Previous:  previous,
		ChangePct: changePct,
		Direction: direction,
	}
}

func replyRatePct(t domain.StatTotals) float64 {
	if t.Sent == 0 {
		return 0
	}
	return float64(t.Replied) / float64(t.Sent) * 100
}
