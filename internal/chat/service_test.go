package chat

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/drewk/recruiting-copilot/internal/domain"
	"github.com/drewk/recruiting-copilot/internal/logger"
)

type fakePipelineSource struct {
	snapshot *domain.PipelineSnapshot
	err      error
}

func (f *fakePipelineSource) Analyze(ctx context.Context) (*domain.PipelineSnapshot, error) {
	return f.snapshot, f.err
}

type fakeSnapshotSource struct {
	stats *domain.OutreachStats
	err   error
}

func (f *fakeSnapshotSource) GetLatest(ctx context.Context) (*domain.OutreachStats, error) {
	return f.stats, f.err
}

type fakeActivitySource struct {
	activities *domain.DailyActivities
	err        error
}

func (f *fakeActivitySource) DailyActivities(ctx context.Context, pipeline *domain.PipelineSnapshot, forWhom string) (*domain.DailyActivities, error) {
	return f.activities, f.err
}

type fakeCompleter struct {
	system string
	reply  string
	err    error
}

func (f *fakeCompleter) Complete(ctx context.Context, system, userMessage string) (string, error) {
	f.system = system
	return f.reply, f.err
}

func testService(completer Completer, pipeline PipelineSource, snapshots SnapshotSource, activities ActivitySource) *Service {
	return NewService(completer, pipeline, snapshots, activities, logger.NewDefault())
}

func TestService_Ask(t *testing.T) {
	completer := &fakeCompleter{reply: "Looking good."}
	pipeline := &fakePipelineSource{
		snapshot: &domain.PipelineSnapshot{
			Roles: []domain.RolePipeline{
				{
					JobTitle:     "Senior Full Stack Engineer",
					Priority:     1,
					HealthStatus: domain.HealthYellow,
					Stages: []domain.PipelineStage{
						{Name: "Recruiter Screen", Count: 4},
						{Name: "HM Screen", Count: 2},
					},
					TotalCandidates: 6,
					GapToHire:       30,
					StuckCandidates: []domain.Candidate{{Name: "Ada"}},
				},
			},
		},
	}
	snapshots := &fakeSnapshotSource{
		stats: &domain.OutreachStats{
			Totals: domain.StatTotals{Sent: 100, Replied: 12, ReplyRate: 0.12},
			ByRole: map[string]domain.StatTotals{
				"Full Stack": {Sent: 100, Replied: 12},
			},
		},
	}
	activities := &fakeActivitySource{
		activities: &domain.DailyActivities{
			Drew: []domain.Activity{{Category: "SCREEN", Action: "Schedule 2 screens"}},
		},
	}

	svc := testService(completer, pipeline, snapshots, activities)
	reply, err := svc.Ask(context.Background(), "status?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "Looking good." {
		t.Errorf("reply = %q", reply)
	}

	for _, want := range []string{
		"**Senior Full Stack Engineer** (P1) - YELLOW",
		"Pipeline: 4 → 2",
		"Stuck candidates: Ada",
		"Total sent: 100",
		"Reply rate: 12.0%",
		"- Full Stack: 100 sent, 12 replies",
		"**Drew's Top Priorities:**",
		"- [SCREEN] Schedule 2 screens",
	} {
		if !strings.Contains(completer.system, want) {
			t.Errorf("system prompt missing %q", want)
		}
	}
}

func TestService_Ask_NotConfigured(t *testing.T) {
	svc := testService(nil, &fakePipelineSource{}, &fakeSnapshotSource{}, &fakeActivitySource{})

	reply, err := svc.Ask(context.Background(), "anything")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(reply, "Chat is not configured") {
		t.Errorf("reply = %q", reply)
	}
}

func TestService_Ask_DegradesWithoutData(t *testing.T) {
	completer := &fakeCompleter{reply: "ok"}
	svc := testService(
		completer,
		&fakePipelineSource{err: errors.New("ashby down")},
		&fakeSnapshotSource{err: errors.New("db down")},
		&fakeActivitySource{},
	)

	if _, err := svc.Ask(context.Background(), "status?"); err != nil {
		t.Fatalf("data failures must not fail the request: %v", err)
	}

	for _, want := range []string{
		"No pipeline data available.",
		"No sourcing data available yet.",
		"No specific activities generated.",
	} {
		if !strings.Contains(completer.system, want) {
			t.Errorf("system prompt missing %q", want)
		}
	}
}

func TestService_Ask_ModelFailureIsFatal(t *testing.T) {
	svc := testService(
		&fakeCompleter{err: errors.New("timeout")},
		&fakePipelineSource{snapshot: &domain.PipelineSnapshot{}},
		&fakeSnapshotSource{},
		&fakeActivitySource{},
	)

	if _, err := svc.Ask(context.Background(), "status?"); err == nil {
		t.Fatal("expected model failure to surface")
	}
}

func TestBuildSystemPrompt_IncludesDate(t *testing.T) {
	now := time.Date(2025, 10, 6, 9, 0, 0, 0, time.UTC)
	prompt := buildSystemPrompt(now, nil, nil, nil)
	if !strings.Contains(prompt, "Monday, October 6, 2025") {
		t.Error("prompt missing formatted date")
	}
}
