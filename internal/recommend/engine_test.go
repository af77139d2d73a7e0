package recommend

import (
	"strings"
	"testing"

	"github.com/drewk/recruiting-copilot/internal/config"
	"github.com/drewk/recruiting-copilot/internal/domain"
	"github.com/drewk/recruiting-copilot/internal/trends"
)

func testEngine() *Engine {
	return NewEngine(&config.PipelineConfig{
		SenderFloors:   map[string]int{"Blessing": 80},
		RoleCategories: map[string]string{"Senior AI Engineer": "AI Engineer"},
	})
}

func stages(counts map[string]int) []domain.PipelineStage {
	names := []string{"Recruiter Screen", "HM Screen", "Testing", "Onsite", "Offer", "Hired"}
	out := make([]domain.PipelineStage, 0, len(names))
	for _, name := range names {
		out = append(out, domain.PipelineStage{Name: name, Count: counts[name]})
	}
	return out
}

func findRec(recs []domain.Recommendation, category string, priority domain.RecPriority) *domain.Recommendation {
	for i := range recs {
		if recs[i].Category == category && recs[i].Priority == priority {
			return &recs[i]
		}
	}
	return nil
}

func TestEngine_PipelineRecommendations(t *testing.T) {
	pipeline := &domain.PipelineSnapshot{
		Roles: []domain.RolePipeline{
			{
				JobTitle: "Senior Full Stack Engineer",
				Priority: 1,
				Stages: stages(map[string]int{
					"Recruiter Screen": 2,
					"HM Screen":        3,
					"Onsite":           1,
				}),
				StuckCandidates: []domain.Candidate{
					{Name: "Ada", CurrentStage: "Recruiter Screen", DaysInStage: 6},
				},
				HealthStatus: domain.HealthRed,
			},
		},
	}

	recs := testEngine().Generate(pipeline, nil, nil)

	if rec := findRec(recs, domain.CategoryFollowUp, domain.PriorityHigh); rec == nil {
		t.Error("expected a high follow_up for the stuck candidate")
	} else if rec.ForWhom != domain.ForDrew {
		t.Errorf("follow_up audience = %q, want drew", rec.ForWhom)
	}

	if rec := findRec(recs, domain.CategoryScreen, domain.PriorityHigh); rec == nil {
		t.Error("expected a high screen rec for waiting HM screens")
	}

	if rec := findRec(recs, domain.CategoryReview, domain.PriorityMedium); rec == nil {
		t.Error("expected a medium review rec for onsite debrief or red status")
	}

	// Priority-1 role with a thin top of funnel pings the sourcer
	if rec := findRec(recs, domain.CategorySourcing, domain.PriorityMedium); rec == nil {
		t.Error("expected a medium sourcing rec for the thin funnel")
	} else if rec.ForWhom != domain.ForBlessing {
		t.Errorf("sourcing audience = %q, want blessing", rec.ForWhom)
	}
}

func TestEngine_StuckTruncatedToWorstThree(t *testing.T) {
	pipeline := &domain.PipelineSnapshot{
		Roles: []domain.RolePipeline{
			{
				JobTitle: "Senior AI Engineer",
				Priority: 2,
				Stages:   stages(nil),
				StuckCandidates: []domain.Candidate{
					{Name: "least", CurrentStage: "Testing", DaysInStage: 11},
					{Name: "worst", CurrentStage: "Recruiter Screen", DaysInStage: 30},
					{Name: "second", CurrentStage: "HM Screen", DaysInStage: 20},
					{Name: "third", CurrentStage: "Offer", DaysInStage: 12},
				},
				HealthStatus: domain.HealthGreen,
			},
		},
	}

	recs := testEngine().Generate(pipeline, nil, nil)

	var followUps []domain.Recommendation
	for _, rec := range recs {
		if rec.Category == domain.CategoryFollowUp {
			followUps = append(followUps, rec)
		}
	}

	if len(followUps) != 3 {
		t.Fatalf("expected 3 follow_ups, got %d", len(followUps))
	}
	for i, name := range []string{"worst", "second", "third"} {
		if got := followUps[i].Insight; !contains(got, name) {
			t.Errorf("follow_up %d = %q, want mention of %q", i, got, name)
		}
	}
}

func TestEngine_SourcingRecommendations(t *testing.T) {
	report := &trends.Report{
		HasData: true,
		ThisWeek: domain.OutreachStats{
			Totals: domain.StatTotals{Sent: 90, Replied: 5},
			ByRole: map[string]domain.StatTotals{
				"Full Stack":  {Sent: 30, Replied: 3},
				"AI Engineer": {Sent: 60, Replied: 2},
			},
			BySender: map[string]domain.StatTotals{
				"Blessing": {Sent: 70},
				"Drew":     {Sent: 20},
			},
			BySequence: map[string]domain.SequenceStat{
				"winner": {Sent: 40, Replied: 8, ReplyRate: 0.20},
				"loser":  {Sent: 30, Replied: 1, ReplyRate: 0.03},
			},
		},
		Trends: map[string]trends.Trend{
			"reply_rate": {Current: 5.5, Previous: 10.0, Direction: trends.DirectionDown},
		},
	}
	stats := &domain.OutreachStats{}

	recs := testEngine().Generate(nil, stats, report)

	// Total volume below 100 is the one high-priority sourcing rec
	if rec := findRec(recs, domain.CategorySourcing, domain.PriorityHigh); rec == nil {
		t.Error("expected high sourcing rec for low weekly volume")
	}

	// Declining reply rate produces one rec per operator
	reviewDown := findRec(recs, domain.CategoryReview, domain.PriorityMedium)
	if reviewDown == nil {
		t.Fatal("expected medium review rec for declining reply rate")
	}
	if !contains(reviewDown.Insight, "10.0%") || !contains(reviewDown.Insight, "5.5%") {
		t.Errorf("review insight = %q", reviewDown.Insight)
	}

	// Full Stack sent 30 < 40 triggers the role volume floor
	foundRoleVolume := false
	for _, rec := range recs {
		if rec.Category == domain.CategorySourcing && contains(rec.Insight, "Full Stack") {
			foundRoleVolume = true
		}
	}
	if !foundRoleVolume {
		t.Error("expected sourcing rec for the under-sourced role")
	}

	// Blessing sent 70 < 80 floor
	foundSenderFloor := false
	for _, rec := range recs {
		if contains(rec.Insight, "Blessing has sent 70") {
			foundSenderFloor = true
		}
	}
	if !foundSenderFloor {
		t.Error("expected sourcing rec for the sender below floor")
	}

	// Best sequence above 15% reply rate is worth cloning
	if rec := findRec(recs, domain.CategorySync, domain.PriorityLow); rec == nil {
		t.Error("expected low sync rec for the top sequence")
	} else if !contains(rec.Insight, "winner") {
		t.Errorf("sync insight = %q, want mention of winner", rec.Insight)
	}

	// Underperformer below 5% with volume gets flagged
	foundUnderperformer := false
	for _, rec := range recs {
		if rec.Category == domain.CategoryReview && contains(rec.Insight, "loser") {
			foundUnderperformer = true
		}
	}
	if !foundUnderperformer {
		t.Error("expected review rec for the underperforming sequence")
	}
}

func TestEngine_SourcingSkippedWithoutData(t *testing.T) {
	report := &trends.Report{HasData: false}
	recs := testEngine().Generate(nil, &domain.OutreachStats{}, report)
	if len(recs) != 0 {
		t.Errorf("expected no recs without trend data, got %d", len(recs))
	}
}

func TestEngine_CombinedRecommendations(t *testing.T) {
	pipeline := &domain.PipelineSnapshot{
		Roles: []domain.RolePipeline{
			{
				JobTitle:     "Senior AI Engineer",
				Priority:     2,
				Stages:       stages(map[string]int{"Recruiter Screen": 10}),
				HealthStatus: domain.HealthYellow,
				GapToHire:    42,
			},
		},
	}
	stats := &domain.OutreachStats{
		ByRole: map[string]domain.StatTotals{
			"AI Engineer": {Sent: 20},
		},
	}

	recs := testEngine().Generate(pipeline, stats, nil)

	rec := findRec(recs, domain.CategorySourcing, domain.PriorityHigh)
	if rec == nil {
		t.Fatal("expected high sourcing rec for struggling pipeline with low volume")
	}
	if !contains(rec.Insight, "yellow") || !contains(rec.Action, "42") {
		t.Errorf("combined rec = %+v", rec)
	}
}

func TestEngine_SortIsStableByPriority(t *testing.T) {
	pipeline := &domain.PipelineSnapshot{
		Roles: []domain.RolePipeline{
			{
				JobTitle: "Senior Full Stack Engineer",
				Priority: 1,
				Stages:   stages(map[string]int{"HM Screen": 1, "Onsite": 1}),
				StuckCandidates: []domain.Candidate{
					{Name: "Ada", CurrentStage: "Recruiter Screen", DaysInStage: 10},
				},
				HealthStatus: domain.HealthRed,
			},
		},
	}

	recs := testEngine().Generate(pipeline, nil, nil)

	rank := map[domain.RecPriority]int{
		domain.PriorityHigh:   0,
		domain.PriorityMedium: 1,
		domain.PriorityLow:    2,
	}
	for i := 1; i < len(recs); i++ {
		if rank[recs[i-1].Priority] > rank[recs[i].Priority] {
			t.Fatalf("recs out of priority order at %d: %v then %v", i, recs[i-1].Priority, recs[i].Priority)
		}
	}
}

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}
