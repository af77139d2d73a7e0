package recommend

import (
	"fmt"
	"sort"

	"github.com/drewk/recruiting-copilot/internal/analysis"
	"github.com/drewk/recruiting-copilot/internal/config"
	"github.com/drewk/recruiting-copilot/internal/domain"
	"github.com/drewk/recruiting-copilot/internal/trends"
)

// Volume targets baked into the recommendation rules. These mirror the team's
// weekly goals rather than anything structural about the funnel.
const (
	weeklyVolumeTarget  = 100
	roleVolumeFloor     = 40
	roleReplyRateFloor  = 8.0
	combinedVolumeFloor = 50
	topSequenceRate     = 0.15
	underperformerRate  = 0.05
)

// priorityRank orders recommendations for the final sort. Unknown priorities
// sink to the bottom.
var priorityRank = map[domain.RecPriority]int{
	domain.PriorityHigh:   0,
	domain.PriorityMedium: 1,
	domain.PriorityLow:    2,
}

// Engine derives daily recommendations from pipeline and sourcing data. It is
// pure rule evaluation; fetching inputs and persisting output belong to the
// Service wrapper.
type Engine struct {
	cfg *config.PipelineConfig
}

// NewEngine creates a new recommendation engine.
// Parameters:
//   - cfg: static pipeline tables (priorities, sender floors, role categories).
// Returns:
//   - *Engine: initialized engine.
func NewEngine(cfg *config.PipelineConfig) *Engine {
	return &Engine{cfg: cfg}
}

// Generate runs the three rule passes and returns recommendations sorted by
// priority tier. The sort is stable, so within a tier the pass order is
// preserved: pipeline rules, then sourcing rules, then combined rules.
// Parameters:
//   - pipeline: current funnel snapshot; may be nil to skip pipeline rules.
//   - stats: latest stored sourcing aggregate; may be nil to skip sourcing rules.
//   - report: week-over-week trend comparison; may be nil.
// Returns:
//   - []domain.Recommendation: sorted recommendations, possibly empty.
func (e *Engine) Generate(pipeline *domain.PipelineSnapshot, stats *domain.OutreachStats, report *trends.Report) []domain.Recommendation {
	var recs []domain.Recommendation

	if pipeline != nil {
		recs = append(recs, e.pipelineRecommendations(pipeline)...)
	}
	if stats != nil && report != nil {
		recs = append(recs, e.sourcingRecommendations(report)...)
	}
	if pipeline != nil && stats != nil {
		recs = append(recs, e.combinedRecommendations(pipeline, stats)...)
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return rank(recs[i].Priority) < rank(recs[j].Priority)
	})
	return recs
}

func rank(p domain.RecPriority) int {
	if r, ok := priorityRank[p]; ok {
		return r
	}
	return 3
}

// pipelineRecommendations derives per-role actions from the funnel snapshot.
func (e *Engine) pipelineRecommendations(pipeline *domain.PipelineSnapshot) []domain.Recommendation {
	var recs []domain.Recommendation

	for _, role := range pipeline.Roles {
		// The three most overdue candidates first, not the first three seen
		stuck := make([]domain.Candidate, len(role.StuckCandidates))
		copy(stuck, role.StuckCandidates)
		sort.SliceStable(stuck, func(i, j int) bool {
			return stuck[i].DaysInStage > stuck[j].DaysInStage
		})
		if len(stuck) > 3 {
			stuck = stuck[:3]
		}
		for _, c := range stuck {
			recs = append(recs, domain.Recommendation{
				ForWhom:  domain.ForDrew,
				Priority: domain.PriorityHigh,
				Category: domain.CategoryFollowUp,
				Insight:  fmt.Sprintf("%s has been in %s for %d days", c.Name, c.CurrentStage, c.DaysInStage),
				Action:   fmt.Sprintf("Follow up on %s for %s: move forward or archive", c.Name, role.JobTitle),
			})
		}

		if hm := stageCount(role, "HM Screen"); hm > 0 {
			recs = append(recs, domain.Recommendation{
				ForWhom:  domain.ForDrew,
				Priority: domain.PriorityHigh,
				Category: domain.CategoryScreen,
				Insight:  fmt.Sprintf("%d candidate(s) waiting for HM Screen", hm),
				Action:   fmt.Sprintf("Schedule HM screens for %s candidates this week", role.JobTitle),
			})
		}

		if onsite := stageCount(role, "Onsite"); onsite > 0 {
			recs = append(recs, domain.Recommendation{
				ForWhom:  domain.ForDrew,
				Priority: domain.PriorityMedium,
				Category: domain.CategoryReview,
				Insight:  fmt.Sprintf("%d candidate(s) at Onsite stage", onsite),
				Action:   fmt.Sprintf("Schedule debrief for %s onsite candidates", role.JobTitle),
			})
		}

		if rs := stageCount(role, "Recruiter Screen"); rs < 5 && role.Priority == 1 {
			recs = append(recs, domain.Recommendation{
				ForWhom:  domain.ForBlessing,
				Priority: domain.PriorityMedium,
				Category: domain.CategorySourcing,
				Insight:  fmt.Sprintf("%s has only %d candidates at top of funnel", role.JobTitle, rs),
				Action:   fmt.Sprintf("Increase sourcing volume for %s this week", role.JobTitle),
			})
		}

		if role.HealthStatus == domain.HealthRed {
			recs = append(recs, domain.Recommendation{
				ForWhom:  domain.ForDrew,
				Priority: domain.PriorityMedium,
				Category: domain.CategoryReview,
				Insight:  fmt.Sprintf("%s pipeline is critical (red status)", role.JobTitle),
				Action:   fmt.Sprintf("Review %s pipeline strategy and consider expanding criteria", role.JobTitle),
			})
		}
	}

	return recs
}

// sourcingRecommendations derives actions from the weekly outreach comparison.
// Everything here keys off the trend report's this-week aggregate, which is
// the latest cumulative snapshot inside the window.
func (e *Engine) sourcingRecommendations(report *trends.Report) []domain.Recommendation {
	if !report.HasData {
		return nil
	}

	var recs []domain.Recommendation
	thisWeek := report.ThisWeek

	if thisWeek.Totals.Sent < weeklyVolumeTarget {
		recs = append(recs, domain.Recommendation{
			ForWhom:  domain.ForBlessing,
			Priority: domain.PriorityHigh,
			Category: domain.CategorySourcing,
			Insight:  fmt.Sprintf("Only %d outreaches this week (target: 120)", thisWeek.Totals.Sent),
			Action:   "Increase daily outreach volume to hit 120/week target",
		})
	}

	if replyTrend, ok := report.Trends["reply_rate"]; ok && replyTrend.Direction == trends.DirectionDown {
		recs = append(recs,
			domain.Recommendation{
				ForWhom:  domain.ForDrew,
				Priority: domain.PriorityMedium,
				Category: domain.CategoryReview,
				Insight:  fmt.Sprintf("Reply rate dropped from %.1f%% to %.1f%%", replyTrend.Previous, replyTrend.Current),
				Action:   "Review recent outreach messaging and consider refreshing templates",
			},
			domain.Recommendation{
				ForWhom:  domain.ForBlessing,
				Priority: domain.PriorityMedium,
				Category: domain.CategorySourcing,
				Insight:  "Reply rate is declining",
				Action:   "Test new subject lines this week",
			},
		)
	}

	for _, roleName := range sortedKeys(thisWeek.ByRole) {
		roleStats := thisWeek.ByRole[roleName]
		replyRate := 0.0
		if roleStats.Sent > 0 {
			replyRate = float64(roleStats.Replied) / float64(roleStats.Sent) * 100
		}

		if roleStats.Sent < roleVolumeFloor {
			recs = append(recs, domain.Recommendation{
				ForWhom:  domain.ForBlessing,
				Priority: domain.PriorityMedium,
				Category: domain.CategorySourcing,
				Insight:  fmt.Sprintf("%s only has %d outreaches this week", roleName, roleStats.Sent),
				Action:   fmt.Sprintf("Allocate more outreach volume to %s", roleName),
			})
		}

		if replyRate < roleReplyRateFloor && roleStats.Sent > 20 {
			recs = append(recs, domain.Recommendation{
				ForWhom:  domain.ForDrew,
				Priority: domain.PriorityLow,
				Category: domain.CategoryReview,
				Insight:  fmt.Sprintf("%s reply rate is only %.1f%%", roleName, replyRate),
				Action:   fmt.Sprintf("Review %s targeting: are we reaching the right candidates?", roleName),
			})
		}
	}

	for _, senderName := range sortedKeys(thisWeek.BySender) {
		floor, ok := e.cfg.SenderFloors[senderName]
		if !ok {
			continue
		}
		if sent := thisWeek.BySender[senderName].Sent; sent < floor {
			recs = append(recs, domain.Recommendation{
				ForWhom:  domain.ForBlessing,
				Priority: domain.PriorityMedium,
				Category: domain.CategorySourcing,
				Insight:  fmt.Sprintf("%s has sent %d outreaches (target: ~%d/week)", senderName, sent, weeklyVolumeTarget),
				Action:   "Increase daily outreach cadence",
			})
		}
	}

	recs = append(recs, e.sequenceRecommendations(thisWeek.BySequence)...)

	return recs
}

// sequenceRecommendations flags the best sequence worth cloning and any
// underperformers worth pausing. Sequences are scanned in name order so ties
// resolve the same way every run.
func (e *Engine) sequenceRecommendations(bySequence map[string]domain.SequenceStat) []domain.Recommendation {
	if len(bySequence) == 0 {
		return nil
	}

	var recs []domain.Recommendation
	names := sortedKeys(bySequence)

	bestName := ""
	bestRate := 0.0
	for _, name := range names {
		stat := bySequence[name]
		score := 0.0
		if stat.Sent > 10 {
			score = stat.ReplyRate
		}
		if score > bestRate {
			bestName = name
			bestRate = score
		}
	}
	if bestName != "" && bestRate > topSequenceRate {
		recs = append(recs, domain.Recommendation{
			ForWhom:  domain.ForBlessing,
			Priority: domain.PriorityLow,
			Category: domain.CategorySync,
			Insight:  fmt.Sprintf("'%s' has %.0f%% reply rate", bestName, bestRate*100),
			Action:   "Clone the messaging approach from this top-performing sequence",
		})
	}

	for _, name := range names {
		stat := bySequence[name]
		if stat.Sent > 20 && stat.ReplyRate < underperformerRate {
			recs = append(recs, domain.Recommendation{
				ForWhom:  domain.ForBlessing,
				Priority: domain.PriorityMedium,
				Category: domain.CategoryReview,
				Insight:  fmt.Sprintf("'%s' has only %.0f%% reply rate", name, stat.ReplyRate*100),
				Action:   "Pause or rewrite this underperforming sequence",
			})
		}
	}

	return recs
}

// combinedRecommendations cross-references struggling pipelines with their
// sourcing category's volume in the latest stored aggregate.
func (e *Engine) combinedRecommendations(pipeline *domain.PipelineSnapshot, stats *domain.OutreachStats) []domain.Recommendation {
	var recs []domain.Recommendation

	for _, role := range pipeline.Roles {
		if role.HealthStatus != domain.HealthRed && role.HealthStatus != domain.HealthYellow {
			continue
		}

		category := analysis.RoleCategory(e.cfg.RoleCategories, role.JobTitle)
		if sent := stats.ByRole[category].Sent; sent < combinedVolumeFloor {
			recs = append(recs, domain.Recommendation{
				ForWhom:  domain.ForBlessing,
				Priority: domain.PriorityHigh,
				Category: domain.CategorySourcing,
				Insight:  fmt.Sprintf("%s pipeline is %s and sourcing volume is low (%d/week)", role.JobTitle, role.HealthStatus, sent),
				Action:   fmt.Sprintf("Prioritize %s sourcing: need %d screens to hire", role.JobTitle, role.GapToHire),
			})
		}
	}

	return recs
}

func stageCount(role domain.RolePipeline, stage string) int {
	for _, s := range role.Stages {
		if s.Name == stage {
			return s.Count
		}
	}
	return 0
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
