package chat

import (
	"fmt"
	"strings"
	"time"

	"github.com/drewk/recruiting-copilot/internal/domain"
)

// buildSystemPrompt assembles the assistant context from whatever data is
// available. Each section degrades to a placeholder rather than dropping out,
// so the model always knows what it cannot see.
func buildSystemPrompt(now time.Time, pipeline *domain.PipelineSnapshot, stats *domain.OutreachStats, activities *domain.DailyActivities) string {
	pipelineSummary := formatPipeline(pipeline)
	if pipelineSummary == "" {
		pipelineSummary = "No pipeline data available."
	}

	sourcingSummary := formatSourcing(stats)
	if sourcingSummary == "" {
		sourcingSummary = "No sourcing data available yet. Drew can add Gem stats in the 'Add Gem Data' tab."
	}

	activitiesSummary := formatActivities(activities)
	if activitiesSummary == "" {
		activitiesSummary = "No specific activities generated."
	}

	return fmt.Sprintf(`You are a recruiting co-pilot assistant for Drew, an internal recruiter at an AI startup called Fonzi.

Your role is to:
1. Answer questions about the recruiting pipeline
2. Provide actionable recommendations
3. Help Drew and Blessing (the sourcer) stay focused on high-leverage work
4. Flag issues and stuck candidates

**Current Date:** %s

**CURRENT PIPELINE DATA:**
%s

**SOURCING DATA (from Gem):**
%s

**TODAY'S RECOMMENDED ACTIVITIES:**
%s

**CONTEXT:**
- Drew manages screens and moves candidates through the pipeline
- Blessing handles sourcing via LinkedIn + Gem (~120 outreaches/week)
- Pipeline stages: Recruiter Screen → HM Screen → Testing → Onsite → Offer → Hired
- A candidate is "stuck" if they've been in a stage longer than the threshold (e.g., >5 days in Recruiter Screen)

**GUIDELINES:**
- Be concise and actionable
- Always connect insights to specific actions
- Use the actual data provided above
- If asked about something not in the data, say so clearly
- Format responses with bullet points for readability
- When recommending who to screen, prioritize by days waiting and stage`,
		now.Format("Monday, January 2, 2006"),
		pipelineSummary,
		sourcingSummary,
		activitiesSummary,
	)
}

func formatPipeline(pipeline *domain.PipelineSnapshot) string {
	if pipeline == nil {
		return ""
	}

	var b strings.Builder
	for _, role := range pipeline.Roles {
		counts := make([]string, 0, len(role.Stages))
		for _, s := range role.Stages {
			counts = append(counts, fmt.Sprintf("%d", s.Count))
		}

		stuck := role.StuckCandidates
		if len(stuck) > 3 {
			stuck = stuck[:3]
		}
		stuckNames := make([]string, 0, len(stuck))
		for _, c := range stuck {
			stuckNames = append(stuckNames, c.Name)
		}
		stuckSummary := strings.Join(stuckNames, ", ")
		if stuckSummary == "" {
			stuckSummary = "None"
		}

		fmt.Fprintf(&b, `
**%s** (P%d) - %s
- Pipeline: %s
- Active candidates: %d
- Gap to hire: ~%d screens needed
- Stuck candidates: %s
`,
			role.JobTitle, role.Priority, strings.ToUpper(string(role.HealthStatus)),
			strings.Join(counts, " → "), role.TotalCandidates, role.GapToHire, stuckSummary)
	}
	return b.String()
}

func formatSourcing(stats *domain.OutreachStats) string {
	if stats == nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, `
**This Week's Sourcing:**
- Total sent: %d
- Total replies: %d
- Reply rate: %.1f%%
`,
		stats.Totals.Sent, stats.Totals.Replied, stats.Totals.ReplyRate*100)

	for _, roleName := range sortedKeys(stats.ByRole) {
		roleStats := stats.ByRole[roleName]
		fmt.Fprintf(&b, "- %s: %d sent, %d replies\n", roleName, roleStats.Sent, roleStats.Replied)
	}
	return b.String()
}

func formatActivities(activities *domain.DailyActivities) string {
	if activities == nil {
		return ""
	}

	var b strings.Builder
	if tasks := topActivities(activities.Drew); len(tasks) > 0 {
		b.WriteString("\n**Drew's Top Priorities:**\n")
		for _, task := range tasks {
			fmt.Fprintf(&b, "- [%s] %s\n", task.Category, task.Action)
		}
	}
	if tasks := topActivities(activities.Blessing); len(tasks) > 0 {
		b.WriteString("\n**Blessing's Top Priorities:**\n")
		for _, task := range tasks {
			fmt.Fprintf(&b, "- [%s] %s\n", task.Category, task.Action)
		}
	}
	return b.String()
}

func topActivities(activities []domain.Activity) []domain.Activity {
	if len(activities) > 3 {
		return activities[:3]
	}
	return activities
}
