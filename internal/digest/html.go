package digest

import (
	"fmt"
	"html"
	"strings"

	"github.com/drewk/recruiting-copilot/internal/domain"
)

const htmlHead = `<html>
<head>
<style>
body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 650px; margin: 0 auto; padding: 20px; background: #f5f5f5; }
.container { background: white; padding: 30px; border-radius: 12px; box-shadow: 0 2px 8px rgba(0,0,0,0.1); }
h1 { color: #1a1a1a; border-bottom: 3px solid #4F46E5; padding-bottom: 15px; margin-bottom: 10px; }
.greeting { color: #666; margin-bottom: 25px; }
h2 { color: #374151; margin-top: 30px; font-size: 18px; }
.section { background: #f9fafb; padding: 20px; border-radius: 8px; margin: 15px 0; border-left: 4px solid #4F46E5; }
.section-alt { background: #fef3c7; border-left-color: #f59e0b; }
.section-green { background: #d1fae5; border-left-color: #10b981; }
.section-blue { background: #dbeafe; border-left-color: #3b82f6; }
.role { margin-bottom: 20px; padding-bottom: 15px; border-bottom: 1px solid #e5e7eb; }
.role:last-child { border-bottom: none; margin-bottom: 0; padding-bottom: 0; }
.role-header { font-weight: bold; font-size: 16px; margin-bottom: 8px; }
.pipeline { font-family: 'SF Mono', Monaco, monospace; color: #6b7280; margin: 8px 0; font-size: 13px; background: #f3f4f6; padding: 8px 12px; border-radius: 4px; }
.red { color: #dc2626; }
.yellow { color: #d97706; }
.green { color: #059669; }
.summary { background: #4F46E5; color: white; padding: 15px 20px; border-radius: 8px; margin: 20px 0; font-weight: bold; }
.stuck { background: #fef3c7; padding: 12px 15px; border-radius: 6px; margin: 8px 0; border-left: 3px solid #f59e0b; }
.news-item { padding: 12px 0; border-bottom: 1px solid #e5e7eb; }
.news-item:last-child { border-bottom: none; }
.news-category { display: inline-block; background: #e5e7eb; padding: 2px 8px; border-radius: 4px; font-size: 12px; margin-right: 8px; }
.news-link { color: #4F46E5; text-decoration: none; }
.news-link:hover { text-decoration: underline; }
.footer { text-align: center; margin-top: 30px; padding-top: 20px; border-top: 1px solid #e5e7eb; color: #9ca3af; }
</style>
</head>
<body>
<div class="container">
`

// RenderHTML formats the HTML digest body. All dynamic values are escaped;
// candidate and sequence names come from external providers.
// Parameters:
//   - snapshot: current funnel snapshot.
//   - activities: per-operator activity lists; may be nil for fallback content.
//   - actions: daily sourcing actions.
//   - news: curated reading list.
// Returns:
//   - string: HTML email body.
func (r *Renderer) RenderHTML(snapshot *domain.PipelineSnapshot, activities *domain.DailyActivities, actions []SourcingAction, news []NewsItem) string {
	var b strings.Builder
	b.WriteString(htmlHead)

	fmt.Fprintf(&b, "<h1>📊 Recruiting Daily Brief — %s, %s</h1>\n",
		snapshot.GeneratedAt.Format("Monday"), snapshot.GeneratedAt.Format("January 2, 2006"))
	b.WriteString(`<p class="greeting">Good morning! Here's your recruiting dashboard for today.</p>` + "\n")

	b.WriteString("<h2>🎯 Full Pipeline Report</h2>\n<div class=\"section\">\n")
	totalCandidates := 0
	totalGap := 0
	for _, role := range snapshot.Roles {
		flow := make([]string, 0, len(role.Stages))
		for _, s := range role.Stages {
			flow = append(flow, fmt.Sprintf("%s: %d", html.EscapeString(s.Name), s.Count))
		}

		b.WriteString("<div class=\"role\">\n")
		fmt.Fprintf(&b, "<div class=\"role-header\">%s (P%d) <span class=%q>%s</span></div>\n",
			html.EscapeString(role.JobTitle), role.Priority, role.HealthStatus, healthIcon(role.HealthStatus))
		fmt.Fprintf(&b, "<div class=\"pipeline\">%s</div>\n", strings.Join(flow, " → "))
		fmt.Fprintf(&b, "<div>Gap to Hire: ~%d more screens needed</div>\n", role.GapToHire)
		if role.Bottleneck != "" {
			fmt.Fprintf(&b, "<div class=\"red\">⚠️ Bottleneck: %s</div>\n", html.EscapeString(role.Bottleneck))
		}
		b.WriteString("</div>\n")

		totalCandidates += role.TotalCandidates
		totalGap += role.GapToHire
	}
	b.WriteString("</div>\n")

	fmt.Fprintf(&b, "<div class=\"summary\">📈 SUMMARY: %d active candidates | ~%d total screens needed</div>\n",
		totalCandidates, totalGap)

	b.WriteString("<h2>👤 Drew's Priorities Today (Candidate Experience)</h2>\n")
	b.WriteString(`<p style="color: #6b7280; margin-bottom: 10px;">Focus on these to keep candidates moving and happy:</p>` + "\n")
	b.WriteString("<div class=\"section section-green\">\n<ol>\n")
	if activities != nil && len(activities.Drew) > 0 {
		for _, item := range activities.Drew {
			fmt.Fprintf(&b, "<li><strong>[%s]</strong> %s</li>\n",
				html.EscapeString(item.Category), html.EscapeString(item.Action))
		}
	} else {
		for i, p := range fallbackPriorities(snapshot) {
			if i >= 5 {
				break
			}
			fmt.Fprintf(&b, "<li>%s</li>\n", html.EscapeString(p))
		}
	}
	b.WriteString("</ol>\n</div>\n")

	b.WriteString("<h2>🔍 5 Sourcing Actions for Today</h2>\n")
	b.WriteString(`<p style="color: #6b7280; margin-bottom: 10px;">Build the pipeline with these daily actions:</p>` + "\n")
	b.WriteString("<div class=\"section section-blue\">\n<ol>\n")
	for _, action := range actions {
		fmt.Fprintf(&b, "<li><strong>[%s]</strong> %s</li>\n",
			html.EscapeString(action.Category), html.EscapeString(action.Action))
	}
	b.WriteString("</ol>\n</div>\n")

	b.WriteString("<h2>📋 Blessing's Priorities Today</h2>\n<div class=\"section\">\n<ol>\n")
	if activities != nil && len(activities.Blessing) > 0 {
		for _, item := range activities.Blessing {
			fmt.Fprintf(&b, "<li><strong>[%s]</strong> %s</li>\n",
				html.EscapeString(item.Category), html.EscapeString(item.Action))
		}
	} else {
		b.WriteString("<li><strong>[SOURCING]</strong> Focus outreach on priority roles</li>\n")
	}
	b.WriteString("</ol>\n</div>\n")

	b.WriteString("<h2>🎯 Sourcing Allocation This Week</h2>\n<div class=\"section\">\n")
	fmt.Fprintf(&b, "<p><strong>Recommended outreach split (%d total):</strong></p>\n<ul>\n", r.capacity)
	for _, role := range snapshot.Roles {
		count := snapshot.SourcingAllocation[role.JobTitle]
		fmt.Fprintf(&b, "<li><strong>%s:</strong> %d (%d%%) — %s</li>\n",
			html.EscapeString(role.JobTitle), count, r.allocationPct(count), html.EscapeString(sourcingReason(role)))
	}
	b.WriteString("</ul>\n</div>\n")

	b.WriteString("<h2>⚠️ Stuck Candidates (Action Needed)</h2>\n<div class=\"section section-alt\">\n")
	stuckCount := 0
	for _, role := range snapshot.Roles {
		for _, c := range role.StuckCandidates {
			fmt.Fprintf(&b, "<div class=\"stuck\"><strong>%s:</strong> %s — %s for %d days</div>\n",
				html.EscapeString(role.JobTitle), html.EscapeString(c.Name), html.EscapeString(c.CurrentStage), c.DaysInStage)
			stuckCount++
		}
	}
	if stuckCount == 0 {
		b.WriteString("<p>✅ No stuck candidates — pipeline is moving!</p>\n")
	}
	b.WriteString("</div>\n")

	b.WriteString("<h2>📚 AI Recruiting Trends & Reading</h2>\n")
	b.WriteString(`<p style="color: #6b7280; margin-bottom: 10px;">Stay sharp with today's curated resources:</p>` + "\n")
	b.WriteString("<div class=\"section\">\n")
	for _, item := range news {
		fmt.Fprintf(&b, "<div class=\"news-item\"><span class=\"news-category\">%s</span> <a href=%q class=\"news-link\" target=\"_blank\">%s</a></div>\n",
			html.EscapeString(item.Category), item.URL, html.EscapeString(item.Title))
	}
	b.WriteString("</div>\n")

	b.WriteString("<div class=\"footer\">\n<p>Have a great day! 🚀</p>\n<p>— Your Recruiting Co-Pilot</p>\n</div>\n")
	b.WriteString("</div>\n</body>\n</html>\n")

	return b.String()
}
