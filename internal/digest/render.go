package digest

import (
	"fmt"
	"strings"
	"time"

	"github.com/drewk/recruiting-copilot/internal/domain"
)

// NewsItem is one curated reading link for the digest footer.
type NewsItem struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Category string `json:"category"`
}

// SourcingAction is one numbered daily action for the sourcing section.
type SourcingAction struct {
	Number   int    `json:"number"`
	Action   string `json:"action"`
	Icon     string `json:"icon"`
	Category string `json:"category"`
}

// Renderer formats the daily digest in text and HTML form.
type Renderer struct {
	capacity int
}

// NewRenderer creates a digest renderer.
// Parameters:
//   - capacity: weekly outreach capacity shown in the allocation section.
// Returns:
//   - *Renderer: initialized renderer.
func NewRenderer(capacity int) *Renderer {
	return &Renderer{capacity: capacity}
}

var healthEmoji = map[domain.HealthStatus]string{
	domain.HealthRed:    "🔴",
	domain.HealthYellow: "🟡",
	domain.HealthGreen:  "🟢",
}

func healthIcon(status domain.HealthStatus) string {
	if e, ok := healthEmoji[status]; ok {
		return e
	}
	return "⚪"
}

// Subject builds the digest email subject line.
// Parameters:
//   - generatedAt: snapshot generation time.
// Returns:
//   - string: subject line.
func Subject(generatedAt time.Time) string {
	return fmt.Sprintf("📊 Recruiting Daily Brief — %s, %s",
		generatedAt.Format("Monday"), generatedAt.Format("January 2, 2006"))
}

// SourcingActions builds five targeted daily actions, leading with the role
// that currently has the biggest gap to hire.
// Parameters:
//   - snapshot: current funnel snapshot.
// Returns:
//   - []SourcingAction: five numbered actions.
func SourcingActions(snapshot *domain.PipelineSnapshot) []SourcingAction {
	priorityRole := ""
	maxGap := 0
	for _, role := range snapshot.Roles {
		if role.GapToHire > maxGap {
			maxGap = role.GapToHire
			priorityRole = role.JobTitle
		}
	}
	if priorityRole == "" {
		priorityRole = "Senior Full Stack Engineer"
	}

	return []SourcingAction{
		{Number: 1, Action: fmt.Sprintf("Send 20 personalized outreach messages to %s candidates on LinkedIn", priorityRole), Icon: "✉️", Category: "OUTREACH"},
		{Number: 2, Action: "Review and respond to all new inbound applications (aim for <24hr response time)", Icon: "📬", Category: "INBOUND"},
		{Number: 3, Action: fmt.Sprintf("Refresh your Boolean search on LinkedIn for %s with new keywords", priorityRole), Icon: "🔍", Category: "SOURCING"},
		{Number: 4, Action: "Post an engaging update about Fonzi's engineering culture or recent wins", Icon: "📢", Category: "EMPLOYER BRAND"},
		{Number: 5, Action: "Reach out to 3 past silver-medalist candidates to re-engage them", Icon: "🔄", Category: "RE-ENGAGEMENT"},
	}
}

// NewsItems returns the curated reading list for a given day. Content rotates
// by weekday to keep the digest fresh without an external feed.
// Parameters:
//   - day: weekday to select content for.
// Returns:
//   - []NewsItem: five curated links.
func NewsItems(day time.Weekday) []NewsItem {
	if items, ok := newsByWeekday[day]; ok {
		return items
	}
	return newsByWeekday[time.Monday]
}

var newsByWeekday = map[time.Weekday][]NewsItem{
	time.Monday: {
		{Title: "Top AI Recruiting Tools for 2025", URL: "https://www.g2.com/categories/recruiting-automation", Category: "🤖 AI Tools"},
		{Title: "ChatGPT Prompts for Recruiters", URL: "https://www.linkedin.com/pulse/chatgpt-recruiting/", Category: "🤖 AI Tools"},
		{Title: "How to Use AI for Boolean Searches", URL: "https://www.sourcecon.com/", Category: "🔍 Sourcing"},
		{Title: "AI Writing Tools for Outreach Messages", URL: "https://www.jasper.ai/", Category: "✍️ Outreach"},
		{Title: "Candidate Matching AI Platforms Compared", URL: "https://www.capterra.com/recruiting-software/", Category: "🎯 Matching"},
	},
	time.Tuesday: {
		{Title: "Tech Hiring Trends: What's Hot in 2025", URL: "https://www.hired.com/blog/", Category: "📈 Market Trends"},
		{Title: "AI Engineer Salary Benchmarks", URL: "https://www.levels.fyi/", Category: "💰 Compensation"},
		{Title: "Remote vs Hybrid: What Candidates Want", URL: "https://www.flexjobs.com/blog/", Category: "🏠 Remote Work"},
		{Title: "Full Stack Developer Market Analysis", URL: "https://stackoverflow.blog/", Category: "📊 Market Data"},
		{Title: "Startup Hiring Playbook", URL: "https://www.ycombinator.com/library/", Category: "🚀 Startup Hiring"},
	},
	time.Wednesday: {
		{Title: "Improving Candidate Experience with AI", URL: "https://www.talentboard.org/", Category: "😊 Candidate Experience"},
		{Title: "Speed to Hire: Why Every Day Matters", URL: "https://www.shrm.org/", Category: "⏱️ Process"},
		{Title: "Interview Scheduling Best Practices", URL: "https://www.greenhouse.io/blog", Category: "📅 Scheduling"},
		{Title: "Rejection Emails That Keep Doors Open", URL: "https://www.ere.net/", Category: "📧 Communication"},
		{Title: "Building a Talent Community", URL: "https://www.beamery.com/resources/", Category: "👥 Talent Pools"},
	},
	time.Thursday: {
		{Title: "Advanced LinkedIn Recruiter Techniques", URL: "https://business.linkedin.com/talent-solutions/blog", Category: "🔍 LinkedIn"},
		{Title: "GitHub Sourcing for Engineers", URL: "https://www.sourcecon.com/", Category: "💻 GitHub"},
		{Title: "X-Ray Search Mastery Guide", URL: "https://recruitingbrainfood.com/", Category: "🔬 Boolean"},
		{Title: "Diversity Sourcing Strategies", URL: "https://www.hiretechladies.com/", Category: "🌈 DEI"},
		{Title: "Building Your Sourcing Tech Stack", URL: "https://www.gem.com/blog/", Category: "🛠️ Tools"},
	},
	time.Friday: {
		{Title: "AI Industry Hiring Trends", URL: "https://www.aijobbulletin.com/", Category: "🤖 AI Industry"},
		{Title: "What Top Engineers Look for in Jobs", URL: "https://www.teamblind.com/", Category: "💡 Candidate Intel"},
		{Title: "Competing for AI Talent", URL: "https://hbr.org/", Category: "🏆 Competition"},
		{Title: "The Future of Technical Recruiting", URL: "https://www.recruiter.com/", Category: "🔮 Future"},
		{Title: "Building Engineering Culture", URL: "https://www.infoq.com/", Category: "🏗️ Culture"},
	},
	time.Saturday: {
		{Title: "Recruiter Productivity Hacks", URL: "https://www.recruitingdaily.com/", Category: "⚡ Productivity"},
		{Title: "Understanding Technical Skills", URL: "https://roadmap.sh/", Category: "📚 Technical Knowledge"},
		{Title: "Psychology of Candidate Decisions", URL: "https://www.linkedin.com/learning/", Category: "🧠 Psychology"},
		{Title: "Recruiter Personal Branding", URL: "https://www.linkedin.com/pulse/", Category: "📣 Personal Brand"},
		{Title: "Negotiation Strategies for Offers", URL: "https://www.levels.fyi/blog/", Category: "🤝 Negotiation"},
	},
	time.Sunday: {
		{Title: "Weekly Recruiting Planning Guide", URL: "https://www.notion.so/templates/", Category: "📋 Planning"},
		{Title: "Recruiting Metrics That Matter", URL: "https://www.greenhouse.io/blog", Category: "📊 Metrics"},
		{Title: "Setting Hiring Goals", URL: "https://www.ashbyhq.com/blog", Category: "🎯 Goals"},
		{Title: "Pipeline Health Indicators", URL: "https://www.lever.co/blog/", Category: "🏥 Pipeline Health"},
		{Title: "Recruiter Wellness and Burnout Prevention", URL: "https://www.headspace.com/", Category: "🧘 Wellness"},
	},
}

// RenderText formats the plain-text digest body.
// Parameters:
//   - snapshot: current funnel snapshot.
//   - activities: per-operator activity lists; may be nil for fallback content.
//   - actions: daily sourcing actions.
//   - news: curated reading list.
// Returns:
//   - string: plain-text email body.
func (r *Renderer) RenderText(snapshot *domain.PipelineSnapshot, activities *domain.DailyActivities, actions []SourcingAction, news []NewsItem) string {
	var b strings.Builder
	divider := strings.Repeat("━", 50)

	fmt.Fprintf(&b, "📊 RECRUITING DAILY BRIEF — %s, %s\n\n",
		snapshot.GeneratedAt.Format("Monday"), snapshot.GeneratedAt.Format("January 2, 2006"))
	b.WriteString("Good morning! Here's your recruiting dashboard for today.\n\n")
	b.WriteString(divider + "\n\n")
	b.WriteString("🎯 FULL PIPELINE REPORT\n\n")

	totalCandidates := 0
	totalGap := 0
	for _, role := range snapshot.Roles {
		fmt.Fprintf(&b, "▸ %s (P%d) %s\n", role.JobTitle, role.Priority, healthIcon(role.HealthStatus))

		flow := make([]string, 0, len(role.Stages))
		for _, s := range role.Stages {
			flow = append(flow, fmt.Sprintf("%s: %d", s.Name, s.Count))
		}
		fmt.Fprintf(&b, "  %s\n", strings.Join(flow, " → "))
		fmt.Fprintf(&b, "  Gap to Hire: ~%d more screens needed\n", role.GapToHire)
		if role.Bottleneck != "" {
			fmt.Fprintf(&b, "  ⚠️ Bottleneck: %s\n", role.Bottleneck)
		}
		b.WriteString("\n")

		totalCandidates += role.TotalCandidates
		totalGap += role.GapToHire
	}

	fmt.Fprintf(&b, "📈 SUMMARY: %d active candidates | ~%d total screens needed\n\n", totalCandidates, totalGap)
	b.WriteString(divider + "\n\n")

	b.WriteString("👤 DREW'S PRIORITIES TODAY (Candidate Experience)\n\n")
	b.WriteString("Focus on these to keep candidates moving and happy:\n\n")
	if activities != nil && len(activities.Drew) > 0 {
		for _, item := range activities.Drew {
			fmt.Fprintf(&b, "%d. %s [%s] %s\n", item.Number, item.Icon, item.Category, item.Action)
		}
	} else {
		for i, p := range fallbackPriorities(snapshot) {
			if i >= 5 {
				break
			}
			fmt.Fprintf(&b, "%d. %s\n", i+1, p)
		}
	}

	b.WriteString("\n" + divider + "\n\n")
	b.WriteString("🔍 5 SOURCING ACTIONS FOR TODAY\n\n")
	b.WriteString("Build the pipeline with these daily actions:\n\n")
	for _, action := range actions {
		fmt.Fprintf(&b, "%d. %s [%s] %s\n", action.Number, action.Icon, action.Category, action.Action)
	}

	b.WriteString("\n" + divider + "\n\n")
	b.WriteString("📋 BLESSING'S PRIORITIES TODAY\n\n")
	if activities != nil && len(activities.Blessing) > 0 {
		for _, item := range activities.Blessing {
			fmt.Fprintf(&b, "%d. %s [%s] %s\n", item.Number, item.Icon, item.Category, item.Action)
		}
	} else {
		b.WriteString("1. 🔍 [SOURCING] Focus outreach on priority roles\n")
	}

	b.WriteString("\n" + divider + "\n\n")
	b.WriteString("🎯 SOURCING ALLOCATION THIS WEEK\n\n")
	fmt.Fprintf(&b, "Recommended outreach split (%d total):\n", r.capacity)
	for _, role := range snapshot.Roles {
		count := snapshot.SourcingAllocation[role.JobTitle]
		fmt.Fprintf(&b, "  • %s: %d (%d%%) — %s\n", role.JobTitle, count, r.allocationPct(count), sourcingReason(role))
	}

	b.WriteString("\n" + divider + "\n\n")
	b.WriteString("⚠️ STUCK CANDIDATES (action needed)\n\n")
	stuckCount := 0
	for _, role := range snapshot.Roles {
		for _, c := range role.StuckCandidates {
			fmt.Fprintf(&b, "• %s: %s — %s for %d days\n", role.JobTitle, c.Name, c.CurrentStage, c.DaysInStage)
			stuckCount++
		}
	}
	if stuckCount == 0 {
		b.WriteString("✅ No stuck candidates — pipeline is moving!\n")
	}

	b.WriteString("\n" + divider + "\n\n")
	b.WriteString("📚 AI RECRUITING TRENDS & READING\n\n")
	b.WriteString("Stay sharp with today's curated resources:\n\n")
	for i, item := range news {
		fmt.Fprintf(&b, "%d. [%s] %s\n   %s\n", i+1, item.Category, item.Title, item.URL)
	}

	b.WriteString("\n" + divider + "\n\n")
	b.WriteString("Have a great day! 🚀\n\n")
	b.WriteString("— Your Recruiting Co-Pilot")

	return b.String()
}

func (r *Renderer) allocationPct(count int) int {
	if count == 0 || r.capacity == 0 {
		return 0
	}
	return int(float64(count) / float64(r.capacity) * 100)
}

// fallbackPriorities derives a simple priority list straight from the snapshot
// when no recommendation activities are available.
func fallbackPriorities(snapshot *domain.PipelineSnapshot) []string {
	var priorities []string

	for _, role := range snapshot.Roles {
		stuck := role.StuckCandidates
		if len(stuck) > 2 {
			stuck = stuck[:2]
		}
		for _, c := range stuck {
			priorities = append(priorities,
				fmt.Sprintf("[FOLLOW UP] %s stuck in %s for %d days (%s)", c.Name, c.CurrentStage, c.DaysInStage, role.JobTitle))
		}

		if role.Bottleneck != "" && role.HealthStatus == domain.HealthRed {
			priorities = append(priorities,
				fmt.Sprintf("[REVIEW] %s has critical bottleneck: %s", role.JobTitle, role.Bottleneck))
		}

		if hm := stageCount(role, "HM Screen"); hm > 0 {
			priorities = append(priorities,
				fmt.Sprintf("[SCHEDULE] %d candidate(s) in HM Screen for %s", hm, role.JobTitle))
		}
		if onsite := stageCount(role, "Onsite"); onsite > 0 {
			priorities = append(priorities,
				fmt.Sprintf("[DEBRIEF] %d candidate(s) completed Onsite for %s", onsite, role.JobTitle))
		}
	}

	if len(priorities) < 3 {
		priorities = append(priorities, "[SOURCING] Review Blessing's outreach targets for the week")
	}

	return priorities
}

func sourcingReason(role domain.RolePipeline) string {
	switch role.HealthStatus {
	case domain.HealthRed:
		if role.Bottleneck != "" {
			desc := role.Bottleneck
			if i := strings.Index(desc, "("); i >= 0 {
				desc = strings.TrimSpace(desc[:i])
			}
			return "Critical — " + desc
		}
		return "Critical pipeline gap"
	case domain.HealthYellow:
		return "Moderate gap, needs attention"
	default:
		return "Healthy, maintain flow"
	}
}

func stageCount(role domain.RolePipeline, stage string) int {
	for _, s := range role.Stages {
		if s.Name == stage {
			return s.Count
		}
	}
	return 0
}
