package recommend

import (
	"strings"
	"time"

	"github.com/drewk/recruiting-copilot/internal/domain"
)

const maxActivitiesPerPerson = 5

var categoryIcons = map[string]string{
	domain.CategoryScreen:   "📞",
	domain.CategoryFollowUp: "⚡",
	domain.CategorySourcing: "🔍",
	domain.CategoryReview:   "📋",
	domain.CategorySync:     "🤝",
}

const defaultIcon = "📌"

// BuildDailyActivities formats recommendations into per-operator activity
// lists, five per person, numbered from 1 in priority order. TotalRecommendations
// counts the filtered set before truncation.
// Parameters:
//   - recs: recommendations already sorted by priority.
//   - forWhom: optional case-insensitive audience filter; empty keeps everyone.
// Returns:
//   - domain.DailyActivities: display-ready activity lists.
func BuildDailyActivities(recs []domain.Recommendation, forWhom string) domain.DailyActivities {
	if forWhom != "" {
		filtered := make([]domain.Recommendation, 0, len(recs))
		for _, rec := range recs {
			if strings.EqualFold(string(rec.ForWhom), forWhom) {
				filtered = append(filtered, rec)
			}
		}
		recs = filtered
	}

	var drew, blessing []domain.Recommendation
	for _, rec := range recs {
		switch rec.ForWhom {
		case domain.ForDrew:
			drew = append(drew, rec)
		case domain.ForBlessing:
			blessing = append(blessing, rec)
		}
	}

	return domain.DailyActivities{
		Drew:                 formatActivities(drew),
		Blessing:             formatActivities(blessing),
		TotalRecommendations: len(recs),
		GeneratedAt:          time.Now().UTC(),
	}
}

func formatActivities(recs []domain.Recommendation) []domain.Activity {
	if len(recs) > maxActivitiesPerPerson {
		recs = recs[:maxActivitiesPerPerson]
	}
	activities := make([]domain.Activity, 0, len(recs))
	for i, rec := range recs {
		icon, ok := categoryIcons[rec.Category]
		if !ok {
			icon = defaultIcon
		}
		activities = append(activities, domain.Activity{
			Number:   i + 1,
			Icon:     icon,
			Category: strings.ToUpper(rec.Category),
			Action:   rec.Action,
			Insight:  rec.Insight,
			Priority: string(rec.Priority),
		})
	}
	return activities
}
