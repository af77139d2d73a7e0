package domain

import "time"

// Audience identifies which operator a recommendation is for.
// Values include ForDrew (screener) and ForBlessing (sourcer).
type Audience string

const (
	ForDrew     Audience = "drew"
	ForBlessing Audience = "blessing"
)

// RecPriority orders recommendations. High sorts before medium before low.
type RecPriority string

const (
	PriorityHigh   RecPriority = "high"
	PriorityMedium RecPriority = "medium"
	PriorityLow    RecPriority = "low"
)

// Recommendation categories.
const (
	CategoryScreen   = "screen"
	CategoryFollowUp = "follow_up"
	CategorySourcing = "sourcing"
	CategoryReview   = "review"
	CategorySync     = "sync"
)

// Recommendation is a single actionable item: Insight says why it matters,
// Action says what to do. Recommendations carry no identity beyond content.
type Recommendation struct {
	ForWhom  Audience    `json:"for_whom"`
	Priority RecPriority `json:"priority"`
	Category string      `json:"category"`
	Insight  string      `json:"insight"`
	Action   string      `json:"action"`
}

// Activity is a display-ready recommendation entry for one operator's list.
type Activity struct {
	Number   int    `json:"number"`
	Icon     string `json:"icon"`
	Category string `json:"category"`
	Action   string `json:"action"`
	Insight  string `json:"insight"`
	Priority string `json:"priority"`
}

// DailyActivities groups the day's top recommendations per operator,
// truncated to five entries each.
type DailyActivities struct {
	Drew                 []Activity `json:"drew"`
	Blessing             []Activity `json:"blessing"`
	TotalRecommendations int        `json:"total_recommendations"`
	GeneratedAt          time.Time  `json:"generated_at"`
}

// RecommendationRecord is the persisted form of a generated recommendation.
// Rows are appended per generation run and never deduplicated.
type RecommendationRecord struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	RecommendationDate string    `gorm:"type:date;not null;index:idx_recommendations_date" json:"recommendation_date"`
	ForWhom            string    `gorm:"type:text;not null" json:"for_whom"`
	Priority           string    `gorm:"type:text;not null" json:"priority"`
	Category           string    `gorm:"type:text;not null" json:"category"`
	Insight            string    `gorm:"type:text;not null" json:"insight"`
	Action             string    `gorm:"type:text;not null" json:"action"`
	Completed          bool      `gorm:"default:false" json:"completed"`
	CreatedAt          time.Time `json:"created_at"`
}

// TableName returns the database table name for RecommendationRecord.
// Parameters: none.
// Returns:
//   - string: table name for GORM mapping.
func (RecommendationRecord) TableName() string {
	return "daily_recommendations"
}
