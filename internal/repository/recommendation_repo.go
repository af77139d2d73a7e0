package repository

import (
	"context"

	"github.com/drewk/recruiting-copilot/internal/domain"
	"gorm.io/gorm"
)

// RecommendationRepository handles persisted daily recommendations.
type RecommendationRepository struct {
	db *gorm.DB
}

// NewRecommendationRepository creates a new RecommendationRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *RecommendationRepository: repository instance bound to db.
func NewRecommendationRepository(db *gorm.DB) *RecommendationRepository {
	return &RecommendationRepository{db: db}
}

// SaveForDate appends the given recommendations under a date. The operation is
// a plain append; callers re-running generation for the same day add new rows.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - date: recommendation date in domain.DateLayout form.
//   - recs: generated recommendations to persist.
// Returns:
//   - int: number of rows written.
//   - error: non-nil if any insert fails.
func (r *RecommendationRepository) SaveForDate(ctx context.Context, date string, recs []domain.Recommendation) (int, error) {
	if len(recs) == 0 {
		return 0, nil
	}
	records := make([]domain.RecommendationRecord, 0, len(recs))
	for _, rec := range recs {
		records = append(records, domain.RecommendationRecord{
			RecommendationDate: date,
			ForWhom:            string(rec.ForWhom),
			Priority:           string(rec.Priority),
			Category:           rec.Category,
			Insight:            rec.Insight,
			Action:             rec.Action,
		})
	}
	if err := r.db.WithContext(ctx).Create(&records).Error; err != nil {
		return 0, err
	}
	return len(records), nil
}

// ListByDate retrieves all recommendations for a date, ordered by priority
// tier (high, medium, low) then insertion order.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - date: recommendation date to filter by.
// Returns:
//   - []domain.RecommendationRecord: matching rows.
//   - error: non-nil if the query fails.
func (r *RecommendationRepository) ListByDate(ctx context.Context, date string) ([]domain.RecommendationRecord, error) {
	var records []domain.RecommendationRecord
	err := r.db.WithContext(ctx).
		Where("recommendation_date = ?", date).
		Order("CASE priority WHEN 'high' THEN 1 WHEN 'medium' THEN 2 ELSE 3 END, id").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// MarkCompleted flags a recommendation as done.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: row ID of the recommendation.
// Returns:
//   - error: non-nil if the update fails.
func (r *RecommendationRepository) MarkCompleted(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&domain.RecommendationRecord{}).
		Where("id = ?", id).
		Update("completed", true).Error
}
