package repository

import (
	"context"

	"github.com/drewk/recruiting-copilot/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SequenceStatRepository handles per-sequence daily counter rows.
type SequenceStatRepository struct {
	db *gorm.DB
}

// NewSequenceStatRepository creates a new SequenceStatRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *SequenceStatRepository: repository instance bound to db.
func NewSequenceStatRepository(db *gorm.DB) *SequenceStatRepository {
	return &SequenceStatRepository{db: db}
}

// Upsert creates or replaces the counter row for a (date, sequence) pair.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - record: sequence counters to persist.
// Returns:
//   - error: non-nil if the upsert fails.
func (r *SequenceStatRepository) Upsert(ctx context.Context, record *domain.SequenceStatRecord) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "snapshot_date"}, {Name: "sequence_name"}},
		UpdateAll: true,
	}).Create(record).Error
}

// ListByDate retrieves all sequence counter rows for a date.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - date: snapshot date to filter by.
// Returns:
//   - []domain.SequenceStatRecord: matching rows ordered by sequence name.
//   - error: non-nil if the query fails.
func (r *SequenceStatRepository) ListByDate(ctx context.Context, date string) ([]domain.SequenceStatRecord, error) {
	var records []domain.SequenceStatRecord
	err := r.db.WithContext(ctx).
		Where("snapshot_date = ?", date).
		Order("sequence_name ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
