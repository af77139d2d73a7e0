package repository

import (
	"context"
	"errors"

	"github.com/drewk/recruiting-copilot/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SnapshotRepository handles date-keyed outreach snapshot storage.
type SnapshotRepository struct {
	db *gorm.DB
}

// NewSnapshotRepository creates a new SnapshotRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *SnapshotRepository: repository instance bound to db.
func NewSnapshotRepository(db *gorm.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Upsert creates or replaces the snapshot for a calendar date.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - date: snapshot date in domain.DateLayout form.
//   - stats: cumulative outreach aggregate for that date.
// Returns:
//   - uint: row ID of the stored snapshot.
//   - error: non-nil if the upsert fails.
func (r *SnapshotRepository) Upsert(ctx context.Context, date string, stats *domain.OutreachStats) (uint, error) {
	snapshot := domain.OutreachSnapshot{
		SnapshotDate: date,
		Data:         domain.StatsPayload(*stats),
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "snapshot_date"}},
		UpdateAll: true,
	}).Create(&snapshot).Error
	if err != nil {
		return 0, err
	}
	return snapshot.ID, nil
}

// Get retrieves the snapshot payload for a specific date.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - date: snapshot date to look up.
// Returns:
//   - *domain.OutreachStats: stored aggregate, nil when no row exists.
//   - error: non-nil if the lookup fails.
func (r *SnapshotRepository) Get(ctx context.Context, date string) (*domain.OutreachStats, error) {
	var snapshot domain.OutreachSnapshot
	err := r.db.WithContext(ctx).First(&snapshot, "snapshot_date = ?", date).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return payloadStats(&snapshot), nil
}

// GetRange retrieves all snapshots within a date range, ascending by date.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - start: first date of the range, inclusive.
//   - end: last date of the range, inclusive.
// Returns:
//   - []domain.OutreachStats: matching snapshot payloads in date order.
//   - error: non-nil if the query fails.
func (r *SnapshotRepository) GetRange(ctx context.Context, start, end string) ([]domain.OutreachStats, error) {
	var snapshots []domain.OutreachSnapshot
	err := r.db.WithContext(ctx).
		Where("snapshot_date BETWEEN ? AND ?", start, end).
		Order("snapshot_date ASC").
		Find(&snapshots).Error
	if err != nil {
		return nil, err
	}
	results := make([]domain.OutreachStats, 0, len(snapshots))
	for i := range snapshots {
		results = append(results, *payloadStats(&snapshots[i]))
	}
	return results, nil
}

// GetLatest retrieves the most recent snapshot by date.
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - *domain.OutreachStats: latest stored aggregate, nil when the table is empty.
//   - error: non-nil if the query fails.
func (r *SnapshotRepository) GetLatest(ctx context.Context) (*domain.OutreachStats, error) {
	var snapshot domain.OutreachSnapshot
	err := r.db.WithContext(ctx).Order("snapshot_date DESC").First(&snapshot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return payloadStats(&snapshot), nil
}

// payloadStats unwraps a snapshot row, stamping the row's date into the payload.
func payloadStats(snapshot *domain.OutreachSnapshot) *domain.OutreachStats {
	stats := domain.OutreachStats(snapshot.Data)
	stats.SnapshotDate = snapshot.SnapshotDate
	return &stats
}
