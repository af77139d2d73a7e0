package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/drewk/recruiting-copilot/internal/config"
	"github.com/drewk/recruiting-copilot/internal/domain"
	"gorm.io/gorm"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := InitDB(&config.DatabaseConfig{
		Driver:      "sqlite",
		Path:        filepath.Join(t.TempDir(), "test.db"),
		AutoMigrate: true,
	})
	if err != nil {
		t.Fatalf("failed to init test db: %v", err)
	}
	return db
}

func sampleStats(sent int) *domain.OutreachStats {
	return &domain.OutreachStats{
		Totals: domain.StatTotals{Sent: sent, Replied: sent / 10},
		ByRole: map[string]domain.StatTotals{
			"Full Stack": {Sent: sent},
		},
	}
}

func TestSnapshotRepository_UpsertReplacesSameDate(t *testing.T) {
	repo := NewSnapshotRepository(testDB(t))
	ctx := context.Background()

	if _, err := repo.Upsert(ctx, "2025-10-06", sampleStats(50)); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if _, err := repo.Upsert(ctx, "2025-10-06", sampleStats(120)); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	got, err := repo.Get(ctx, "2025-10-06")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.Totals.Sent != 120 {
		t.Errorf("expected the later payload to win, got %+v", got)
	}
	if got.SnapshotDate != "2025-10-06" {
		t.Errorf("snapshot date = %q", got.SnapshotDate)
	}

	var count int64
	repo.db.Model(&domain.OutreachSnapshot{}).Count(&count)
	if count != 1 {
		t.Errorf("expected a single row per date, got %d", count)
	}
}

func TestSnapshotRepository_GetMissingIsNil(t *testing.T) {
	repo := NewSnapshotRepository(testDB(t))

	got, err := repo.Get(context.Background(), "1999-01-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing date, got %+v", got)
	}
}

func TestSnapshotRepository_GetRangeAndLatest(t *testing.T) {
	repo := NewSnapshotRepository(testDB(t))
	ctx := context.Background()

	for _, row := range []struct {
		date string
		sent int
	}{
		{"2025-10-09", 90},
		{"2025-10-06", 60},
		{"2025-10-01", 30},
	} {
		if _, err := repo.Upsert(ctx, row.date, sampleStats(row.sent)); err != nil {
			t.Fatalf("upsert %s: %v", row.date, err)
		}
	}

	window, err := repo.GetRange(ctx, "2025-10-04", "2025-10-10")
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	if len(window) != 2 {
		t.Fatalf("expected 2 snapshots in window, got %d", len(window))
	}
	// Ascending by date regardless of insertion order
	if window[0].SnapshotDate != "2025-10-06" || window[1].SnapshotDate != "2025-10-09" {
		t.Errorf("window order = %s, %s", window[0].SnapshotDate, window[1].SnapshotDate)
	}

	latest, err := repo.GetLatest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest == nil || latest.SnapshotDate != "2025-10-09" || latest.Totals.Sent != 90 {
		t.Errorf("latest = %+v", latest)
	}
}

func TestSnapshotRepository_GetLatestEmptyIsNil(t *testing.T) {
	repo := NewSnapshotRepository(testDB(t))

	latest, err := repo.GetLatest(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if latest != nil {
		t.Errorf("expected nil on empty table, got %+v", latest)
	}
}
