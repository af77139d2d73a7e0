package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/drewk/recruiting-copilot/internal/domain"
	"github.com/drewk/recruiting-copilot/internal/trends"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeSnapshotStore struct {
	latest     *domain.OutreachStats
	saved      *domain.OutreachStats
	savedDate  string
	upsertID   uint
	upsertErr  error
	getLatestE error
}

func (f *fakeSnapshotStore) Upsert(ctx context.Context, date string, stats *domain.OutreachStats) (uint, error) {
	if f.upsertErr != nil {
		return 0, f.upsertErr
	}
	f.saved = stats
	f.savedDate = date
	return f.upsertID, nil
}

func (f *fakeSnapshotStore) GetLatest(ctx context.Context) (*domain.OutreachStats, error) {
	return f.latest, f.getLatestE
}

type fakeSequenceStore struct {
	records []domain.SequenceStatRecord
	err     error
}

func (f *fakeSequenceStore) Upsert(ctx context.Context, record *domain.SequenceStatRecord) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, *record)
	return nil
}

type fakeTrendSource struct {
	report *trends.Report
	err    error
}

func (f *fakeTrendSource) WeeklyReport(ctx context.Context) (*trends.Report, error) {
	return f.report, f.err
}

func performJSON(t *testing.T, handler gin.HandlerFunc, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	route := path
	if i := strings.Index(route, "?"); i >= 0 {
		route = route[:i]
	}
	router := gin.New()
	router.Handle(method, route, handler)

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	return body
}

func TestGemHandler_SaveSnapshot(t *testing.T) {
	snapshots := &fakeSnapshotStore{upsertID: 7}
	sequences := &fakeSequenceStore{}
	h := NewGemHandler(snapshots, sequences, &fakeTrendSource{})

	payload := `{
		"snapshot_date": "2025-10-06",
		"sequences": [
			{"sequence_name": "FS Outreach", "role": "Full Stack", "sender": "Blessing", "sent": 80, "opened": 40, "replied": 10},
			{"sequence_name": "AI Outreach", "role": "AI Engineer", "sender": "Blessing", "sent": 20, "replied": 1}
		],
		"notes": "week 41"
	}`

	w := performJSON(t, h.SaveSnapshot, http.MethodPost, "/api/gem/snapshot", payload)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	if body["status"] != "success" {
		t.Errorf("status = %v", body["status"])
	}
	if body["snapshot_id"] != float64(7) {
		t.Errorf("snapshot_id = %v, want 7", body["snapshot_id"])
	}
	if body["snapshot_date"] != "2025-10-06" {
		t.Errorf("snapshot_date = %v", body["snapshot_date"])
	}
	if body["sequences_saved"] != float64(2) {
		t.Errorf("sequences_saved = %v, want 2", body["sequences_saved"])
	}

	if len(sequences.records) != 2 {
		t.Fatalf("expected 2 sequence rows, got %d", len(sequences.records))
	}
	if sequences.records[0].SnapshotDate != "2025-10-06" {
		t.Errorf("row date = %q", sequences.records[0].SnapshotDate)
	}

	saved := snapshots.saved
	if saved == nil {
		t.Fatal("expected an aggregated snapshot to be stored")
	}
	if saved.Totals.Sent != 100 || saved.Totals.Replied != 11 {
		t.Errorf("totals = %+v", saved.Totals)
	}
	if saved.Totals.ReplyRate != 0.11 {
		t.Errorf("total reply rate = %v, want 0.11", saved.Totals.ReplyRate)
	}
	if got := saved.ByRole["Full Stack"]; got.Sent != 80 || got.ReplyRate != 0.125 {
		t.Errorf("role aggregate = %+v", got)
	}
	if got := saved.BySender["Blessing"]; got.Sent != 100 {
		t.Errorf("sender aggregate = %+v", got)
	}
	if saved.Notes != "week 41" {
		t.Errorf("notes = %q", saved.Notes)
	}
}

func TestGemHandler_SaveSnapshot_DefaultsDateToToday(t *testing.T) {
	snapshots := &fakeSnapshotStore{}
	h := NewGemHandler(snapshots, &fakeSequenceStore{}, &fakeTrendSource{})
	h.now = func() time.Time { return time.Date(2025, 10, 6, 3, 0, 0, 0, time.UTC) }

	w := performJSON(t, h.SaveSnapshot, http.MethodPost, "/api/gem/snapshot",
		`{"sequences": [{"sequence_name": "FS", "sent": 1}]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if snapshots.savedDate != "2025-10-06" {
		t.Errorf("saved date = %q, want today", snapshots.savedDate)
	}
}

func TestGemHandler_SaveSnapshot_BadDate(t *testing.T) {
	h := NewGemHandler(&fakeSnapshotStore{}, &fakeSequenceStore{}, &fakeTrendSource{})

	w := performJSON(t, h.SaveSnapshot, http.MethodPost, "/api/gem/snapshot",
		`{"snapshot_date": "06/10/2025", "sequences": []}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	body := decodeBody(t, w)
	if body["error"] != "Invalid date format. Use YYYY-MM-DD" {
		t.Errorf("error = %v", body["error"])
	}
}

func TestGemHandler_SaveSnapshot_MissingSequenceName(t *testing.T) {
	h := NewGemHandler(&fakeSnapshotStore{}, &fakeSequenceStore{}, &fakeTrendSource{})

	w := performJSON(t, h.SaveSnapshot, http.MethodPost, "/api/gem/snapshot",
		`{"sequences": [{"sent": 10}]}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestGemHandler_GetLatest(t *testing.T) {
	t.Run("with data", func(t *testing.T) {
		store := &fakeSnapshotStore{
			latest: &domain.OutreachStats{Totals: domain.StatTotals{Sent: 42}},
		}
		h := NewGemHandler(store, &fakeSequenceStore{}, &fakeTrendSource{})

		w := performJSON(t, h.GetLatest, http.MethodGet, "/api/gem/latest", "")
		body := decodeBody(t, w)
		if body["status"] != "success" {
			t.Errorf("status = %v", body["status"])
		}
	})

	t.Run("no data", func(t *testing.T) {
		h := NewGemHandler(&fakeSnapshotStore{}, &fakeSequenceStore{}, &fakeTrendSource{})

		w := performJSON(t, h.GetLatest, http.MethodGet, "/api/gem/latest", "")
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		body := decodeBody(t, w)
		if body["status"] != "no_data" {
			t.Errorf("status = %v, want no_data", body["status"])
		}
		if body["message"] != "No Gem data has been entered yet" {
			t.Errorf("message = %v", body["message"])
		}
	})

	t.Run("store failure", func(t *testing.T) {
		store := &fakeSnapshotStore{getLatestE: errors.New("db down")}
		h := NewGemHandler(store, &fakeSequenceStore{}, &fakeTrendSource{})

		w := performJSON(t, h.GetLatest, http.MethodGet, "/api/gem/latest", "")
		if w.Code != http.StatusInternalServerError {
			t.Errorf("status = %d, want 500", w.Code)
		}
	})
}

func TestGemHandler_GetTrends(t *testing.T) {
	source := &fakeTrendSource{
		report: &trends.Report{HasData: true, DataPoints: 3},
	}
	h := NewGemHandler(&fakeSnapshotStore{}, &fakeSequenceStore{}, source)

	w := performJSON(t, h.GetTrends, http.MethodGet, "/api/gem/trends", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["status"] != "success" {
		t.Errorf("status = %v", body["status"])
	}
	data, ok := body["data"].(map[string]interface{})
	if !ok || data["has_data"] != true {
		t.Errorf("data = %v", body["data"])
	}
}
