package ashby

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/drewk/recruiting-copilot/internal/config"
	"github.com/drewk/recruiting-copilot/internal/domain"
)

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(&config.AshbyConfig{
		BaseURL: server.URL,
		APIKey:  "test-key",
	}, []string{"Full Stack", "AI Engineer"})
	return client
}

func TestListActiveJobs(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/job.list", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if user, _, ok := r.BasicAuth(); !ok || user != "test-key" {
			t.Error("expected basic auth with the API key as username")
		}
		writeJSON(w, map[string]interface{}{
			"results": []map[string]interface{}{
				{"id": "j1", "title": "Senior Full Stack Engineer", "status": "Open"},
				{"id": "j2", "title": "Senior AI Engineer", "status": "Open"},
				{"id": "j3", "title": "Office Manager", "status": "Open"},
				{"id": "j4", "title": "Senior Full Stack Engineer", "status": "Closed"},
			},
			"moreDataAvailable": false,
		})
	})

	client := newTestClient(t, mux)
	jobs, err := client.ListActiveJobs(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(jobs) != 2 {
		t.Fatalf("expected 2 tracked jobs, got %d: %+v", len(jobs), jobs)
	}
	if jobs[0].ID != "j1" || jobs[1].ID != "j2" {
		t.Errorf("unexpected jobs: %+v", jobs)
	}
}

func TestListJobs_Pagination(t *testing.T) {
	calls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/job.list", func(w http.ResponseWriter, r *http.Request) {
		calls++
		var body map[string]interface{}
		json.NewDecoder(r.Body).Decode(&body)

		if calls == 1 {
			if _, ok := body["cursor"]; ok {
				t.Error("first page must not carry a cursor")
			}
			writeJSON(w, map[string]interface{}{
				"results":           []map[string]interface{}{{"id": "j1", "title": "Role A", "status": "Open"}},
				"moreDataAvailable": true,
				"nextCursor":        "page2",
			})
			return
		}
		if body["cursor"] != "page2" {
			t.Errorf("cursor = %v, want page2", body["cursor"])
		}
		writeJSON(w, map[string]interface{}{
			"results":           []map[string]interface{}{{"id": "j2", "title": "Role B", "status": "Open"}},
			"moreDataAvailable": false,
		})
	})

	client := newTestClient(t, mux)
	jobs, err := client.ListJobs(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 page fetches, got %d", calls)
	}
	if len(jobs) != 2 {
		t.Errorf("expected 2 jobs across pages, got %d", len(jobs))
	}
}

func TestListCandidates(t *testing.T) {
	now := time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC)

	mux := http.NewServeMux()
	mux.HandleFunc("/application.list", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		json.NewDecoder(r.Body).Decode(&body)
		if body["jobId"] != "j1" {
			t.Errorf("jobId = %v, want j1", body["jobId"])
		}
		writeJSON(w, map[string]interface{}{
			"results": []map[string]interface{}{
				{
					"id":     "app1",
					"status": "Active",
					"candidate": map[string]interface{}{
						"id":   "c1",
						"name": "Ada Lovelace",
						"primaryEmailAddress": map[string]interface{}{
							"value": "ada@example.com",
						},
					},
					"currentInterviewStage":          map[string]interface{}{"title": "HM Screen"},
					"currentInterviewStageStartedAt": "2025-10-04T12:00:00Z",
				},
				{
					// No explicit stage start; falls back to updatedAt
					"id":     "app2",
					"status": "Active",
					"candidate": map[string]interface{}{
						"firstName": "Grace",
						"lastName":  "Hopper",
					},
					"currentInterviewStage": map[string]interface{}{},
					"updatedAt":             "2025-10-09T12:00:00Z",
				},
				{
					"id":        "app3",
					"status":    "Archived",
					"candidate": map[string]interface{}{"name": "Gone"},
				},
			},
			"moreDataAvailable": false,
		})
	})

	client := newTestClient(t, mux)
	client.now = func() time.Time { return now }

	candidates, err := client.ListCandidates(context.Background(), domain.Job{ID: "j1", Title: "Senior Full Stack Engineer"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(candidates) != 2 {
		t.Fatalf("expected archived application skipped, got %d candidates", len(candidates))
	}

	ada := candidates[0]
	if ada.ID != "c1" || ada.Name != "Ada Lovelace" || ada.Email != "ada@example.com" {
		t.Errorf("unexpected candidate: %+v", ada)
	}
	if ada.CurrentStage != "HM Screen" || ada.DaysInStage != 6 {
		t.Errorf("stage = %q days = %d, want HM Screen / 6", ada.CurrentStage, ada.DaysInStage)
	}
	if ada.JobTitle != "Senior Full Stack Engineer" {
		t.Errorf("job title = %q", ada.JobTitle)
	}

	grace := candidates[1]
	if grace.Name != "Grace Hopper" {
		t.Errorf("expected name assembled from parts, got %q", grace.Name)
	}
	if grace.CurrentStage != "Unknown" {
		t.Errorf("expected Unknown stage fallback, got %q", grace.CurrentStage)
	}
	if grace.DaysInStage != 1 {
		t.Errorf("days in stage = %d, want 1 from updatedAt", grace.DaysInStage)
	}
	if grace.ID != "app2" {
		t.Errorf("expected application ID fallback, got %q", grace.ID)
	}
}

func TestClient_HTTPError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/job.list", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"errors":["invalid api key"]}`)
	})

	client := newTestClient(t, mux)
	if _, err := client.ListJobs(context.Background()); err == nil {
		t.Fatal("expected error on HTTP 401")
	}
}
