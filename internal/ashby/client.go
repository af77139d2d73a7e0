package ashby

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/drewk/recruiting-copilot/internal/config"
	"github.com/drewk/recruiting-copilot/internal/domain"
	"github.com/go-resty/resty/v2"
)

// Client talks to the Ashby ATS API. Ashby endpoints are POST-based with
// cursor pagination; auth is HTTP basic with the API key as username and an
// empty password.
type Client struct {
	client      *resty.Client
	activeRoles []string
	now         func() time.Time
}

// NewClient creates a new Ashby client.
// Parameters:
//   - cfg: Ashby configuration including base URL and API key.
//   - activeRoles: role titles to track; jobs are matched by case-insensitive substring.
// Returns:
//   - *Client: initialized client.
func NewClient(cfg *config.AshbyConfig, activeRoles []string) *Client {
	client := resty.New()
	client.SetBaseURL(cfg.BaseURL)
	client.SetBasicAuth(cfg.APIKey, "")
	client.SetHeader("Content-Type", "application/json")
	client.SetTimeout(30 * time.Second)

	return &Client{
		client:      client,
		activeRoles: activeRoles,
		now:         time.Now,
	}
}

type jobListResponse struct {
	Results []struct {
		ID             string `json:"id"`
		Title          string `json:"title"`
		Status         string `json:"status"`
		DepartmentName string `json:"departmentName"`
		LocationName   string `json:"locationName"`
	} `json:"results"`
	MoreDataAvailable bool   `json:"moreDataAvailable"`
	NextCursor        string `json:"nextCursor"`
}

type applicationListResponse struct {
	Results []struct {
		ID        string `json:"id"`
		Status    string `json:"status"`
		Candidate struct {
			ID                  string `json:"id"`
			Name                string `json:"name"`
			FirstName           string `json:"firstName"`
			LastName            string `json:"lastName"`
			PrimaryEmailAddress struct {
				Value string `json:"value"`
			} `json:"primaryEmailAddress"`
		} `json:"candidate"`
		CurrentInterviewStage struct {
			Title string `json:"title"`
			Type  string `json:"type"`
		} `json:"currentInterviewStage"`
		CurrentInterviewStageStartedAt string `json:"currentInterviewStageStartedAt"`
		StatusChangedAt                string `json:"statusChangedAt"`
		UpdatedAt                      string `json:"updatedAt"`
	} `json:"results"`
	MoreDataAvailable bool   `json:"moreDataAvailable"`
	NextCursor        string `json:"nextCursor"`
}

// post sends one Ashby RPC call and decodes the response into out.
func (c *Client) post(ctx context.Context, endpoint string, body map[string]interface{}, out interface{}) error {
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(out).
		Post("/" + endpoint)
	if err != nil {
		return fmt.Errorf("failed to call ashby %s: %w", endpoint, err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return fmt.Errorf("ashby %s returned HTTP %d: %s", endpoint, resp.StatusCode(), string(resp.Body()))
	}
	return nil
}

// ListJobs fetches all open jobs, following pagination cursors.
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - []domain.Job: open jobs.
//   - error: non-nil if any page request fails.
func (c *Client) ListJobs(ctx context.Context) ([]domain.Job, error) {
	var jobs []domain.Job
	cursor := ""

	for {
		body := map[string]interface{}{}
		if cursor != "" {
			body["cursor"] = cursor
		}

		var page jobListResponse
		if err := c.post(ctx, "job.list", body, &page); err != nil {
			return nil, err
		}

		for _, j := range page.Results {
			if j.Status != "Open" {
				continue
			}
			jobs = append(jobs, domain.Job{
				ID:         j.ID,
				Title:      j.Title,
				Status:     j.Status,
				Department: j.DepartmentName,
				Location:   j.LocationName,
			})
		}

		if page.MoreDataAvailable && page.NextCursor != "" {
			cursor = page.NextCursor
		} else {
			break
		}
	}

	return jobs, nil
}

// ListActiveJobs fetches open jobs filtered to the tracked role titles.
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - []domain.Job: jobs whose title matches an active role.
//   - error: non-nil if fetching jobs fails.
func (c *Client) ListActiveJobs(ctx context.Context) ([]domain.Job, error) {
	jobs, err := c.ListJobs(ctx)
	if err != nil {
		return nil, err
	}

	var active []domain.Job
	for _, job := range jobs {
		for _, title := range c.activeRoles {
			if strings.Contains(strings.ToLower(job.Title), strings.ToLower(title)) {
				active = append(active, job)
				break
			}
		}
	}
	return active, nil
}

// ListCandidates fetches all non-archived candidates for a job with their raw
// current stage and days-in-stage. IsStuck is left unset; stuck detection is
// the analysis layer's job.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - job: job whose applications to fetch.
// Returns:
//   - []domain.Candidate: candidates on the job's pipeline.
//   - error: non-nil if any page request fails.
func (c *Client) ListCandidates(ctx context.Context, job domain.Job) ([]domain.Candidate, error) {
	var candidates []domain.Candidate
	cursor := ""

	for {
		body := map[string]interface{}{"jobId": job.ID}
		if cursor != "" {
			body["cursor"] = cursor
		}

		var page applicationListResponse
		if err := c.post(ctx, "application.list", body, &page); err != nil {
			return nil, err
		}

		for _, app := range page.Results {
			if app.Status == "Archived" {
				continue
			}

			stageName := app.CurrentInterviewStage.Title
			if stageName == "" {
				stageName = "Unknown"
			}

			// Several fields can carry the stage start date depending on
			// the application's history
			enteredStr := app.CurrentInterviewStageStartedAt
			if enteredStr == "" {
				enteredStr = app.StatusChangedAt
			}
			if enteredStr == "" {
				enteredStr = app.UpdatedAt
			}

			var enteredAt *time.Time
			daysInStage := 0
			if enteredStr != "" {
				if t, err := time.Parse(time.RFC3339, enteredStr); err == nil {
					enteredAt = &t
					daysInStage = int(c.now().UTC().Sub(t).Hours() / 24)
				}
			}

			name := app.Candidate.Name
			if name == "" {
				name = strings.TrimSpace(app.Candidate.FirstName + " " + app.Candidate.LastName)
			}
			if name == "" {
				name = "Unknown"
			}

			id := app.Candidate.ID
			if id == "" {
				id = app.ID
			}

			candidates = append(candidates, domain.Candidate{
				ID:             id,
				Name:           name,
				Email:          app.Candidate.PrimaryEmailAddress.Value,
				JobID:          job.ID,
				JobTitle:       job.Title,
				CurrentStage:   stageName,
				StageEnteredAt: enteredAt,
				DaysInStage:    daysInStage,
			})
		}

		if page.MoreDataAvailable && page.NextCursor != "" {
			cursor = page.NextCursor
		} else {
			break
		}
	}

	return candidates, nil
}
