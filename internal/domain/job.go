package domain

import "time"

// Job represents an open role tracked in the ATS.
type Job struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Status     string `json:"status"`
	Department string `json:"department,omitempty"`
	Location   string `json:"location,omitempty"`
}

// Candidate represents a candidate in a role's pipeline. CurrentStage carries
// the provider's raw stage label; the analysis layer normalizes it. IsStuck is
// derived by stuck detection, not set at construction.
type Candidate struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Email          string     `json:"email,omitempty"`
	JobID          string     `json:"job_id"`
	JobTitle       string     `json:"job_title"`
	CurrentStage   string     `json:"current_stage"`
	StageEnteredAt *time.Time `json:"stage_entered_at,omitempty"`
	DaysInStage    int        `json:"days_in_stage"`
	IsStuck        bool       `json:"is_stuck"`
}
