package domain

import "time"

// HealthStatus classifies a role's pipeline health.
// Values include HealthRed, HealthYellow, and HealthGreen.
type HealthStatus string

const (
	HealthRed    HealthStatus = "red"
	HealthYellow HealthStatus = "yellow"
	HealthGreen  HealthStatus = "green"
)

// GapUnknown is the sentinel gap-to-hire when no conversion rates exist.
// It flags "unknown", it is not a numeric projection.
const GapUnknown = 999

// PipelineStage holds the candidate count for a single canonical stage.
type PipelineStage struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// RolePipeline is a role's funnel snapshot: ordered stage counts, stuck
// candidates, conversion rates keyed by "From→To", gap-to-hire and health.
// Lower Priority means more important.
type RolePipeline struct {
	JobID           string             `json:"job_id"`
	JobTitle        string             `json:"job_title"`
	Priority        int                `json:"priority"`
	Stages          []PipelineStage    `json:"stages"`
	TotalCandidates int                `json:"total_candidates"`
	StuckCandidates []Candidate        `json:"stuck_candidates"`
	ConversionRates map[string]float64 `json:"conversion_rates"`
	GapToHire       int                `json:"gap_to_hire"`
	HealthStatus    HealthStatus       `json:"health_status"`
	Bottleneck      string             `json:"bottleneck,omitempty"`
}

// PipelineSnapshot is the complete analysis output: roles sorted ascending by
// priority plus the weekly sourcing allocation. Immutable once returned.
type PipelineSnapshot struct {
	GeneratedAt        time.Time          `json:"generated_at"`
	Roles              []RolePipeline     `json:"roles"`
	SourcingAllocation map[string]int     `json:"sourcing_allocation"`
}
