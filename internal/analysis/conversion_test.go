package analysis

import (
	"testing"

	"github.com/drewk/recruiting-copilot/internal/domain"
)

func TestConversionRates(t *testing.T) {
	stages := []string{"Recruiter Screen", "HM Screen", "Testing"}

	tests := []struct {
		name       string
		counts     map[string]int
		historical map[string]float64
		expected   map[string]float64
	}{
		{
			name:   "observed rates",
			counts: map[string]int{"Recruiter Screen": 10, "HM Screen": 5, "Testing": 1},
			expected: map[string]float64{
				"Recruiter Screen→HM Screen": 0.5,
				"HM Screen→Testing":          0.2,
			},
		},
		{
			name:       "historical overrides observed verbatim",
			counts:     map[string]int{"Recruiter Screen": 10, "HM Screen": 5},
			historical: map[string]float64{"Recruiter Screen→HM Screen": 0.33},
			expected: map[string]float64{
				"Recruiter Screen→HM Screen": 0.33,
				"HM Screen→Testing":          0.0,
			},
		},
		{
			name:   "empty from-stage yields zero",
			counts: map[string]int{"HM Screen": 3},
			expected: map[string]float64{
				"Recruiter Screen→HM Screen": 0.0,
				"HM Screen→Testing":          0.0,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rates := ConversionRates(stages, tt.counts, tt.historical)
			if len(rates) != len(tt.expected) {
				t.Fatalf("expected %d rates, got %d", len(tt.expected), len(rates))
			}
			for key, want := range tt.expected {
				if got := rates[key]; got != want {
					t.Errorf("rate %q = %v, want %v", key, got, want)
				}
			}
		})
	}
}

func TestGapToHire(t *testing.T) {
	tests := []struct {
		name     string
		rates    map[string]float64
		expected int
	}{
		{
			name:     "empty map yields unknown sentinel",
			rates:    map[string]float64{},
			expected: domain.GapUnknown,
		},
		{
			name:     "simple product",
			rates:    map[string]float64{"A→B": 0.5, "B→C": 0.5},
			expected: 4,
		},
		{
			name:     "rounds up",
			rates:    map[string]float64{"A→B": 0.3},
			expected: 4,
		},
		{
			name:     "zero rate floored to 0.05",
			rates:    map[string]float64{"A→B": 0.0},
			expected: 20,
		},
		{
			name:     "perfect funnel floors at one",
			rates:    map[string]float64{"A→B": 1.0, "B→C": 1.0},
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GapToHire(tt.rates); got != tt.expected {
				t.Errorf("GapToHire(%v) = %d, want %d", tt.rates, got, tt.expected)
			}
		})
	}
}

func TestGapToHire_DoesNotMutateRates(t *testing.T) {
	rates := map[string]float64{"A→B": 0.0, "B→C": 0.5}
	GapToHire(rates)
	if rates["A→B"] != 0.0 {
		t.Errorf("rate map was mutated: %v", rates)
	}
}

func TestFindBottleneck(t *testing.T) {
	stages := []string{"A", "B", "C"}

	tests := []struct {
		name     string
		rates    map[string]float64
		expected string
	}{
		{
			name:     "worst transition below threshold",
			rates:    map[string]float64{"A→B": 0.30, "B→C": 0.18},
			expected: "B→C (18%)",
		},
		{
			name:     "all rates healthy",
			rates:    map[string]float64{"A→B": 0.30, "B→C": 0.25},
			expected: "",
		},
		{
			name:     "empty map",
			rates:    map[string]float64{},
			expected: "",
		},
		{
			name:     "tie resolves to earlier transition",
			rates:    map[string]float64{"A→B": 0.10, "B→C": 0.10},
			expected: "A→B (10%)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FindBottleneck(stages, tt.rates); got != tt.expected {
				t.Errorf("FindBottleneck(%v) = %q, want %q", tt.rates, got, tt.expected)
			}
		})
	}
}

func TestDetermineHealth(t *testing.T) {
	tests := []struct {
		name     string
		rates    map[string]float64
		gap      int
		counts   map[string]int
		expected domain.HealthStatus
	}{
		{
			name:     "severe bottleneck wins regardless of gap and counts",
			rates:    map[string]float64{"A→B": 0.5, "B→C": 0.1},
			gap:      10,
			counts:   map[string]int{"A": 10},
			expected: domain.HealthRed,
		},
		{
			name:     "empty rate map counts as zero minimum",
			rates:    map[string]float64{},
			gap:      1,
			counts:   map[string]int{"A": 100},
			expected: domain.HealthRed,
		},
		{
			name:     "large gap is red",
			rates:    map[string]float64{"A→B": 0.5},
			gap:      51,
			counts:   map[string]int{"A": 100},
			expected: domain.HealthRed,
		},
		{
			name:     "moderate gap is yellow",
			rates:    map[string]float64{"A→B": 0.5},
			gap:      36,
			counts:   map[string]int{"A": 100},
			expected: domain.HealthYellow,
		},
		{
			name:     "thin pipeline is yellow",
			rates:    map[string]float64{"A→B": 0.5},
			gap:      10,
			counts:   map[string]int{"A": 4},
			expected: domain.HealthYellow,
		},
		{
			name:     "healthy pipeline is green",
			rates:    map[string]float64{"A→B": 0.5},
			gap:      10,
			counts:   map[string]int{"A": 10},
			expected: domain.HealthGreen,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetermineHealth(tt.rates, tt.gap, tt.counts); got != tt.expected {
				t.Errorf("DetermineHealth = %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestRoleCategory(t *testing.T) {
	categories := map[string]string{"Senior AI Engineer": "AI Engineer"}

	tests := []struct {
		name     string
		jobTitle string
		expected string
	}{
		{name: "configured mapping wins", jobTitle: "Senior AI Engineer", expected: "AI Engineer"},
		{name: "full stack substring fallback", jobTitle: "Staff Full Stack Engineer", expected: "Full Stack"},
		{name: "everything else falls back to AI", jobTitle: "GTM Engineer", expected: "AI Engineer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RoleCategory(categories, tt.jobTitle); got != tt.expected {
				t.Errorf("RoleCategory(%q) = %q, want %q", tt.jobTitle, got, tt.expected)
			}
		})
	}
}

func TestFunnel_EndToEnd(t *testing.T) {
	stages := []string{"Recruiter Screen", "HM Screen", "Testing", "Onsite", "Offer", "Hired"}
	counts := map[string]int{"Recruiter Screen": 20, "HM Screen": 5}

	rates := ConversionRates(stages, counts, nil)

	if got := rates["Recruiter Screen→HM Screen"]; got != 0.25 {
		t.Errorf("expected observed rate 0.25, got %v", got)
	}
	for _, key := range []string{"HM Screen→Testing", "Testing→Onsite", "Onsite→Offer", "Offer→Hired"} {
		if got := rates[key]; got != 0.0 {
			t.Errorf("expected %q to be 0.0, got %v", key, got)
		}
	}

	// Zero rates floor to 0.05 inside the product, so the gap is huge but
	// finite, and the unknown sentinel must not fire
	gap := GapToHire(rates)
	if gap == domain.GapUnknown {
		t.Fatal("gap must not be the unknown sentinel for a non-empty rate map")
	}
	if gap != 640000 {
		t.Errorf("expected gap 640000, got %d", gap)
	}
}
