package analysis

import "github.com/drewk/recruiting-copilot/internal/domain"

// healthWeights scales allocation by pipeline urgency. Unknown statuses
// weigh the same as green.
var healthWeights = map[domain.HealthStatus]float64{
	domain.HealthRed:    3,
	domain.HealthYellow: 2,
	domain.HealthGreen:  1,
}

// Allocate splits the weekly outreach capacity across roles. Each role scores
// priorityWeight × gapWeight × healthWeight; capacity is divided by score
// share with truncation, and the under-allocated remainder goes entirely to
// the role with the lowest priority number, so the result sums exactly to
// totalCapacity. No roles, or a zero total score, yields an empty map.
// Parameters:
//   - pipelines: role summaries; the complete set for this run.
//   - totalCapacity: weekly outreach budget to distribute.
// Returns:
//   - map[string]int: job title → outreach count.
func Allocate(pipelines []domain.RolePipeline, totalCapacity int) map[string]int {
	allocations := make(map[string]int)
	if len(pipelines) == 0 {
		return allocations
	}

	scores := make(map[string]float64, len(pipelines))
	totalScore := 0.0
	for _, p := range pipelines {
		score := priorityWeight(p.Priority) * gapWeight(p.GapToHire) * healthWeight(p.HealthStatus)
		scores[p.JobTitle] = score
		totalScore += score
	}

	if totalScore <= 0 {
		return allocations
	}

	for title, score := range scores {
		allocations[title] = int(score / totalScore * float64(totalCapacity))
	}

	// Truncation strictly under-allocates; hand the remainder to the most
	// important role
	allocated := 0
	for _, n := range allocations {
		allocated += n
	}
	if allocated < totalCapacity {
		top := pipelines[0]
		for _, p := range pipelines[1:] {
			if p.Priority < top.Priority {
				top = p
			}
		}
		allocations[top.JobTitle] += totalCapacity - allocated
	}

	return allocations
}

// priorityWeight maps priority 1→3, 2→2, 3→1. Out-of-range priorities are
// clamped so a misconfigured role can never zero out its own score.
func priorityWeight(priority int) float64 {
	w := 4 - priority
	if w < 1 {
		w = 1
	}
	if w > 3 {
		w = 3
	}
	return float64(w)
}

// gapWeight grows with gap-to-hire, capped at 5x past a 100-candidate gap.
func gapWeight(gap int) float64 {
	w := float64(gap) / 20
	if w > 5 {
		w = 5
	}
	return w
}

func healthWeight(status domain.HealthStatus) float64 {
	if w, ok := healthWeights[status]; ok {
		return w
	}
	return 1
}
