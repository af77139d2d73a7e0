package analysis

import "github.com/drewk/recruiting-copilot/internal/domain"

// CountByStage tallies candidates by their normalized stage. Stages with no
// candidates are omitted; callers rendering the full canonical list must
// default missing stages to zero.
// Parameters:
//   - n: stage normalizer.
//   - candidates: candidates to tally.
// Returns:
//   - map[string]int: normalized stage → candidate count.
func CountByStage(n *Normalizer, candidates []domain.Candidate) map[string]int {
	counts := make(map[string]int)
	for _, c := range candidates {
		counts[n.Normalize(c.CurrentStage)]++
	}
	return counts
}

// FindStuck returns the candidates that have sat in their stage beyond the
// configured threshold. As a documented side effect, IsStuck is set on each
// returned candidate in place. Stages without a threshold (Hired) can never
// be stuck.
// Parameters:
//   - n: stage normalizer.
//   - thresholds: canonical stage → max days before a candidate counts as stuck.
//   - candidates: candidates to inspect; mutated in place.
// Returns:
//   - []domain.Candidate: stuck candidates in input order.
func FindStuck(n *Normalizer, thresholds map[string]int, candidates []domain.Candidate) []domain.Candidate {
	var stuck []domain.Candidate
	for i := range candidates {
		threshold, ok := thresholds[n.Normalize(candidates[i].CurrentStage)]
		if !ok || threshold <= 0 {
			continue
		}
		if candidates[i].DaysInStage > threshold {
			candidates[i].IsStuck = true
			stuck = append(stuck, candidates[i])
		}
	}
	return stuck
}
