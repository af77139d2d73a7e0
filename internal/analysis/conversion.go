package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/drewk/recruiting-copilot/internal/domain"
)

// minConversionRate floors non-positive rates inside the gap-to-hire product.
// A stage with zero observed conversions would otherwise blow the projection
// up to infinity.
const minConversionRate = 0.05

// bottleneckThreshold is the rate below which the worst transition is reported.
const bottleneckThreshold = 0.25

// TransitionKey builds the conversion-rate map key for a stage pair.
// Parameters:
//   - from: source stage.
//   - to: destination stage.
// Returns:
//   - string: "From→To" key.
func TransitionKey(from, to string) string {
	return from + "→" + to
}

// ConversionRates computes stage-to-stage conversion rates over the canonical
// stage sequence. A historical rate for the exact transition key wins
// verbatim; historical rates are benchmarks and deliberately override noisy
// small-sample observed rates. Otherwise the observed to/from ratio is used,
// or 0.0 when the from-stage is empty.
// Parameters:
//   - stages: canonical stage sequence.
//   - counts: normalized stage → candidate count.
//   - historical: transition key → benchmark rate; may be nil.
// Returns:
//   - map[string]float64: transition key → rate for every adjacent pair.
func ConversionRates(stages []string, counts map[string]int, historical map[string]float64) map[string]float64 {
	rates := make(map[string]float64, len(stages))

	for i := 0; i+1 < len(stages); i++ {
		key := TransitionKey(stages[i], stages[i+1])

		if rate, ok := historical[key]; ok {
			rates[key] = rate
			continue
		}

		fromCount := counts[stages[i]]
		toCount := counts[stages[i+1]]
		if fromCount > 0 {
			rates[key] = float64(toCount) / float64(fromCount)
		} else {
			rates[key] = 0.0
		}
	}

	return rates
}

// GapToHire projects the number of top-of-funnel candidates needed for one
// hire: ceil(1 / product of rates), floored at 1. An empty rate map yields
// the GapUnknown sentinel. Non-positive rates are floored to a conservative
// minimum inside the product only; the rate map itself is never modified.
// Parameters:
//   - rates: transition key → conversion rate.
// Returns:
//   - int: projected candidates per hire, or domain.GapUnknown.
func GapToHire(rates map[string]float64) int {
	if len(rates) == 0 {
		return domain.GapUnknown
	}

	product := 1.0
	for _, rate := range rates {
		if rate <= 0 {
			rate = minConversionRate
		}
		product *= rate
	}

	if product <= 0 {
		return domain.GapUnknown
	}

	gap := int(math.Ceil(1 / product))
	if gap < 1 {
		return 1
	}
	return gap
}

// FindBottleneck reports the worst transition when its rate falls below the
// severity threshold. Transitions are scanned in canonical stage order (any
// keys outside the canonical sequence follow in sorted order) with the first
// encountered minimum winning, so ties resolve deterministically.
// Parameters:
//   - stages: canonical stage sequence used for scan order.
//   - rates: transition key → conversion rate.
// Returns:
//   - string: descriptor like "HM Screen→Testing (18%)", empty when no bottleneck.
func FindBottleneck(stages []string, rates map[string]float64) string {
	if len(rates) == 0 {
		return ""
	}

	keys := orderedTransitionKeys(stages, rates)

	worstKey := ""
	worstRate := math.Inf(1)
	for _, key := range keys {
		if rate := rates[key]; rate < worstRate {
			worstKey = key
			worstRate = rate
		}
	}

	if worstRate < bottleneckThreshold {
		return fmt.Sprintf("%s (%d%%)", worstKey, int(worstRate*100))
	}
	return ""
}

// orderedTransitionKeys lists rate-map keys canonical pairs first, then any
// remaining keys sorted, so scans never depend on map iteration order.
func orderedTransitionKeys(stages []string, rates map[string]float64) []string {
	keys := make([]string, 0, len(rates))
	seen := make(map[string]bool, len(rates))

	for i := 0; i+1 < len(stages); i++ {
		key := TransitionKey(stages[i], stages[i+1])
		if _, ok := rates[key]; ok {
			keys = append(keys, key)
			seen[key] = true
		}
	}

	var rest []string
	for key := range rates {
		if !seen[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)

	return append(keys, rest...)
}

// DetermineHealth classifies a role's pipeline. Rules are evaluated in order,
// first match wins: severe bottleneck (min rate < 0.20, empty map counts as
// zero) → red; gap over 50 → red; gap over 35 → yellow; fewer than 5 total
// candidates → yellow; otherwise green.
// Parameters:
//   - rates: transition key → conversion rate.
//   - gap: projected gap-to-hire.
//   - counts: normalized stage → candidate count.
// Returns:
//   - domain.HealthStatus: red, yellow, or green.
func DetermineHealth(rates map[string]float64, gap int, counts map[string]int) domain.HealthStatus {
	minRate := 0.0
	if len(rates) > 0 {
		minRate = math.Inf(1)
		for _, rate := range rates {
			if rate < minRate {
				minRate = rate
			}
		}
	}
	if minRate < 0.20 {
		return domain.HealthRed
	}

	if gap > 50 {
		return domain.HealthRed
	}
	if gap > 35 {
		return domain.HealthYellow
	}

	total := 0
	for _, count := range counts {
		total += count
	}
	if total < 5 {
		return domain.HealthYellow
	}

	return domain.HealthGreen
}

// RoleCategory maps a job title onto its sourcing category. The configured
// map wins; otherwise titles containing "Full Stack" fall back to the
// Full Stack category and everything else to AI Engineer.
// Parameters:
//   - roleCategories: job title → sourcing category map; may be nil.
//   - jobTitle: role title to map.
// Returns:
//   - string: sourcing category name.
func RoleCategory(roleCategories map[string]string, jobTitle string) string {
	if category, ok := roleCategories[jobTitle]; ok {
		return category
	}
	if strings.Contains(jobTitle, "Full Stack") {
		return "Full Stack"
	}
	return "AI Engineer"
}
