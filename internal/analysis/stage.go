package analysis

// Normalizer maps raw provider stage labels onto the canonical stage order.
// Lookup is an exact, case-sensitive match; unmapped labels pass through
// unchanged so unexpected provider stages surface as their own pseudo-stage
// instead of being dropped.
type Normalizer struct {
	stages  []string
	aliases map[string]string
}

// NewNormalizer creates a Normalizer from the canonical stage order and alias table.
// Parameters:
//   - stages: canonical stage sequence, top of funnel first.
//   - aliases: raw label → canonical stage mapping.
// Returns:
//   - *Normalizer: initialized normalizer.
func NewNormalizer(stages []string, aliases map[string]string) *Normalizer {
	return &Normalizer{stages: stages, aliases: aliases}
}

// Normalize converts a raw stage label to its canonical stage. Canonical
// labels map to themselves, so normalization is idempotent.
// Parameters:
//   - raw: provider stage label.
// Returns:
//   - string: canonical stage, or the raw label when unmapped.
func (n *Normalizer) Normalize(raw string) string {
	if canonical, ok := n.aliases[raw]; ok {
		return canonical
	}
	return raw
}

// Stages returns the canonical stage sequence.
// Parameters: none.
// Returns:
//   - []string: stage names in funnel order.
func (n *Normalizer) Stages() []string {
	return n.stages
}
