package templates

import "math/rand/v2"

// FallbackContent is posted when the template collection is empty.
const FallbackContent = "定期投稿です"

// Selector picks one template uniformly at random.
type Selector struct {
	intN func(n int) int
}

// NewSelector returns a Selector drawing from rng. A nil rng uses the
// package-level generator, so picks differ between runs.
func NewSelector(rng *rand.Rand) *Selector {
	if rng == nil {
		return &Selector{intN: rand.IntN}
	}
	return &Selector{intN: rng.IntN}
}

// Select returns a random element of templates, or FallbackContent when empty.
func (s *Selector) Select(templates []string) string {
	if len(templates) == 0 {
		return FallbackContent
	}
	return templates[s.intN(len(templates))]
}
