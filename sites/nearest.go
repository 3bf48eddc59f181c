package sites

import "slidewire/geometry"

// Nearest picks the site closest to target by Euclidean distance. The
// comparison is strict, so the first of several equidistant sites wins:
// re-attachment during reconciliation is deterministic for a given site
// order. Returns false only for an empty slice.
func Nearest(resolved []Resolved, target geometry.Point) (Resolved, bool) {
	if len(resolved) == 0 {
		return Resolved{}, false
	}
	best := resolved[0]
	bestDist := best.Point.Distance(target)
	for _, s := range resolved[1:] {
		if d := s.Point.Distance(target); d < bestDist {
			best = s
			bestDist = d
		}
	}
	return best, true
}
