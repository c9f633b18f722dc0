package geofence

import "github.com/AppleDinger/Kartavya-Police-App/module/core/domain"

// Candidate is an actor that may receive a proximity-scoped message.
type Candidate[ID comparable] struct {
	ID       ID
	Position *domain.Coordinate
}

// WithinRange returns the ids of candidates no further than thresholdMeters
// from source. Candidates without a fix never match, and an unknown source
// yields an empty set.
func WithinRange[ID comparable](source *domain.Coordinate, candidates []Candidate[ID], thresholdMeters float64) map[ID]struct{} {
	in := make(map[ID]struct{})
	if source == nil {
		return in
	}
	for _, c := range candidates {
		if c.Position == nil {
			continue
		}
		if Distance(source, c.Position).Within(thresholdMeters) {
			in[c.ID] = struct{}{}
		}
	}
	return in
}

// InRange is the single-target form of WithinRange.
func InRange(source, target *domain.Coordinate, thresholdMeters float64) bool {
	_, ok := WithinRange(source, []Candidate[int]{{ID: 0, Position: target}}, thresholdMeters)[0]
	return ok
}
