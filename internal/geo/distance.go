// Package geo ranks donation candidates by great-circle distance.
package geo

import (
	"math"
	"sort"

	"service-foodrescue/internal/domain"
)

// earthRadiusKm is the sphere radius used by the haversine formula.
const earthRadiusKm = 6371.0

// Ranked pairs a candidate with its distance from the origin.
// Resolved is false when either endpoint had no coordinates; in that
// case Km carries no meaning and must not be read.
type Ranked[T any] struct {
	Candidate T
	Km        float64
	Resolved  bool
}

// Distance computes the haversine distance between two points in km.
func Distance(a, b domain.Coordinates) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusKm * 2 * math.Asin(math.Sqrt(h))
}

// Rank orders candidates nearest-first from origin. Candidates whose
// location could not be resolved sort after every resolved one, and
// ties keep the input order (stable sort). A nil origin leaves every
// candidate unresolved, preserving the input order entirely.
func Rank[T any](origin *domain.Coordinates, candidates []T, locate func(T) *domain.Coordinates) []Ranked[T] {
	out := make([]Ranked[T], 0, len(candidates))
	for _, c := range candidates {
		r := Ranked[T]{Candidate: c}
		if loc := locate(c); origin != nil && loc != nil {
			r.Km = Distance(*origin, *loc)
			r.Resolved = true
		}
		out = append(out, r)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch {
		case a.Resolved && !b.Resolved:
			return true
		case !a.Resolved:
			return false
		default:
			return a.Km < b.Km
		}
	})
	return out
}
