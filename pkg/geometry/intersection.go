package geometry

import "sort"

// Intersection records that a ray crossed the surface of a primitive at parameter T
type Intersection struct {
	T     float64
	Shape ShapeID
}

// NewIntersection creates an intersection record
func NewIntersection(t float64, shape ShapeID) Intersection {
	return Intersection{T: t, Shape: shape}
}

// Hit returns the visible intersection: the one with the smallest non-negative t.
// Among equal t values the earliest entry wins. The list does not need to be sorted.
func Hit(xs []Intersection) (Intersection, bool) {
	var best Intersection
	found := false
	for _, x := range xs {
		if !(x.T >= 0) {
			continue
		}
		if !found || x.T < best.T {
			best = x
			found = true
		}
	}
	return best, found
}

// SortIntersections orders xs by ascending t, keeping the order of equal values
func SortIntersections(xs []Intersection) {
	sort.SliceStable(xs, func(i, j int) bool {
		return xs[i].T < xs[j].T
	})
}
