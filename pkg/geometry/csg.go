package geometry

import (
	"fmt"
	"strings"

	"github.com/df07/go-raytracer-core/pkg/core"
)

// CSGOperation selects how a CSG shape combines its two operands
type CSGOperation int

const (
	CSGUnion CSGOperation = iota
	CSGIntersection
	CSGDifference
)

func (op CSGOperation) String() string {
	switch op {
	case CSGUnion:
		return "union"
	case CSGIntersection:
		return "intersection"
	case CSGDifference:
		return "difference"
	default:
		return fmt.Sprintf("CSGOperation(%d)", int(op))
	}
}

// ParseCSGOperation converts a name such as "difference" to a CSGOperation
func ParseCSGOperation(name string) (CSGOperation, error) {
	switch strings.ToLower(name) {
	case "union":
		return CSGUnion, nil
	case "intersection", "intersect":
		return CSGIntersection, nil
	case "difference", "subtract":
		return CSGDifference, nil
	default:
		return 0, fmt.Errorf("unknown csg operation %q", name)
	}
}

// csgAllowed decides whether a crossing survives the operation, given which
// operand was hit and whether the ray is currently inside each operand
func csgAllowed(op CSGOperation, leftHit, inLeft, inRight bool) bool {
	switch op {
	case CSGUnion:
		return (leftHit && !inRight) || (!leftHit && !inLeft)
	case CSGIntersection:
		return (leftHit && inRight) || (!leftHit && inLeft)
	case CSGDifference:
		return (leftHit && !inRight) || (!leftHit && inLeft)
	default:
		return false
	}
}

func (g *Graph) intersectCSG(n *node, ray core.Ray) []Intersection {
	xs := g.Intersect(n.left, ray)
	xs = append(xs, g.Intersect(n.right, ray)...)
	SortIntersections(xs)
	return g.filterCSG(n, xs)
}

// FilterCSG keeps the crossings of a sorted list that lie on the surface of the
// CSG shape id
func (g *Graph) FilterCSG(id ShapeID, xs []Intersection) []Intersection {
	n := g.node(id)
	if n.kind != kindCSG {
		return xs
	}
	return g.filterCSG(n, xs)
}

func (g *Graph) filterCSG(n *node, xs []Intersection) []Intersection {
	var result []Intersection
	inLeft, inRight := false, false
	for _, x := range xs {
		leftHit := g.Includes(n.left, x.Shape)
		if csgAllowed(n.op, leftHit, inLeft, inRight) {
			result = append(result, x)
		}
		if leftHit {
			inLeft = !inLeft
		} else {
			inRight = !inRight
		}
	}
	return result
}
