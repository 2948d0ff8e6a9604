package geometry

import (
	"math"
	"sort"

	"github.com/df07/go-raytracer-core/pkg/core"
)

// Leaf threshold: groups with this many or fewer children are left alone
const leafThreshold = 8

// Divide turns a flat group into a bounding volume hierarchy. Children with
// finite bounds are sorted along the longest axis of their combined bounds and
// split at the median into two new subgroups, recursively, until no group holds
// more than threshold children. Unbounded children such as planes stay where
// they are. Transforms and results are unchanged; only the nesting differs.
func (g *Graph) Divide(group ShapeID, threshold int) {
	n := g.node(group)
	if n.kind != kindGroup || threshold < 1 {
		return
	}

	var bounded, unbounded []ShapeID
	for _, child := range n.children {
		if isFinite(g.ParentSpaceBounds(child)) {
			bounded = append(bounded, child)
		} else {
			unbounded = append(unbounded, child)
		}
	}

	if len(bounded) > threshold {
		axis := longestAxis(g.unionBounds(bounded))
		centroids := make(map[ShapeID]float64, len(bounded))
		for _, child := range bounded {
			centroids[child] = g.ParentSpaceBounds(child).Center().Component(axis)
		}
		sort.SliceStable(bounded, func(i, j int) bool {
			return centroids[bounded[i]] < centroids[bounded[j]]
		})

		mid := len(bounded) / 2
		left := g.subgroup(group, bounded[:mid])
		right := g.subgroup(group, bounded[mid:])
		n.children = append([]ShapeID{left, right}, unbounded...)
		g.invalidateBounds(group)

		g.Divide(left, threshold)
		g.Divide(right, threshold)
		return
	}

	for _, child := range n.children {
		g.Divide(child, threshold)
	}
}

// subgroup moves members into a new group nested under parent
func (g *Graph) subgroup(parent ShapeID, members []ShapeID) ShapeID {
	sub := g.AddGroup()
	g.nodes[sub].material = g.nodes[parent].material
	g.nodes[sub].parent = parent
	g.removeRoot(sub)

	children := make([]ShapeID, len(members))
	copy(children, members)
	for _, child := range children {
		g.nodes[child].parent = sub
	}
	g.nodes[sub].children = children
	return sub
}

func (g *Graph) unionBounds(ids []ShapeID) core.AABB {
	bounds := core.EmptyAABB()
	for _, id := range ids {
		bounds = bounds.Union(g.ParentSpaceBounds(id))
	}
	return bounds
}

func longestAxis(bounds core.AABB) int {
	size := bounds.Size()
	switch {
	case size.X >= size.Y && size.X >= size.Z:
		return 0
	case size.Y >= size.Z:
		return 1
	default:
		return 2
	}
}

func isFinite(bounds core.AABB) bool {
	if !bounds.IsValid() {
		return false
	}
	for axis := 0; axis < 3; axis++ {
		if math.IsInf(bounds.Min.Component(axis), 0) || math.IsInf(bounds.Max.Component(axis), 0) {
			return false
		}
	}
	return true
}
