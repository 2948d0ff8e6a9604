package geometry

import (
	"math"

	"github.com/df07/go-raytracer-core/pkg/core"
)

// Intersect finds every crossing of a ray with the shape id. The ray is given in
// the coordinate space of id's parent (world space for a root) and is moved into
// the shape's object space before testing. Group results are sorted; primitive
// results come back in the order the primitive produced them.
func (g *Graph) Intersect(id ShapeID, ray core.Ray) []Intersection {
	n := g.node(id)
	localRay := n.transform.Load().InverseRay(ray)

	switch n.kind {
	case kindGroup:
		return g.intersectGroup(id, n, localRay)
	case kindCSG:
		return g.intersectCSG(n, localRay)
	default:
		ts := n.primitive.LocalIntersect(localRay)
		if len(ts) == 0 {
			return nil
		}
		xs := make([]Intersection, len(ts))
		for i, t := range ts {
			xs[i] = Intersection{T: t, Shape: id}
		}
		return xs
	}
}

func (g *Graph) intersectGroup(id ShapeID, n *node, ray core.Ray) []Intersection {
	if len(n.children) == 0 {
		return nil
	}
	if !g.LocalBounds(id).Hit(ray, math.Inf(-1), math.Inf(1)) {
		return nil
	}

	var xs []Intersection
	for _, child := range n.children {
		xs = append(xs, g.Intersect(child, ray)...)
	}
	SortIntersections(xs)
	return xs
}

// IntersectWorld intersects a world-space ray with every root shape and returns
// all crossings sorted by t
func (g *Graph) IntersectWorld(ray core.Ray) []Intersection {
	var xs []Intersection
	for _, root := range g.roots {
		xs = append(xs, g.Intersect(root, ray)...)
	}
	SortIntersections(xs)
	return xs
}

// Occluded reports whether any shadow-casting shape lies strictly between point
// and target. A shape whose ancestor has shadows turned off does not occlude.
func (g *Graph) Occluded(point, target core.Vec3) bool {
	toTarget := target.Subtract(point)
	distance := toTarget.Length()
	if distance == 0 {
		return false
	}

	ray := core.NewRay(point, toTarget.Divide(distance))
	for _, x := range g.IntersectWorld(ray) {
		if x.T <= 0 {
			continue
		}
		if x.T >= distance {
			break
		}
		if g.castsShadowInherited(x.Shape) {
			return true
		}
	}
	return false
}
