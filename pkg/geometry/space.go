package geometry

import (
	"fmt"

	"github.com/df07/go-raytracer-core/pkg/core"
)

// WorldToObject converts a world-space point into the object space of id by
// applying every ancestor's inverse transform from the root down.
func (g *Graph) WorldToObject(id ShapeID, worldPoint core.Vec3) core.Vec3 {
	n := g.node(id)
	if n.parent != NoShape {
		worldPoint = g.WorldToObject(n.parent, worldPoint)
	}
	return n.transform.Load().InversePoint(worldPoint)
}

// ObjectToWorld converts a point in the object space of id back to world space
func (g *Graph) ObjectToWorld(id ShapeID, objectPoint core.Vec3) core.Vec3 {
	n := g.node(id)
	point := n.transform.Load().ApplyPoint(objectPoint)
	if n.parent != NoShape {
		return g.ObjectToWorld(n.parent, point)
	}
	return point
}

// NormalToWorld converts an object-space normal of id to a unit world-space normal
func (g *Graph) NormalToWorld(id ShapeID, objectNormal core.Vec3) core.Vec3 {
	n := g.node(id)
	normal := n.transform.Load().InverseTransposeVector(objectNormal).Normalize()
	if n.parent != NoShape {
		return g.NormalToWorld(n.parent, normal)
	}
	return normal
}

// NormalAt returns the unit world-space surface normal of a primitive at a world
// point assumed to lie on its surface. Groups and CSG shapes have no surface of
// their own; asking them for a normal panics.
func (g *Graph) NormalAt(id ShapeID, worldPoint core.Vec3) core.Vec3 {
	n := g.node(id)
	if n.kind != kindPrimitive {
		panic(fmt.Sprintf("geometry: NormalAt called on %s shape %d", n.kind, id))
	}
	local := g.WorldToObject(id, worldPoint)
	return g.NormalToWorld(id, n.primitive.LocalNormalAt(local))
}

// LocalBounds returns the bounds of id in its own object space. Group and CSG
// bounds are the union of their children's parent-space bounds, cached until a
// descendant changes.
func (g *Graph) LocalBounds(id ShapeID) core.AABB {
	n := g.node(id)
	switch n.kind {
	case kindGroup:
		if cached := n.bounds.Load(); cached != nil {
			return *cached
		}
		bounds := core.EmptyAABB()
		for _, child := range n.children {
			bounds = bounds.Union(g.ParentSpaceBounds(child))
		}
		n.bounds.Store(&bounds)
		return bounds
	case kindCSG:
		if cached := n.bounds.Load(); cached != nil {
			return *cached
		}
		bounds := g.ParentSpaceBounds(n.left).Union(g.ParentSpaceBounds(n.right))
		n.bounds.Store(&bounds)
		return bounds
	default:
		return n.primitive.LocalBounds()
	}
}

// ParentSpaceBounds returns the local bounds of id transformed by its own transform
func (g *Graph) ParentSpaceBounds(id ShapeID) core.AABB {
	bounds := g.LocalBounds(id)
	if !bounds.IsValid() {
		return bounds
	}
	return bounds.Transform(g.Transform(id))
}

// WorldBounds returns the bounds of id in world space
func (g *Graph) WorldBounds(id ShapeID) core.AABB {
	bounds := g.ParentSpaceBounds(id)
	for parent, ok := g.Parent(id); ok; parent, ok = g.Parent(parent) {
		if !bounds.IsValid() {
			return bounds
		}
		bounds = bounds.Transform(g.Transform(parent))
	}
	return bounds
}
