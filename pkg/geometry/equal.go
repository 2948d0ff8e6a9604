package geometry

import "reflect"

// Equal reports whether shape a of g and shape b of other describe the same
// geometry: same kind, transform, material contents, shadow flag, primitive
// parameters, and recursively equal children in the same order. Parent links,
// ids and names are ignored.
func (g *Graph) Equal(a ShapeID, other *Graph, b ShapeID) bool {
	na, nb := g.node(a), other.node(b)

	if na.kind != nb.kind || na.castsShadow != nb.castsShadow {
		return false
	}
	if !na.transform.Load().Equal(*nb.transform.Load()) {
		return false
	}
	if !na.material.Equal(nb.material) {
		return false
	}

	switch na.kind {
	case kindGroup:
		if len(na.children) != len(nb.children) {
			return false
		}
		for i := range na.children {
			if !g.Equal(na.children[i], other, nb.children[i]) {
				return false
			}
		}
		return true
	case kindCSG:
		return na.op == nb.op &&
			g.Equal(na.left, other, nb.left) &&
			g.Equal(na.right, other, nb.right)
	default:
		return primitivesEqual(na.primitive, nb.primitive)
	}
}

func primitivesEqual(a, b Primitive) bool {
	if eq, ok := a.(primitiveEqualer); ok {
		return eq.Equal(b)
	}
	return reflect.DeepEqual(a, b)
}
