package geometry

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/df07/go-raytracer-core/pkg/core"
	"github.com/df07/go-raytracer-core/pkg/material"
)

// ShapeID is a stable handle to a shape stored in a Graph
type ShapeID int

// NoShape marks the absence of a shape, e.g. the parent of a root
const NoShape ShapeID = -1

var (
	ErrUnknownShape    = errors.New("unknown shape")
	ErrNotGroup        = errors.New("shape is not a group")
	ErrAlreadyParented = errors.New("shape already has a parent")
	ErrCycle           = errors.New("shape would become its own ancestor")
)

type nodeKind int

const (
	kindPrimitive nodeKind = iota
	kindGroup
	kindCSG
)

func (k nodeKind) String() string {
	switch k {
	case kindGroup:
		return "group"
	case kindCSG:
		return "csg"
	default:
		return "primitive"
	}
}

// node is one entry of the arena. Parent and child links are ShapeIDs into the
// same arena, so the graph never holds pointers between nodes.
type node struct {
	kind        nodeKind
	name        string
	transform   atomic.Pointer[core.Transform]
	material    *material.Material
	parent      ShapeID
	castsShadow bool

	primitive Primitive    // kindPrimitive
	children  []ShapeID    // kindGroup
	op        CSGOperation // kindCSG
	left      ShapeID      // kindCSG
	right     ShapeID      // kindCSG

	bounds atomic.Pointer[core.AABB] // cached local bounds of groups and CSG nodes
}

// Graph is an arena of shapes addressed by ShapeID.
//
// Building and editing the graph is single-threaded. Once built, any number of
// goroutines may intersect rays against it concurrently; SetTransform is the only
// edit that stays consistent for concurrent readers, and only per shape.
type Graph struct {
	nodes []*node
	roots []ShapeID
}

// NewGraph creates an empty shape graph
func NewGraph() *Graph {
	return &Graph{}
}

func (g *Graph) addNode(n *node) ShapeID {
	id := ShapeID(len(g.nodes))
	identity := core.Identity()
	n.transform.Store(&identity)
	if n.material == nil {
		n.material = material.New()
	}
	n.parent = NoShape
	n.castsShadow = true
	g.nodes = append(g.nodes, n)
	g.roots = append(g.roots, id)
	return id
}

// Add stores a primitive shape with an identity transform and a default material
func (g *Graph) Add(p Primitive) ShapeID {
	return g.addNode(&node{kind: kindPrimitive, primitive: p})
}

// AddGroup creates an empty group
func (g *Graph) AddGroup() ShapeID {
	return g.addNode(&node{kind: kindGroup})
}

// AddChildren attaches each child to the group in order
func (g *Graph) AddChildren(group ShapeID, children ...ShapeID) error {
	for _, child := range children {
		if err := g.AddChild(group, child); err != nil {
			return err
		}
	}
	return nil
}

// AddChild makes child a member of group. A child can only have one parent and
// a shape can never become its own ancestor.
func (g *Graph) AddChild(group, child ShapeID) error {
	if err := g.validate(group, child); err != nil {
		return err
	}
	if g.nodes[group].kind != kindGroup {
		return fmt.Errorf("add child %d to shape %d: %w", child, group, ErrNotGroup)
	}
	if err := g.attach(group, child); err != nil {
		return err
	}
	g.nodes[group].children = append(g.nodes[group].children, child)
	g.invalidateBounds(group)
	return nil
}

// AddCSG combines left and right with the given operation. Both operands become
// children of the new shape.
func (g *Graph) AddCSG(op CSGOperation, left, right ShapeID) (ShapeID, error) {
	if err := g.validate(left, right); err != nil {
		return NoShape, err
	}
	if left == right {
		return NoShape, fmt.Errorf("csg operands are both shape %d: %w", left, ErrAlreadyParented)
	}
	for _, operand := range []ShapeID{left, right} {
		if g.nodes[operand].parent != NoShape {
			return NoShape, fmt.Errorf("csg operand %d: %w", operand, ErrAlreadyParented)
		}
	}

	id := g.addNode(&node{kind: kindCSG, op: op, left: left, right: right})
	if err := g.attach(id, left); err != nil {
		return NoShape, err
	}
	if err := g.attach(id, right); err != nil {
		return NoShape, err
	}
	return id, nil
}

func (g *Graph) attach(parent, child ShapeID) error {
	if g.nodes[child].parent != NoShape {
		return fmt.Errorf("attach shape %d to %d: %w", child, parent, ErrAlreadyParented)
	}
	if g.Includes(child, parent) {
		return fmt.Errorf("attach shape %d to %d: %w", child, parent, ErrCycle)
	}
	g.nodes[child].parent = parent
	g.removeRoot(child)
	return nil
}

func (g *Graph) removeRoot(id ShapeID) {
	for i, root := range g.roots {
		if root == id {
			g.roots = append(g.roots[:i], g.roots[i+1:]...)
			return
		}
	}
}

func (g *Graph) validate(ids ...ShapeID) error {
	for _, id := range ids {
		if !g.Contains(id) {
			return fmt.Errorf("shape %d: %w", id, ErrUnknownShape)
		}
	}
	return nil
}

// Contains reports whether id refers to a shape in this graph
func (g *Graph) Contains(id ShapeID) bool {
	return id >= 0 && int(id) < len(g.nodes)
}

// Len returns the number of shapes, including groups and CSG nodes
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Roots returns the shapes without a parent, in insertion order
func (g *Graph) Roots() []ShapeID {
	roots := make([]ShapeID, len(g.roots))
	copy(roots, g.roots)
	return roots
}

// Parent returns the parent of id, or false for a root
func (g *Graph) Parent(id ShapeID) (ShapeID, bool) {
	parent := g.nodes[id].parent
	return parent, parent != NoShape
}

// Children returns the members of a group or the operands of a CSG shape
func (g *Graph) Children(id ShapeID) []ShapeID {
	n := g.nodes[id]
	switch n.kind {
	case kindGroup:
		children := make([]ShapeID, len(n.children))
		copy(children, n.children)
		return children
	case kindCSG:
		return []ShapeID{n.left, n.right}
	default:
		return nil
	}
}

// Primitive returns the primitive stored at id, or nil for groups and CSG shapes
func (g *Graph) Primitive(id ShapeID) Primitive {
	return g.nodes[id].primitive
}

// IsGroup reports whether id is a group
func (g *Graph) IsGroup(id ShapeID) bool {
	return g.nodes[id].kind == kindGroup
}

// IsCSG reports whether id is a CSG combination
func (g *Graph) IsCSG(id ShapeID) bool {
	return g.nodes[id].kind == kindCSG
}

// CSG returns the operation and operands of a CSG shape
func (g *Graph) CSG(id ShapeID) (op CSGOperation, left, right ShapeID, ok bool) {
	n := g.nodes[id]
	if n.kind != kindCSG {
		return 0, NoShape, NoShape, false
	}
	return n.op, n.left, n.right, true
}

// Name returns the optional display name of a shape
func (g *Graph) Name(id ShapeID) string {
	return g.nodes[id].name
}

// SetName sets the display name of a shape
func (g *Graph) SetName(id ShapeID, name string) {
	g.nodes[id].name = name
}

// Transform returns the current transform of a shape
func (g *Graph) Transform(id ShapeID) core.Transform {
	return *g.nodes[id].transform.Load()
}

// SetTransform replaces the transform of a shape. The matrix and its cached
// inverse are published together in one atomic store.
func (g *Graph) SetTransform(id ShapeID, t core.Transform) {
	n := g.nodes[id]
	n.transform.Store(&t)
	if n.parent != NoShape {
		g.invalidateBounds(n.parent)
	}
}

// Material returns the material handle of a shape
func (g *Graph) Material(id ShapeID) *material.Material {
	return g.nodes[id].material
}

// SetMaterial points a shape at a material handle, which may be shared.
// A nil handle restores the default material.
func (g *Graph) SetMaterial(id ShapeID, m *material.Material) {
	if m == nil {
		m = material.New()
	}
	g.nodes[id].material = m
}

// CastsShadow reports the shadow flag of the shape itself
func (g *Graph) CastsShadow(id ShapeID) bool {
	return g.nodes[id].castsShadow
}

// SetCastsShadow sets whether the shape blocks shadow rays
func (g *Graph) SetCastsShadow(id ShapeID, casts bool) {
	g.nodes[id].castsShadow = casts
}

// castsShadowInherited is false when the shape or any ancestor opted out of shadows
func (g *Graph) castsShadowInherited(id ShapeID) bool {
	for cur := id; cur != NoShape; cur = g.nodes[cur].parent {
		if !g.nodes[cur].castsShadow {
			return false
		}
	}
	return true
}

// Includes reports whether b is a or lies somewhere beneath a
func (g *Graph) Includes(a, b ShapeID) bool {
	for cur := b; cur != NoShape; cur = g.nodes[cur].parent {
		if cur == a {
			return true
		}
	}
	return false
}

// invalidateBounds drops cached bounds from id up to its root
func (g *Graph) invalidateBounds(id ShapeID) {
	for cur := id; cur != NoShape; cur = g.nodes[cur].parent {
		g.nodes[cur].bounds.Store(nil)
	}
}

// node returns the arena entry for id; an unknown id is a programming error
func (g *Graph) node(id ShapeID) *node {
	return g.nodes[id]
}
