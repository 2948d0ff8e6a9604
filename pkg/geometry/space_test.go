package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-raytracer-core/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nestedSphere builds rotate(g1) > scale(g2) > translated sphere
func nestedSphere(t *testing.T) (*Graph, ShapeID) {
	t.Helper()
	g := NewGraph()
	g1 := g.AddGroup()
	g.SetTransform(g1, core.RotationY(math.Pi/2))
	g2 := g.AddGroup()
	g.SetTransform(g2, core.Scaling(1, 2, 3))
	s := g.Add(NewSphere())
	g.SetTransform(s, core.Translation(5, 0, 0))

	require.NoError(t, g.AddChild(g1, g2))
	require.NoError(t, g.AddChild(g2, s))
	return g, s
}

func TestWorldToObject_ThroughParents(t *testing.T) {
	g := NewGraph()
	g1 := g.AddGroup()
	g.SetTransform(g1, core.RotationY(math.Pi/2))
	g2 := g.AddGroup()
	g.SetTransform(g2, core.Scaling(2, 2, 2))
	s := g.Add(NewSphere())
	g.SetTransform(s, core.Translation(5, 0, 0))
	require.NoError(t, g.AddChild(g1, g2))
	require.NoError(t, g.AddChild(g2, s))

	assertVec(t, core.NewVec3(0, 0, -1), g.WorldToObject(s, core.NewVec3(-2, 0, -10)))
}

func TestObjectToWorld_InvertsWorldToObject(t *testing.T) {
	g, s := nestedSphere(t)

	for _, p := range []core.Vec3{core.NewVec3(1, 2, 3), core.NewVec3(-4, 0.5, 9), {}} {
		assertVec(t, p, g.ObjectToWorld(s, g.WorldToObject(s, p)))
	}
}

func TestNormalToWorld_ThroughParents(t *testing.T) {
	g, s := nestedSphere(t)
	k := math.Sqrt(3) / 3

	assertVec(t, core.NewVec3(2.0/7, 3.0/7, -6.0/7), g.NormalToWorld(s, core.NewVec3(k, k, k)))
}

func TestNormalAt_ChildOfGroups(t *testing.T) {
	g, s := nestedSphere(t)

	// The surface point is only given to four places
	normal := g.NormalAt(s, core.NewVec3(1.7321, 1.1547, -5.5774))
	assert.InDelta(t, 2.0/7, normal.X, 1e-4)
	assert.InDelta(t, 3.0/7, normal.Y, 1e-4)
	assert.InDelta(t, -6.0/7, normal.Z, 1e-4)
	assert.InDelta(t, 1.0, normal.Length(), 1e-9)
}

func TestNormalAt_NonPrimitivePanics(t *testing.T) {
	g := NewGraph()
	group := g.AddGroup()
	assert.Panics(t, func() { g.NormalAt(group, core.Vec3{}) })

	left, right := g.Add(NewSphere()), g.Add(NewCube())
	csg, err := g.AddCSG(CSGUnion, left, right)
	require.NoError(t, err)
	assert.Panics(t, func() { g.NormalAt(csg, core.Vec3{}) })
}

func TestGroupBounds(t *testing.T) {
	g := NewGraph()
	s := g.Add(NewSphere())
	g.SetTransform(s, core.Scaling(2, 2, 2).Then(core.Translation(2, 5, -3)))
	c := g.Add(NewTruncatedCylinder(-2, 2, false))
	g.SetTransform(c, core.Scaling(0.5, 1, 0.5).Then(core.Translation(-4, -1, 4)))

	group := g.AddGroup()
	require.NoError(t, g.AddChildren(group, s, c))

	bounds := g.LocalBounds(group)
	assertVec(t, core.NewVec3(-4.5, -3, -5), bounds.Min)
	assertVec(t, core.NewVec3(4, 7, 4.5), bounds.Max)
}

func TestCSGBounds(t *testing.T) {
	g := NewGraph()
	left := g.Add(NewSphere())
	right := g.Add(NewSphere())
	g.SetTransform(right, core.Translation(2, 3, 4))

	csg, err := g.AddCSG(CSGDifference, left, right)
	require.NoError(t, err)

	bounds := g.LocalBounds(csg)
	assertVec(t, core.NewVec3(-1, -1, -1), bounds.Min)
	assertVec(t, core.NewVec3(3, 4, 5), bounds.Max)
}

func TestWorldBounds(t *testing.T) {
	g := NewGraph()
	outer := g.AddGroup()
	g.SetTransform(outer, core.Translation(10, 0, 0))
	s := g.Add(NewSphere())
	g.SetTransform(s, core.Scaling(2, 2, 2))
	require.NoError(t, g.AddChild(outer, s))

	world := g.WorldBounds(s)
	assertVec(t, core.NewVec3(8, -2, -2), world.Min)
	assertVec(t, core.NewVec3(12, 2, 2), world.Max)

	// Empty groups have no extent
	assert.False(t, g.WorldBounds(g.AddGroup()).IsValid())
}
