package geometry

import (
	"testing"

	"github.com/df07/go-raytracer-core/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSGAllowed(t *testing.T) {
	tests := []struct {
		op                       CSGOperation
		leftHit, inLeft, inRight bool
		expected                 bool
	}{
		{CSGUnion, true, true, true, false},
		{CSGUnion, true, true, false, true},
		{CSGUnion, true, false, true, false},
		{CSGUnion, true, false, false, true},
		{CSGUnion, false, true, true, false},
		{CSGUnion, false, true, false, false},
		{CSGUnion, false, false, true, true},
		{CSGUnion, false, false, false, true},

		{CSGIntersection, true, true, true, true},
		{CSGIntersection, true, true, false, false},
		{CSGIntersection, true, false, true, true},
		{CSGIntersection, true, false, false, false},
		{CSGIntersection, false, true, true, true},
		{CSGIntersection, false, true, false, true},
		{CSGIntersection, false, false, true, false},
		{CSGIntersection, false, false, false, false},

		{CSGDifference, true, true, true, false},
		{CSGDifference, true, true, false, true},
		{CSGDifference, true, false, true, false},
		{CSGDifference, true, false, false, true},
		{CSGDifference, false, true, true, true},
		{CSGDifference, false, true, false, true},
		{CSGDifference, false, false, true, false},
		{CSGDifference, false, false, false, false},
	}

	for _, tt := range tests {
		got := csgAllowed(tt.op, tt.leftHit, tt.inLeft, tt.inRight)
		assert.Equal(t, tt.expected, got, "%s leftHit=%t inLeft=%t inRight=%t", tt.op, tt.leftHit, tt.inLeft, tt.inRight)
	}
}

func TestFilterCSG(t *testing.T) {
	tests := []struct {
		op       CSGOperation
		expected []int // indices into xs
	}{
		{CSGUnion, []int{0, 3}},
		{CSGIntersection, []int{1, 2}},
		{CSGDifference, []int{0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			g := NewGraph()
			s1 := g.Add(NewSphere())
			s2 := g.Add(NewCube())
			csg, err := g.AddCSG(tt.op, s1, s2)
			require.NoError(t, err)

			xs := []Intersection{{1, s1}, {2, s2}, {3, s1}, {4, s2}}
			result := g.FilterCSG(csg, xs)

			require.Len(t, result, len(tt.expected))
			for i, idx := range tt.expected {
				assert.Equal(t, xs[idx], result[i])
			}
		})
	}
}

func TestCSG_RayMisses(t *testing.T) {
	g := NewGraph()
	csg, err := g.AddCSG(CSGUnion, g.Add(NewSphere()), g.Add(NewCube()))
	require.NoError(t, err)

	assert.Empty(t, g.Intersect(csg, ray(0, 2, -5, 0, 0, 1)))
}

func TestCSG_RayHits(t *testing.T) {
	g := NewGraph()
	s1 := g.Add(NewSphere())
	s2 := g.Add(NewSphere())
	g.SetTransform(s2, core.Translation(0, 0, 0.5))
	csg, err := g.AddCSG(CSGUnion, s1, s2)
	require.NoError(t, err)

	xs := g.Intersect(csg, ray(0, 0, -5, 0, 0, 1))
	require.Len(t, xs, 2)
	assert.InDelta(t, 4, xs[0].T, tolerance)
	assert.Equal(t, s1, xs[0].Shape)
	assert.InDelta(t, 6.5, xs[1].T, tolerance)
	assert.Equal(t, s2, xs[1].Shape)
}

func TestCSG_DifferenceOfNestedGroups(t *testing.T) {
	g := NewGraph()

	// Left operand is a group, so hits on its child count as left hits
	left := g.AddGroup()
	cube := g.Add(NewCube())
	require.NoError(t, g.AddChild(left, cube))

	hole := g.Add(NewSphere())
	g.SetTransform(hole, core.Scaling(0.5, 0.5, 2))

	csg, err := g.AddCSG(CSGDifference, left, hole)
	require.NoError(t, err)

	// The hole runs right through the cube along z
	xs := g.Intersect(csg, ray(0, 0, -5, 0, 0, 1))
	assert.Empty(t, xs)

	// Off to the side the cube is solid
	xs = g.Intersect(csg, ray(0.8, 0, -5, 0, 0, 1))
	assertTs(t, []float64{4, 6}, tsOf(xs))

	// Through the side of the hole: cube face, then the hole wall
	xs = g.Intersect(csg, ray(-5, 0, 0, 1, 0, 0))
	assertTs(t, []float64{4, 4.5, 5.5, 6}, tsOf(xs))
	assert.Equal(t, []ShapeID{cube, hole, hole, cube}, []ShapeID{xs[0].Shape, xs[1].Shape, xs[2].Shape, xs[3].Shape})
}

func TestParseCSGOperation(t *testing.T) {
	for _, op := range []CSGOperation{CSGUnion, CSGIntersection, CSGDifference} {
		parsed, err := ParseCSGOperation(op.String())
		assert.NoError(t, err)
		assert.Equal(t, op, parsed)
	}

	_, err := ParseCSGOperation("xor")
	assert.Error(t, err)
}
