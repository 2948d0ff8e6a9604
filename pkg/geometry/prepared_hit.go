package geometry

import (
	"math"

	"github.com/df07/go-raytracer-core/pkg/core"
	"github.com/df07/go-raytracer-core/pkg/material"
)

// HitEpsilon is how far the over and under points are pushed off the surface
const HitEpsilon = 1e-4

// PreparedHit holds everything shading needs about one intersection
type PreparedHit struct {
	T     float64
	Shape ShapeID

	Point         core.Vec3 // World-space point on the surface
	EyeVector     core.Vec3 // Points back along the incoming ray
	NormalVector  core.Vec3 // Unit normal, flipped to face the eye
	ReflectVector core.Vec3 // Incoming direction mirrored about the normal
	Inside        bool      // True when the ray started inside the shape

	OverPoint  core.Vec3 // Point nudged above the surface, for reflection and shadow rays
	UnderPoint core.Vec3 // Point nudged below the surface, for refraction rays

	N1 float64 // Refractive index of the medium being left
	N2 float64 // Refractive index of the medium being entered
}

// PrepareHit computes the shading state for hit. xs must be the full sorted list
// of crossings along ray that hit was taken from; it is used to work out which
// transparent volumes the ray is passing between.
func (g *Graph) PrepareHit(hit Intersection, ray core.Ray, xs []Intersection) PreparedHit {
	point := ray.At(hit.T)
	eye := ray.Direction.Negate()
	normal := g.NormalAt(hit.Shape, point)

	inside := false
	if normal.Dot(eye) < 0 {
		inside = true
		normal = normal.Negate()
	}

	offset := normal.Multiply(HitEpsilon)
	n1, n2 := g.refractiveIndices(hit, xs)

	return PreparedHit{
		T:             hit.T,
		Shape:         hit.Shape,
		Point:         point,
		EyeVector:     eye,
		NormalVector:  normal,
		ReflectVector: ray.Direction.Reflect(normal),
		Inside:        inside,
		OverPoint:     point.Add(offset),
		UnderPoint:    point.Subtract(offset),
		N1:            n1,
		N2:            n2,
	}
}

// refractiveIndices walks xs in order keeping the list of shapes the ray is
// inside. The indices on either side of hit are taken from the innermost
// container before and after hit toggles its own membership.
func (g *Graph) refractiveIndices(hit Intersection, xs []Intersection) (n1, n2 float64) {
	n1, n2 = material.Vacuum, material.Vacuum

	var containers []ShapeID
	for _, x := range xs {
		isHit := x == hit
		if isHit {
			n1 = g.innermostIndex(containers)
		}
		containers = toggleContainer(containers, x.Shape)
		if isHit {
			n2 = g.innermostIndex(containers)
			return n1, n2
		}
	}
	return n1, n2
}

// toggleContainer removes shape from containers if present, otherwise appends it
func toggleContainer(containers []ShapeID, shape ShapeID) []ShapeID {
	for i := len(containers) - 1; i >= 0; i-- {
		if containers[i] == shape {
			return append(containers[:i], containers[i+1:]...)
		}
	}
	return append(containers, shape)
}

func (g *Graph) innermostIndex(containers []ShapeID) float64 {
	if len(containers) == 0 {
		return material.Vacuum
	}
	return g.Material(containers[len(containers)-1]).IndexOfRefraction()
}

// Schlick approximates the fraction of light reflected at the hit. It returns 1
// under total internal reflection.
func (p PreparedHit) Schlick() float64 {
	cos := p.EyeVector.Dot(p.NormalVector)

	if p.N1 > p.N2 {
		ratio := p.N1 / p.N2
		sin2t := ratio * ratio * (1 - cos*cos)
		if sin2t > 1 {
			return 1.0
		}
		cos = math.Sqrt(1 - sin2t)
	}

	r0 := (p.N1 - p.N2) / (p.N1 + p.N2)
	r0 *= r0
	return r0 + (1-r0)*math.Pow(1-cos, 5)
}

// TotalInternalReflection reports whether no light can be transmitted at the hit
func (p PreparedHit) TotalInternalReflection() bool {
	if p.N1 <= p.N2 {
		return false
	}
	cos := p.EyeVector.Dot(p.NormalVector)
	ratio := p.N1 / p.N2
	return ratio*ratio*(1-cos*cos) > 1
}

// RefractedRay bends the incoming ray through the surface using Snell's law.
// It returns false under total internal reflection.
func (p PreparedHit) RefractedRay() (core.Ray, bool) {
	ratio := p.N1 / p.N2
	cosI := p.EyeVector.Dot(p.NormalVector)
	sin2t := ratio * ratio * (1 - cosI*cosI)
	if sin2t > 1 {
		return core.Ray{}, false
	}
	cosT := math.Sqrt(1 - sin2t)
	direction := p.NormalVector.Multiply(ratio*cosI - cosT).Subtract(p.EyeVector.Multiply(ratio))
	return core.NewRay(p.UnderPoint, direction.Normalize()), true
}
