// Package material holds the surface properties shared between shapes.
//
// A *Material is a shared handle: several shapes may point at the same value, so
// editing it changes every shape using it. Edits must happen before rendering
// starts; the renderer reads materials from many goroutines without locking.
package material

import "github.com/df07/go-raytracer-core/pkg/core"

// Common indices of refraction
const (
	Vacuum  = 1.0
	Air     = 1.00029
	Water   = 1.333
	Glass   = 1.5
	Diamond = 2.417
)

// Material describes how a surface reflects and transmits light
type Material struct {
	Color           core.Vec3 // Base surface color
	Reflective      float64   // 0 for matte, 1 for a perfect mirror
	Transparency    float64   // 0 for opaque, 1 for fully transparent
	RefractiveIndex float64   // Index of refraction of the enclosed volume
}

// New returns an opaque white material in vacuum
func New() *Material {
	return &Material{
		Color:           core.NewVec3(1, 1, 1),
		RefractiveIndex: Vacuum,
	}
}

// NewGlass returns a fully transparent material with the index of glass
func NewGlass() *Material {
	return NewDielectric(Glass)
}

// NewDielectric returns a fully transparent material with the given index
func NewDielectric(refractiveIndex float64) *Material {
	m := New()
	m.Transparency = 1.0
	m.RefractiveIndex = refractiveIndex
	return m
}

// IndexOfRefraction returns the refractive index, treating a nil material as vacuum
func (m *Material) IndexOfRefraction() float64 {
	if m == nil {
		return Vacuum
	}
	return m.RefractiveIndex
}

// Clone returns an independent copy of the material
func (m *Material) Clone() *Material {
	if m == nil {
		return nil
	}
	c := *m
	return &c
}

// Equal compares material contents rather than handle identity
func (m *Material) Equal(other *Material) bool {
	if m == nil || other == nil {
		return m == other
	}
	return m.Color.ApproxEqual(other.Color) &&
		core.ApproxEqual(m.Reflective, other.Reflective) &&
		core.ApproxEqual(m.Transparency, other.Transparency) &&
		core.ApproxEqual(m.RefractiveIndex, other.RefractiveIndex)
}
