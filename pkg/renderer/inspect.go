package renderer

import (
	"fmt"
	"strings"

	"github.com/df07/go-raytracer-core/pkg/core"
	"github.com/df07/go-raytracer-core/pkg/geometry"
)

// InspectedIntersection is one crossing along an inspection ray
type InspectedIntersection struct {
	T     float64          `json:"t"`
	Shape geometry.ShapeID `json:"shape"`
	Name  string           `json:"name,omitempty"`
}

// Inspection describes everything known about the first hit through a pixel
type Inspection struct {
	X         int        `json:"x"`
	Y         int        `json:"y"`
	Origin    [3]float64 `json:"origin"`
	Direction [3]float64 `json:"direction"`
	Hit       bool       `json:"hit"`

	Shape        geometry.ShapeID `json:"shape"`
	ShapeName    string           `json:"shapeName,omitempty"`
	GeometryType string           `json:"geometryType,omitempty"`
	Distance     float64          `json:"distance"`
	Point        [3]float64       `json:"point"`
	Normal       [3]float64       `json:"normal"`
	Inside       bool             `json:"inside"`

	N1                      float64 `json:"n1"`
	N2                      float64 `json:"n2"`
	Reflectance             float64 `json:"reflectance"`
	TotalInternalReflection bool    `json:"totalInternalReflection"`

	Color           [3]float64 `json:"color"`
	Transparency    float64    `json:"transparency"`
	RefractiveIndex float64    `json:"refractiveIndex"`
	CastsShadow     bool       `json:"castsShadow"`
	InShadow        bool       `json:"inShadow"`

	Intersections []InspectedIntersection `json:"intersections"`
}

// Inspect traces the ray through pixel (x, y) and reports the prepared hit,
// refractive indices, reflectance and the full intersection list
func (rt *Raytracer) Inspect(x, y int) (Inspection, error) {
	if !rt.camera.Contains(x, y) {
		return Inspection{}, fmt.Errorf("pixel (%d, %d) outside %dx%d image", x, y, rt.camera.Width(), rt.camera.Height())
	}

	ray := rt.camera.RayForPixel(x, y)
	xs := rt.graph.IntersectWorld(ray)

	result := Inspection{
		X:             x,
		Y:             y,
		Origin:        toArray(ray.Origin),
		Direction:     toArray(ray.Direction),
		Shape:         geometry.NoShape,
		Intersections: make([]InspectedIntersection, len(xs)),
	}
	for i, x := range xs {
		result.Intersections[i] = InspectedIntersection{T: x.T, Shape: x.Shape, Name: rt.graph.Name(x.Shape)}
	}

	hit, ok := geometry.Hit(xs)
	if !ok {
		return result, nil
	}

	comps := rt.graph.PrepareHit(hit, ray, xs)
	mat := rt.graph.Material(hit.Shape)

	result.Hit = true
	result.Shape = hit.Shape
	result.ShapeName = rt.graph.Name(hit.Shape)
	result.GeometryType = geometryType(rt.graph.Primitive(hit.Shape))
	result.Distance = comps.T
	result.Point = toArray(comps.Point)
	result.Normal = toArray(comps.NormalVector)
	result.Inside = comps.Inside
	result.N1 = comps.N1
	result.N2 = comps.N2
	result.Reflectance = comps.Schlick()
	result.TotalInternalReflection = comps.TotalInternalReflection()
	result.Color = toArray(mat.Color)
	result.Transparency = mat.Transparency
	result.RefractiveIndex = mat.IndexOfRefraction()
	result.CastsShadow = rt.graph.CastsShadow(hit.Shape)
	result.InShadow = rt.graph.Occluded(comps.OverPoint, rt.options.LightPosition)
	return result, nil
}

// geometryType names a primitive's concrete type, e.g. "sphere"
func geometryType(p geometry.Primitive) string {
	name := fmt.Sprintf("%T", p)
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return strings.ToLower(name)
}

func toArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}
