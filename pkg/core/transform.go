package core

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrSingularTransform is returned when a matrix has no inverse
var ErrSingularTransform = errors.New("transform matrix is not invertible")

// singularThreshold is the smallest |det| accepted as invertible
const singularThreshold = 1e-12

// Transform is an invertible 4x4 affine map together with its cached inverse and
// inverse-transpose. A Transform is immutable: the three matrices are computed
// together at construction and never change afterwards.
type Transform struct {
	matrix           mgl64.Mat4
	inverse          mgl64.Mat4
	inverseTranspose mgl64.Mat4
}

// Identity returns the identity transform
func Identity() Transform {
	ident := mgl64.Ident4()
	return Transform{matrix: ident, inverse: ident, inverseTranspose: ident}
}

// NewTransform builds a transform from m, computing its inverse and inverse-transpose
func NewTransform(m mgl64.Mat4) (Transform, error) {
	det := m.Det()
	if !(math.Abs(det) > singularThreshold) {
		return Transform{}, fmt.Errorf("determinant %g: %w", det, ErrSingularTransform)
	}
	inv := m.Inv()
	return Transform{
		matrix:           m,
		inverse:          inv,
		inverseTranspose: inv.Transpose(),
	}, nil
}

// MustTransform is like NewTransform but panics on a singular matrix.
// Singular matrices in scene construction are programming errors.
func MustTransform(m mgl64.Mat4) Transform {
	t, err := NewTransform(m)
	if err != nil {
		panic(err)
	}
	return t
}

// Translation returns a transform moving points by (x, y, z)
func Translation(x, y, z float64) Transform {
	return MustTransform(mgl64.Translate3D(x, y, z))
}

// Scaling returns a transform scaling each axis independently
func Scaling(x, y, z float64) Transform {
	return MustTransform(mgl64.Scale3D(x, y, z))
}

// RotationX returns a rotation of radians around the X axis
func RotationX(radians float64) Transform {
	return MustTransform(mgl64.HomogRotate3DX(radians))
}

// RotationY returns a rotation of radians around the Y axis
func RotationY(radians float64) Transform {
	return MustTransform(mgl64.HomogRotate3DY(radians))
}

// RotationZ returns a rotation of radians around the Z axis
func RotationZ(radians float64) Transform {
	return MustTransform(mgl64.HomogRotate3DZ(radians))
}

// Shearing returns a transform moving each component in proportion to the other two.
// xy is the amount x moves in proportion to y, and so on.
func Shearing(xy, xz, yx, yz, zx, zy float64) Transform {
	return MustTransform(mgl64.Mat4FromRows(
		mgl64.Vec4{1, xy, xz, 0},
		mgl64.Vec4{yx, 1, yz, 0},
		mgl64.Vec4{zx, zy, 1, 0},
		mgl64.Vec4{0, 0, 0, 1},
	))
}

// ViewTransform orients the world relative to an eye at from looking toward to.
// It fails when from and to coincide or up is parallel to the view direction.
func ViewTransform(from, to, up Vec3) (Transform, error) {
	if from.ApproxEqual(to) {
		return Transform{}, fmt.Errorf("view from %v to itself: %w", from, ErrSingularTransform)
	}
	return NewTransform(mgl64.LookAtV(toMgl(from), toMgl(to), toMgl(up)))
}

// FromMatrix wraps a column-major matrix such as one read from an asset file
func FromMatrix(columnMajor [16]float64) (Transform, error) {
	return NewTransform(mgl64.Mat4(columnMajor))
}

// Then returns the transform that applies t first and next second
func (t Transform) Then(next Transform) Transform {
	return Transform{
		matrix:           next.matrix.Mul4(t.matrix),
		inverse:          t.inverse.Mul4(next.inverse),
		inverseTranspose: next.inverseTranspose.Mul4(t.inverseTranspose),
	}
}

// Matrix returns M
func (t Transform) Matrix() mgl64.Mat4 {
	return t.matrix
}

// Inverse returns M⁻¹
func (t Transform) Inverse() mgl64.Mat4 {
	return t.inverse
}

// InverseTranspose returns (M⁻¹)ᵗ
func (t Transform) InverseTranspose() mgl64.Mat4 {
	return t.inverseTranspose
}

// ApplyPoint maps a point through M
func (t Transform) ApplyPoint(p Vec3) Vec3 {
	return mulPoint(t.matrix, p)
}

// ApplyVector maps a direction through M, ignoring translation
func (t Transform) ApplyVector(v Vec3) Vec3 {
	return mulVector(t.matrix, v)
}

// InversePoint maps a point through M⁻¹
func (t Transform) InversePoint(p Vec3) Vec3 {
	return mulPoint(t.inverse, p)
}

// InverseVector maps a direction through M⁻¹
func (t Transform) InverseVector(v Vec3) Vec3 {
	return mulVector(t.inverse, v)
}

// InverseTransposeVector maps a normal through (M⁻¹)ᵗ. The homogeneous
// component is dropped, so translation never leaks into the result.
func (t Transform) InverseTransposeVector(n Vec3) Vec3 {
	return mulVector(t.inverseTranspose, n)
}

// InverseRay maps a ray into the space this transform was applied from.
// The direction is not renormalized so t values are preserved.
func (t Transform) InverseRay(r Ray) Ray {
	return Ray{
		Origin:    t.InversePoint(r.Origin),
		Direction: t.InverseVector(r.Direction),
	}
}

// Equal reports whether both transforms have the same matrix within Epsilon
func (t Transform) Equal(other Transform) bool {
	return t.matrix.ApproxEqualThreshold(other.matrix, Epsilon)
}

func mulPoint(m mgl64.Mat4, p Vec3) Vec3 {
	r := m.Mul4x1(mgl64.Vec4{p.X, p.Y, p.Z, 1})
	return Vec3{r[0], r[1], r[2]}
}

func mulVector(m mgl64.Mat4, v Vec3) Vec3 {
	r := m.Mul4x1(mgl64.Vec4{v.X, v.Y, v.Z, 0})
	return Vec3{r[0], r[1], r[2]}
}

func toMgl(v Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}
