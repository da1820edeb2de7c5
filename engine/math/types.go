package math

import (
	stdmath "math"

	"github.com/go-gl/mathgl/mgl32"
)

/**
 * @brief Represents the extents of a 3d object.
 */
type Extents3D struct {
	/** @brief The minimum extents of the object. */
	Min mgl32.Vec3
	/** @brief The maximum extents of the object. */
	Max mgl32.Vec3
}

// EmptyExtents3D returns inverted extents that any point will expand.
func EmptyExtents3D() Extents3D {
	inf := float32(stdmath.Inf(1))
	return Extents3D{
		Min: mgl32.Vec3{inf, inf, inf},
		Max: mgl32.Vec3{-inf, -inf, -inf},
	}
}

// IsEmpty reports whether no point has been added yet.
func (e Extents3D) IsEmpty() bool {
	return e.Max[0] < e.Min[0] || e.Max[1] < e.Min[1] || e.Max[2] < e.Min[2]
}

// Expand grows the extents to contain p.
func (e *Extents3D) Expand(p mgl32.Vec3) {
	for i := 0; i < 3; i++ {
		if p[i] < e.Min[i] {
			e.Min[i] = p[i]
		}
		if p[i] > e.Max[i] {
			e.Max[i] = p[i]
		}
	}
}

func (e Extents3D) Center() mgl32.Vec3 {
	return e.Min.Add(e.Max).Mul(0.5)
}

func (e Extents3D) Size() mgl32.Vec3 {
	return e.Max.Sub(e.Min)
}

/**
 * @brief A sphere enclosing a set of points.
 */
type Sphere struct {
	Center mgl32.Vec3
	Radius float32
}
