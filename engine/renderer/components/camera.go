package components

import (
	stdmath "math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/anima/engine/math"
)

const maxPitch = stdmath.Pi/2 - 0.01

/**
 * @brief A camera orbiting a target point at a distance.
 * The view matrix is rebuilt lazily when the orbit changes.
 */
type Camera struct {
	/** @brief The point the camera looks at. */
	Target mgl32.Vec3
	/** @brief Distance from the target, always positive. */
	Distance float32
	/** @brief Rotation around the Y axis in radians. */
	Yaw float32
	/** @brief Elevation in radians, kept short of the poles. */
	Pitch float32
	/** @brief Vertical field of view in radians. */
	FOV  float32
	Near float32
	Far  float32

	isDirty    bool
	viewMatrix mgl32.Mat4
}

func NewCamera() *Camera {
	camera := &Camera{}
	camera.Reset()
	return camera
}

func (c *Camera) Reset() {
	c.Target = mgl32.Vec3{}
	c.Distance = 5
	c.Yaw = 0
	c.Pitch = 0
	c.FOV = mgl32.DegToRad(45)
	c.Near = 0.1
	c.Far = 100
	c.isDirty = true
}

// Rotate moves the camera around the target by the given angles in radians.
func (c *Camera) Rotate(dYaw, dPitch float32) {
	c.Yaw += dYaw
	c.Pitch = mgl32.Clamp(c.Pitch+dPitch, -maxPitch, maxPitch)
	c.isDirty = true
}

// Zoom scales the distance to the target. Factors below 1 move closer.
func (c *Camera) Zoom(factor float32) {
	if factor <= 0 {
		return
	}
	c.Distance *= factor
	c.isDirty = true
}

// Position is the eye position in world space.
func (c *Camera) Position() mgl32.Vec3 {
	cp := float32(stdmath.Cos(float64(c.Pitch)))
	offset := mgl32.Vec3{
		c.Distance * cp * float32(stdmath.Sin(float64(c.Yaw))),
		c.Distance * float32(stdmath.Sin(float64(c.Pitch))),
		c.Distance * cp * float32(stdmath.Cos(float64(c.Yaw))),
	}
	return c.Target.Add(offset)
}

func (c *Camera) View() mgl32.Mat4 {
	if c.isDirty {
		c.viewMatrix = mgl32.LookAtV(c.Position(), c.Target, mgl32.Vec3{0, 1, 0})
		c.isDirty = false
	}
	return c.viewMatrix
}

func (c *Camera) Projection(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(c.FOV, aspect, c.Near, c.Far)
}

// Frame points the camera at a bounding sphere and backs off until it fits the view.
func (c *Camera) Frame(s math.Sphere) {
	c.Target = s.Center
	radius := max(s.Radius, 1e-3)
	c.Distance = radius / float32(stdmath.Sin(float64(c.FOV)/2))
	c.Near = max(c.Distance-radius*2, c.Distance*0.01)
	c.Far = c.Distance + radius*2
	c.isDirty = true
}
