// Package camera provides the orbit camera used by the terrain viewer.
package camera

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
)

// OrbitCamera orbits around a center point.
//
// Terrain meshes store negated elevation in Y, so Up defaults to -Y and the
// camera starts above the surface on that side.
type OrbitCamera struct {
	// Center point to orbit around
	Center mgl32.Vec3
	Up     mgl32.Vec3

	// Spherical coordinates
	Distance  float32 // Distance from center
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32

	// Projection
	FOV  float32 // Vertical field of view, degrees
	Near float32
	Far  float32
}

// NewOrbitCamera creates a new orbit camera with default settings.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Up:              mgl32.Vec3{0, -1, 0},
		Distance:        200.0,
		RotationX:       0.6,
		RotationY:       0.0,
		MinDistance:     1.0,
		MaxDistance:     100000.0,
		MinPitch:        0.05,
		MaxPitch:        1.55,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		FOV:             45.0,
		Near:            0.1,
		Far:             200000.0,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() mgl32.Vec3 {
	pitch := float64(c.RotationX)
	yaw := float64(c.RotationY)
	horiz := c.Distance * float32(gomath.Cos(pitch))
	vert := c.Distance * float32(gomath.Sin(pitch))

	offset := mgl32.Vec3{
		horiz * float32(gomath.Sin(yaw)),
		0,
		horiz * float32(gomath.Cos(yaw)),
	}
	return c.Center.Add(offset).Add(c.Up.Mul(vert))
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.Center, c.Up)
}

// ProjectionMatrix returns a perspective projection for the given aspect
// ratio (width / height).
func (c *OrbitCamera) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, c.Near, c.Far)
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX += deltaY * c.DragSensitivity
	c.RotationX = mgl32.Clamp(c.RotationX, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = mgl32.Clamp(c.Distance, c.MinDistance, c.MaxDistance)
}

// FitToBounds centers the camera on a box and backs off far enough to see
// all of it.
func (c *OrbitCamera) FitToBounds(lo, hi mgl32.Vec3) {
	c.Center = lo.Add(hi).Mul(0.5)

	size := hi.Sub(lo)
	maxSize := max(size.X(), size.Z())

	c.Distance = mgl32.Clamp(maxSize*1.5, c.MinDistance, c.MaxDistance)
	c.Far = max(c.Far, c.Distance*4)
	c.RotationX = 0.6
	c.RotationY = 0.0
}
