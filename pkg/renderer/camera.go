package renderer

import (
	"math"

	"github.com/rmdl/go-diorama-raytracer/pkg/core"
)

// maxPitch keeps the orbit away from the poles so the view direction
// never becomes parallel to the up vector.
const maxPitch = math.Pi/2 - 0.01

// minZoomDistance is how close the eye may approach the orbit center.
const minZoomDistance = 0.1

// Camera holds an eye position, a look-at center and an up vector, and
// derives an orthonormal basis from them. The basis is recomputed on
// every mutation; mutations happen strictly between frames.
type Camera struct {
	Eye    core.Vec3
	Center core.Vec3
	Up     core.Vec3

	forward core.Vec3
	right   core.Vec3
	up      core.Vec3
}

// NewCamera creates a camera looking from eye toward center.
// Up must not be parallel to the view direction.
func NewCamera(eye, center, up core.Vec3) *Camera {
	c := &Camera{Eye: eye, Center: center, Up: up}
	c.updateBasis()
	return c
}

func (c *Camera) updateBasis() {
	c.forward = c.Center.Subtract(c.Eye).Normalize()
	c.right = c.forward.Cross(c.Up).Normalize()
	c.up = c.right.Cross(c.forward)
}

// BasisChange maps a camera-space direction into world space.
// Camera space looks down -z with x right and y up.
func (c *Camera) BasisChange(local core.Vec3) core.Vec3 {
	return c.right.Multiply(local.X).
		Add(c.up.Multiply(local.Y)).
		Add(c.forward.Multiply(-local.Z)).
		Normalize()
}

// Orbit rotates the eye around the center on a sphere of constant
// radius. Pitch is clamped short of the poles.
func (c *Camera) Orbit(deltaYaw, deltaPitch float64) {
	offset := c.Eye.Subtract(c.Center)
	radius := offset.Length()

	yaw := math.Atan2(offset.X, offset.Z)
	pitch := math.Asin(math.Max(-1, math.Min(1, offset.Y/radius)))

	yaw += deltaYaw
	pitch = math.Max(-maxPitch, math.Min(maxPitch, pitch+deltaPitch))

	c.Eye = c.Center.Add(core.NewVec3(
		radius*math.Cos(pitch)*math.Sin(yaw),
		radius*math.Sin(pitch),
		radius*math.Cos(pitch)*math.Cos(yaw),
	))
	c.updateBasis()
}

// Zoom moves the eye along the eye->center axis. The move is clamped
// so the eye never reaches or crosses the center.
func (c *Camera) Zoom(amount float64) {
	toCenter := c.Center.Subtract(c.Eye)
	distance := toCenter.Length()

	if amount > distance-minZoomDistance {
		amount = distance - minZoomDistance
	}

	c.Eye = c.Eye.Add(toCenter.Normalize().Multiply(amount))
	c.updateBasis()
}

// Move translates eye and center together by a delta expressed in the
// camera basis (x right, y up, z forward).
func (c *Camera) Move(delta core.Vec3) {
	world := c.right.Multiply(delta.X).
		Add(c.up.Multiply(delta.Y)).
		Add(c.forward.Multiply(delta.Z))

	c.Eye = c.Eye.Add(world)
	c.Center = c.Center.Add(world)
	c.updateBasis()
}
