// Package render draws a twisty Grid: an orbit camera, ray picking, a
// terminal cell raster and PNG snapshots.
package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// MaxPitch keeps the camera off the poles where the up vector
	// degenerates.
	MaxPitch = 85.0

	MinDistance = 3.0
	MaxDistance = 30.0

	nearPlane = 0.1
	farPlane  = 100.0
)

// Ray is a half-line in world space. Dir is unit length.
type Ray struct {
	Origin mgl64.Vec3
	Dir    mgl64.Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// Camera orbits the origin with +y up. Angles are in degrees.
type Camera struct {
	Yaw      float64
	Pitch    float64
	Distance float64
	FOV      float64
}

// NewCamera returns a camera with pitch and distance clamped.
func NewCamera(yaw, pitch, distance, fov float64) Camera {
	c := Camera{Yaw: yaw, Distance: distance, FOV: fov}
	c.Orbit(0, pitch)
	c.Zoom(1)
	return c
}

// Eye returns the camera position.
func (c Camera) Eye() mgl64.Vec3 {
	yaw := mgl64.DegToRad(c.Yaw)
	pitch := mgl64.DegToRad(c.Pitch)
	return mgl64.Vec3{
		c.Distance * math.Cos(pitch) * math.Sin(yaw),
		c.Distance * math.Sin(pitch),
		c.Distance * math.Cos(pitch) * math.Cos(yaw),
	}
}

// View returns the world-to-camera matrix.
func (c Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Eye(), mgl64.Vec3{}, mgl64.Vec3{0, 1, 0})
}

// Projection returns the perspective matrix for a viewport aspect ratio
// (width / height).
func (c Camera) Projection(aspect float64) mgl64.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl64.Perspective(mgl64.DegToRad(c.FOV), aspect, nearPlane, farPlane)
}

// Orbit turns the camera around the origin by the given degrees.
func (c *Camera) Orbit(dyaw, dpitch float64) {
	c.Yaw = math.Mod(c.Yaw+dyaw, 360)
	c.Pitch = math.Max(-MaxPitch, math.Min(MaxPitch, c.Pitch+dpitch))
}

// Zoom scales the orbit distance by factor.
func (c *Camera) Zoom(factor float64) {
	c.Distance = math.Max(MinDistance, math.Min(MaxDistance, c.Distance*factor))
}

// Ray unprojects a point in normalized device coordinates (x right, y up,
// both in [-1, 1]) into a world-space ray.
func (c Camera) Ray(ndcX, ndcY, aspect float64) Ray {
	inv := c.Projection(aspect).Mul4(c.View()).Inv()
	near := mgl64.TransformCoordinate(mgl64.Vec3{ndcX, ndcY, -1}, inv)
	far := mgl64.TransformCoordinate(mgl64.Vec3{ndcX, ndcY, 1}, inv)
	return Ray{Origin: near, Dir: far.Sub(near).Normalize()}
}

// Project maps a world point to normalized device coordinates. It reports
// false for points behind the camera.
func (c Camera) Project(p mgl64.Vec3, aspect float64) (mgl64.Vec2, bool) {
	clip := c.Projection(aspect).Mul4(c.View()).Mul4x1(p.Vec4(1))
	if clip.W() < nearPlane {
		return mgl64.Vec2{}, false
	}
	return mgl64.Vec2{clip.X() / clip.W(), clip.Y() / clip.W()}, true
}

// Turntable returns n cameras spaced evenly in yaw starting at c.
func (c Camera) Turntable(n int) []Camera {
	if n < 1 {
		n = 1
	}
	out := make([]Camera, n)
	for i := range out {
		out[i] = c
		out[i].Orbit(360*float64(i)/float64(n), 0)
	}
	return out
}
