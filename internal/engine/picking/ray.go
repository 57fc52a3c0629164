// Package picking casts rays from screen positions into the scene.
package picking

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/orrery/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// Sphere is a bounding sphere in world space.
type Sphere struct {
	Center math.Vec3
	Radius float32
}

// ScreenToRay converts window pixel coordinates (origin top-left) to a
// world-space ray through the near and far planes.
func ScreenToRay(screenX, screenY float32, width, height int, view, proj math.Mat4) (Ray, error) {
	// Window coordinates grow upwards
	winY := float32(height) - screenY

	near, err := mgl32.UnProject(mgl32.Vec3{screenX, winY, 0}, mgl32.Mat4(view), mgl32.Mat4(proj), 0, 0, width, height)
	if err != nil {
		return Ray{}, err
	}
	far, err := mgl32.UnProject(mgl32.Vec3{screenX, winY, 1}, mgl32.Mat4(view), mgl32.Mat4(proj), 0, 0, width, height)
	if err != nil {
		return Ray{}, err
	}

	origin := math.Vec3{X: near[0], Y: near[1], Z: near[2]}
	dir := math.Vec3{X: far[0], Y: far[1], Z: far[2]}.Sub(origin).Normalize()
	return Ray{Origin: origin, Direction: dir}, nil
}

// IntersectSphere returns the distance along the ray to the first hit of s.
// If the ray starts inside the sphere, returns the exit distance.
func (r Ray) IntersectSphere(s Sphere) (t float32, hit bool) {
	// |O + tD - C|^2 = R^2 with |D| = 1
	oc := r.Origin.Sub(s.Center)
	b := oc.Dot(r.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}

	sq := float32(gomath.Sqrt(float64(disc)))
	t0, t1 := -b-sq, -b+sq
	switch {
	case t0 >= 0:
		return t0, true
	case t1 >= 0:
		return t1, true
	default:
		return 0, false // Sphere behind ray origin
	}
}

// Nearest returns the index of the closest sphere hit by r.
func Nearest(r Ray, spheres []Sphere) (index int, ok bool) {
	best := float32(gomath.MaxFloat32)
	index = -1
	for i, s := range spheres {
		if t, hit := r.IntersectSphere(s); hit && t < best {
			best, index = t, i
		}
	}
	return index, index >= 0
}
