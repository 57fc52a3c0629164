// Package camera provides camera implementations for 3D rendering.
package camera

import (
	"github.com/Faultbox/orrery/internal/config"
	"github.com/Faultbox/orrery/pkg/math"
)

// LookAt is a fixed camera looking from Position at Target with a
// perspective projection.
type LookAt struct {
	Position math.Vec3
	Target   math.Vec3
	Up       math.Vec3

	FovYDegrees float32
	Aspect      float32 // Width / height
	Near        float32
	Far         float32
}

// NewLookAt creates a camera with a Y-up axis for a width x height viewport.
func NewLookAt(cfg config.CameraConfig, width, height int) *LookAt {
	c := &LookAt{
		Position:    vec(cfg.Position),
		Target:      vec(cfg.Target),
		Up:          math.Vec3{X: 0, Y: 1, Z: 0},
		FovYDegrees: cfg.FovY,
		Near:        cfg.Near,
		Far:         cfg.Far,
	}
	c.SetViewport(width, height)
	return c
}

// ViewMatrix returns the world-to-view transform.
func (c *LookAt) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position, c.Target, c.Up)
}

// ProjectionMatrix returns the perspective projection.
func (c *LookAt) ProjectionMatrix() math.Mat4 {
	return math.Perspective(math.Radians(c.FovYDegrees), c.Aspect, c.Near, c.Far)
}

// SetViewport updates the aspect ratio after a resize. A zero height
// (minimized window) keeps the previous aspect.
func (c *LookAt) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
}

func vec(a [3]float32) math.Vec3 {
	return math.Vec3{X: a[0], Y: a[1], Z: a[2]}
}
