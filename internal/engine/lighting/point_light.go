// Package lighting derives the scene's point light from its star.
package lighting

import (
	"github.com/Faultbox/orrery/internal/solar"
	"github.com/Faultbox/orrery/pkg/math"
)

// DefaultAmbient is the light every surface receives regardless of facing.
const DefaultAmbient = 0.08

// PointLight represents a point light source for GPU upload.
type PointLight struct {
	Position  math.Vec3 // World position
	Color     math.Vec3 // RGB color (0-1 range)
	Intensity float32   // Light intensity multiplier
	Ambient   float32
}

// Radiance returns the light color scaled by its intensity.
func (l PointLight) Radiance() math.Vec3 {
	return l.Color.Scale(l.Intensity)
}

// FromScene returns the light emitted by the scene's light source body at
// its current position. The star's base colour is blended towards white so
// planets keep their texture colours.
func FromScene(s *solar.Scene) PointLight {
	star := s.LightSource()
	white := math.Vec3{X: 1, Y: 1, Z: 1}
	return PointLight{
		Position:  s.LightPosition(),
		Color:     white.Scale(0.75).Add(star.Color.Scale(0.25)),
		Intensity: 1,
		Ambient:   DefaultAmbient,
	}
}
