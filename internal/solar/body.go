// Package solar animates the bodies of a solar system and draws them with a
// single shared sphere mesh.
package solar

import (
	"errors"
	"fmt"
	stdmath "math"

	"github.com/Faultbox/orrery/pkg/math"
)

var (
	// ErrNonFiniteInput is returned when a body parameter is NaN or infinite.
	ErrNonFiniteInput = errors.New("non-finite input")
	// ErrInvalidBody is returned for parameters no body can have, like a
	// non-positive size.
	ErrInvalidBody = errors.New("invalid body")
)

// Orbit describes a circular revolution in the XZ plane around the origin.
type Orbit struct {
	Radius       float32
	Rate         float32 // Radians per scene time unit
	PhaseDegrees float32
}

// Angle returns the revolution angle in radians at time t.
func (o Orbit) Angle(t float64) float32 {
	return float32(t*float64(o.Rate) + float64(o.PhaseDegrees)*stdmath.Pi/180)
}

// BodyParams holds the static animation parameters of a body.
type BodyParams struct {
	Size              float32
	OrbitRadius       float32
	OrbitalRate       float32
	OrbitPhaseDegrees float32
	SpinRate          float32
	AxialTiltDegrees  float32

	// Parent is the orbit of the body this one circles, or nil. Satellites
	// follow the parent's orbital angle and radius, not its full transform.
	Parent *Orbit
}

// Orbit returns the body's own revolution.
func (p BodyParams) Orbit() Orbit {
	return Orbit{Radius: p.OrbitRadius, Rate: p.OrbitalRate, PhaseDegrees: p.OrbitPhaseDegrees}
}

// Validate rejects non-finite values and non-positive sizes.
func (p BodyParams) Validate() error {
	type field struct {
		name string
		v    float32
	}
	values := []field{
		{"size", p.Size},
		{"orbit_radius", p.OrbitRadius},
		{"orbital_rate", p.OrbitalRate},
		{"orbit_phase", p.OrbitPhaseDegrees},
		{"spin_rate", p.SpinRate},
		{"axial_tilt", p.AxialTiltDegrees},
	}
	if p.Parent != nil {
		values = append(values,
			field{"parent orbit_radius", p.Parent.Radius},
			field{"parent orbital_rate", p.Parent.Rate},
			field{"parent orbit_phase", p.Parent.PhaseDegrees},
		)
	}
	for _, f := range values {
		if !finite(f.v) {
			return fmt.Errorf("%w: %s = %v", ErrNonFiniteInput, f.name, f.v)
		}
	}
	if p.Size <= 0 {
		return fmt.Errorf("%w: size %v", ErrInvalidBody, p.Size)
	}
	return nil
}

// ComputeModelMatrix returns the local-to-world transform of a body at time t:
//
//	[RotY(parent angle) * T(parent radius)] * RotY(angle) * T(radius) * RotX(tilt) * RotY(spin) * S(size)
//
// The bracketed pair is present for satellites only. Non-finite t yields a
// non-finite matrix.
func ComputeModelMatrix(t float64, p BodyParams) math.Mat4 {
	m := math.Identity()
	if p.Parent != nil {
		m = m.Mul(revolve(t, *p.Parent))
	}
	return m.
		Mul(revolve(t, p.Orbit())).
		Mul(math.RotateX(math.Radians(p.AxialTiltDegrees))).
		Mul(math.RotateY(float32(t * float64(p.SpinRate)))).
		Mul(math.UniformScale(p.Size))
}

func revolve(t float64, o Orbit) math.Mat4 {
	return math.RotateY(o.Angle(t)).Mul(math.Translate(o.Radius, 0, 0))
}

func finite(v float32) bool {
	f := float64(v)
	return !stdmath.IsNaN(f) && !stdmath.IsInf(f, 0)
}
