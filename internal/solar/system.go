package solar

import (
	"errors"
	"fmt"

	"github.com/Faultbox/orrery/internal/config"
	"github.com/Faultbox/orrery/pkg/math"
)

var (
	// ErrUnknownParent is returned when a parent name matches no other body.
	ErrUnknownParent = errors.New("unknown parent body")
	// ErrNestedSatellite is returned when a satellite's parent is itself a
	// satellite. Only one level of parenting is supported.
	ErrNestedSatellite = errors.New("parent is itself a satellite")
	// ErrDuplicateBody is returned when two bodies share a name.
	ErrDuplicateBody = errors.New("duplicate body name")
)

// BuildBodies converts the configured body table into scene bodies, keeping
// its order. Parents are resolved by name. A satellite's parent must orbit
// the origin itself. Textures are left unset.
func BuildBodies(cfgs []config.BodyConfig) ([]Body, error) {
	byName := make(map[string]int, len(cfgs))
	for i, c := range cfgs {
		if _, dup := byName[c.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateBody, c.Name)
		}
		byName[c.Name] = i
	}

	bodies := make([]Body, 0, len(cfgs))
	for _, c := range cfgs {
		params := BodyParams{
			Size:              c.Size,
			OrbitRadius:       c.OrbitRadius,
			OrbitalRate:       c.OrbitalRate,
			OrbitPhaseDegrees: c.OrbitPhase,
			SpinRate:          c.SpinRate,
			AxialTiltDegrees:  c.AxialTilt,
		}

		if c.Parent != "" {
			pi, ok := byName[c.Parent]
			if !ok || c.Parent == c.Name {
				return nil, fmt.Errorf("%w: %q for body %q", ErrUnknownParent, c.Parent, c.Name)
			}
			parent := cfgs[pi]
			if parent.Parent != "" {
				return nil, fmt.Errorf("%w: %q orbits %q", ErrNestedSatellite, c.Name, c.Parent)
			}
			params.Parent = &Orbit{
				Radius:       parent.OrbitRadius,
				Rate:         parent.OrbitalRate,
				PhaseDegrees: parent.OrbitPhase,
			}
		}

		if err := params.Validate(); err != nil {
			return nil, fmt.Errorf("body %q: %w", c.Name, err)
		}

		bodies = append(bodies, Body{
			Name:          c.Name,
			Params:        params,
			Color:         math.Vec3{X: c.Color[0], Y: c.Color[1], Z: c.Color[2]},
			IsLightSource: c.LightSource,
		})
	}
	return bodies, nil
}
