package solar

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/orrery/internal/engine/gpu"
	"github.com/Faultbox/orrery/internal/logger"
	"github.com/Faultbox/orrery/pkg/math"
)

var (
	// ErrNoLightSource is returned when no body is marked as the light source.
	ErrNoLightSource = errors.New("scene has no light source")
	// ErrMultipleLightSources is returned when more than one body is marked
	// as the light source.
	ErrMultipleLightSources = errors.New("scene has more than one light source")
)

// AlbedoUnit is the texture unit body textures are bound to.
const AlbedoUnit = 0

// Body is one entry of the scene table.
type Body struct {
	Name          string
	Params        BodyParams
	Texture       gpu.Handle
	Color         math.Vec3 // Tint, also used when the texture is missing
	IsLightSource bool
}

// Material is the per-draw state handed to the sink before each draw.
type Material struct {
	Model         math.Mat4
	Color         math.Vec3
	IsLightSource bool
	LightPosition math.Vec3
	TextureUnit   int
}

// MaterialSink receives per-draw material state, typically shader uniforms.
type MaterialSink interface {
	SetMaterial(m Material)
}

// Scene owns the body table and their current transforms. Every body is
// drawn with the same sphere mesh.
type Scene struct {
	device gpu.Device
	sink   MaterialSink
	sphere gpu.Handle

	bodies []Body
	models []math.Mat4
	light  int
	time   float64
}

// NewScene creates a scene and computes its transforms at time 0. Exactly one
// body must be a light source.
func NewScene(device gpu.Device, sink MaterialSink, sphere gpu.Handle, bodies []Body) (*Scene, error) {
	if sphere.Kind() != gpu.KindMesh || !sphere.Valid() {
		return nil, fmt.Errorf("%w: sphere %s", gpu.ErrInvalidHandle, sphere)
	}

	light := -1
	for i, b := range bodies {
		if !b.IsLightSource {
			continue
		}
		if light >= 0 {
			return nil, fmt.Errorf("%w: %q and %q", ErrMultipleLightSources, bodies[light].Name, b.Name)
		}
		light = i
	}
	if light < 0 {
		return nil, ErrNoLightSource
	}

	s := &Scene{
		device: device,
		sink:   sink,
		sphere: sphere,
		bodies: append([]Body(nil), bodies...),
		models: make([]math.Mat4, len(bodies)),
		light:  light,
	}
	s.Update(0)

	logger.Debug("scene created",
		zap.Int("bodies", len(s.bodies)),
		zap.String("light", s.bodies[light].Name),
	)
	return s, nil
}

// Update recomputes every body's model matrix for time t.
func (s *Scene) Update(t float64) {
	s.time = t
	for i := range s.bodies {
		s.models[i] = ComputeModelMatrix(t, s.bodies[i].Params)
	}
}

// Draw renders every body in table order. The caller binds the program and
// per-frame state beforehand.
func (s *Scene) Draw() error {
	lightPos := s.LightPosition()
	for i, b := range s.bodies {
		if err := s.device.BindTexture(AlbedoUnit, b.Texture); err != nil {
			return fmt.Errorf("draw %s: %w", b.Name, err)
		}
		s.sink.SetMaterial(Material{
			Model:         s.models[i],
			Color:         b.Color,
			IsLightSource: b.IsLightSource,
			LightPosition: lightPos,
			TextureUnit:   AlbedoUnit,
		})
		if err := s.device.DrawMesh(s.sphere); err != nil {
			return fmt.Errorf("draw %s: %w", b.Name, err)
		}
	}
	return nil
}

// LightPosition returns the world position of the light source body.
func (s *Scene) LightPosition() math.Vec3 {
	return s.models[s.light].Translation()
}

// Time returns the time of the last Update.
func (s *Scene) Time() float64 {
	return s.time
}

// Bodies returns the body table.
func (s *Scene) Bodies() []Body {
	return s.bodies
}

// Model returns the current model matrix of body i.
func (s *Scene) Model(i int) math.Mat4 {
	return s.models[i]
}

// SetTexture replaces the texture of the named body and returns the one it
// had, so the caller can release it.
func (s *Scene) SetTexture(name string, tex gpu.Handle) (gpu.Handle, bool) {
	for i := range s.bodies {
		if s.bodies[i].Name == name {
			old := s.bodies[i].Texture
			s.bodies[i].Texture = tex
			return old, true
		}
	}
	return gpu.Handle{}, false
}

// LightSource returns the light source body.
func (s *Scene) LightSource() Body {
	return s.bodies[s.light]
}
