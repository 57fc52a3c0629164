package solar

import (
	"errors"
	"fmt"
	"image"
	"testing"

	"github.com/Faultbox/orrery/internal/engine/gpu"
	"github.com/Faultbox/orrery/internal/engine/mesh"
	"github.com/Faultbox/orrery/pkg/math"
)

// fakeDevice records calls in order instead of talking to a GPU.
type fakeDevice struct {
	calls   []string
	drawErr error
}

func (d *fakeDevice) UploadMesh(*mesh.Mesh) (gpu.Handle, error) {
	return gpu.NewHandle(gpu.KindMesh, 1), nil
}

func (d *fakeDevice) DrawMesh(h gpu.Handle) error {
	d.calls = append(d.calls, "draw "+h.String())
	return d.drawErr
}

func (d *fakeDevice) UploadTexture(*image.RGBA) (gpu.Handle, error) {
	return gpu.NewHandle(gpu.KindTexture, 1), nil
}

func (d *fakeDevice) BindTexture(unit int, h gpu.Handle) error {
	if !h.Valid() {
		return gpu.ErrInvalidHandle
	}
	d.calls = append(d.calls, fmt.Sprintf("bind %d %s", unit, h))
	return nil
}

func (d *fakeDevice) Release(gpu.Handle) {}
func (d *fakeDevice) Close()             {}

type fakeSink struct {
	dev       *fakeDevice
	materials []Material
}

func (s *fakeSink) SetMaterial(m Material) {
	s.materials = append(s.materials, m)
	s.dev.calls = append(s.dev.calls, "material")
}

var sphere = gpu.NewHandle(gpu.KindMesh, 1)

func testBodies() []Body {
	return []Body{
		{
			Name:          "star",
			Params:        BodyParams{Size: 1, OrbitRadius: 3, OrbitalRate: 0.25},
			Texture:       gpu.NewHandle(gpu.KindTexture, 10),
			Color:         math.Vec3{X: 1, Y: 1, Z: 0.2},
			IsLightSource: true,
		},
		{
			Name:    "planet",
			Params:  BodyParams{Size: 0.5, OrbitRadius: 8, OrbitalRate: 0.5, SpinRate: 1, AxialTiltDegrees: 23.5},
			Texture: gpu.NewHandle(gpu.KindTexture, 11),
			Color:   math.Vec3{X: 0.2, Y: 1, Z: 0.2},
		},
	}
}

func TestNewSceneLightSources(t *testing.T) {
	dev := &fakeDevice{}
	sink := &fakeSink{dev: dev}

	none := testBodies()
	none[0].IsLightSource = false
	if _, err := NewScene(dev, sink, sphere, none); !errors.Is(err, ErrNoLightSource) {
		t.Errorf("no light: err = %v, want ErrNoLightSource", err)
	}

	two := testBodies()
	two[1].IsLightSource = true
	if _, err := NewScene(dev, sink, sphere, two); !errors.Is(err, ErrMultipleLightSources) {
		t.Errorf("two lights: err = %v, want ErrMultipleLightSources", err)
	}

	if _, err := NewScene(dev, sink, gpu.Handle{}, testBodies()); !errors.Is(err, gpu.ErrInvalidHandle) {
		t.Errorf("zero sphere: err = %v, want ErrInvalidHandle", err)
	}
	tex := gpu.NewHandle(gpu.KindTexture, 1)
	if _, err := NewScene(dev, sink, tex, testBodies()); !errors.Is(err, gpu.ErrInvalidHandle) {
		t.Errorf("texture as sphere: err = %v, want ErrInvalidHandle", err)
	}
}

func TestSceneUpdate(t *testing.T) {
	dev := &fakeDevice{}
	scene, err := NewScene(dev, &fakeSink{dev: dev}, sphere, testBodies())
	if err != nil {
		t.Fatal(err)
	}

	scene.Update(2.5)
	if scene.Time() != 2.5 {
		t.Errorf("Time() = %v, want 2.5", scene.Time())
	}
	for i, b := range scene.Bodies() {
		want := ComputeModelMatrix(2.5, b.Params)
		if scene.Model(i) != want {
			t.Errorf("body %q: model not recomputed", b.Name)
		}
	}

	wantLight := ComputeModelMatrix(2.5, testBodies()[0].Params).Translation()
	if got := scene.LightPosition(); got != wantLight {
		t.Errorf("LightPosition() = %v, want %v", got, wantLight)
	}
}

func TestSceneDrawOrder(t *testing.T) {
	dev := &fakeDevice{}
	sink := &fakeSink{dev: dev}
	scene, err := NewScene(dev, sink, sphere, testBodies())
	if err != nil {
		t.Fatal(err)
	}
	scene.Update(1)

	if err := scene.Draw(); err != nil {
		t.Fatalf("Draw: %v", err)
	}

	want := []string{
		"bind 0 texture#10", "material", "draw mesh#1",
		"bind 0 texture#11", "material", "draw mesh#1",
	}
	if len(dev.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", dev.calls, want)
	}
	for i := range want {
		if dev.calls[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, dev.calls[i], want[i])
		}
	}

	light := scene.LightPosition()
	if light == (math.Vec3{}) {
		t.Fatal("orbiting star should not sit at the origin")
	}
	for i, m := range sink.materials {
		b := scene.Bodies()[i]
		if m.Model != scene.Model(i) {
			t.Errorf("material %d: model mismatch", i)
		}
		if m.Color != b.Color || m.IsLightSource != b.IsLightSource {
			t.Errorf("material %d: %+v does not match body %q", i, m, b.Name)
		}
		if m.LightPosition != light {
			t.Errorf("material %d: light at %v, want %v", i, m.LightPosition, light)
		}
		if m.TextureUnit != AlbedoUnit {
			t.Errorf("material %d: texture unit %d, want %d", i, m.TextureUnit, AlbedoUnit)
		}
	}
}

func TestSceneDrawErrors(t *testing.T) {
	dev := &fakeDevice{drawErr: gpu.ErrDeviceNotReady}
	scene, err := NewScene(dev, &fakeSink{dev: dev}, sphere, testBodies())
	if err != nil {
		t.Fatal(err)
	}
	if err := scene.Draw(); !errors.Is(err, gpu.ErrDeviceNotReady) {
		t.Errorf("Draw() = %v, want ErrDeviceNotReady", err)
	}

	dev = &fakeDevice{}
	bodies := testBodies()
	bodies[1].Texture = gpu.Handle{}
	scene, err = NewScene(dev, &fakeSink{dev: dev}, sphere, bodies)
	if err != nil {
		t.Fatal(err)
	}
	if err := scene.Draw(); !errors.Is(err, gpu.ErrInvalidHandle) {
		t.Errorf("Draw() with missing texture = %v, want ErrInvalidHandle", err)
	}
}

func TestSceneSetTexture(t *testing.T) {
	dev := &fakeDevice{}
	scene, err := NewScene(dev, &fakeSink{dev: dev}, sphere, testBodies())
	if err != nil {
		t.Fatal(err)
	}

	replacement := gpu.NewHandle(gpu.KindTexture, 99)
	old, ok := scene.SetTexture("planet", replacement)
	if !ok || old != gpu.NewHandle(gpu.KindTexture, 11) {
		t.Errorf("SetTexture = %v, %v; want texture#11, true", old, ok)
	}
	if scene.Bodies()[1].Texture != replacement {
		t.Error("texture not replaced")
	}
	if _, ok := scene.SetTexture("comet", replacement); ok {
		t.Error("SetTexture on unknown body should report false")
	}
}
