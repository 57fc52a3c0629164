package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/orrery/internal/config"
	"github.com/Faultbox/orrery/pkg/math"
)

func TestNewLookAtDefaults(t *testing.T) {
	c := NewLookAt(config.Default().Scene.Camera, 1024, 768)

	if c.Position != (math.Vec3{X: 0, Y: 0, Z: 23}) {
		t.Errorf("Position = %v, want (0, 0, 23)", c.Position)
	}
	if c.Target != (math.Vec3{}) {
		t.Errorf("Target = %v, want origin", c.Target)
	}
	if c.Up != (math.Vec3{X: 0, Y: 1, Z: 0}) {
		t.Errorf("Up = %v, want +Y", c.Up)
	}
	if want := float32(1024) / 768; c.Aspect != want {
		t.Errorf("Aspect = %v, want %v", c.Aspect, want)
	}
}

func TestViewMatrixMatchesReference(t *testing.T) {
	c := NewLookAt(config.CameraConfig{
		Position: [3]float32{3, 5, 23},
		Target:   [3]float32{1, 0, -2},
		FovY:     45,
		Near:     0.1,
		Far:      80.1,
	}, 800, 600)

	want := mgl32.LookAtV(mgl32.Vec3{3, 5, 23}, mgl32.Vec3{1, 0, -2}, mgl32.Vec3{0, 1, 0})
	if got := c.ViewMatrix(); !got.ApproxEqual(math.Mat4(want), 1e-5) {
		t.Errorf("ViewMatrix() =\n%v\nwant\n%v", got, want)
	}
}

func TestProjectionMatrixMatchesReference(t *testing.T) {
	c := NewLookAt(config.Default().Scene.Camera, 1280, 720)

	want := mgl32.Perspective(mgl32.DegToRad(45), 1280.0/720.0, 0.1, 80.1)
	if got := c.ProjectionMatrix(); !got.ApproxEqual(math.Mat4(want), 1e-5) {
		t.Errorf("ProjectionMatrix() =\n%v\nwant\n%v", got, want)
	}
}

func TestSetViewport(t *testing.T) {
	c := NewLookAt(config.Default().Scene.Camera, 800, 600)

	c.SetViewport(1920, 1080)
	if want := float32(1920) / 1080; c.Aspect != want {
		t.Errorf("Aspect = %v, want %v", c.Aspect, want)
	}

	c.SetViewport(1920, 0)
	if want := float32(1920) / 1080; c.Aspect != want {
		t.Errorf("minimized window changed aspect to %v", c.Aspect)
	}
}
