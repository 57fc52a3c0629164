// Package renderer provides OpenGL rendering functionality.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/orrery/internal/config"
	"github.com/Faultbox/orrery/internal/engine/camera"
	"github.com/Faultbox/orrery/internal/engine/lighting"
	"github.com/Faultbox/orrery/internal/engine/shader"
	"github.com/Faultbox/orrery/internal/logger"
	"github.com/Faultbox/orrery/internal/solar"
	"github.com/Faultbox/orrery/pkg/math"
)

// Uniform names of the planet program.
const (
	UniformViewMat       = "viewMat"
	UniformProjMat       = "projMat"
	UniformCamPos        = "camPos"
	UniformModelMat      = "modelMat"
	UniformObjectColor   = "objectColor"
	UniformIsLightSource = "isLightSource"
	UniformLightPos      = "lightPos"
	UniformLightColor    = "lightColor"
	UniformAmbient       = "ambient"
	UniformAlbedoTex     = "material.albedoTex"
)

var _ solar.MaterialSink = (*Renderer)(nil)

type uniforms struct {
	viewMat, projMat, camPos       int32
	modelMat, objectColor, isLight int32
	lightPos, lightColor, ambient  int32
	albedoTex                      int32
}

// Renderer owns the GL state and the body program, and receives per-draw
// material state from the scene.
type Renderer struct {
	config    config.GraphicsConfig
	program   uint32
	loc       uniforms
	wireframe bool
}

// New creates a renderer and compiles src.
// IMPORTANT: Must be called AFTER the graphics device is initialized!
func New(cfg config.GraphicsConfig, src shader.Source) (*Renderer, error) {
	r := &Renderer{config: cfg}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.ClearColor(cfg.ClearColor[0], cfg.ClearColor[1], cfg.ClearColor[2], 1.0)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	if err := r.ReloadShaders(src); err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	r.SetWireframe(cfg.Wireframe)

	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	if r.program != 0 {
		gl.DeleteProgram(r.program)
		r.program = 0
	}
}

// ReloadShaders compiles src and swaps it in. On failure the current program
// stays active.
func (r *Renderer) ReloadShaders(src shader.Source) error {
	program, err := shader.Compile(src)
	if err != nil {
		return err
	}

	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
	r.program = program
	r.loc = uniforms{
		viewMat:     shader.Uniform(program, UniformViewMat),
		projMat:     shader.Uniform(program, UniformProjMat),
		camPos:      shader.Uniform(program, UniformCamPos),
		modelMat:    shader.Uniform(program, UniformModelMat),
		objectColor: shader.Uniform(program, UniformObjectColor),
		isLight:     shader.Uniform(program, UniformIsLightSource),
		lightPos:    shader.Uniform(program, UniformLightPos),
		lightColor:  shader.Uniform(program, UniformLightColor),
		ambient:     shader.Uniform(program, UniformAmbient),
		albedoTex:   shader.Uniform(program, UniformAlbedoTex),
	}

	logger.Debug("shader program created",
		zap.String("name", src.Name),
		zap.Uint32("program", program),
	)
	return nil
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// SetWireframe switches between line and fill polygon modes.
func (r *Renderer) SetWireframe(on bool) {
	r.wireframe = on
	if on {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

// Wireframe reports whether wireframe mode is on.
func (r *Renderer) Wireframe() bool {
	return r.wireframe
}

// BeginFrame clears the back buffer and uploads the per-frame uniforms.
func (r *Renderer) BeginFrame(cam *camera.LookAt, light lighting.PointLight) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.UseProgram(r.program)

	view := cam.ViewMatrix()
	proj := cam.ProjectionMatrix()
	gl.UniformMatrix4fv(r.loc.viewMat, 1, false, view.Ptr())
	gl.UniformMatrix4fv(r.loc.projMat, 1, false, proj.Ptr())
	setVec3(r.loc.camPos, cam.Position)

	setVec3(r.loc.lightColor, light.Radiance())
	gl.Uniform1f(r.loc.ambient, light.Ambient)
}

// SetMaterial uploads the state of the next draw.
func (r *Renderer) SetMaterial(m solar.Material) {
	gl.UniformMatrix4fv(r.loc.modelMat, 1, false, m.Model.Ptr())
	setVec3(r.loc.objectColor, m.Color)
	isLight := int32(0)
	if m.IsLightSource {
		isLight = 1
	}
	gl.Uniform1i(r.loc.isLight, isLight)
	setVec3(r.loc.lightPos, m.LightPosition)
	gl.Uniform1i(r.loc.albedoTex, int32(m.TextureUnit))
}

// ReadPixels returns the RGBA contents of the back buffer, bottom row first.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	if w <= 0 || h <= 0 {
		return nil, 0, 0
	}
	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, w, h
}

func setVec3(loc int32, v math.Vec3) {
	gl.Uniform3f(loc, v.X, v.Y, v.Z)
}
