// Package app wires the window, renderer and solar scene into the viewer's
// main loop.
package app

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/orrery/internal/assets"
	"github.com/Faultbox/orrery/internal/config"
	"github.com/Faultbox/orrery/internal/engine/camera"
	"github.com/Faultbox/orrery/internal/engine/debug"
	"github.com/Faultbox/orrery/internal/engine/gpu"
	"github.com/Faultbox/orrery/internal/engine/input"
	"github.com/Faultbox/orrery/internal/engine/lighting"
	"github.com/Faultbox/orrery/internal/engine/mesh"
	"github.com/Faultbox/orrery/internal/engine/picking"
	"github.com/Faultbox/orrery/internal/engine/renderer"
	"github.com/Faultbox/orrery/internal/engine/renderer/shaders"
	"github.com/Faultbox/orrery/internal/engine/shader"
	"github.com/Faultbox/orrery/internal/engine/texture"
	"github.com/Faultbox/orrery/internal/engine/window"
	"github.com/Faultbox/orrery/internal/logger"
	"github.com/Faultbox/orrery/internal/solar"
	"github.com/Faultbox/orrery/pkg/math"
)

// Title is the window title.
const Title = "Orrery"

// App is the running viewer.
type App struct {
	config  *config.Config
	running bool

	window   *window.Window
	device   *gpu.GLDevice
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.LookAt

	sphere   gpu.Handle
	scene    *solar.Scene
	textures *textureLoader
	clock    *Clock
	selected string

	assets      *assets.Manager
	watcher     *assets.Watcher
	screenshots *debug.ScreenshotCapture
}

// New opens the window and loads everything the first frame needs.
func New(cfg *config.Config) (*App, error) {
	logger.Info("initializing viewer",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Int("bodies", len(cfg.Scene.Bodies)),
	)

	a := &App{
		config:      cfg,
		input:       input.New(input.DefaultBindings()),
		clock:       NewClock(cfg.Scene.TimeScale),
		assets:      assets.NewManager(cfg.Assets.TextureDir),
		screenshots: debug.NewScreenshotCapture(cfg.Debug.ScreenshotDir, "orrery"),
	}
	if err := a.init(); err != nil {
		a.Close()
		return nil, err
	}

	logger.Info("viewer initialized")
	return a, nil
}

func (a *App) init() error {
	cfg := a.config
	var err error

	// Window first, it owns the GL context
	a.window, err = window.New(Title, cfg.Graphics)
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}

	a.device = gpu.NewGLDevice()
	if err := a.device.Init(); err != nil {
		return err
	}

	src, err := shader.Load(a.shaderFS(), shaders.Planet)
	if err != nil {
		return fmt.Errorf("loading shaders: %w", err)
	}
	a.renderer, err = renderer.New(cfg.Graphics, src)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	sphere, err := mesh.GenerateSphere(cfg.Scene.SphereResolution)
	if err != nil {
		return err
	}
	a.sphere, err = a.device.UploadMesh(sphere)
	if err != nil {
		return err
	}

	bodies, err := solar.BuildBodies(cfg.Scene.Bodies)
	if err != nil {
		return err
	}
	a.textures = &textureLoader{
		device:  a.device,
		assets:  a.assets,
		maxSize: cfg.Assets.MaxTextureSize,
	}
	if err := a.textures.bind(bodies, cfg.Scene.Bodies); err != nil {
		return err
	}
	a.scene, err = solar.NewScene(a.device, a.renderer, a.sphere, bodies)
	if err != nil {
		return err
	}

	width, height := a.window.DrawableSize()
	a.camera = camera.NewLookAt(cfg.Scene.Camera, width, height)
	a.renderer.Resize(width, height)

	if cfg.Assets.Watch {
		if err := a.startWatcher(); err != nil {
			// Hot reload is a convenience, the viewer runs without it
			logger.Warn("asset watcher disabled", zap.Error(err))
		}
	}
	return nil
}

// shaderFS returns the shader directory, or the embedded shaders when none
// is configured.
func (a *App) shaderFS() fs.FS {
	if a.config.Assets.ShaderDir == "" {
		return shaders.FS
	}
	return os.DirFS(a.config.Assets.ShaderDir)
}

func (a *App) startWatcher() error {
	var dirs []string
	if a.config.Assets.ShaderDir != "" {
		dirs = append(dirs, a.config.Assets.ShaderDir)
	}
	if a.config.Assets.TextureDir != "" {
		dirs = append(dirs, a.config.Assets.TextureDir)
	}
	if len(dirs) == 0 {
		return nil
	}

	w, err := assets.NewWatcher(dirs...)
	if err != nil {
		return err
	}
	a.watcher = w
	logger.Info("watching assets", zap.Strings("dirs", dirs))
	return nil
}

// Run drives the frame loop until the user quits or a frame fails.
func (a *App) Run() error {
	a.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting main loop")

	for a.running {
		now := time.Now()
		dt := now.Sub(lastTime)
		lastTime = now

		a.input.Update()
		screenshot := a.handleInput()
		if !a.running {
			break
		}
		a.reloadAssets()

		a.scene.Update(a.clock.Advance(dt))
		if err := a.render(); err != nil {
			return fmt.Errorf("render error: %w", err)
		}
		if screenshot {
			a.captureScreenshot()
		}
		a.window.SwapBuffers()

		frameCount++
		if elapsed := time.Since(fpsTimer); elapsed >= time.Second {
			fps := float64(frameCount) / elapsed.Seconds()
			if a.config.Debug.ShowFPS {
				a.window.SetTitle(a.title(fps))
			}
			logger.Debug("fps",
				zap.Float64("fps", fps),
				zap.Duration("dt", dt),
				zap.Float64("time", a.clock.Now()),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// handleInput applies this frame's actions and reports whether a screenshot
// was requested.
func (a *App) handleInput() bool {
	screenshot := false
	for _, action := range a.input.Actions() {
		switch action {
		case input.ActionQuit:
			a.running = false
		case input.ActionWireframe:
			a.renderer.SetWireframe(true)
		case input.ActionFill:
			a.renderer.SetWireframe(false)
		case input.ActionTogglePause:
			paused := a.clock.TogglePause()
			a.window.SetTitle(a.title(0))
			logger.Info("simulation paused", zap.Bool("paused", paused))
		case input.ActionScreenshot:
			screenshot = true
		}
	}

	if _, _, ok := a.input.Resized(); ok {
		width, height := a.window.DrawableSize()
		a.renderer.Resize(width, height)
		a.camera.SetViewport(width, height)
	}
	if x, y, ok := a.input.Clicked(); ok {
		a.selectAt(x, y)
	}
	return screenshot
}

// selectAt selects the body under window position (x, y).
func (a *App) selectAt(x, y int) {
	winW, winH := a.window.Size()
	drawW, drawH := a.window.DrawableSize()
	if winW <= 0 || winH <= 0 {
		return
	}
	// High-DPI windows report clicks in points, not pixels
	px := float32(x) * float32(drawW) / float32(winW)
	py := float32(y) * float32(drawH) / float32(winH)

	ray, err := picking.ScreenToRay(px, py, drawW, drawH, a.camera.ViewMatrix(), a.camera.ProjectionMatrix())
	if err != nil {
		logger.Warn("picking failed", zap.Error(err))
		return
	}

	name := ""
	if i, ok := picking.Nearest(ray, boundingSpheres(a.scene)); ok {
		name = a.scene.Bodies()[i].Name
	}
	if name == a.selected {
		return
	}
	a.selected = name
	a.window.SetTitle(a.title(0))
	logger.Info("body selected", zap.String("body", name))
}

// boundingSpheres returns the world-space bounds of every body: the unit
// sphere's centre and a point on its surface pushed through the model matrix.
func boundingSpheres(s *solar.Scene) []picking.Sphere {
	bodies := s.Bodies()
	spheres := make([]picking.Sphere, len(bodies))
	for i := range bodies {
		model := s.Model(i)
		center := model.TransformPoint(math.Vec3{})
		spheres[i] = picking.Sphere{
			Center: center,
			Radius: model.TransformPoint(math.Vec3{X: 1}).Distance(center),
		}
	}
	return spheres
}

// title builds the window title from the selection, the pause state and,
// when non-zero, the frame rate.
func (a *App) title(fps float64) string {
	t := Title
	if a.selected != "" {
		t += " - " + a.selected
	}
	if a.clock.Paused() {
		t += " (paused)"
	}
	if fps > 0 {
		t += fmt.Sprintf(" - %.0f FPS", fps)
	}
	return t
}

func (a *App) render() error {
	a.renderer.BeginFrame(a.camera, lighting.FromScene(a.scene))
	return a.scene.Draw()
}

// reloadAssets applies file changes reported by the watcher.
func (a *App) reloadAssets() {
	if a.watcher == nil {
		return
	}

	shadersChanged := false
	for _, path := range a.watcher.Drain() {
		switch filepath.Ext(path) {
		case ".vert", ".frag":
			shadersChanged = true
		default:
			if !texture.Supported(path) {
				continue
			}
			n, err := a.textures.reload(path, a.scene, a.config.Scene.Bodies)
			if err != nil {
				logger.Error("texture reload failed", zap.String("path", path), zap.Error(err))
				continue
			}
			if n > 0 {
				logger.Info("texture reloaded", zap.String("path", path), zap.Int("bodies", n))
			}
		}
	}

	if shadersChanged {
		a.reloadShaders()
	}
}

func (a *App) reloadShaders() {
	src, err := shader.Load(a.shaderFS(), shaders.Planet)
	if err == nil {
		err = a.renderer.ReloadShaders(src)
	}
	if err != nil {
		logger.Error("shader reload failed, keeping previous program", zap.Error(err))
		return
	}
	logger.Info("shaders reloaded")
}

func (a *App) captureScreenshot() {
	pixels, width, height := a.renderer.ReadPixels()
	filename, err := a.screenshots.CaptureFromPixels(pixels, width, height)
	if err != nil {
		logger.Error("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("file", filename))
}

// Close releases resources in reverse order of creation. It is safe to call
// on a partially initialized App.
func (a *App) Close() {
	logger.Info("closing viewer")

	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			logger.Warn("closing asset watcher", zap.Error(err))
		}
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.device != nil {
		a.device.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
	a.assets.Close()
}
