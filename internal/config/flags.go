package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagResolution = flag.Int("resolution", 0, "Sphere latitude/longitude divisions")
	flagTimeScale  = flag.Float64("time-scale", 0, "Scene time units per second")
	flagWireframe  = flag.Bool("wireframe", false, "Start in wireframe mode")
	flagShaderDir  = flag.String("shader-dir", "", "Load shaders from this directory")
	flagWatch      = flag.Bool("watch", false, "Reload shaders and textures when they change")
	flagSaveConfig = flag.String("save-config", "", "Write the effective config to this path and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// SaveConfigPath returns the --save-config destination, empty when the viewer
// should run normally.
func SaveConfigPath() string {
	return *flagSaveConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Debug.ShowFPS = true
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagResolution > 0 {
		cfg.Scene.SphereResolution = *flagResolution
	}
	if *flagTimeScale > 0 {
		cfg.Scene.TimeScale = *flagTimeScale
	}
	if *flagWireframe {
		cfg.Graphics.Wireframe = true
	}
	if *flagShaderDir != "" {
		cfg.Assets.ShaderDir = *flagShaderDir
	}
	if *flagWatch {
		cfg.Assets.Watch = true
	}
}
