// Package config handles application configuration loading and management.
package config

// Config holds all application settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Scene    SceneConfig    `yaml:"scene"`
	Assets   AssetsConfig   `yaml:"assets"`
	Debug    DebugConfig    `yaml:"debug"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int        `yaml:"width"`
	Height     int        `yaml:"height"`
	Fullscreen bool       `yaml:"fullscreen"`
	VSync      bool       `yaml:"vsync"`
	Wireframe  bool       `yaml:"wireframe"`
	ClearColor [3]float32 `yaml:"clear_color"`
}

// SceneConfig holds the solar system description.
type SceneConfig struct {
	SphereResolution int          `yaml:"sphere_resolution"`
	TimeScale        float64      `yaml:"time_scale"` // Scene time units per wall-clock second
	Camera           CameraConfig `yaml:"camera"`
	Bodies           []BodyConfig `yaml:"bodies"`
}

// CameraConfig holds the fixed look-at camera parameters.
type CameraConfig struct {
	Position [3]float32 `yaml:"position"`
	Target   [3]float32 `yaml:"target"`
	FovY     float32    `yaml:"fov_y"` // Degrees
	Near     float32    `yaml:"near"`
	Far      float32    `yaml:"far"`
}

// BodyConfig describes one celestial body. Angles are in degrees, rates in
// radians per scene time unit.
type BodyConfig struct {
	Name        string     `yaml:"name"`
	Texture     string     `yaml:"texture"`
	Color       [3]float32 `yaml:"color"`
	Size        float32    `yaml:"size"`
	OrbitRadius float32    `yaml:"orbit_radius"`
	OrbitalRate float32    `yaml:"orbital_rate"`
	OrbitPhase  float32    `yaml:"orbit_phase"`
	SpinRate    float32    `yaml:"spin_rate"`
	AxialTilt   float32    `yaml:"axial_tilt"`
	Parent      string     `yaml:"parent,omitempty"`
	LightSource bool       `yaml:"light_source,omitempty"`
}

// AssetsConfig holds asset locations.
type AssetsConfig struct {
	TextureDir     string `yaml:"texture_dir"`
	ShaderDir      string `yaml:"shader_dir"`       // Empty uses the embedded shaders
	Watch          bool   `yaml:"watch"`            // Reload shaders and textures when their files change
	MaxTextureSize int    `yaml:"max_texture_size"` // Longest texture side, 0 for no limit
}

// DebugConfig holds developer settings.
type DebugConfig struct {
	ScreenshotDir string `yaml:"screenshot_dir"`
	ShowFPS       bool   `yaml:"show_fps"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	LogFile    string `yaml:"log_file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1024,
			Height:     768,
			Fullscreen: false,
			VSync:      true,
			Wireframe:  false,
			ClearColor: [3]float32{0, 0, 0.4},
		},
		Scene: SceneConfig{
			SphereResolution: 32,
			TimeScale:        0.7,
			Camera: CameraConfig{
				Position: [3]float32{0, 0, 23},
				Target:   [3]float32{0, 0, 0},
				FovY:     45,
				Near:     0.1,
				Far:      80.1,
			},
			Bodies: DefaultBodies(),
		},
		Assets: AssetsConfig{
			TextureDir:     "media",
			ShaderDir:      "",
			Watch:          false,
			MaxTextureSize: 4096,
		},
		Debug: DebugConfig{
			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level:      "info",
			LogFile:    "",
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 7,
			Compress:   true,
		},
	}
}

// DefaultBodies returns the Sun, Mercury, Venus, Earth with the Moon, Mars
// and Jupiter.
func DefaultBodies() []BodyConfig {
	return []BodyConfig{
		{
			Name:        "sun",
			Texture:     "sun2.jpg",
			Color:       [3]float32{1, 1, 0.2},
			Size:        1,
			LightSource: true,
		},
		{
			Name:        "earth",
			Texture:     "earth.jpg",
			Color:       [3]float32{0.2, 1, 0.2},
			Size:        0.5,
			OrbitRadius: 8,
			OrbitalRate: 0.5,
			SpinRate:    1,
			AxialTilt:   23.5,
		},
		{
			Name:        "moon",
			Texture:     "moon.jpg",
			Color:       [3]float32{0.3, 0.3, 1},
			Size:        0.25,
			OrbitRadius: 2,
			OrbitalRate: 2,
			SpinRate:    2,
			Parent:      "earth",
		},
		{
			Name:        "mercury",
			Texture:     "mercure.jpg",
			Color:       [3]float32{0.5, 0.5, 0.5},
			Size:        0.1,
			OrbitRadius: 4,
			OrbitalRate: 1 / 0.3,
			SpinRate:    1 / 3.0,
			AxialTilt:   0.03,
		},
		{
			Name:        "venus",
			Texture:     "venus.jpg",
			Color:       [3]float32{0.5, 0.5, 0.5},
			Size:        0.4,
			OrbitRadius: 6,
			OrbitalRate: 1 / 0.62,
			SpinRate:    -0.1,
			AxialTilt:   177,
		},
		{
			Name:        "mars",
			Texture:     "mars.jpg",
			Color:       [3]float32{0.5, 0.5, 0.5},
			Size:        0.3,
			OrbitRadius: 9,
			OrbitalRate: 1 / 1.88,
			OrbitPhase:  45,
			SpinRate:    1 / 1.03,
			AxialTilt:   25,
		},
		{
			Name:        "jupiter",
			Texture:     "jupiter.jpg",
			Color:       [3]float32{0.5, 0.5, 0.5},
			Size:        0.8,
			OrbitRadius: 11,
			OrbitalRate: 1 / 11.86,
			SpinRate:    2.5,
			AxialTilt:   3.1,
		},
	}
}
