package config

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks settings that would otherwise fail later during setup.
// Per-body parameters are checked when the body table is built.
func (c *Config) Validate() error {
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Graphics.Width, c.Graphics.Height)
	}
	if c.Scene.SphereResolution <= 0 {
		return fmt.Errorf("%w: sphere_resolution %d", ErrInvalidConfig, c.Scene.SphereResolution)
	}
	if math.IsNaN(c.Scene.TimeScale) || math.IsInf(c.Scene.TimeScale, 0) {
		return fmt.Errorf("%w: time_scale %v", ErrInvalidConfig, c.Scene.TimeScale)
	}
	cam := c.Scene.Camera
	if cam.Near <= 0 || cam.Far <= cam.Near {
		return fmt.Errorf("%w: camera clip planes near=%v far=%v", ErrInvalidConfig, cam.Near, cam.Far)
	}
	if cam.FovY <= 0 || cam.FovY >= 180 {
		return fmt.Errorf("%w: camera fov_y %v", ErrInvalidConfig, cam.FovY)
	}
	if cam.Position == cam.Target {
		return fmt.Errorf("%w: camera position equals target", ErrInvalidConfig)
	}
	if len(c.Scene.Bodies) == 0 {
		return fmt.Errorf("%w: no bodies", ErrInvalidConfig)
	}
	if c.Assets.MaxTextureSize < 0 {
		return fmt.Errorf("%w: max_texture_size %d", ErrInvalidConfig, c.Assets.MaxTextureSize)
	}
	return nil
}
