package app

import (
	"fmt"
	"image"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/orrery/internal/assets"
	"github.com/Faultbox/orrery/internal/config"
	"github.com/Faultbox/orrery/internal/engine/gpu"
	"github.com/Faultbox/orrery/internal/engine/texture"
	"github.com/Faultbox/orrery/internal/logger"
	"github.com/Faultbox/orrery/internal/solar"
)

// textureLoader uploads body textures, substituting a 1x1 texture of the
// body's colour when the file is missing or unreadable.
type textureLoader struct {
	device  gpu.Device
	assets  *assets.Manager
	maxSize int
}

// load returns a texture for body. Only upload failures are errors.
func (l *textureLoader) load(body config.BodyConfig) (gpu.Handle, error) {
	img := texture.SolidColor(body.Color)
	if body.Texture != "" {
		decoded, err := l.assets.LoadTexture(body.Texture, l.maxSize)
		if err != nil {
			logger.Warn("texture unavailable, using base colour",
				zap.String("body", body.Name),
				zap.String("texture", body.Texture),
				zap.Error(err),
			)
		} else {
			img = decoded
		}
	}

	return l.upload(body, img)
}

func (l *textureLoader) upload(body config.BodyConfig, img *image.RGBA) (gpu.Handle, error) {
	h, err := l.device.UploadTexture(img)
	if err != nil {
		return gpu.Handle{}, fmt.Errorf("uploading texture for %s: %w", body.Name, err)
	}
	return h, nil
}

// bind loads a texture for every body. bodies and cfgs share their order.
// On error the textures uploaded so far are released.
func (l *textureLoader) bind(bodies []solar.Body, cfgs []config.BodyConfig) error {
	for i := range bodies {
		h, err := l.load(cfgs[i])
		if err != nil {
			for _, b := range bodies[:i] {
				l.device.Release(b.Texture)
			}
			return err
		}
		bodies[i].Texture = h
	}
	return nil
}

// reload re-reads every texture stored at path and swaps it into the scene.
// It returns the number of bodies updated. A file that does not decode, for
// example one still being written, leaves the body's current texture bound.
func (l *textureLoader) reload(path string, scene *solar.Scene, cfgs []config.BodyConfig) (int, error) {
	updated := 0
	for _, c := range cfgs {
		if c.Texture == "" {
			continue
		}
		resolved, err := l.assets.Resolve(c.Texture)
		if err != nil || !samePath(resolved, path) {
			continue
		}

		l.assets.Invalidate(c.Texture)
		img, err := l.assets.LoadTexture(c.Texture, l.maxSize)
		if err != nil {
			logger.Warn("texture reload failed, keeping current texture",
				zap.String("body", c.Name),
				zap.String("texture", c.Texture),
				zap.Error(err),
			)
			continue
		}
		h, err := l.upload(c, img)
		if err != nil {
			return updated, err
		}
		if old, ok := scene.SetTexture(c.Name, h); ok {
			l.device.Release(old)
			updated++
		} else {
			l.device.Release(h)
		}
	}
	return updated, nil
}

func samePath(a, b string) bool {
	aa, err1 := filepath.Abs(a)
	bb, err2 := filepath.Abs(b)
	if err1 != nil || err2 != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return aa == bb
}
