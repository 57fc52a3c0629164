// Package assets handles texture and shader file loading and caching.
package assets

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/orrery/internal/engine/texture"
	"github.com/Faultbox/orrery/internal/logger"
)

// ErrNotFound is returned when no search directory contains a file.
var ErrNotFound = errors.New("asset not found")

// Manager handles asset loading from directories on disk.
type Manager struct {
	dirs  []string
	cache *Cache
	mu    sync.RWMutex
}

// NewManager creates a new asset manager searching dirs.
func NewManager(dirs ...string) *Manager {
	m := &Manager{cache: NewCache()}
	for _, d := range dirs {
		m.AddDir(d)
	}
	return m
}

// AddDir adds a search directory.
// Directories are searched in reverse order (last added = highest priority).
func (m *Manager) AddDir(dir string) {
	if dir == "" {
		return
	}
	m.mu.Lock()
	m.dirs = append(m.dirs, dir)
	m.mu.Unlock()
}

// Dirs returns the search directories in the order they were added.
func (m *Manager) Dirs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.dirs...)
}

// Resolve returns the path of name in the highest priority directory that
// has it. Absolute names are returned as is when they exist.
func (m *Manager) Resolve(name string) (string, error) {
	if filepath.IsAbs(name) {
		if _, err := os.Stat(name); err != nil {
			return "", fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return name, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.dirs) - 1; i >= 0; i-- {
		path := filepath.Join(m.dirs[i], name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Load loads a file from the search directories.
func (m *Manager) Load(name string) ([]byte, error) {
	if data, ok := m.cache.Get(name); ok {
		return data, nil
	}

	path, err := m.Resolve(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	m.cache.Set(name, data)
	return data, nil
}

// LoadTexture loads and decodes an image, downscaled to fit maxSize
// (0 keeps the original size).
func (m *Manager) LoadTexture(name string, maxSize int) (*image.RGBA, error) {
	data, err := m.Load(name)
	if err != nil {
		return nil, err
	}
	img, err := texture.Decode(bytes.NewReader(data), name)
	if err != nil {
		return nil, err
	}

	fitted := texture.FitWithin(img, maxSize)
	if fitted != img {
		logger.Debug("texture downscaled",
			zap.String("name", name),
			zap.Stringer("from", img.Bounds().Size()),
			zap.Stringer("to", fitted.Bounds().Size()),
		)
	}
	return fitted, nil
}

// ShaderFS returns the highest priority search directory as a file system,
// or nil when there are none.
func (m *Manager) ShaderFS() fs.FS {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.dirs) == 0 {
		return nil
	}
	return os.DirFS(m.dirs[len(m.dirs)-1])
}

// Invalidate drops name from the cache so the next Load reads the disk.
func (m *Manager) Invalidate(name string) {
	m.cache.Delete(name)
}

// Close clears the cache.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirs = nil
	m.cache.Clear()
}

// Cache is a simple in-memory cache for loaded assets.
type Cache struct {
	data map[string][]byte
	mu   sync.Mutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Delete removes an item from cache.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
