// Package texture keeps a loaded texture together with the path it came
// from so it can be released and reloaded around device resets.
package texture

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/charmbracelet/log"

	"github.com/younwookim/spacewar/internal/domain/entity"
	"github.com/younwookim/spacewar/internal/infrastructure/graphics"
)

var ErrNotInitialized = errors.New("texture manager not initialized")

// Loader loads textures from image files.
type Loader interface {
	LoadTexture(path string, colorKey color.Color) (graphics.Texture, error)
}

// Manager owns one texture.
type Manager struct {
	loader   Loader
	path     string
	colorKey color.Color
	texture  graphics.Texture
	width    int
	height   int
	logger   *log.Logger
}

// NewManager creates an empty manager. Textures are keyed on colorKey.
func NewManager(colorKey color.Color, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.Default()
	}
	return &Manager{colorKey: colorKey, logger: logger}
}

// Initialize loads the texture at path.
func (m *Manager) Initialize(loader Loader, path string) error {
	m.loader = loader
	m.path = path
	return m.load()
}

func (m *Manager) load() error {
	if m.loader == nil {
		return ErrNotInitialized
	}
	tex, err := m.loader.LoadTexture(m.path, m.colorKey)
	if err != nil {
		return fmt.Errorf("failed to load texture %s: %w", m.path, err)
	}
	m.texture = tex
	m.width, m.height = tex.Size()
	m.logger.Debug("texture loaded", "path", m.path, "width", m.width, "height", m.height)
	return nil
}

// Texture returns the loaded texture, or nil while released.
func (m *Manager) Texture() entity.Texture {
	if m.texture == nil {
		return nil
	}
	return m.texture
}

func (m *Manager) Width() int   { return m.width }
func (m *Manager) Height() int  { return m.height }
func (m *Manager) Path() string { return m.path }

// OnLostDevice releases the texture. Repeated calls do nothing.
func (m *Manager) OnLostDevice() {
	if m.texture == nil {
		return
	}
	m.texture.Release()
	m.texture = nil
}

// OnResetDevice reloads the texture from its original path.
func (m *Manager) OnResetDevice() error {
	if m.texture != nil {
		return nil
	}
	return m.load()
}

// Reload replaces the texture with a fresh copy of the file. The old
// texture survives a failed reload.
func (m *Manager) Reload() error {
	if m.loader == nil {
		return ErrNotInitialized
	}
	old := m.texture
	m.texture = nil
	if err := m.load(); err != nil {
		m.texture = old
		return err
	}
	if old != nil {
		old.Release()
	}
	return nil
}
