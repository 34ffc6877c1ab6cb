// Package graphics owns the graphics device: the Render Surface that brackets
// each frame and the backends that actually draw.
package graphics

import (
	"errors"
	"image/color"

	"github.com/younwookim/spacewar/internal/application/state"
	"github.com/younwookim/spacewar/internal/domain/entity"
)

var (
	// ErrNoDevice is returned by scene calls made without a device.
	ErrNoDevice = errors.New("graphics device not created")
	// ErrDeviceLost is returned when the device cannot be used right now.
	ErrDeviceLost = errors.New("graphics device lost")
	// ErrSceneState is returned on unbalanced BeginScene/EndScene calls.
	ErrSceneState = errors.New("scene begin/end mismatch")
)

// PresentParams are the presentation parameters a device is created with.
type PresentParams struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
}

// Texture is a backend texture. Only its owner may release it.
type Texture interface {
	entity.Texture
	Release()
}

// Backend is the native graphics API the surface drives.
type Backend interface {
	CreateDevice(p PresentParams) error
	ReleaseDevice()
	// TestCooperativeLevel reports whether the device can be used.
	TestCooperativeLevel() state.DeviceState
	ResetDevice(p PresentParams) error

	Clear(c color.Color)
	BeginScene() error
	EndScene() error
	Present() error

	LoadTexture(path string, colorKey color.Color) (Texture, error)
	DrawSprite(sd entity.SpriteData, filter color.Color)
}
