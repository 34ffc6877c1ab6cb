package graphics

import (
	"fmt"
	"image/color"

	"github.com/charmbracelet/log"

	"github.com/younwookim/spacewar/internal/application/state"
	"github.com/younwookim/spacewar/internal/domain/entity"
	"github.com/younwookim/spacewar/internal/infrastructure/config"
)

// Surface owns the graphics device and brackets each frame.
type Surface struct {
	backend   Backend
	params    PresentParams
	backColor color.Color
	hasDevice bool
	logger    *log.Logger
}

// NewSurface creates a surface for the display settings. No device exists
// until Initialize succeeds.
func NewSurface(b Backend, cfg config.DisplayConfig, logger *log.Logger) *Surface {
	if logger == nil {
		logger = log.Default()
	}
	return &Surface{
		backend: b,
		params: PresentParams{
			Title:      cfg.Title,
			Width:      cfg.Width,
			Height:     cfg.Height,
			Fullscreen: cfg.Fullscreen,
		},
		backColor: cfg.BackColor.RGBA,
		logger:    logger,
	}
}

// Initialize creates the device.
func (s *Surface) Initialize() error {
	if s.params.Width <= 0 || s.params.Height <= 0 {
		return fmt.Errorf("unsupported back buffer size %dx%d", s.params.Width, s.params.Height)
	}
	if err := s.backend.CreateDevice(s.params); err != nil {
		return fmt.Errorf("failed to create graphics device: %w", err)
	}
	s.hasDevice = true
	s.logger.Info("graphics device created", "width", s.params.Width, "height", s.params.Height, "fullscreen", s.params.Fullscreen)
	return nil
}

// BeginScene clears the back buffer to the back color and starts a scene.
func (s *Surface) BeginScene() error {
	if !s.hasDevice {
		return ErrNoDevice
	}
	s.backend.Clear(s.backColor)
	return s.backend.BeginScene()
}

// EndScene completes the scene.
func (s *Surface) EndScene() error {
	if !s.hasDevice {
		return ErrNoDevice
	}
	return s.backend.EndScene()
}

// Present shows the back buffer.
func (s *Surface) Present() error {
	if !s.hasDevice {
		return ErrNoDevice
	}
	return s.backend.Present()
}

// DeviceState polls the device. Without a device it is unrecoverable.
func (s *Surface) DeviceState() state.DeviceState {
	if !s.hasDevice {
		return state.DeviceUnrecoverable
	}
	return s.backend.TestCooperativeLevel()
}

// Reset resets the device with the current presentation parameters.
func (s *Surface) Reset() error {
	if !s.hasDevice {
		return ErrNoDevice
	}
	return s.backend.ResetDevice(s.params)
}

// ChangeDisplayMode releases the device and recreates it in the new mode.
// Callers must release their device resources first.
func (s *Surface) ChangeDisplayMode(mode state.DisplayMode) error {
	fullscreen := mode.Resolve(s.params.Fullscreen)
	if s.hasDevice {
		s.backend.ReleaseDevice()
		s.hasDevice = false
	}

	s.params.Fullscreen = fullscreen
	if err := s.backend.CreateDevice(s.params); err != nil {
		return fmt.Errorf("failed to recreate graphics device (%s): %w", mode, err)
	}
	s.hasDevice = true
	s.logger.Info("display mode changed", "mode", mode, "fullscreen", fullscreen)
	return nil
}

// LoadTexture loads an image file through the backend.
func (s *Surface) LoadTexture(path string, colorKey color.Color) (Texture, error) {
	if !s.hasDevice {
		return nil, ErrNoDevice
	}
	return s.backend.LoadTexture(path, colorKey)
}

// DrawSprite draws a sprite. It is a no-op without a device or texture.
func (s *Surface) DrawSprite(sd entity.SpriteData, filter color.Color) {
	if !s.hasDevice || sd.Texture == nil {
		return
	}
	s.backend.DrawSprite(sd, filter)
}

// Release destroys the device.
func (s *Surface) Release() {
	if !s.hasDevice {
		return
	}
	s.backend.ReleaseDevice()
	s.hasDevice = false
}

func (s *Surface) SetBackColor(c color.Color) { s.backColor = c }
func (s *Surface) BackColor() color.Color     { return s.backColor }
func (s *Surface) Fullscreen() bool           { return s.params.Fullscreen }
func (s *Surface) Width() int                 { return s.params.Width }
func (s *Surface) Height() int                { return s.params.Height }
func (s *Surface) HasDevice() bool            { return s.hasDevice }
