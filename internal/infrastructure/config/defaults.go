package config

import (
	"errors"
	"fmt"
	"image/color"
	"time"
)

// DefaultSettings returns the values used when settings.toml omits a key.
func DefaultSettings() *Settings {
	return &Settings{
		Display: DisplayConfig{
			Title:     "Spacewar",
			Width:     640,
			Height:    480,
			BackColor: Color{color.RGBA{255, 0, 128, 255}},
		},
		Timing: TimingConfig{
			FrameRate:       200,
			MinFrameRate:    10,
			LostDeviceSleep: Duration{100 * time.Millisecond},
		},
		Keys: KeysConfig{
			Escape:    0x1B,
			Alt:       0x12,
			Enter:     0x0D,
			ShipLeft:  0x25,
			ShipRight: 0x27,
			ShipUp:    0x26,
			ShipDown:  0x28,
			FPS:       0x70,
			Pause:     0x13,
		},
		Assets: AssetsConfig{
			Dir:        "assets",
			TransColor: Color{color.RGBA{255, 0, 255, 255}},
		},
	}
}

// Validate rejects settings the frame driver cannot run with.
func (s *Settings) Validate() error {
	var errs []error
	if s.Display.Width <= 0 || s.Display.Height <= 0 {
		errs = append(errs, fmt.Errorf("display size %dx%d must be positive", s.Display.Width, s.Display.Height))
	}
	if s.Timing.FrameRate <= 0 {
		errs = append(errs, fmt.Errorf("frameRate %v must be positive", s.Timing.FrameRate))
	}
	if s.Timing.MinFrameRate <= 0 {
		errs = append(errs, fmt.Errorf("minFrameRate %v must be positive", s.Timing.MinFrameRate))
	}
	if s.Timing.MinFrameRate > s.Timing.FrameRate {
		errs = append(errs, fmt.Errorf("minFrameRate %v exceeds frameRate %v", s.Timing.MinFrameRate, s.Timing.FrameRate))
	}
	if s.Timing.LostDeviceSleep.Duration < 0 {
		errs = append(errs, errors.New("lostDeviceSleep must not be negative"))
	}
	if s.Timing.HostTPS < 0 {
		errs = append(errs, fmt.Errorf("hostTPS %d must not be negative", s.Timing.HostTPS))
	}
	return errors.Join(errs...)
}
