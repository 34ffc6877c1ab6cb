package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"
)

// Settings is the root config for settings.toml
type Settings struct {
	Display DisplayConfig `toml:"display"`
	Timing  TimingConfig  `toml:"timing"`
	Keys    KeysConfig    `toml:"keys"`
	Assets  AssetsConfig  `toml:"assets"`
}

type DisplayConfig struct {
	Title      string `toml:"title"`
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Fullscreen bool   `toml:"fullscreen"`
	BackColor  Color  `toml:"backColor"`
	ShowFPS    bool   `toml:"showFPS"`
}

// TimingConfig bounds the frame driver's step size.
type TimingConfig struct {
	FrameRate       float64  `toml:"frameRate"`    // target frames per second
	MinFrameRate    float64  `toml:"minFrameRate"` // below this the step is clamped
	LostDeviceSleep Duration `toml:"lostDeviceSleep"`
	HostTPS         int      `toml:"hostTPS"` // host loop ticks per second, 0 follows the display
}

// MinFrameTime is the shortest frame the driver simulates, in seconds.
func (t TimingConfig) MinFrameTime() float64 {
	return 1.0 / t.FrameRate
}

// MaxFrameTime is the largest step the simulation is allowed to take, in seconds.
func (t TimingConfig) MaxFrameTime() float64 {
	return 1.0 / t.MinFrameRate
}

// KeysConfig holds virtual key codes.
type KeysConfig struct {
	Escape    uint16 `toml:"escape"`
	Alt       uint16 `toml:"alt"`
	Enter     uint16 `toml:"enter"`
	ShipLeft  uint16 `toml:"shipLeft"`
	ShipRight uint16 `toml:"shipRight"`
	ShipUp    uint16 `toml:"shipUp"`
	ShipDown  uint16 `toml:"shipDown"`
	FPS       uint16 `toml:"fps"`
	Pause     uint16 `toml:"pause"`
}

type AssetsConfig struct {
	Dir        string `toml:"dir"`
	TransColor Color  `toml:"transColor"`
	Watch      bool   `toml:"watch"`
}

// Duration is a time.Duration read from a string such as "100ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(b), err)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Color is an RGBA color read from "#RRGGBB" or "#AARRGGBB".
type Color struct {
	color.RGBA
}

func (c *Color) UnmarshalText(b []byte) error {
	s := strings.TrimPrefix(string(b), "#")
	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color %q: want #RRGGBB or #AARRGGBB", string(b))
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fmt.Errorf("invalid color %q: %w", string(b), err)
	}
	if len(s) == 6 {
		v |= 0xFF000000
	}
	// the text form is not premultiplied, color.RGBA is
	c.RGBA = color.RGBAModel.Convert(color.NRGBA{
		A: uint8(v >> 24),
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}).(color.RGBA)
	return nil
}

func (c Color) MarshalText() ([]byte, error) {
	n := color.NRGBAModel.Convert(c.RGBA).(color.NRGBA)
	return []byte(fmt.Sprintf("#%02X%02X%02X%02X", n.A, n.R, n.G, n.B)), nil
}

// SpritesConfig is the root config for sprites.json
type SpritesConfig struct {
	Textures map[string]string `json:"textures"`
	Ship     ShipConfig        `json:"ship"`
}

// ShipConfig describes the ship sprite sheet and its motion.
type ShipConfig struct {
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	Cols           int     `json:"cols"`
	StartFrame     int     `json:"startFrame"`
	EndFrame       int     `json:"endFrame"`
	AnimationDelay float64 `json:"animationDelay"` // seconds per frame
	RotationRate   float64 `json:"rotationRate"`   // degrees per second
	Speed          float64 `json:"speed"`          // pixels per second
	ScaleRate      float64 `json:"scaleRate"`      // scale change per second
	Scale          float64 `json:"scale"`
}
