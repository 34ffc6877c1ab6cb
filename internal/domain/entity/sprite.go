package entity

import (
	"image"
	"image/color"
	"math"
)

// Common colors used as back colors and filters.
var (
	ColorWhite   = color.RGBA{255, 255, 255, 255}
	ColorBlack   = color.RGBA{0, 0, 0, 255}
	ColorMagenta = color.RGBA{255, 0, 255, 255}
)

// Texture is an opaque, backend-owned texture handle.
type Texture interface {
	Size() (width, height int)
}

// TextureSource hands out the current texture of a texture store.
// The handle may change after a device reset, so sprites ask for it on every draw.
type TextureSource interface {
	Texture() Texture
	Width() int
	Height() int
}

// Drawer draws a textured quad described by SpriteData.
type Drawer interface {
	DrawSprite(sd SpriteData, filter color.Color)
}

// SpriteData is everything a Drawer needs to draw one sprite.
type SpriteData struct {
	Width, Height  int
	X, Y           float64
	Scale          float64
	Angle          float64 // radians
	Rect           image.Rectangle
	Texture        Texture
	FlipHorizontal bool
	FlipVertical   bool
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// FrameRect returns the source rectangle of frame in a sheet with cols columns
// of width x height cells.
func FrameRect(frame, cols, width, height int) image.Rectangle {
	if cols <= 0 {
		cols = 1
	}
	x := (frame % cols) * width
	y := (frame / cols) * height
	return image.Rect(x, y, x+width, y+height)
}
