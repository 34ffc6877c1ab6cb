package entity

import (
	"errors"
	"image"
	"image/color"
)

// ErrNoTexture is returned when an Image is initialized without a texture source.
var ErrNoTexture = errors.New("image has no texture source")

// Image is a drawable, animated sprite cut from a sprite sheet.
//
// The animation window is [StartFrame, EndFrame]. Update advances one frame
// each time the accumulated time exceeds the frame delay and keeps the
// remainder, so the animation does not drift at uneven frame rates.
type Image struct {
	drawer   Drawer
	textures TextureSource

	sprite      SpriteData
	colorFilter color.Color
	cols        int

	startFrame   int
	endFrame     int
	currentFrame int
	frameDelay   float64 // seconds
	animTimer    float64
	loop         bool
	visible      bool
	animComplete bool
	initialized  bool
}

// NewImage creates an image with the default state: visible, looping,
// one second per frame, white filter.
func NewImage() *Image {
	img := &Image{
		cols:        1,
		frameDelay:  1.0,
		loop:        true,
		visible:     true,
		colorFilter: ColorWhite,
		sprite: SpriteData{
			Width:  2,
			Height: 2,
			Scale:  1,
		},
	}
	img.setRect()
	return img
}

// Initialize binds the image to a drawer and a texture source.
// A zero width or height uses the full texture size; zero cols means one column.
func (img *Image) Initialize(d Drawer, width, height, cols int, ts TextureSource) error {
	if ts == nil {
		return ErrNoTexture
	}
	img.drawer = d
	img.textures = ts
	img.sprite.Texture = ts.Texture()

	if width == 0 {
		width = ts.Width()
	}
	if height == 0 {
		height = ts.Height()
	}
	img.sprite.Width = width
	img.sprite.Height = height

	img.cols = cols
	if img.cols == 0 {
		img.cols = 1
	}
	img.setRect()
	img.initialized = true
	return nil
}

// Update advances the animation by frameTime seconds.
func (img *Image) Update(frameTime float64) {
	if img.endFrame-img.startFrame <= 0 {
		return
	}

	img.animTimer += frameTime
	if img.animTimer <= img.frameDelay {
		return
	}

	img.animTimer -= img.frameDelay
	img.currentFrame++
	if img.currentFrame < img.startFrame || img.currentFrame > img.endFrame {
		if img.loop {
			img.currentFrame = img.startFrame
		} else {
			img.currentFrame = img.endFrame
			img.animComplete = true
		}
	}
	img.setRect()
}

// Draw draws the image with its own color filter.
func (img *Image) Draw() {
	img.DrawColor(img.colorFilter)
}

// DrawColor draws the image using c as the color filter.
func (img *Image) DrawColor(c color.Color) {
	if !img.drawable() {
		return
	}
	// refresh the handle in case the texture was reloaded after a reset
	img.sprite.Texture = img.textures.Texture()
	if img.sprite.Texture == nil {
		return
	}
	img.drawer.DrawSprite(img.sprite, c)
}

// DrawData draws sd using this image's texture and current frame rectangle.
func (img *Image) DrawData(sd SpriteData, c color.Color) {
	if !img.drawable() {
		return
	}
	sd.Rect = img.sprite.Rect
	sd.Texture = img.textures.Texture()
	if sd.Texture == nil {
		return
	}
	img.drawer.DrawSprite(sd, c)
}

func (img *Image) drawable() bool {
	return img.visible && img.drawer != nil && img.textures != nil
}

func (img *Image) setRect() {
	img.sprite.Rect = FrameRect(img.currentFrame, img.cols, img.sprite.Width, img.sprite.Height)
}

// SpriteData returns a copy of the sprite data.
func (img *Image) SpriteData() SpriteData { return img.sprite }

func (img *Image) Initialized() bool { return img.initialized }
func (img *Image) Visible() bool     { return img.visible }
func (img *Image) X() float64        { return img.sprite.X }
func (img *Image) Y() float64        { return img.sprite.Y }
func (img *Image) Scale() float64    { return img.sprite.Scale }
func (img *Image) Width() int        { return img.sprite.Width }
func (img *Image) Height() int       { return img.sprite.Height }

// CenterX returns the X coordinate of the scaled image center.
func (img *Image) CenterX() float64 {
	return img.sprite.X + float64(img.sprite.Width)/2*img.sprite.Scale
}

// CenterY returns the Y coordinate of the scaled image center.
func (img *Image) CenterY() float64 {
	return img.sprite.Y + float64(img.sprite.Height)/2*img.sprite.Scale
}

func (img *Image) Degrees() float64         { return RadToDeg(img.sprite.Angle) }
func (img *Image) Radians() float64         { return img.sprite.Angle }
func (img *Image) FrameDelay() float64      { return img.frameDelay }
func (img *Image) StartFrame() int          { return img.startFrame }
func (img *Image) EndFrame() int            { return img.endFrame }
func (img *Image) CurrentFrame() int        { return img.currentFrame }
func (img *Image) Rect() image.Rectangle    { return img.sprite.Rect }
func (img *Image) AnimationComplete() bool  { return img.animComplete }
func (img *Image) ColorFilter() color.Color { return img.colorFilter }
func (img *Image) Loop() bool               { return img.loop }

func (img *Image) SetX(x float64)               { img.sprite.X = x }
func (img *Image) SetY(y float64)               { img.sprite.Y = y }
func (img *Image) SetScale(s float64)           { img.sprite.Scale = s }
func (img *Image) SetDegrees(deg float64)       { img.sprite.Angle = DegToRad(deg) }
func (img *Image) SetRadians(rad float64)       { img.sprite.Angle = rad }
func (img *Image) SetVisible(v bool)            { img.visible = v }
func (img *Image) SetFrameDelay(d float64)      { img.frameDelay = d }
func (img *Image) SetLoop(loop bool)            { img.loop = loop }
func (img *Image) SetColorFilter(c color.Color) { img.colorFilter = c }
func (img *Image) FlipHorizontal(flip bool)     { img.sprite.FlipHorizontal = flip }
func (img *Image) FlipVertical(flip bool)       { img.sprite.FlipVertical = flip }

// SetAnimationComplete overrides the completion flag.
func (img *Image) SetAnimationComplete(done bool) { img.animComplete = done }

// SetFrames sets the animation window.
func (img *Image) SetFrames(start, end int) {
	img.startFrame = start
	img.endFrame = end
}

// SetCurrentFrame jumps to frame and restarts a finished animation.
// Negative frames are ignored.
func (img *Image) SetCurrentFrame(frame int) {
	if frame < 0 {
		return
	}
	img.currentFrame = frame
	img.animComplete = false
	img.setRect()
}
