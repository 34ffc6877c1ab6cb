package graphics

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"

	"github.com/hajimehoshi/ebiten/v2"
	_ "golang.org/x/image/bmp"

	"github.com/younwookim/spacewar/internal/application/state"
	"github.com/younwookim/spacewar/internal/domain/entity"
)

// Window is the host window the ebiten backend presents into.
type Window interface {
	Apply(p PresentParams)
	Minimized() bool
	Focused() bool
}

type ebitenWindow struct{}

func (ebitenWindow) Apply(p PresentParams) {
	ebiten.SetWindowTitle(p.Title)
	ebiten.SetWindowSize(p.Width, p.Height)
	ebiten.SetFullscreen(p.Fullscreen)
}

func (ebitenWindow) Minimized() bool { return ebiten.IsWindowMinimized() }
func (ebitenWindow) Focused() bool   { return ebiten.IsFocused() }

type ebitenTexture struct {
	img    *ebiten.Image
	width  int
	height int
}

func (t *ebitenTexture) Size() (int, int) { return t.width, t.height }

// Release frees the GPU image. Calling it twice is harmless.
func (t *ebitenTexture) Release() {
	if t.img == nil {
		return
	}
	t.img.Deallocate()
	t.img = nil
}

type drawCmd struct {
	tex    *ebitenTexture
	rect   image.Rectangle
	geo    ebiten.GeoM
	filter color.Color
}

// Ebiten is a Backend on top of ebiten.
//
// Scenes are recorded between BeginScene and EndScene and swapped into the
// presented frame on Present; Draw replays the presented frame onto the
// screen ebiten hands out. The device counts as lost while the window is
// minimized or while a fullscreen window has no focus, and needs a reset
// once that condition clears.
type Ebiten struct {
	assets fs.FS
	window Window

	params  PresentParams
	created bool
	lost    bool

	clear          color.Color
	inScene        bool
	recording      []drawCmd
	presented      []drawCmd
	presentedClear color.Color
	upload         func(image.Image) *ebiten.Image
}

// NewEbiten creates a backend that loads textures from assets.
func NewEbiten(assets fs.FS) *Ebiten {
	return NewEbitenWithWindow(assets, ebitenWindow{})
}

// NewEbitenWithWindow creates a backend presenting into w.
func NewEbitenWithWindow(assets fs.FS, w Window) *Ebiten {
	return &Ebiten{
		assets: assets,
		window: w,
		clear:  entity.ColorBlack,
		upload: ebiten.NewImageFromImage,
	}
}

func (e *Ebiten) CreateDevice(p PresentParams) error {
	e.params = p
	e.window.Apply(p)
	e.created = true
	e.lost = false
	return nil
}

func (e *Ebiten) ReleaseDevice() {
	e.created = false
	e.inScene = false
	e.recording = nil
	e.presented = nil
}

func (e *Ebiten) unusable() bool {
	return e.window.Minimized() || (e.params.Fullscreen && !e.window.Focused())
}

func (e *Ebiten) TestCooperativeLevel() state.DeviceState {
	if !e.created {
		return state.DeviceUnrecoverable
	}
	if e.unusable() {
		e.lost = true
		return state.DeviceLost
	}
	if e.lost {
		return state.DeviceNotReset
	}
	return state.DeviceOK
}

func (e *Ebiten) ResetDevice(p PresentParams) error {
	if !e.created {
		return ErrNoDevice
	}
	if e.unusable() {
		return ErrDeviceLost
	}
	e.params = p
	e.window.Apply(p)
	e.lost = false
	// recorded commands may reference released textures
	e.recording = nil
	e.presented = nil
	return nil
}

func (e *Ebiten) Clear(c color.Color) {
	e.clear = c
}

func (e *Ebiten) BeginScene() error {
	if !e.created {
		return ErrNoDevice
	}
	if e.inScene {
		return ErrSceneState
	}
	e.recording = e.recording[:0]
	e.inScene = true
	return nil
}

func (e *Ebiten) EndScene() error {
	if !e.inScene {
		return ErrSceneState
	}
	e.inScene = false
	return nil
}

func (e *Ebiten) Present() error {
	if !e.created {
		return ErrNoDevice
	}
	if e.lost {
		return ErrDeviceLost
	}
	e.presented, e.recording = e.recording, e.presented[:0]
	e.presentedClear = e.clear
	return nil
}

// LoadTexture decodes a PNG, JPEG or BMP file and makes every pixel matching
// colorKey transparent.
func (e *Ebiten) LoadTexture(path string, colorKey color.Color) (Texture, error) {
	data, err := fs.ReadFile(e.assets, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read texture %s: %w", path, err)
	}
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode texture %s: %w", path, err)
	}

	keyed := applyColorKey(src, colorKey)
	b := keyed.Bounds()
	return &ebitenTexture{
		img:    e.upload(keyed),
		width:  b.Dx(),
		height: b.Dy(),
	}, nil
}

func (e *Ebiten) DrawSprite(sd entity.SpriteData, filter color.Color) {
	if !e.inScene {
		return
	}
	tex, ok := sd.Texture.(*ebitenTexture)
	if !ok || tex.img == nil {
		return
	}
	e.recording = append(e.recording, drawCmd{
		tex:    tex,
		rect:   sd.Rect,
		geo:    spriteGeoM(sd),
		filter: filter,
	})
}

// Draw replays the last presented frame.
func (e *Ebiten) Draw(screen *ebiten.Image) {
	if e.presentedClear != nil {
		screen.Fill(e.presentedClear)
	}
	for _, cmd := range e.presented {
		if cmd.tex.img == nil {
			continue
		}
		sub, ok := cmd.tex.img.SubImage(cmd.rect).(*ebiten.Image)
		if !ok {
			continue
		}
		op := &ebiten.DrawImageOptions{GeoM: cmd.geo, Filter: ebiten.FilterLinear}
		if cmd.filter != nil {
			op.ColorScale.ScaleWithColor(cmd.filter)
		}
		screen.DrawImage(sub, op)
	}
}

// PresentedCount returns the number of sprites in the presented frame.
func (e *Ebiten) PresentedCount() int {
	return len(e.presented)
}

// spriteGeoM scales around the top-left corner, flips and rotates around the
// center of the scaled sprite, then moves it to (X, Y).
func spriteGeoM(sd entity.SpriteData) ebiten.GeoM {
	var g ebiten.GeoM
	w, h := float64(sd.Width), float64(sd.Height)

	g.Translate(-w/2, -h/2)
	sx, sy := sd.Scale, sd.Scale
	if sd.FlipHorizontal {
		sx = -sx
	}
	if sd.FlipVertical {
		sy = -sy
	}
	g.Scale(sx, sy)
	g.Rotate(sd.Angle)
	g.Translate(sd.X+w*sd.Scale/2, sd.Y+h*sd.Scale/2)
	return g
}

// applyColorKey returns an NRGBA copy of src with colorKey pixels cleared.
func applyColorKey(src image.Image, colorKey color.Color) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	if colorKey == nil {
		return dst
	}

	key := color.NRGBAModel.Convert(colorKey).(color.NRGBA)
	for i := 0; i+3 < len(dst.Pix); i += 4 {
		p := dst.Pix[i : i+4 : i+4]
		if p[0] == key.R && p[1] == key.G && p[2] == key.B {
			p[0], p[1], p[2], p[3] = 0, 0, 0, 0
		}
	}
	return dst
}
