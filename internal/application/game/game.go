// Package game drives frames and adapts the driver to the ebiten host loop.
package game

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/younwookim/spacewar/internal/domain/input"
)

// InputSource fills the collector with this tick's input.
type InputSource interface {
	Pump(in *input.Collector)
}

// View draws the last presented frame onto the screen.
type View interface {
	Draw(screen *ebiten.Image)
}

// Host implements ebiten.Game on top of a Driver.
type Host struct {
	driver  *Driver
	source  InputSource
	view    View
	screenW int
	screenH int
	showFPS bool
	fpsKey  input.KeyCode
}

// NewHost creates a host. fpsKey toggles the frame rate overlay.
func NewHost(d *Driver, src InputSource, view View, screenW, screenH int, showFPS bool, fpsKey input.KeyCode) *Host {
	h := &Host{
		driver:  d,
		source:  src,
		view:    view,
		screenW: screenW,
		screenH: screenH,
		showFPS: showFPS,
		fpsKey:  fpsKey,
	}
	d.AddObserver(h)
	return h
}

// Update pumps input and runs one driver iteration.
// Implements ebiten.Game interface.
func (h *Host) Update() error {
	if h.driver.Done() {
		return ebiten.Termination
	}
	if h.source != nil {
		h.source.Pump(h.driver.Input())
	}
	if err := h.driver.Run(); err != nil {
		return err
	}
	if h.driver.Done() {
		return ebiten.Termination
	}
	return nil
}

// FrameDone toggles the overlay on a completed frame.
func (h *Host) FrameDone(_ float64, in *input.Collector) {
	if in.WasKeyPressed(h.fpsKey) {
		h.showFPS = !h.showFPS
	}
}

// Draw renders the presented frame and the optional overlay.
// Implements ebiten.Game interface.
func (h *Host) Draw(screen *ebiten.Image) {
	h.view.Draw(screen)
	if h.showFPS {
		msg := fmt.Sprintf("fps %d", int(h.driver.FPS()))
		if h.driver.Paused() {
			msg += " (paused)"
		}
		ebitenutil.DebugPrintAt(screen, msg, h.screenW-96, 2)
	}
}

// Layout returns the game's logical screen dimensions.
// Implements ebiten.Game interface.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	return h.screenW, h.screenH
}

func (h *Host) ShowFPS() bool { return h.showFPS }
