package game

import (
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/younwookim/spacewar/internal/application/state"
	"github.com/younwookim/spacewar/internal/domain/input"
	"github.com/younwookim/spacewar/internal/infrastructure/config"
)

var ErrNotInitialized = errors.New("frame driver not initialized")

// Game is what the frame driver steps each frame.
type Game interface {
	Initialize() error
	Update(frameTime float64)
	AI()
	Collisions()
	Render()
	// ReleaseAll frees every device resource. ResetAll recreates them.
	ReleaseAll()
	ResetAll()
}

// Renderer brackets frames and reports device health.
type Renderer interface {
	Initialize() error
	BeginScene() error
	EndScene() error
	Present() error
	DeviceState() state.DeviceState
	Reset() error
	ChangeDisplayMode(mode state.DisplayMode) error
	Fullscreen() bool
}

// FrameObserver is told about every completed frame, before pressed keys
// are cleared.
type FrameObserver interface {
	FrameDone(frameTime float64, in *input.Collector)
}

// FrameTimeSource supplies the frame time to step with in place of the
// measured one. A replay uses it to step with the recorded times.
type FrameTimeSource interface {
	FrameTime() (float64, bool)
}

// FatalError is an error the game cannot continue from.
type FatalError struct {
	Msg string
	Err error
}

func (e *FatalError) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return e.Msg + ": " + e.Err.Error()
}

func (e *FatalError) Unwrap() error { return e.Err }

// Option configures a Driver.
type Option func(*Driver)

// WithClock replaces the real clock.
func WithClock(c Clock) Option {
	return func(d *Driver) { d.clock = c }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(d *Driver) { d.logger = l }
}

// WithObserver registers a frame observer.
func WithObserver(o FrameObserver) Option {
	return func(d *Driver) { d.observers = append(d.observers, o) }
}

// WithFrameTimes steps the game with frame times taken from s.
func WithFrameTimes(s FrameTimeSource) Option {
	return func(d *Driver) { d.frameTimes = s }
}

// Driver runs one frame per call to Run: it throttles to the target
// frame rate, steps the game with a clamped frame time, renders, recovers
// from device loss and handles the display-mode keys.
type Driver struct {
	game     Game
	renderer Renderer
	input    *input.Collector
	timing   config.TimingConfig
	keys     config.KeysConfig

	clock     Clock
	frame     FrameClock
	logger    *log.Logger
	observers []FrameObserver

	frameTimes FrameTimeSource

	fps       float64
	frameTime float64
	frames    uint64
	paused    bool

	// device health after the last completed frame
	device      state.DeviceState
	released    bool
	initialized bool
	done        bool
}

// NewDriver creates a driver for g rendering through r.
func NewDriver(g Game, r Renderer, in *input.Collector, timing config.TimingConfig, keys config.KeysConfig, opts ...Option) *Driver {
	d := &Driver{
		game:     g,
		renderer: r,
		input:    in,
		timing:   timing,
		keys:     keys,
		clock:    DefaultClock(),
		logger:   log.Default(),
		fps:      100,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.frame = NewFrameClock(d.clock)
	return d
}

// Initialize sets up the renderer, then the game, then starts the clock.
func (d *Driver) Initialize() error {
	if err := d.renderer.Initialize(); err != nil {
		return &FatalError{Msg: "error initializing graphics", Err: err}
	}
	if err := d.game.Initialize(); err != nil {
		return &FatalError{Msg: "error initializing game", Err: err}
	}
	d.frame.Start()
	d.device = state.DeviceOK
	d.initialized = true
	d.logger.Info("frame driver initialized", "frameRate", d.timing.FrameRate, "minFrameRate", d.timing.MinFrameRate)
	return nil
}

// Run executes one iteration of the game loop. A frame that comes too
// early only sleeps and changes nothing.
func (d *Driver) Run() error {
	if !d.initialized {
		return ErrNotInitialized
	}
	if d.done {
		return nil
	}

	now := d.clock.Now()
	elapsed := d.frame.Elapsed(now)
	if minFrame := d.timing.MinFrameTime(); elapsed < minFrame {
		d.clock.Sleep(time.Duration((minFrame - elapsed) * float64(time.Second)))
		return nil
	}
	if elapsed > 0 {
		d.fps = d.fps*0.99 + 0.01/elapsed
	}
	if d.frameTimes != nil {
		if ft, ok := d.frameTimes.FrameTime(); ok {
			elapsed = ft
		}
	}
	if maxFrame := d.timing.MaxFrameTime(); elapsed > maxFrame {
		elapsed = maxFrame
	}
	d.frameTime = elapsed
	d.frame.Mark(now)

	if !d.paused && d.device.Usable() {
		d.game.Update(d.frameTime)
		d.game.AI()
		d.game.Collisions()
	}
	d.render()

	if err := d.handleDisplayKeys(); err != nil {
		return err
	}
	if d.input.WasKeyPressed(input.KeyCode(d.keys.Pause)) {
		d.paused = !d.paused
		d.logger.Info("pause toggled", "paused", d.paused)
	}

	d.frames++
	for _, o := range d.observers {
		o.FrameDone(d.frameTime, d.input)
	}
	d.input.ClearPressed()
	return nil
}

func (d *Driver) render() {
	if err := d.renderer.BeginScene(); err == nil {
		d.game.Render()
		if err := d.renderer.EndScene(); err != nil {
			d.logger.Debug("end scene failed", "err", err)
		}
	} else {
		d.logger.Debug("begin scene failed", "err", err)
	}

	d.handleLostDevice()

	if d.device == state.DeviceOK {
		if err := d.renderer.Present(); err != nil {
			d.logger.Debug("present failed", "err", err)
		}
	}
}

// handleLostDevice polls the device and walks the recovery states.
// Resources are released once per loss and restored after a successful
// reset.
func (d *Driver) handleLostDevice() {
	st := d.renderer.DeviceState()
	if st != d.device {
		d.logger.Info("device state changed", "from", d.device, "to", st)
	}

	switch st {
	case state.DeviceOK:
		if d.released {
			d.game.ResetAll()
			d.released = false
		}
	case state.DeviceLost:
		d.clock.Sleep(d.timing.LostDeviceSleep.Duration)
	case state.DeviceNotReset:
		if !d.released {
			d.game.ReleaseAll()
			d.released = true
		}
		if err := d.renderer.Reset(); err != nil {
			d.logger.Warn("device reset failed", "err", err)
			break
		}
		d.game.ResetAll()
		d.released = false
		st = state.DeviceOK
		d.logger.Info("device reset")
	case state.DeviceUnrecoverable:
	}
	d.device = st
}

func (d *Driver) handleDisplayKeys() error {
	if d.input.IsKeyDown(input.KeyCode(d.keys.Alt)) && d.input.WasKeyPressed(input.KeyCode(d.keys.Enter)) {
		return d.SetDisplayMode(state.DisplayToggle)
	}
	if d.input.IsKeyDown(input.KeyCode(d.keys.Escape)) && d.renderer.Fullscreen() {
		return d.SetDisplayMode(state.DisplayWindow)
	}
	return nil
}

// SetDisplayMode releases all resources, switches the display mode and
// restores them.
func (d *Driver) SetDisplayMode(mode state.DisplayMode) error {
	if !d.released {
		d.game.ReleaseAll()
	}
	if err := d.renderer.ChangeDisplayMode(mode); err != nil {
		d.released = true
		return &FatalError{Msg: "error changing display mode", Err: err}
	}
	d.game.ResetAll()
	d.released = false
	return nil
}

// Release frees the game's device resources if they are live.
func (d *Driver) Release() {
	if d.released || !d.initialized {
		return
	}
	d.game.ReleaseAll()
	d.released = true
}

// Exit asks the host loop to stop after the current frame.
func (d *Driver) Exit() {
	d.done = true
}

// SetFrameTimes replaces the frame time source. Nil restores measured times.
func (d *Driver) SetFrameTimes(s FrameTimeSource) {
	d.frameTimes = s
}

// AddObserver registers o after construction.
func (d *Driver) AddObserver(o FrameObserver) {
	d.observers = append(d.observers, o)
}

func (d *Driver) Done() bool                     { return d.done }
func (d *Driver) FPS() float64                   { return d.fps }
func (d *Driver) FrameTime() float64             { return d.frameTime }
func (d *Driver) Frames() uint64                 { return d.frames }
func (d *Driver) Paused() bool                   { return d.paused }
func (d *Driver) SetPaused(p bool)               { d.paused = p }
func (d *Driver) DeviceState() state.DeviceState { return d.device }
func (d *Driver) Input() *input.Collector        { return d.input }
