package game

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/spacewar/internal/application/state"
	"github.com/younwookim/spacewar/internal/domain/input"
	"github.com/younwookim/spacewar/internal/infrastructure/config"
)

type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Sleep(d time.Duration)   { c.sleeps = append(c.sleeps, d) }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// calls is shared by the fakes so tests can check ordering.
type calls []string

func (c *calls) add(s string) { *c = append(*c, s) }

type fakeGame struct {
	log      *calls
	initErr  error
	updates  []float64
	onUpdate func()
	released int
	restored int
}

func (g *fakeGame) Initialize() error {
	g.log.add("game.init")
	return g.initErr
}

func (g *fakeGame) Update(frameTime float64) {
	g.log.add("update")
	g.updates = append(g.updates, frameTime)
	if g.onUpdate != nil {
		g.onUpdate()
	}
}

func (g *fakeGame) AI()         { g.log.add("ai") }
func (g *fakeGame) Collisions() { g.log.add("collisions") }
func (g *fakeGame) Render()     { g.log.add("render") }

func (g *fakeGame) ReleaseAll() {
	g.log.add("releaseAll")
	g.released++
}

func (g *fakeGame) ResetAll() {
	g.log.add("resetAll")
	g.restored++
}

type fakeRenderer struct {
	log        *calls
	initErr    error
	beginErr   error
	resetErr   error
	modeErr    error
	states     []state.DeviceState
	fullscreen bool
	modes      []state.DisplayMode
}

func (r *fakeRenderer) Initialize() error {
	r.log.add("renderer.init")
	return r.initErr
}

func (r *fakeRenderer) BeginScene() error {
	r.log.add("begin")
	return r.beginErr
}

func (r *fakeRenderer) EndScene() error {
	r.log.add("end")
	return nil
}

func (r *fakeRenderer) Present() error {
	r.log.add("present")
	return nil
}

// DeviceState pops the queued states and then repeats the last one.
func (r *fakeRenderer) DeviceState() state.DeviceState {
	if len(r.states) == 0 {
		return state.DeviceOK
	}
	st := r.states[0]
	if len(r.states) > 1 {
		r.states = r.states[1:]
	}
	return st
}

func (r *fakeRenderer) Reset() error {
	r.log.add("reset")
	return r.resetErr
}

func (r *fakeRenderer) ChangeDisplayMode(mode state.DisplayMode) error {
	r.log.add("changeMode")
	r.modes = append(r.modes, mode)
	if r.modeErr != nil {
		return r.modeErr
	}
	r.fullscreen = mode.Resolve(r.fullscreen)
	return nil
}

func (r *fakeRenderer) Fullscreen() bool { return r.fullscreen }

type fakeObserver struct {
	frames  []float64
	pressed []bool
	key     input.KeyCode
}

func (o *fakeObserver) FrameDone(frameTime float64, in *input.Collector) {
	o.frames = append(o.frames, frameTime)
	o.pressed = append(o.pressed, in.WasKeyPressed(o.key))
}

// queuedFrameTimes hands out times in order, then reports none.
type queuedFrameTimes struct {
	times []float64
}

func (q *queuedFrameTimes) FrameTime() (float64, bool) {
	if len(q.times) == 0 {
		return 0, false
	}
	ft := q.times[0]
	q.times = q.times[1:]
	return ft, true
}

type fixture struct {
	log      *calls
	clock    *fakeClock
	game     *fakeGame
	renderer *fakeRenderer
	input    *input.Collector
	driver   *Driver
}

func testTiming() config.TimingConfig {
	return config.TimingConfig{
		FrameRate:       200,
		MinFrameRate:    10,
		LostDeviceSleep: config.Duration{Duration: 100 * time.Millisecond},
	}
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	rec := &calls{}
	f := &fixture{
		log:      rec,
		clock:    newFakeClock(),
		game:     &fakeGame{log: rec},
		renderer: &fakeRenderer{log: rec},
		input:    input.NewCollector(),
	}
	opts = append([]Option{WithClock(f.clock), WithLogger(discardLogger())}, opts...)
	f.driver = NewDriver(f.game, f.renderer, f.input, testTiming(), config.DefaultSettings().Keys, opts...)
	return f
}

func (f *fixture) init(t *testing.T) {
	t.Helper()
	require.NoError(t, f.driver.Initialize())
	*f.log = nil
}

// frame advances the clock by d and runs once.
func (f *fixture) frame(t *testing.T, d time.Duration) {
	t.Helper()
	f.clock.Advance(d)
	require.NoError(t, f.driver.Run())
}

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestDriver_Initialize(t *testing.T) {
	t.Run("renderer before game", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.driver.Initialize())
		assert.Equal(t, calls{"renderer.init", "game.init"}, *f.log)
		assert.Equal(t, state.DeviceOK, f.driver.DeviceState())
	})

	t.Run("graphics failure is fatal", func(t *testing.T) {
		f := newFixture(t)
		boom := errors.New("no adapter")
		f.renderer.initErr = boom

		err := f.driver.Initialize()
		var fatal *FatalError
		require.ErrorAs(t, err, &fatal)
		assert.Equal(t, "error initializing graphics", fatal.Msg)
		assert.ErrorIs(t, err, boom)
		assert.NotContains(t, *f.log, "game.init")
	})

	t.Run("game failure is fatal", func(t *testing.T) {
		f := newFixture(t)
		f.game.initErr = errors.New("missing texture")

		err := f.driver.Initialize()
		var fatal *FatalError
		require.ErrorAs(t, err, &fatal)
		assert.Equal(t, "error initializing game", fatal.Msg)
	})

	t.Run("run before initialize", func(t *testing.T) {
		f := newFixture(t)
		assert.ErrorIs(t, f.driver.Run(), ErrNotInitialized)
	})
}

func TestDriver_FrameOrder(t *testing.T) {
	f := newFixture(t)
	f.init(t)

	f.frame(t, 10*time.Millisecond)

	assert.Equal(t, calls{"update", "ai", "collisions", "begin", "render", "end", "present"}, *f.log)
	require.Len(t, f.game.updates, 1)
	assert.InDelta(t, 0.01, f.game.updates[0], 1e-9)
	assert.InDelta(t, 0.01, f.driver.FrameTime(), 1e-9)
}

func TestDriver_EarlyFrameChangesNothing(t *testing.T) {
	f := newFixture(t)
	f.init(t)
	f.frame(t, 10*time.Millisecond)
	*f.log = nil

	f.input.KeyDown(input.KeyLeft)
	fps := f.driver.FPS()
	frameTime := f.driver.FrameTime()

	f.frame(t, 2*time.Millisecond)

	assert.Empty(t, *f.log, "no update, no render")
	require.Len(t, f.clock.sleeps, 1)
	assert.InDelta(t, float64(3*time.Millisecond), float64(f.clock.sleeps[0]), float64(time.Microsecond))
	assert.Equal(t, fps, f.driver.FPS())
	assert.Equal(t, frameTime, f.driver.FrameTime())
	assert.True(t, f.input.WasKeyPressed(input.KeyLeft), "pressed keys survive an early return")
	assert.Equal(t, uint64(1), f.driver.Frames())

	// the reference timestamp was not moved, so 4ms more completes a frame
	f.frame(t, 4*time.Millisecond)
	require.Len(t, f.game.updates, 2)
	assert.InDelta(t, 0.006, f.game.updates[1], 1e-9)
}

func TestDriver_ClampsFrameTime(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		want    float64
	}{
		{"below limit", 50 * time.Millisecond, 0.05},
		{"at limit", 100 * time.Millisecond, 0.1},
		{"long stall", 3 * time.Second, 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.init(t)
			f.frame(t, tt.elapsed)
			require.Len(t, f.game.updates, 1)
			assert.InDelta(t, tt.want, f.game.updates[0], 1e-9)
		})
	}
}

func TestDriver_FrameTimeSource(t *testing.T) {
	src := &queuedFrameTimes{times: []float64{0.033, 0.5}}
	f := newFixture(t, WithFrameTimes(src))
	f.init(t)

	f.frame(t, 2*time.Millisecond) // early, does not consume a time
	f.frame(t, 10*time.Millisecond)
	f.frame(t, 10*time.Millisecond)
	f.frame(t, 20*time.Millisecond)

	require.Len(t, f.game.updates, 3)
	assert.InDelta(t, 0.033, f.game.updates[0], 1e-9)
	assert.InDelta(t, 0.1, f.game.updates[1], 1e-9, "supplied times are clamped too")
	assert.InDelta(t, 0.02, f.game.updates[2], 1e-9, "measured time once the source runs dry")
	assert.InDelta(t, 0.02, f.driver.FrameTime(), 1e-9)

	f.driver.SetFrameTimes(&queuedFrameTimes{times: []float64{0.05}})
	f.frame(t, 10*time.Millisecond)
	assert.InDelta(t, 0.05, f.game.updates[3], 1e-9)
}

func TestDriver_FPSSmoothing(t *testing.T) {
	f := newFixture(t)
	f.init(t)
	start := f.driver.FPS()

	f.frame(t, 10*time.Millisecond)
	assert.InDelta(t, start*0.99+0.01/0.01, f.driver.FPS(), 1e-9)

	// the unclamped time feeds the average
	prev := f.driver.FPS()
	f.frame(t, time.Second)
	assert.InDelta(t, prev*0.99+0.01, f.driver.FPS(), 1e-9)
}

func TestDriver_Paused(t *testing.T) {
	f := newFixture(t)
	f.init(t)
	f.driver.SetPaused(true)

	f.frame(t, 10*time.Millisecond)

	assert.True(t, f.driver.Paused())
	assert.Empty(t, f.game.updates)
	assert.Equal(t, calls{"begin", "render", "end", "present"}, *f.log)
}

func TestDriver_PauseKey(t *testing.T) {
	f := newFixture(t)
	f.init(t)
	pause := input.KeyCode(config.DefaultSettings().Keys.Pause)

	f.input.KeyDown(pause)
	f.frame(t, 10*time.Millisecond)
	assert.True(t, f.driver.Paused())

	f.frame(t, 10*time.Millisecond)
	assert.True(t, f.driver.Paused(), "holding the key does not toggle again")

	f.input.KeyUp(pause)
	f.input.KeyDown(pause)
	f.frame(t, 10*time.Millisecond)
	assert.False(t, f.driver.Paused())
}

func TestDriver_BeginSceneFailureSkipsRender(t *testing.T) {
	f := newFixture(t)
	f.init(t)
	f.renderer.beginErr = errors.New("no device")

	f.frame(t, 10*time.Millisecond)

	assert.Equal(t, calls{"update", "ai", "collisions", "begin", "present"}, *f.log)
}

func TestDriver_LostDevice(t *testing.T) {
	f := newFixture(t)
	f.init(t)
	f.renderer.states = []state.DeviceState{state.DeviceLost}

	f.frame(t, 10*time.Millisecond)

	assert.Equal(t, calls{"update", "ai", "collisions", "begin", "render", "end"}, *f.log, "no present while lost")
	assert.Equal(t, []time.Duration{100 * time.Millisecond}, f.clock.sleeps)
	assert.Equal(t, state.DeviceLost, f.driver.DeviceState())
	assert.Equal(t, 0, f.game.released, "resources kept while lost")

	*f.log = nil
	f.frame(t, 10*time.Millisecond)
	assert.NotContains(t, *f.log, "update", "no simulation while the device is unusable")
}

func TestDriver_DeviceRecovery(t *testing.T) {
	f := newFixture(t)
	f.init(t)
	f.renderer.states = []state.DeviceState{state.DeviceLost, state.DeviceNotReset, state.DeviceOK}

	f.frame(t, 10*time.Millisecond) // lost
	*f.log = nil

	f.frame(t, 10*time.Millisecond) // not reset
	assert.Equal(t, calls{"begin", "render", "end", "releaseAll", "reset", "resetAll", "present"}, *f.log)
	assert.Equal(t, state.DeviceOK, f.driver.DeviceState())

	*f.log = nil
	f.frame(t, 10*time.Millisecond)
	assert.Equal(t, calls{"update", "ai", "collisions", "begin", "render", "end", "present"}, *f.log)
	assert.Equal(t, 1, f.game.released)
	assert.Equal(t, 1, f.game.restored)
}

func TestDriver_ResetFailureDoesNotReleaseTwice(t *testing.T) {
	f := newFixture(t)
	f.init(t)
	f.renderer.states = []state.DeviceState{state.DeviceNotReset}
	f.renderer.resetErr = errors.New("still busy")

	for i := 0; i < 3; i++ {
		f.frame(t, 10*time.Millisecond)
	}
	assert.Equal(t, 1, f.game.released)
	assert.Equal(t, 0, f.game.restored)
	assert.Equal(t, state.DeviceNotReset, f.driver.DeviceState())
	assert.NotContains(t, *f.log, "present")

	f.renderer.resetErr = nil
	f.frame(t, 10*time.Millisecond)
	assert.Equal(t, 1, f.game.released)
	assert.Equal(t, 1, f.game.restored)
	assert.Equal(t, state.DeviceOK, f.driver.DeviceState())
}

func TestDriver_Unrecoverable(t *testing.T) {
	f := newFixture(t)
	f.init(t)
	f.renderer.states = []state.DeviceState{state.DeviceUnrecoverable}

	f.frame(t, 10*time.Millisecond)

	assert.NotContains(t, *f.log, "present")
	assert.NotContains(t, *f.log, "reset")
	assert.Empty(t, f.clock.sleeps)
}

func TestDriver_AltEnterTogglesDisplayMode(t *testing.T) {
	f := newFixture(t)
	f.init(t)

	f.input.KeyDown(input.KeyAlt)
	f.input.KeyDown(input.KeyEnter)
	f.frame(t, 10*time.Millisecond)

	assert.Equal(t, []state.DisplayMode{state.DisplayToggle}, f.renderer.modes)
	assert.Equal(t, calls{"update", "ai", "collisions", "begin", "render", "end", "present", "releaseAll", "changeMode", "resetAll"}, *f.log)
	assert.True(t, f.renderer.fullscreen)

	// Enter is still held but no longer pressed
	f.frame(t, 10*time.Millisecond)
	assert.Len(t, f.renderer.modes, 1)
}

func TestDriver_EnterWithoutAlt(t *testing.T) {
	f := newFixture(t)
	f.init(t)

	f.input.KeyDown(input.KeyEnter)
	f.frame(t, 10*time.Millisecond)
	assert.Empty(t, f.renderer.modes)
}

func TestDriver_EscapeLeavesFullscreen(t *testing.T) {
	t.Run("windowed is left alone", func(t *testing.T) {
		f := newFixture(t)
		f.init(t)
		f.input.KeyDown(input.KeyEscape)
		f.frame(t, 10*time.Millisecond)
		f.frame(t, 10*time.Millisecond)
		assert.Empty(t, f.renderer.modes)
		assert.Equal(t, 0, f.game.released)
	})

	t.Run("fullscreen switches to window", func(t *testing.T) {
		f := newFixture(t)
		f.init(t)
		f.renderer.fullscreen = true
		f.input.KeyDown(input.KeyEscape)

		f.frame(t, 10*time.Millisecond)
		f.frame(t, 10*time.Millisecond)

		assert.Equal(t, []state.DisplayMode{state.DisplayWindow}, f.renderer.modes)
		assert.False(t, f.renderer.fullscreen)
	})
}

func TestDriver_DisplayModeFailureIsFatal(t *testing.T) {
	f := newFixture(t)
	f.init(t)
	f.renderer.modeErr = errors.New("mode not supported")

	f.input.KeyDown(input.KeyAlt)
	f.input.KeyDown(input.KeyEnter)
	f.clock.Advance(10 * time.Millisecond)
	err := f.driver.Run()

	var fatal *FatalError
	require.ErrorAs(t, err, &fatal)
	assert.Equal(t, 1, f.game.released)
	assert.Equal(t, 0, f.game.restored)
}

func TestDriver_PressedClearedOncePerFrame(t *testing.T) {
	obs := &fakeObserver{key: input.KeyLeft}
	f := newFixture(t, WithObserver(obs))
	f.init(t)

	var seenInUpdate []bool
	f.game.onUpdate = func() {
		seenInUpdate = append(seenInUpdate, f.input.WasKeyPressed(input.KeyLeft))
	}

	// key 37 goes down between frames and stays down
	f.input.KeyDown(37)
	f.frame(t, 10*time.Millisecond)
	f.frame(t, 10*time.Millisecond)

	assert.Equal(t, []bool{true, false}, seenInUpdate)
	assert.Equal(t, []bool{true, false}, obs.pressed, "observers see the frame's pressed keys")
	assert.True(t, f.input.IsKeyDown(37))
	assert.False(t, f.input.WasKeyPressed(37))
	assert.Len(t, obs.frames, 2)
}

func TestDriver_ExitAndRelease(t *testing.T) {
	f := newFixture(t)
	f.init(t)

	f.driver.Exit()
	assert.True(t, f.driver.Done())
	f.frame(t, 10*time.Millisecond)
	assert.Empty(t, *f.log, "no frames after exit")

	f.driver.Release()
	f.driver.Release()
	assert.Equal(t, 1, f.game.released)
}

func TestFatalError(t *testing.T) {
	inner := errors.New("file not found")
	err := &FatalError{Msg: "error initializing game", Err: inner}
	assert.Equal(t, "error initializing game: file not found", err.Error())
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "plain", (&FatalError{Msg: "plain"}).Error())
}
