package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/spacewar/internal/domain/input"
)

// keyCodes maps ebiten keys to virtual key codes.
var keyCodes = func() map[ebiten.Key]input.KeyCode {
	m := map[ebiten.Key]input.KeyCode{
		ebiten.KeyBackspace:    input.KeyBackspace,
		ebiten.KeyTab:          input.KeyTab,
		ebiten.KeyEnter:        input.KeyEnter,
		ebiten.KeyShift:        input.KeyShift,
		ebiten.KeyControl:      input.KeyControl,
		ebiten.KeyAlt:          input.KeyAlt,
		ebiten.KeyPause:        input.KeyPause,
		ebiten.KeyEscape:       input.KeyEscape,
		ebiten.KeySpace:        input.KeySpace,
		ebiten.KeyPageUp:       input.KeyPageUp,
		ebiten.KeyPageDown:     input.KeyPageDown,
		ebiten.KeyEnd:          input.KeyEnd,
		ebiten.KeyHome:         input.KeyHome,
		ebiten.KeyArrowLeft:    input.KeyLeft,
		ebiten.KeyArrowUp:      input.KeyUp,
		ebiten.KeyArrowRight:   input.KeyRight,
		ebiten.KeyArrowDown:    input.KeyDown,
		ebiten.KeyInsert:       input.KeyInsert,
		ebiten.KeyDelete:       input.KeyDelete,
		ebiten.KeyShiftLeft:    input.KeyLShift,
		ebiten.KeyShiftRight:   input.KeyRShift,
		ebiten.KeyControlLeft:  input.KeyLControl,
		ebiten.KeyControlRight: input.KeyRControl,
		ebiten.KeyAltLeft:      input.KeyLAlt,
		ebiten.KeyAltRight:     input.KeyRAlt,
	}
	for i := 0; i < 26; i++ {
		m[ebiten.KeyA+ebiten.Key(i)] = input.Letter(rune('A' + i))
	}
	for i := 0; i < 10; i++ {
		m[ebiten.KeyDigit0+ebiten.Key(i)] = input.Digit(i)
	}
	for i := 0; i < 12; i++ {
		m[ebiten.KeyF1+ebiten.Key(i)] = input.Function(i + 1)
	}
	return m
}()

// KeyCode returns the virtual key code for an ebiten key.
func KeyCode(k ebiten.Key) (input.KeyCode, bool) {
	c, ok := keyCodes[k]
	return c, ok
}

var mouseButtons = [...]struct {
	from ebiten.MouseButton
	to   input.MouseButton
}{
	{ebiten.MouseButtonLeft, input.MouseLeft},
	{ebiten.MouseButtonMiddle, input.MouseMiddle},
	{ebiten.MouseButtonRight, input.MouseRight},
	{ebiten.MouseButton3, input.MouseX1},
	{ebiten.MouseButton4, input.MouseX2},
}

var gamepadButtons = [...]struct {
	from ebiten.StandardGamepadButton
	to   uint16
}{
	{ebiten.StandardGamepadButtonLeftTop, input.GamepadDPadUp},
	{ebiten.StandardGamepadButtonLeftBottom, input.GamepadDPadDown},
	{ebiten.StandardGamepadButtonLeftLeft, input.GamepadDPadLeft},
	{ebiten.StandardGamepadButtonLeftRight, input.GamepadDPadRight},
	{ebiten.StandardGamepadButtonCenterRight, input.GamepadStart},
	{ebiten.StandardGamepadButtonCenterLeft, input.GamepadBack},
	{ebiten.StandardGamepadButtonLeftStick, input.GamepadLeftThumb},
	{ebiten.StandardGamepadButtonRightStick, input.GamepadRightThumb},
	{ebiten.StandardGamepadButtonFrontTopLeft, input.GamepadLeftShoulder},
	{ebiten.StandardGamepadButtonFrontTopRight, input.GamepadRightShoulder},
	{ebiten.StandardGamepadButtonRightBottom, input.GamepadA},
	{ebiten.StandardGamepadButtonRightRight, input.GamepadB},
	{ebiten.StandardGamepadButtonRightLeft, input.GamepadX},
	{ebiten.StandardGamepadButtonRightTop, input.GamepadY},
}

// InputSystem translates ebiten's polled input into collector events.
type InputSystem struct {
	keys     []ebiten.Key
	chars    []rune
	gamepads []ebiten.GamepadID

	cursorX, cursorY int
	hasCursor        bool
}

// NewInputSystem creates a new input system
func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

// Pump feeds this tick's input into in.
func (s *InputSystem) Pump(in *input.Collector) {
	s.keys = inpututil.AppendJustPressedKeys(s.keys[:0])
	applyKeyDowns(in, s.keys)
	s.keys = inpututil.AppendJustReleasedKeys(s.keys[:0])
	applyKeyUps(in, s.keys)

	s.chars = ebiten.AppendInputChars(s.chars[:0])
	applyText(in, s.chars,
		inpututil.IsKeyJustPressed(ebiten.KeyBackspace),
		inpututil.IsKeyJustPressed(ebiten.KeyEnter))

	x, y := ebiten.CursorPosition()
	s.applyCursor(in, x, y)
	_, wheel := ebiten.Wheel()
	in.MouseWheelIn(wheel)
	for _, b := range mouseButtons {
		in.SetMouseButton(b.to, ebiten.IsMouseButtonPressed(b.from))
	}

	s.pumpControllers(in)
}

// modifierSide maps a left or right modifier to its generic code and the
// opposite side. ebiten only reports the physical keys as pressed and
// released, so the generic Shift, Control and Alt codes are derived here.
func modifierSide(c input.KeyCode) (generic, other input.KeyCode, ok bool) {
	switch c {
	case input.KeyLShift:
		return input.KeyShift, input.KeyRShift, true
	case input.KeyRShift:
		return input.KeyShift, input.KeyLShift, true
	case input.KeyLControl:
		return input.KeyControl, input.KeyRControl, true
	case input.KeyRControl:
		return input.KeyControl, input.KeyLControl, true
	case input.KeyLAlt:
		return input.KeyAlt, input.KeyRAlt, true
	case input.KeyRAlt:
		return input.KeyAlt, input.KeyLAlt, true
	}
	return 0, 0, false
}

func applyKeyDowns(in *input.Collector, keys []ebiten.Key) {
	for _, k := range keys {
		c, ok := KeyCode(k)
		if !ok {
			continue
		}
		in.KeyDown(c)
		if generic, _, ok := modifierSide(c); ok && !in.IsKeyDown(generic) {
			in.KeyDown(generic)
		}
	}
}

// applyKeyUps releases keys. A generic modifier stays down while the
// other side is still held.
func applyKeyUps(in *input.Collector, keys []ebiten.Key) {
	for _, k := range keys {
		c, ok := KeyCode(k)
		if !ok {
			continue
		}
		in.KeyUp(c)
		if generic, other, ok := modifierSide(c); ok && !in.IsKeyDown(other) {
			in.KeyUp(generic)
		}
	}
}

// applyText forwards typed characters. ebiten reports printable runes
// only, so backspace and enter are injected from their key presses.
func applyText(in *input.Collector, chars []rune, backspace, enter bool) {
	for _, r := range chars {
		in.KeyIn(r)
	}
	if backspace {
		in.KeyIn('\b')
	}
	if enter {
		in.KeyIn('\r')
	}
}

func (s *InputSystem) applyCursor(in *input.Collector, x, y int) {
	if s.hasCursor {
		in.MouseRawIn(x-s.cursorX, y-s.cursorY)
	}
	s.cursorX, s.cursorY = x, y
	s.hasCursor = true
	in.MouseIn(x, y)
}

func (s *InputSystem) pumpControllers(in *input.Collector) {
	s.gamepads = ebiten.AppendGamepadIDs(s.gamepads[:0])
	for n := 0; n < input.MaxControllers; n++ {
		if n >= len(s.gamepads) || !ebiten.IsStandardGamepadLayoutAvailable(s.gamepads[n]) {
			in.SetController(n, input.ControllerState{})
			continue
		}
		id := s.gamepads[n]
		in.SetController(n, controllerState(
			func(b ebiten.StandardGamepadButton) float64 { return ebiten.StandardGamepadButtonValue(id, b) },
			func(a ebiten.StandardGamepadAxis) float64 { return ebiten.StandardGamepadAxisValue(id, a) },
		))
	}
}

// controllerState samples one standard-layout gamepad. Axis values are in
// [-1, 1] with +y down; the state uses +y up like XInput.
func controllerState(button func(ebiten.StandardGamepadButton) float64, axis func(ebiten.StandardGamepadAxis) float64) input.ControllerState {
	st := input.ControllerState{Connected: true}
	for _, b := range gamepadButtons {
		if button(b.from) > 0.5 {
			st.Buttons |= b.to
		}
	}
	st.LeftTrigger = triggerValue(button(ebiten.StandardGamepadButtonFrontBottomLeft))
	st.RightTrigger = triggerValue(button(ebiten.StandardGamepadButtonFrontBottomRight))
	st.ThumbLX = stickValue(axis(ebiten.StandardGamepadAxisLeftStickHorizontal))
	st.ThumbLY = stickValue(-axis(ebiten.StandardGamepadAxisLeftStickVertical))
	st.ThumbRX = stickValue(axis(ebiten.StandardGamepadAxisRightStickHorizontal))
	st.ThumbRY = stickValue(-axis(ebiten.StandardGamepadAxisRightStickVertical))
	return st.ApplyDeadzone()
}

func triggerValue(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * math.MaxUint8))
}

func stickValue(v float64) int16 {
	return int16(math.Round(math.Max(-1, math.Min(1, v)) * math.MaxInt16))
}
