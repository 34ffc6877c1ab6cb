// Package input collects host keyboard, mouse and controller events into
// level state that the frame driver samples once per frame.
//
// "Down" is held state and persists until a key-up arrives. "Pressed" is set
// on key-down and stays set until the frame driver clears it at the end of a
// completed frame, so every press is observed by exactly one frame.
package input

import "strings"

// ClearFlags selects which buffers Clear resets.
type ClearFlags uint8

const (
	ClearKeysDown ClearFlags = 1 << iota
	ClearKeysPressed
	ClearMouse
	ClearTextIn

	ClearAll = ClearKeysDown | ClearKeysPressed | ClearMouse | ClearTextIn
)

// MouseButton identifies a mouse button.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseMiddle
	MouseRight
	MouseX1
	MouseX2
	mouseButtonCount
)

// Collector is the frame-scoped input snapshot.
type Collector struct {
	keysDown    [KeysArrayLen]bool
	keysPressed [KeysArrayLen]bool

	textIn  strings.Builder
	charIn  rune
	newLine bool

	mouseX, mouseY       int
	mouseRawX, mouseRawY int
	mouseWheel           float64
	mouseButtons         [mouseButtonCount]bool

	controllers [MaxControllers]ControllerState
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{newLine: true}
}

// KeyDown records a key-down event.
func (c *Collector) KeyDown(k KeyCode) {
	if !k.Valid() {
		return
	}
	c.keysDown[k] = true
	c.keysPressed[k] = true
}

// KeyUp records a key-up event. The pressed state is left alone.
func (c *Collector) KeyUp(k KeyCode) {
	if !k.Valid() {
		return
	}
	c.keysDown[k] = false
}

// KeyIn appends a typed character to the text buffer.
// Backspace removes the last character; a carriage return ends the line, and
// the next character starts a fresh one.
func (c *Collector) KeyIn(r rune) {
	if c.newLine {
		c.textIn.Reset()
		c.newLine = false
	}

	if r == '\b' {
		s := []rune(c.textIn.String())
		if len(s) > 0 {
			c.textIn.Reset()
			c.textIn.WriteString(string(s[:len(s)-1]))
		}
	} else {
		c.textIn.WriteRune(r)
		c.charIn = r
	}

	if r == '\r' {
		c.newLine = true
	}
}

// IsKeyDown reports whether k is held.
func (c *Collector) IsKeyDown(k KeyCode) bool {
	if !k.Valid() {
		return false
	}
	return c.keysDown[k]
}

// WasKeyPressed reports whether k went down since the last completed frame.
func (c *Collector) WasKeyPressed(k KeyCode) bool {
	if !k.Valid() {
		return false
	}
	return c.keysPressed[k]
}

// AnyKeyPressed reports whether any key went down since the last completed frame.
func (c *Collector) AnyKeyPressed() bool {
	for _, p := range c.keysPressed {
		if p {
			return true
		}
	}
	return false
}

// ClearKeyPress forgets a single press.
func (c *Collector) ClearKeyPress(k KeyCode) {
	if !k.Valid() {
		return
	}
	c.keysPressed[k] = false
}

// Clear resets the buffers selected by what.
func (c *Collector) Clear(what ClearFlags) {
	if what&ClearKeysDown != 0 {
		c.keysDown = [KeysArrayLen]bool{}
	}
	if what&ClearKeysPressed != 0 {
		c.keysPressed = [KeysArrayLen]bool{}
	}
	if what&ClearMouse != 0 {
		c.mouseX, c.mouseY = 0, 0
		c.mouseRawX, c.mouseRawY = 0, 0
		c.mouseWheel = 0
	}
	if what&ClearTextIn != 0 {
		c.ClearTextIn()
	}
}

// ClearPressed forgets every press. Called once per completed frame.
func (c *Collector) ClearPressed() {
	c.Clear(ClearKeysPressed)
}

// ClearTextIn empties the text buffer.
func (c *Collector) ClearTextIn() {
	c.textIn.Reset()
}

// TextIn returns the text typed on the current line.
func (c *Collector) TextIn() string {
	return c.textIn.String()
}

// CharIn returns the last character typed.
func (c *Collector) CharIn() rune {
	return c.charIn
}

// DownKeys returns the codes of every held key in ascending order.
func (c *Collector) DownKeys() []KeyCode {
	return collect(&c.keysDown)
}

// PressedKeys returns the codes of every pressed key in ascending order.
func (c *Collector) PressedKeys() []KeyCode {
	return collect(&c.keysPressed)
}

func collect(table *[KeysArrayLen]bool) []KeyCode {
	var keys []KeyCode
	for i, v := range table {
		if v {
			keys = append(keys, KeyCode(i))
		}
	}
	return keys
}

// MouseIn records the cursor position in window coordinates.
func (c *Collector) MouseIn(x, y int) {
	c.mouseX, c.mouseY = x, y
}

// MouseRawIn records relative mouse motion since the previous sample.
func (c *Collector) MouseRawIn(dx, dy int) {
	c.mouseRawX, c.mouseRawY = dx, dy
}

// MouseWheelIn records vertical wheel movement.
func (c *Collector) MouseWheelIn(dy float64) {
	c.mouseWheel = dy
}

// SetMouseButton records a button state. Unknown buttons are ignored.
func (c *Collector) SetMouseButton(b MouseButton, down bool) {
	if b < 0 || b >= mouseButtonCount {
		return
	}
	c.mouseButtons[b] = down
}

// MouseButton reports whether b is held.
func (c *Collector) MouseButton(b MouseButton) bool {
	if b < 0 || b >= mouseButtonCount {
		return false
	}
	return c.mouseButtons[b]
}

func (c *Collector) MouseX() int         { return c.mouseX }
func (c *Collector) MouseY() int         { return c.mouseY }
func (c *Collector) MouseRawX() int      { return c.mouseRawX }
func (c *Collector) MouseRawY() int      { return c.mouseRawY }
func (c *Collector) MouseWheel() float64 { return c.mouseWheel }

// SetController stores the state of controller n. Out-of-range slots are ignored.
func (c *Collector) SetController(n int, s ControllerState) {
	if n < 0 || n >= MaxControllers {
		return
	}
	c.controllers[n] = s
}

// Controller returns the state of controller n, clamped to the last slot.
func (c *Collector) Controller(n int) ControllerState {
	return c.controllers[clampController(n)]
}

// GamepadButtons returns the button bits of controller n.
func (c *Collector) GamepadButtons(n int) uint16 {
	return c.Controller(n).Buttons
}

func (c *Collector) GamepadDPadUp(n int) bool    { return c.Controller(n).Pressed(GamepadDPadUp) }
func (c *Collector) GamepadDPadDown(n int) bool  { return c.Controller(n).Pressed(GamepadDPadDown) }
func (c *Collector) GamepadDPadLeft(n int) bool  { return c.Controller(n).Pressed(GamepadDPadLeft) }
func (c *Collector) GamepadDPadRight(n int) bool { return c.Controller(n).Pressed(GamepadDPadRight) }
func (c *Collector) GamepadStart(n int) bool     { return c.Controller(n).Pressed(GamepadStart) }
func (c *Collector) GamepadBack(n int) bool      { return c.Controller(n).Pressed(GamepadBack) }
func (c *Collector) GamepadA(n int) bool         { return c.Controller(n).Pressed(GamepadA) }
func (c *Collector) GamepadB(n int) bool         { return c.Controller(n).Pressed(GamepadB) }
func (c *Collector) GamepadX(n int) bool         { return c.Controller(n).Pressed(GamepadX) }
func (c *Collector) GamepadY(n int) bool         { return c.Controller(n).Pressed(GamepadY) }
