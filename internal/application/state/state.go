// Package state holds the enumerations the frame driver steers by.
package state

// DeviceState is the graphics device health reported by the render backend.
// It is polled once per frame after rendering.
type DeviceState int

const (
	// DeviceOK means the device responds normally.
	DeviceOK DeviceState = iota
	// DeviceLost means the device exists but cannot be used right now
	// (display mode change, fullscreen focus loss). It is not yet resettable.
	DeviceLost
	// DeviceNotReset means the device can be reset.
	DeviceNotReset
	// DeviceUnrecoverable covers every other failure, including a missing device.
	DeviceUnrecoverable
)

// String returns the string representation of the device state
func (s DeviceState) String() string {
	switch s {
	case DeviceOK:
		return "OK"
	case DeviceLost:
		return "Lost"
	case DeviceNotReset:
		return "NotReset"
	case DeviceUnrecoverable:
		return "Unrecoverable"
	default:
		return "Unknown"
	}
}

// Usable reports whether resources may be touched in this state.
func (s DeviceState) Usable() bool {
	return s == DeviceOK
}

// DisplayMode selects how ChangeDisplayMode reconfigures the device.
type DisplayMode int

const (
	DisplayToggle DisplayMode = iota
	DisplayFullscreen
	DisplayWindow
)

// String returns the string representation of the display mode
func (m DisplayMode) String() string {
	switch m {
	case DisplayToggle:
		return "Toggle"
	case DisplayFullscreen:
		return "Fullscreen"
	case DisplayWindow:
		return "Window"
	default:
		return "Unknown"
	}
}

// Resolve returns the fullscreen flag the mode produces given the current one.
func (m DisplayMode) Resolve(fullscreen bool) bool {
	switch m {
	case DisplayFullscreen:
		return true
	case DisplayWindow:
		return false
	default:
		return !fullscreen
	}
}
