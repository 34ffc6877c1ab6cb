package input

// MaxControllers is the number of controller slots.
const MaxControllers = 4

// Dead zones applied by whoever fills ControllerState.
const (
	ThumbstickDeadzone int16 = 6553 // 20% of 0x7FFF
	TriggerDeadzone    uint8 = 30   // trigger range 0-255
)

// Gamepad button bits in ControllerState.Buttons.
const (
	GamepadDPadUp        uint16 = 0x0001
	GamepadDPadDown      uint16 = 0x0002
	GamepadDPadLeft      uint16 = 0x0004
	GamepadDPadRight     uint16 = 0x0008
	GamepadStart         uint16 = 0x0010
	GamepadBack          uint16 = 0x0020
	GamepadLeftThumb     uint16 = 0x0040
	GamepadRightThumb    uint16 = 0x0080
	GamepadLeftShoulder  uint16 = 0x0100
	GamepadRightShoulder uint16 = 0x0200
	GamepadA             uint16 = 0x1000
	GamepadB             uint16 = 0x2000
	GamepadX             uint16 = 0x4000
	GamepadY             uint16 = 0x8000
)

// ControllerState is one controller's sampled state.
type ControllerState struct {
	Connected    bool
	Buttons      uint16
	LeftTrigger  uint8
	RightTrigger uint8
	ThumbLX      int16
	ThumbLY      int16
	ThumbRX      int16
	ThumbRY      int16
}

// Pressed reports whether every bit in mask is set.
func (s ControllerState) Pressed(mask uint16) bool {
	return s.Buttons&mask == mask
}

// ApplyDeadzone zeroes stick and trigger values inside the dead zones.
func (s ControllerState) ApplyDeadzone() ControllerState {
	stick := func(v int16) int16 {
		if v > -ThumbstickDeadzone && v < ThumbstickDeadzone {
			return 0
		}
		return v
	}
	trigger := func(v uint8) uint8 {
		if v < TriggerDeadzone {
			return 0
		}
		return v
	}
	s.ThumbLX, s.ThumbLY = stick(s.ThumbLX), stick(s.ThumbLY)
	s.ThumbRX, s.ThumbRY = stick(s.ThumbRX), stick(s.ThumbRY)
	s.LeftTrigger, s.RightTrigger = trigger(s.LeftTrigger), trigger(s.RightTrigger)
	return s
}

func clampController(n int) int {
	if n < 0 {
		return 0
	}
	if n > MaxControllers-1 {
		return MaxControllers - 1
	}
	return n
}
