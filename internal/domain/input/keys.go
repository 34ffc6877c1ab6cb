package input

// KeyCode is a virtual key code. Only codes below KeysArrayLen are tracked.
type KeyCode uint16

// KeysArrayLen is the size of the key tables.
const KeysArrayLen = 256

// Virtual key codes used by the engine and the demo.
const (
	KeyBackspace KeyCode = 0x08
	KeyTab       KeyCode = 0x09
	KeyEnter     KeyCode = 0x0D
	KeyShift     KeyCode = 0x10
	KeyControl   KeyCode = 0x11
	KeyAlt       KeyCode = 0x12
	KeyPause     KeyCode = 0x13
	KeyEscape    KeyCode = 0x1B
	KeySpace     KeyCode = 0x20
	KeyPageUp    KeyCode = 0x21
	KeyPageDown  KeyCode = 0x22
	KeyEnd       KeyCode = 0x23
	KeyHome      KeyCode = 0x24
	KeyLeft      KeyCode = 0x25
	KeyUp        KeyCode = 0x26
	KeyRight     KeyCode = 0x27
	KeyDown      KeyCode = 0x28
	KeyInsert    KeyCode = 0x2D
	KeyDelete    KeyCode = 0x2E
	Key0         KeyCode = 0x30
	KeyA         KeyCode = 0x41
	KeyF1        KeyCode = 0x70
	KeyF12       KeyCode = 0x7B
	KeyLShift    KeyCode = 0xA0
	KeyRShift    KeyCode = 0xA1
	KeyLControl  KeyCode = 0xA2
	KeyRControl  KeyCode = 0xA3
	KeyLAlt      KeyCode = 0xA4
	KeyRAlt      KeyCode = 0xA5
)

// Valid reports whether k indexes the key tables.
func (k KeyCode) Valid() bool {
	return k < KeysArrayLen
}

// Letter returns the key code of an upper-case ASCII letter, A..Z.
func Letter(r rune) KeyCode {
	if r < 'A' || r > 'Z' {
		return KeysArrayLen
	}
	return KeyA + KeyCode(r-'A')
}

// Digit returns the key code of a digit key, 0..9.
func Digit(d int) KeyCode {
	if d < 0 || d > 9 {
		return KeysArrayLen
	}
	return Key0 + KeyCode(d)
}

// Function returns the key code of F1..F12.
func Function(n int) KeyCode {
	if n < 1 || n > 12 {
		return KeysArrayLen
	}
	return KeyF1 + KeyCode(n-1)
}
