package replay

import "github.com/younwookim/spacewar/internal/domain/input"

const Version = "2.0"

// FrameInput records the collector state for a single completed frame
type FrameInput struct {
	F       int      `json:"f"`            // Frame number
	DT      float64  `json:"dt"`           // Frame time in seconds
	Down    []uint16 `json:"d,omitempty"`  // Held key codes
	Pressed []uint16 `json:"p,omitempty"`  // Key codes pressed this frame
	MX      int      `json:"mx"`           // MouseX
	MY      int      `json:"my"`           // MouseY
	MB      uint8    `json:"mb,omitempty"` // Mouse button bits, left first
}

// ReplayData contains all data needed to replay a game session
type ReplayData struct {
	Version   string       `json:"version"`
	Session   string       `json:"session"`
	StartTime string       `json:"startTime"`
	FrameRate float64      `json:"frameRate"`
	Frames    []FrameInput `json:"frames"`
}

var recordedButtons = [...]input.MouseButton{
	input.MouseLeft, input.MouseMiddle, input.MouseRight, input.MouseX1, input.MouseX2,
}

func keyCodes(keys []input.KeyCode) []uint16 {
	if len(keys) == 0 {
		return nil
	}
	out := make([]uint16, len(keys))
	for i, k := range keys {
		out[i] = uint16(k)
	}
	return out
}
