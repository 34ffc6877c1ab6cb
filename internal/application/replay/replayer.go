package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/younwookim/spacewar/internal/domain/input"
)

// Replayer feeds recorded frames into the collector in place of live input.
// Pump applies the current frame; FrameDone moves to the next one, so a
// tick the driver skips replays the same frame again.
type Replayer struct {
	data     ReplayData
	frame    int
	onFinish func()
}

// NewReplayer creates a new replayer from replay data
func NewReplayer(data ReplayData) *Replayer {
	return &Replayer{
		data:  data,
		frame: 0,
	}
}

// LoadReplay loads replay data from a file
func LoadReplay(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var data ReplayData
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}

	return &data, nil
}

// OnFinish sets a callback run once after the last frame.
func (r *Replayer) OnFinish(fn func()) {
	r.onFinish = fn
}

// Pump makes the collector hold exactly the current frame's input.
func (r *Replayer) Pump(in *input.Collector) {
	if r.Finished() {
		return
	}
	fi := r.data.Frames[r.frame]

	in.Clear(input.ClearKeysDown | input.ClearKeysPressed | input.ClearMouse)
	for _, k := range fi.Pressed {
		in.KeyDown(input.KeyCode(k))
		if !slices.Contains(fi.Down, k) {
			in.KeyUp(input.KeyCode(k))
		}
	}
	for _, k := range fi.Down {
		if !slices.Contains(fi.Pressed, k) {
			in.KeyDown(input.KeyCode(k))
			in.ClearKeyPress(input.KeyCode(k))
		}
	}

	in.MouseIn(fi.MX, fi.MY)
	for i, b := range recordedButtons {
		in.SetMouseButton(b, fi.MB&(1<<i) != 0)
	}
}

// FrameDone advances to the next recorded frame.
func (r *Replayer) FrameDone(_ float64, _ *input.Collector) {
	if r.Finished() {
		return
	}
	r.frame++
	if r.Finished() && r.onFinish != nil {
		r.onFinish()
	}
}

// FrameTime returns the recorded frame time of the current frame, so the
// replayed run steps exactly like the recorded one.
func (r *Replayer) FrameTime() (float64, bool) {
	if r.Finished() {
		return 0, false
	}
	dt := r.data.Frames[r.frame].DT
	return dt, dt > 0
}

// Finished reports whether every frame has been replayed.
func (r *Replayer) Finished() bool {
	return r.frame >= len(r.data.Frames)
}

// CurrentFrame returns the current frame number
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the total number of frames
func (r *Replayer) TotalFrames() int {
	return len(r.data.Frames)
}

// Session returns the recorded session ID
func (r *Replayer) Session() string {
	return r.data.Session
}

// Reset resets the replayer to the beginning
func (r *Replayer) Reset() {
	r.frame = 0
}

// CreateTestReplayData creates replay data for testing (idle input)
func CreateTestReplayData(frames int, mouseX, mouseY int) ReplayData {
	data := ReplayData{
		Version:   Version,
		Session:   "test",
		StartTime: time.Now().Format(time.RFC3339),
		FrameRate: 200,
		Frames:    make([]FrameInput, frames),
	}

	for i := 0; i < frames; i++ {
		data.Frames[i] = FrameInput{
			F:  i,
			MX: mouseX,
			MY: mouseY,
		}
	}

	return data
}
