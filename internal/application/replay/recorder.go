package replay

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/younwookim/spacewar/internal/domain/input"
)

var ErrNoFrames = errors.New("no frames to save")

// Recorder captures the input of every completed frame.
// It is registered with the frame driver as a frame observer.
type Recorder struct {
	data      ReplayData
	recording bool
	frame     int
}

// NewRecorder creates a new recorder with a fresh session ID
func NewRecorder(frameRate float64) *Recorder {
	return &Recorder{
		data: ReplayData{
			Version:   Version,
			Session:   uuid.NewString(),
			StartTime: time.Now().Format(time.RFC3339),
			FrameRate: frameRate,
			Frames:    make([]FrameInput, 0, 3600),
		},
		recording: true,
	}
}

// FrameDone records a single frame's input
func (r *Recorder) FrameDone(frameTime float64, in *input.Collector) {
	if !r.recording {
		return
	}

	fi := FrameInput{
		F:       r.frame,
		DT:      frameTime,
		Down:    keyCodes(in.DownKeys()),
		Pressed: keyCodes(in.PressedKeys()),
		MX:      in.MouseX(),
		MY:      in.MouseY(),
	}
	for i, b := range recordedButtons {
		if in.MouseButton(b) {
			fi.MB |= 1 << i
		}
	}

	r.data.Frames = append(r.data.Frames, fi)
	r.frame++
}

// Save writes the replay data to a file
func (r *Recorder) Save(filename string) error {
	if len(r.data.Frames) == 0 {
		return ErrNoFrames
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r.data); err != nil {
		return fmt.Errorf("failed to encode replay: %w", err)
	}

	return nil
}

// Stop stops recording
func (r *Recorder) Stop() {
	r.recording = false
}

// IsRecording returns whether recording is active
func (r *Recorder) IsRecording() bool {
	return r.recording
}

// FrameCount returns the number of recorded frames
func (r *Recorder) FrameCount() int {
	return len(r.data.Frames)
}

// Session returns the session ID
func (r *Recorder) Session() string {
	return r.data.Session
}

// GetData returns the replay data (for testing)
func (r *Recorder) GetData() ReplayData {
	return r.data
}

// GenerateFilename creates a filename based on current time
func GenerateFilename() string {
	return fmt.Sprintf("replay_%s.json", time.Now().Format("20060102_150405"))
}
