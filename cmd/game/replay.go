package main

import (
	"github.com/charmbracelet/log"

	"github.com/younwookim/spacewar/internal/application/game"
	"github.com/younwookim/spacewar/internal/application/replay"
)

// session decides where input comes from and what happens to it
// afterwards: live input, live input that is recorded, or a replay.
type session struct {
	source   game.InputSource
	recorder *replay.Recorder
	filename string
	logger   *log.Logger
}

type driver interface {
	AddObserver(o game.FrameObserver)
	SetFrameTimes(s game.FrameTimeSource)
	Exit()
}

func newSession(opts options, d driver, live game.InputSource, frameRate float64, logger *log.Logger) (*session, error) {
	s := &session{source: live, logger: logger}

	switch {
	case opts.replay != "":
		data, err := replay.LoadReplay(opts.replay)
		if err != nil {
			return nil, err
		}
		r := replay.NewReplayer(*data)
		r.OnFinish(d.Exit)
		d.AddObserver(r)
		d.SetFrameTimes(r)
		s.source = r
		logger.Info("replaying", "file", opts.replay, "session", r.Session(), "frames", r.TotalFrames())

	case opts.record != "":
		s.recorder = replay.NewRecorder(frameRate)
		s.filename = opts.record
		d.AddObserver(s.recorder)
		logger.Info("recording enabled", "file", opts.record, "session", s.recorder.Session())
	}
	return s, nil
}

// finish saves the recording, if any.
func (s *session) finish() {
	if s.recorder == nil {
		return
	}
	s.recorder.Stop()

	filename := s.filename
	if filename == "" {
		filename = replay.GenerateFilename()
	}
	if err := s.recorder.Save(filename); err != nil {
		s.logger.Error("failed to save recording", "err", err)
		return
	}
	s.logger.Info("recording saved", "file", filename, "frames", s.recorder.FrameCount())
}
