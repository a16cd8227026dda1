// Package audio plays the background track. The game only signals start and
// stop; everything else about the track lives here.
package audio

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"

	"github.com/vovakirdan/makeup-rain/internal/config"
)

// backend is the output device. Tests swap it out.
type backend struct {
	init   func(sr beep.SampleRate, bufferSize int) error
	play   func(s ...beep.Streamer)
	lock   func()
	unlock func()
}

var speakerBackend = backend{
	init:   speaker.Init,
	play:   speaker.Play,
	lock:   speaker.Lock,
	unlock: speaker.Unlock,
}

// Music is a looping background track that can be started and stopped.
// The speaker is opened on the first Play. If the device or the track
// cannot be opened the failure is logged once and Music stays silent.
type Music struct {
	mu      sync.Mutex
	cfg     config.AudioConfig
	logger  *log.Logger
	out     backend
	rate    beep.SampleRate
	ctrl    *beep.Ctrl
	ready   bool
	broken  bool
	playing bool
}

// NewMusic creates a track from cfg. Nothing is opened until Play.
func NewMusic(cfg config.AudioConfig, logger *log.Logger) *Music {
	rate := cfg.SampleRate
	if rate <= 0 {
		rate = 44100
	}
	return &Music{
		cfg:    cfg,
		logger: logger,
		out:    speakerBackend,
		rate:   beep.SampleRate(rate),
	}
}

// Play starts or resumes the track.
func (m *Music) Play() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.cfg.Enabled || !m.open() {
		return
	}
	m.out.lock()
	m.ctrl.Paused = false
	m.out.unlock()
	m.playing = true
}

// Stop pauses the track. The position is kept.
func (m *Music) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.ready {
		return
	}
	m.out.lock()
	m.ctrl.Paused = true
	m.out.unlock()
	m.playing = false
}

// Playing reports whether the track is audible.
func (m *Music) Playing() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playing
}

// open initializes the speaker and the track once. Reports readiness.
func (m *Music) open() bool {
	if m.ready {
		return true
	}
	if m.broken {
		return false
	}

	track := m.track()
	if err := m.out.init(m.rate, m.rate.N(100*time.Millisecond)); err != nil {
		m.broken = true
		m.logger.Warn("audio unavailable, music disabled", "err", err)
		return false
	}

	m.ctrl = &beep.Ctrl{Streamer: withVolume(track, m.cfg.Volume), Paused: true}
	m.out.play(m.ctrl)
	m.ready = true
	return true
}

// track returns the configured file looped forever, or the built-in tune
// when no file is set or it cannot be decoded.
func (m *Music) track() beep.Streamer {
	if m.cfg.File == "" {
		return NewTune(m.rate)
	}
	s, err := LoadTrack(m.cfg.File, m.rate)
	if err != nil {
		m.logger.Warn("cannot load music, using built-in tune", "file", m.cfg.File, "err", err)
		return NewTune(m.rate)
	}
	m.logger.Debug("music loaded", "file", m.cfg.File)
	return s
}

// LoadTrack decodes a wav or mp3 file, loops it and resamples it to rate.
func LoadTrack(path string, rate beep.SampleRate) (beep.Streamer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("audio: cannot open %s: %w", path, err)
	}

	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		stream, format, err = wav.Decode(f)
	case ".mp3":
		stream, format, err = mp3.Decode(f)
	default:
		f.Close()
		return nil, fmt.Errorf("audio: unsupported format %q", filepath.Ext(path))
	}
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("audio: cannot decode %s: %w", path, err)
	}

	var s beep.Streamer = beep.Loop(-1, stream)
	if format.SampleRate != rate {
		s = beep.Resample(4, format.SampleRate, rate, s)
	}
	return s, nil
}

// withVolume scales s linearly by v in [0, 1].
func withVolume(s beep.Streamer, v float64) beep.Streamer {
	if v <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(min(v, 1))}
}
