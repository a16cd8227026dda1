package audio

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"

	"github.com/vovakirdan/makeup-rain/internal/config"
)

type fakeOutput struct {
	inits   int
	played  []beep.Streamer
	failing error
}

func (f *fakeOutput) backend() backend {
	return backend{
		init: func(beep.SampleRate, int) error {
			f.inits++
			return f.failing
		},
		play:   func(s ...beep.Streamer) { f.played = append(f.played, s...) },
		lock:   func() {},
		unlock: func() {},
	}
}

func newTestMusic(cfg config.AudioConfig, out *fakeOutput) *Music {
	m := NewMusic(cfg, log.New(io.Discard))
	m.out = out.backend()
	return m
}

func TestMusicPlayStop(t *testing.T) {
	out := &fakeOutput{}
	m := newTestMusic(config.AudioConfig{Enabled: true, Volume: 0.5, SampleRate: 22050}, out)

	m.Stop()
	if out.inits != 0 {
		t.Error("Stop before Play should not open the device")
	}

	m.Play()
	if !m.Playing() || out.inits != 1 || len(out.played) != 1 {
		t.Fatalf("Play: playing=%v inits=%d played=%d", m.Playing(), out.inits, len(out.played))
	}
	if m.ctrl.Paused {
		t.Error("track should be unpaused")
	}

	m.Stop()
	if m.Playing() || !m.ctrl.Paused {
		t.Error("Stop should pause the track")
	}

	m.Play()
	if out.inits != 1 || len(out.played) != 1 {
		t.Error("device is opened once")
	}
}

func TestMusicDisabled(t *testing.T) {
	out := &fakeOutput{}
	m := newTestMusic(config.AudioConfig{Enabled: false}, out)

	m.Play()
	if m.Playing() || out.inits != 0 {
		t.Error("disabled music must stay silent")
	}
}

func TestMusicDeviceFailure(t *testing.T) {
	out := &fakeOutput{failing: errors.New("no device")}
	m := newTestMusic(config.AudioConfig{Enabled: true, Volume: 1}, out)

	m.Play()
	m.Play()
	m.Stop()
	if m.Playing() {
		t.Error("music without a device is never playing")
	}
	if out.inits != 1 {
		t.Errorf("a broken device is not retried, inits=%d", out.inits)
	}
}

func TestMusicBadFileFallsBack(t *testing.T) {
	out := &fakeOutput{}
	m := newTestMusic(config.AudioConfig{Enabled: true, Volume: 1, File: "/nonexistent/track.wav"}, out)

	m.Play()
	if !m.Playing() {
		t.Fatal("a missing file should fall back to the built-in tune")
	}
	buf := make([][2]float64, 512)
	if n, ok := out.played[0].Stream(buf); n != 512 || !ok {
		t.Errorf("fallback track streamed %d, %v", n, ok)
	}
}

func TestTuneLoops(t *testing.T) {
	rate := beep.SampleRate(8000)
	tune := NewTune(rate)
	buf := make([][2]float64, 1024)

	total := 0
	loud := false
	for range 40 {
		n, ok := tune.Stream(buf)
		if !ok || n != len(buf) {
			t.Fatalf("tune ended after %d samples", total)
		}
		for _, s := range buf[:n] {
			if s[0] < -tuneLevel || s[0] > tuneLevel || s[0] != s[1] {
				t.Fatalf("sample out of range or not mono: %v", s)
			}
			if s[0] != 0 {
				loud = true
			}
		}
		total += n
	}
	if !loud {
		t.Error("tune is silent")
	}
	if tune.Err() != nil {
		t.Error("tune should never fail")
	}
}

func TestLoadTrackWav(t *testing.T) {
	path := filepath.Join(t.TempDir(), "track.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	format := beep.Format{SampleRate: 22050, NumChannels: 2, Precision: 2}
	if err := wav.Encode(f, beep.Take(2205, NewTune(format.SampleRate)), format); err != nil {
		t.Fatalf("wav.Encode: %v", err)
	}
	f.Close()

	s, err := LoadTrack(path, 44100)
	if err != nil {
		t.Fatalf("LoadTrack: %v", err)
	}

	// 0.1 s of source resampled to 44.1 kHz and looped: reading 1 s never ends.
	buf := make([][2]float64, 4410)
	for i := range 10 {
		if n, ok := s.Stream(buf); !ok || n == 0 {
			t.Fatalf("looped track ended at chunk %d", i)
		}
	}
}

func TestLoadTrackErrors(t *testing.T) {
	dir := t.TempDir()
	junk := filepath.Join(dir, "junk.wav")
	os.WriteFile(junk, []byte("not audio"), 0o644)
	ogg := filepath.Join(dir, "song.ogg")
	os.WriteFile(ogg, []byte("x"), 0o644)

	tests := []struct {
		name string
		path string
	}{
		{"missing", filepath.Join(dir, "missing.wav")},
		{"undecodable", junk},
		{"unsupported", ogg},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadTrack(tt.path, 44100); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestWithVolume(t *testing.T) {
	buf := make([][2]float64, 64)
	withVolume(NewTune(8000), 0).Stream(buf)
	for _, s := range buf {
		if s[0] != 0 {
			t.Fatalf("zero volume should be silent, got %v", s[0])
		}
	}
}
