package rain

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/vovakirdan/makeup-rain/internal/config"
)

type failingStore struct {
	saves int
	fail  bool
}

func (f *failingStore) LoadHighScore() (int, error) { return 0, errors.New("disk gone") }

func (f *failingStore) SaveHighScore(int) error {
	f.saves++
	if f.fail {
		return errors.New("read-only")
	}
	return nil
}

func newTestScore(store HighScoreStore) *ScoreSystem {
	return NewScoreSystem(config.DefaultRainConfig(), 60, store, log.New(io.Discard))
}

func TestComboMultiplierSteps(t *testing.T) {
	s := newTestScore(nil)
	want := map[int]float64{1: 1.0, 2: 1.0, 3: 1.5, 4: 1.5, 5: 2.0, 9: 2.0, 10: 3.0, 11: 3.0}
	wantPoints := []int{50, 50, 75, 75, 100, 100, 100, 100, 100, 150, 150}

	total := 0
	for i := 1; i <= 11; i++ {
		earned := s.AddPoints(0, 0)
		total += earned
		if earned != wantPoints[i-1] {
			t.Errorf("item %d earned %d, want %d", i, earned, wantPoints[i-1])
		}
		_, mult, _ := s.Combo()
		if m, ok := want[i]; ok && mult != m {
			t.Errorf("after item %d multiplier = %v, want %v", i, mult, m)
		}
	}
	if s.Score() != total {
		t.Errorf("Score() = %d, want %d", s.Score(), total)
	}
}

func TestMultiplierNonDecreasing(t *testing.T) {
	s := newTestScore(nil)
	prev := 0.0
	for n := 0; n < 50; n++ {
		m := s.MultiplierFor(n)
		if m < prev {
			t.Errorf("MultiplierFor(%d) = %v < %v", n, m, prev)
		}
		prev = m
	}
	if s.MultiplierFor(0) != 1 {
		t.Errorf("MultiplierFor(0) = %v, want 1", s.MultiplierFor(0))
	}
}

func TestComboBreaks(t *testing.T) {
	s := newTestScore(nil)
	for range 6 {
		s.AddPoints(0, 0)
	}
	s.BreakCombo()
	if count, mult, _ := s.Combo(); count != 0 || mult != 1 {
		t.Errorf("after break: count=%d mult=%v", count, mult)
	}

	for range 6 {
		s.AddPoints(0, 0)
	}
	for range 119 {
		s.UpdateCombo()
	}
	if count, _, ratio := s.Combo(); count != 6 || ratio <= 0 {
		t.Errorf("combo should survive 119 ticks: count=%d ratio=%v", count, ratio)
	}
	s.UpdateCombo()
	if count, mult, _ := s.Combo(); count != 0 || mult != 1 {
		t.Errorf("timeout should break combo: count=%d mult=%v", count, mult)
	}
}

func TestComboWindowResetsOnCollection(t *testing.T) {
	s := newTestScore(nil)
	s.AddPoints(0, 0)
	for range 100 {
		s.UpdateCombo()
	}
	s.AddPoints(0, 0)
	if _, _, ratio := s.Combo(); ratio != 1 {
		t.Errorf("collection should refill the window, ratio=%v", ratio)
	}
}

func TestFloatingTexts(t *testing.T) {
	s := newTestScore(nil)
	for range 5 {
		s.AddPoints(100, 200)
	}
	texts := s.Texts()
	if len(texts) != 6 {
		t.Fatalf("expected 5 score texts and a combo banner, got %d", len(texts))
	}
	if texts[0].Text != "+50" {
		t.Errorf("first text = %q", texts[0].Text)
	}
	if texts[2].Text != "+75 x1.5!" {
		t.Errorf("third text = %q", texts[2].Text)
	}
	last := texts[len(texts)-1]
	if last.Text != "COMBO x5!" || last.Y != 160 || last.MaxLife != 90 {
		t.Errorf("combo banner = %+v", last)
	}

	tn := newTuning(config.DefaultRainConfig(), 60)
	for range 60 {
		s.UpdateTexts(tn)
	}
	if len(s.Texts()) != 1 {
		t.Errorf("only the 90-frame banner should remain, got %d texts", len(s.Texts()))
	}
}

func TestHighScoreWriteThrough(t *testing.T) {
	store := &memoryHighScores{best: 120}
	s := newTestScore(store)
	if s.HighScore() != 120 {
		t.Fatalf("HighScore() = %d, want 120", s.HighScore())
	}

	s.AddPoints(0, 0)
	s.AddPoints(0, 0)
	if store.best != 120 {
		t.Errorf("record should not change below the high score, got %d", store.best)
	}
	s.AddPoints(0, 0) // 175
	if store.best != 175 || s.HighScore() != 175 {
		t.Errorf("record = %d, high = %d, want 175", store.best, s.HighScore())
	}
	s.AddBonus(500)
	if store.best != 675 {
		t.Errorf("bonus should be written through, record = %d", store.best)
	}
	if !s.NewRecord() {
		t.Error("run should be a new record")
	}

	s.Reset()
	if s.Score() != 0 || s.HighScore() != 675 || s.NewRecord() {
		t.Errorf("after reset: score=%d high=%d new=%v", s.Score(), s.HighScore(), s.NewRecord())
	}
}

func TestHighScoreFailuresAreNotFatal(t *testing.T) {
	var buf bytes.Buffer
	store := &failingStore{fail: true}
	s := NewScoreSystem(config.DefaultRainConfig(), 60, store, log.New(&buf))

	if s.HighScore() != 0 {
		t.Errorf("failed load should start at 0, got %d", s.HighScore())
	}
	if !strings.Contains(buf.String(), "cannot load high score") {
		t.Errorf("load failure should be logged, got %q", buf.String())
	}

	s.AddPoints(0, 0)
	if s.HighScore() != 50 {
		t.Errorf("in-memory record should be kept, got %d", s.HighScore())
	}
	if s.SaveFailure() == nil {
		t.Error("save failure should be reported")
	}

	store.fail = false
	s.AddPoints(0, 0)
	if store.saves != 2 {
		t.Errorf("next improvement should retry the save, saves=%d", store.saves)
	}
	if s.SaveFailure() != nil {
		t.Errorf("successful save should clear the failure, got %v", s.SaveFailure())
	}
}
