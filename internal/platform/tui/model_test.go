package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/makeup-rain/internal/config"
	"github.com/vovakirdan/makeup-rain/internal/core"
	"github.com/vovakirdan/makeup-rain/internal/games/rain"
	"github.com/vovakirdan/makeup-rain/internal/storage"
)

type countingMusic struct {
	plays, stops int
}

func (m *countingMusic) Play() { m.plays++ }
func (m *countingMusic) Stop() { m.stops++ }

func testOptions() Options {
	return Options{
		Config:  config.DefaultRainConfig(),
		Runtime: core.RuntimeConfig{ScreenW: 80, ScreenH: 25, TickRate: 60, Seed: 1},
	}
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func TestMenuStartsSingleRun(t *testing.T) {
	m := NewModel(testOptions())
	if m.scene != sceneMenu {
		t.Fatal("should start on the menu")
	}
	if !strings.Contains(m.View(), "M A K E U P") {
		t.Error("menu title missing")
	}

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.scene != sceneGame || m.game == nil {
		t.Fatalf("enter should start a run, scene=%d", m.scene)
	}
	if m.mode != rain.ModeSingle {
		t.Errorf("mode = %v, want single", m.mode)
	}
	if cmd == nil {
		t.Error("starting a run should schedule a tick")
	}
}

func TestMenuStartsCoopRun(t *testing.T) {
	m := NewModel(testOptions())
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.mode != rain.ModeCoop || len(m.game.Players()) != 2 {
		t.Fatalf("second entry should start co-op, mode=%v", m.mode)
	}
}

func TestMenuHidesScoresWithoutHistory(t *testing.T) {
	m := NewModel(testOptions())
	for range 5 {
		m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	_, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Error("last entry without history should be Quit")
	}
}

func TestTickMovesHeldPlayer(t *testing.T) {
	opts := testOptions()
	opts.Mode = rain.ModeSingle
	m := NewModel(opts)
	if m.Init() == nil {
		t.Fatal("direct play should start ticking from Init")
	}

	x := m.game.Players()[0].X
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	for range 10 {
		var cmd tea.Cmd
		m, cmd = send(t, m, TickMsg{Gen: m.gen})
		if cmd == nil {
			t.Fatal("ticks should keep the loop going")
		}
	}

	if got := m.game.Players()[0].X; got != x-55 {
		t.Errorf("player x = %v, want %v after 10 held ticks", got, x-55)
	}
	if m.ticks != 10 {
		t.Errorf("ticks = %d", m.ticks)
	}
}

func TestStaleTicksAreDropped(t *testing.T) {
	opts := testOptions()
	opts.Mode = rain.ModeSingle
	m := NewModel(opts)
	stale := m.gen

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.scene != sceneMenu || m.game != nil {
		t.Fatal("esc should return to the menu")
	}
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m, cmd := send(t, m, TickMsg{Gen: stale})
	if cmd != nil || m.ticks != 0 {
		t.Error("a tick from the abandoned run must not step the new one")
	}
}

func TestPauseKeyReachesGame(t *testing.T) {
	music := &countingMusic{}
	opts := testOptions()
	opts.Mode = rain.ModeSingle
	opts.Music = music
	m := NewModel(opts)

	m, _ = send(t, m, runeKey('p'))
	m, _ = send(t, m, TickMsg{Gen: m.gen})
	if !m.state.Paused || music.stops != 1 {
		t.Fatalf("pause: paused=%v stops=%d", m.state.Paused, music.stops)
	}

	m, _ = send(t, m, TickMsg{Gen: m.gen})
	if !m.state.Paused {
		t.Error("pause is a one-shot press, not a held key")
	}

	send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if music.stops != 2 {
		t.Errorf("leaving the run should stop music, stops=%d", music.stops)
	}
}

func TestGameOverSavesRunAndRestarts(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "rain.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	opts := testOptions()
	opts.Runs = store
	opts.Mode = rain.ModeCoop
	m := NewModel(opts)

	m.state = core.GameState{Score: 420, Round: 3, GameOver: true}
	m.ticks = 600
	m.game.Players()[0].Score = 300
	m.game.Players()[1].Score = 120
	m.scene = sceneGameOver
	m.saveRun()
	m.saveRun()

	runs, err := store.TopRuns("", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("run should be saved once, got %d", len(runs))
	}
	r := runs[0]
	if r.Mode != "coop" || r.Score != 420 || r.Round != 3 || r.Score1 != 300 || r.Score2 != 120 || r.Duration != 10 || r.Seed != 1 {
		t.Errorf("saved run = %+v", r)
	}

	view := m.View()
	for _, want := range []string{"GAME OVER", "Score  420", "P1 300  |  P2 120", "P1 wins!"} {
		if !strings.Contains(view, want) {
			t.Errorf("game over view missing %q", want)
		}
	}

	m, cmd := send(t, m, runeKey('r'))
	if m.scene != sceneGame || cmd == nil || m.runSaved {
		t.Error("r should restart the run")
	}
}

func TestScoresScene(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "rain.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()
	store.SaveRun(storage.RunRecord{Mode: "single", Score: 777, Round: 2})

	opts := testOptions()
	opts.Runs = store
	m := NewModel(opts)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.scene != sceneScores {
		t.Fatalf("third entry should open scores, scene=%d", m.scene)
	}
	if !strings.Contains(m.View(), "777") {
		t.Error("scoreboard should list the saved run")
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.scene != sceneMenu {
		t.Error("esc should return to the menu")
	}
}

func TestResizeKeepsRun(t *testing.T) {
	opts := testOptions()
	opts.Mode = rain.ModeSingle
	m := NewModel(opts)
	m, _ = send(t, m, TickMsg{Gen: m.gen})

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.screen.Width() != 120 || m.screen.Height() != 39 {
		t.Errorf("screen = %dx%d", m.screen.Width(), m.screen.Height())
	}
	if m.ticks != 1 || m.game.State().Round != 1 {
		t.Error("resizing must not restart the run")
	}
}
