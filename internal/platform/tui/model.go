package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/makeup-rain/internal/config"
	"github.com/vovakirdan/makeup-rain/internal/core"
	"github.com/vovakirdan/makeup-rain/internal/games/rain"
	"github.com/vovakirdan/makeup-rain/internal/storage"
)

// scene is the screen the model is showing.
type scene int

const (
	sceneMenu scene = iota
	sceneGame
	sceneGameOver
	sceneScores
)

// Options configure a session.
type Options struct {
	Config  config.RainConfig
	Runtime core.RuntimeConfig
	// Runs records finished runs. Optional.
	Runs *storage.Store
	// HighScores keeps the record. Defaults to Runs when set.
	HighScores rain.HighScoreStore
	Music      rain.Music
	Logger     *log.Logger
	// Mode starts a run immediately instead of showing the menu.
	Mode rain.Mode
	// ScreenshotDir receives ctrl+s dumps. Empty disables screenshots.
	ScreenshotDir string
}

// Model is the root Bubble Tea model: menu, game, game over and scores.
type Model struct {
	opts     Options
	runtime  core.RuntimeConfig
	scene    scene
	menu     MenuModel
	scores   ScoreboardModel
	game     *rain.Game
	mode     rain.Mode
	screen   *core.Screen
	keys     *KeyMapper
	held     *HeldKeys
	pending  core.MultiInputFrame
	help     help.Model
	gen      int
	initCmd  tea.Cmd
	seed     int64
	ticks    int
	state    core.GameState
	runSaved bool
	quitting bool
}

// NewModel creates the root model.
func NewModel(opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.HighScores == nil && opts.Runs != nil {
		opts.HighScores = opts.Runs
	}

	h := help.New()
	h.Width = opts.Runtime.ScreenW

	m := Model{
		opts:    opts,
		runtime: opts.Runtime,
		screen:  core.NewScreen(opts.Runtime.ScreenW, max(opts.Runtime.ScreenH-1, 1)),
		keys:    NewKeyMapper(),
		held:    NewHeldKeys(opts.Runtime.Rate()),
		pending: core.NewMultiInputFrame(),
		help:    h,
	}
	m.menu = m.newMenu()
	if opts.Mode != 0 {
		m.initCmd = m.startRun(opts.Mode)
	}
	return m
}

// Init starts the tick loop when a run was started directly.
func (m Model) Init() tea.Cmd {
	return m.initCmd
}

// Update handles messages and dispatches them to the current scene.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.resize(wsm)
	}

	switch m.scene {
	case sceneGame:
		return m.updateGame(msg)
	case sceneGameOver:
		return m.updateGameOver(msg)
	case sceneScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m *Model) resize(msg tea.WindowSizeMsg) {
	m.runtime.ScreenW = msg.Width
	m.runtime.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-1, 1))
	m.help.Width = msg.Width
}

func (m *Model) newMenu() MenuModel {
	high := 0
	if m.opts.HighScores != nil {
		if v, err := m.opts.HighScores.LoadHighScore(); err == nil {
			high = v
		}
	}
	return NewMenuModel(m.runtime.ScreenW, m.runtime.ScreenH, high, m.opts.Runs != nil)
}

func (m Model) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	m.menu = next.(MenuModel)

	switch m.menu.Chosen() {
	case ChoiceSingle:
		return m, m.startRun(rain.ModeSingle)
	case ChoiceCoop:
		return m, m.startRun(rain.ModeCoop)
	case ChoiceScores:
		m.scores = NewScoreboardModel(m.opts.Runs, m.runtime.ScreenW, m.runtime.ScreenH)
		m.scene = sceneScores
		return m, nil
	case ChoiceQuit:
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

func (m Model) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	m.scores = next.(ScoreboardModel)

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		m.toMenu()
		return m, nil
	}
	return m, cmd
}

// startRun creates a fresh game and starts its tick loop.
func (m *Model) startRun(mode rain.Mode) tea.Cmd {
	m.mode = mode
	m.game = rain.New(m.opts.Config, mode, rain.Services{
		HighScores: m.opts.HighScores,
		Music:      m.opts.Music,
		Logger:     m.opts.Logger,
	})

	rt := m.runtime
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}
	m.game.Reset(rt)
	m.seed = rt.Seed

	m.scene = sceneGame
	m.state = m.game.State()
	m.ticks = 0
	m.runSaved = false
	m.held.Release()
	m.pending.Clear()
	m.gen++
	return tickCmd(m.runtime.Rate(), m.gen)
}

// toMenu abandons the current run, if any, and shows the menu.
func (m *Model) toMenu() {
	if m.game != nil {
		m.game.Leave()
		m.game = nil
	}
	m.gen++
	m.held.Release()
	m.scene = sceneMenu
	m.menu = m.newMenu()
}

func (m Model) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+s" {
			m.saveScreenshot()
			return m, nil
		}
		id, action := m.keys.MapKey(msg, m.mode == rain.ModeCoop)
		switch action {
		case core.ActionQuit:
			m.game.Leave()
			m.quitting = true
			return m, tea.Quit
		case core.ActionBack:
			m.toMenu()
			return m, nil
		case core.ActionLeft, core.ActionRight:
			m.held.Press(id, action)
		case core.ActionPause:
			f := m.pending.Player(id)
			f.Set(action)
			m.pending.SetPlayer(id, f)
		}
		return m, nil

	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.handleTick()
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	frame := m.pending.Clone()
	m.held.Apply(&frame)

	result := m.game.Step(frame)
	m.state = result.State
	m.ticks++

	m.pending.Clear()
	m.held.Tick()

	if result.Ended {
		m.scene = sceneGameOver
		m.held.Release()
		m.saveRun()
		return m, nil
	}
	return m, tickCmd(m.runtime.Rate(), m.gen)
}

// saveRun records the finished run once.
func (m *Model) saveRun() {
	if m.runSaved || m.opts.Runs == nil || m.state.Score <= 0 {
		return
	}
	m.runSaved = true

	run := storage.RunRecord{
		Mode:     m.mode.String(),
		Score:    m.state.Score,
		Round:    m.state.Round,
		Seed:     m.seed,
		Duration: m.ticks / m.runtime.Rate(),
	}
	ps := m.game.Players()
	if len(ps) > 0 {
		run.Score1 = ps[0].Score
	}
	if len(ps) > 1 {
		run.Score2 = ps[1].Score
	}

	if _, err := m.opts.Runs.SaveRun(run); err != nil {
		m.opts.Logger.Warn("cannot save run", "err", err)
		return
	}
	m.opts.Logger.Info("run saved", "mode", run.Mode, "score", run.Score, "round", run.Round)
}

func (m Model) updateGameOver(msg tea.Msg) (tea.Model, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	keys := m.keys.Keys()
	switch {
	case key.Matches(kmsg, keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(kmsg, keys.Restart), kmsg.String() == "enter":
		return m, m.startRun(m.mode)
	case key.Matches(kmsg, keys.Menu):
		m.toMenu()
	}
	return m, nil
}

// View renders the current scene.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.scene {
	case sceneGame:
		m.game.Render(m.screen)
		return RenderScreen(m.screen) + "\n" + m.help.View(m.keys.Keys())
	case sceneGameOver:
		return m.gameOverView()
	case sceneScores:
		return m.scores.View()
	default:
		return m.menu.View()
	}
}

var (
	overTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("9"))
	overRecordStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("220")).
			Blink(true)
	overPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("135")).
			Padding(1, 4).
			Align(lipgloss.Center)
	overDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))
)

// gameOverView renders the results panel.
func (m Model) gameOverView() string {
	lines := []string{
		overTitleStyle.Render("GAME OVER"),
		"",
		fmt.Sprintf("Score  %d", m.state.Score),
		fmt.Sprintf("Round  %d", m.state.Round),
		fmt.Sprintf("Best   %d", m.game.HighScore()),
	}

	if m.mode == rain.ModeCoop {
		ps := m.game.Players()
		lines = append(lines, "", fmt.Sprintf("P1 %d  |  P2 %d", ps[0].Score, ps[1].Score))
		if id, tie := m.game.Winner(); tie {
			lines = append(lines, "It's a tie!")
		} else {
			lines = append(lines, fmt.Sprintf("%s wins!", id))
		}
	}
	if m.game.NewRecord() {
		lines = append(lines, "", overRecordStyle.Render("NEW RECORD!"))
	}
	lines = append(lines, "", overDimStyle.Render("r restart  ·  esc menu  ·  q quit"))

	panel := overPanelStyle.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
	return lipgloss.Place(m.runtime.ScreenW, m.runtime.ScreenH, lipgloss.Center, lipgloss.Center, panel)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	if m.opts.ScreenshotDir == "" {
		return
	}
	m.game.Render(m.screen)

	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(m.opts.ScreenshotDir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(m.opts.ScreenshotDir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("cannot save screenshot", "path", path, "err", err)
	}
}

// Run starts the Bubble Tea program for one local session.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
