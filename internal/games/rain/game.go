// Package rain implements Makeup Rain: catch falling makeup, dodge falling
// cacti, and clear rounds of rising difficulty alone or with a partner.
//
// The game is a pure simulation stepped one tick at a time. Persistence,
// music and logging are reached through Services so the simulation can be
// driven headless in tests.
package rain

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/vovakirdan/makeup-rain/internal/config"
	"github.com/vovakirdan/makeup-rain/internal/core"
)

// Mode selects single player or shared-screen cooperative play.
type Mode int

const (
	ModeSingle Mode = 1
	ModeCoop   Mode = 2
)

// String returns the mode name used in logs and run history.
func (m Mode) String() string {
	if m == ModeCoop {
		return "coop"
	}
	return "single"
}

// Phase is the round state machine.
type Phase int

const (
	PhaseActive Phase = iota
	PhaseTransition
	PhaseGameOver
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseActive:
		return "active"
	case PhaseTransition:
		return "transition"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Player tints in cooperative mode.
const (
	TintPlayer1 = core.ColorBrightBlue
	TintPlayer2 = core.ColorHotPink
)

// Music is the background track.
type Music interface {
	Play()
	Stop()
}

type nopMusic struct{}

func (nopMusic) Play() {}
func (nopMusic) Stop() {}

// Services are the collaborators a run talks to. Nil fields get inert defaults.
type Services struct {
	HighScores HighScoreStore
	Music      Music
	Logger     *log.Logger
}

// RoundClear describes the most recent round transition.
type RoundClear struct {
	Round     int // Finished round
	Next      int
	Bonus     int // Bonus per surviving player
	Survivors int
}

// Game implements the Makeup Rain simulation.
type Game struct {
	cfg       config.RainConfig
	mode      Mode
	runtime   core.RuntimeConfig
	logger    *log.Logger
	music     Music
	store     HighScoreStore
	rng       *rand.Rand
	tuning    tuning
	sprites   Sprites
	tick      uint64 // Steps taken, including paused ones
	frame     int    // Active ticks, drives continuous spawning
	phase     Phase
	paused    bool
	timer     int // Transition ticks left
	players   []*Player
	round     *RoundManager
	spawner   *Spawner
	score     *ScoreSystem
	enemies   Arena[Enemy]
	items     Arena[Collectible]
	particles *ParticleSystem
	lastClear RoundClear
}

// New creates a game for the given mode. Call Reset before stepping.
func New(cfg config.RainConfig, mode Mode, svc Services) *Game {
	if svc.Logger == nil {
		svc.Logger = log.New(io.Discard)
	}
	if svc.Music == nil {
		svc.Music = nopMusic{}
	}
	if mode != ModeCoop {
		mode = ModeSingle
	}
	return &Game{
		cfg:    cfg,
		mode:   mode,
		logger: svc.Logger,
		music:  svc.Music,
		store:  svc.HighScores,
	}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "rain"
}

// Mode returns the play mode.
func (g *Game) Mode() Mode {
	return g.mode
}

// Reset initializes or restarts the run. The high score survives resets.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	rate := runtime.Rate()

	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.tuning = newTuning(g.cfg, rate)
	if g.sprites.Player.Art == nil {
		g.sprites = LoadSprites(g.cfg, g.logger)
	}
	if g.score == nil {
		g.score = NewScoreSystem(g.cfg, rate, g.store, g.logger)
	} else {
		g.score.Reset()
	}

	g.round = NewRoundManager(g.cfg, rate)
	g.spawner = NewSpawner(g.cfg, g.rng, rate, g.sprites)
	g.particles = NewParticleSystem(g.cfg.Particles, g.rng, rate)
	g.enemies.Clear()
	g.items.Clear()

	g.players = g.players[:0]
	w := g.cfg.World.Width
	if g.mode == ModeCoop {
		g.players = append(g.players,
			NewPlayer(core.Player1, w/3, g.sprites.Player, g.cfg, TintPlayer1),
			NewPlayer(core.Player2, 2*w/3, g.sprites.Player, g.cfg, TintPlayer2),
		)
	} else {
		g.players = append(g.players, NewPlayer(core.Player1, w/2, g.sprites.Player, g.cfg, core.ColorDefault))
	}

	g.tick = 0
	g.frame = 0
	g.phase = PhaseActive
	g.paused = false
	g.timer = 0
	g.lastClear = RoundClear{}

	g.spawner.Bulk(g.round, &g.enemies, &g.items, g.tuning)
	g.music.Play()
	g.logger.Info("run started", "mode", g.mode, "seed", runtime.Seed, "tick_rate", rate)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.MultiInputFrame) core.StepResult {
	g.tick++
	if g.phase == PhaseGameOver {
		return core.StepResult{State: g.State()}
	}

	if in.Player1().Has(core.ActionPause) || in.Player2().Has(core.ActionPause) {
		g.TogglePause()
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if g.phase == PhaseTransition {
		g.stepTransition()
		return core.StepResult{State: g.State()}
	}

	cleared, ended := g.stepActive(in)
	return core.StepResult{State: g.State(), RoundCleared: cleared, Ended: ended}
}

// stepActive runs one tick of play: movement, spawning, collisions, then
// cosmetic and combo updates, with removals compacted at the end.
func (g *Game) stepActive(in core.MultiInputFrame) (cleared, ended bool) {
	g.frame++
	g.round.Tick()

	for _, p := range g.players {
		f := in.Player(p.ID)
		p.Update(f.Has(core.ActionLeft), f.Has(core.ActionRight), g.tuning)
	}
	g.enemies.Each(func(i int, e *Enemy) {
		if !e.Update(g.tuning) {
			g.enemies.Mark(i)
		}
	})
	g.items.Each(func(i int, c *Collectible) {
		if !c.Update(g.tuning) {
			g.items.Mark(i)
		}
	})

	g.spawner.Continuous(g.frame, g.round, &g.enemies, &g.items, g.tuning)

	for _, p := range g.players {
		if !p.Active() {
			continue
		}
		if g.collidePlayer(p) {
			cleared = true
			break
		}
	}

	if !cleared && g.allDead() {
		g.endGame()
		ended = true
	}

	g.particles.Update(g.tuning)
	g.score.UpdateCombo()
	g.score.UpdateTexts(g.tuning)

	g.enemies.Compact()
	g.items.Compact()
	return cleared, ended
}

// stepTransition only advances the interstitial timer and cosmetics.
func (g *Game) stepTransition() {
	g.timer--
	g.particles.Update(g.tuning)
	g.score.UpdateTexts(g.tuning)
	if g.timer > 0 {
		return
	}
	g.phase = PhaseActive
	g.spawner.Bulk(g.round, &g.enemies, &g.items, g.tuning)
	g.music.Play()
}

// startTransition clears the field, advances the round and credits the
// finished round's bonus to every surviving player.
func (g *Game) startTransition() {
	finished := g.round.Round()
	bonus := g.round.RoundBonus()

	g.enemies.Clear()
	g.items.Clear()
	g.round.AdvanceRound()

	survivors := 0
	for _, p := range g.players {
		if p.Active() {
			p.Score += bonus
			survivors++
		}
	}
	g.score.AddBonus(bonus * survivors)

	g.phase = PhaseTransition
	g.timer = g.tuning.transitionTicks
	g.lastClear = RoundClear{Round: finished, Next: g.round.Round(), Bonus: bonus, Survivors: survivors}
	g.logger.Info("round cleared", "round", finished, "bonus", bonus, "score", g.score.Score())

	if g.timer <= 0 {
		g.stepTransition()
	}
}

func (g *Game) endGame() {
	g.phase = PhaseGameOver
	g.music.Stop()
	g.logger.Info("game over", "score", g.score.Score(), "round", g.round.Round(), "high_score", g.score.HighScore())
}

// allDead reports whether every player finished the death animation.
func (g *Game) allDead() bool {
	for _, p := range g.players {
		if !p.IsDead(g.tuning) {
			return false
		}
	}
	return true
}

// TogglePause pauses or resumes the simulation and the music.
// Has no effect once the game is over.
func (g *Game) TogglePause() {
	if g.phase == PhaseGameOver {
		return
	}
	g.paused = !g.paused
	if g.paused {
		g.music.Stop()
	} else {
		g.music.Play()
	}
}

// Leave stops the music when the player abandons the run.
func (g *Game) Leave() {
	g.music.Stop()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	round := 0
	if g.round != nil {
		round = g.round.Round()
	}
	score := 0
	if g.score != nil {
		score = g.score.Score()
	}
	return core.GameState{
		Score:    score,
		Round:    round,
		GameOver: g.phase == PhaseGameOver,
		Paused:   g.paused,
	}
}

// Phase returns the current phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// Players returns the players in slot order.
func (g *Game) Players() []*Player {
	return g.players
}

// HighScore returns the best score including this run.
func (g *Game) HighScore() int {
	return g.score.HighScore()
}

// NewRecord reports whether this run set a new high score.
func (g *Game) NewRecord() bool {
	return g.score.NewRecord()
}

// Winner returns the leading player in cooperative mode. tie is true when
// both players scored the same. Single player always wins.
func (g *Game) Winner() (id core.PlayerID, tie bool) {
	if len(g.players) < 2 {
		return core.Player1, false
	}
	a, b := g.players[0], g.players[1]
	switch {
	case a.Score > b.Score:
		return a.ID, false
	case b.Score > a.Score:
		return b.ID, false
	default:
		return 0, true
	}
}
