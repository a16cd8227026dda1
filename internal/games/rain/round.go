package rain

import (
	"fmt"

	"github.com/vovakirdan/makeup-rain/internal/config"
	"github.com/vovakirdan/makeup-rain/internal/core"
)

// RoundState is the mutable part of round progression.
type RoundState struct {
	Round          int  // Current round, starting at 1
	ItemsCollected int  // Items collected this round
	StartTick      int  // Simulation tick at which the round started
	Complete       bool // Goal reached, waiting for AdvanceRound
	GameComplete   bool // Reserved terminal flag, never set by the simulation
}

// DifficultyProfile is every parameter derived from a round number.
type DifficultyProfile struct {
	Round                  int
	ItemsGoal              int
	SpeedMultiplier        float64
	EnemyCount             int
	CollectibleCount       int
	EnemyCap               int
	CollectibleCap         int
	EnemySpawnFrames       int
	CollectibleSpawnFrames int
}

// RoundManager tracks the current round and derives its difficulty.
// Time is read from a simulation clock advanced by Tick, so a paused
// game does not consume round time.
type RoundManager struct {
	cfg             config.RoundConfig
	enemyBase       int
	collectibleBase int
	rate            int
	now             int
	state           RoundState
}

// NewRoundManager creates a manager at round 1.
func NewRoundManager(cfg config.RainConfig, tickRate int) *RoundManager {
	if tickRate <= 0 {
		tickRate = core.ReferenceTickRate
	}
	rm := &RoundManager{
		cfg:             cfg.Round,
		enemyBase:       cfg.Enemy.InitialCount,
		collectibleBase: cfg.Collectible.InitialCount,
		rate:            tickRate,
	}
	rm.Reset()
	return rm
}

// Reset returns to round 1 with a fresh clock.
func (rm *RoundManager) Reset() {
	rm.now = 0
	rm.state = RoundState{Round: 1}
	rm.StartRound()
}

// Tick advances the round clock by one simulation tick.
func (rm *RoundManager) Tick() {
	rm.now++
}

// StartRound clears the per-round counters and restarts the round timer.
func (rm *RoundManager) StartRound() {
	rm.state.ItemsCollected = 0
	rm.state.StartTick = rm.now
	rm.state.Complete = false
}

// OnItemCollected counts a collection and reports whether the round is complete.
// Once complete it stays complete until AdvanceRound.
func (rm *RoundManager) OnItemCollected() bool {
	rm.state.ItemsCollected++
	if rm.state.ItemsCollected >= rm.ItemsGoal(rm.state.Round) {
		rm.state.Complete = true
	}
	return rm.state.Complete
}

// AdvanceRound moves to the next round if the current one is complete.
func (rm *RoundManager) AdvanceRound() bool {
	if !rm.state.Complete {
		return false
	}
	rm.state.Round++
	rm.StartRound()
	return true
}

// State returns a copy of the round state.
func (rm *RoundManager) State() RoundState {
	return rm.state
}

// Round returns the current round number.
func (rm *RoundManager) Round() int {
	return rm.state.Round
}

// ItemsCollected returns the items collected in the current round.
func (rm *RoundManager) ItemsCollected() int {
	return rm.state.ItemsCollected
}

// Complete reports whether the current round's goal has been reached.
func (rm *RoundManager) Complete() bool {
	return rm.state.Complete
}

// ItemsGoal returns how many items round r requires.
// Past the configured sequence the goal grows by a fixed increment per round.
func (rm *RoundManager) ItemsGoal(r int) int {
	checkRound(r)
	seq := rm.cfg.ItemsSequence
	idx := r - 1
	if idx < len(seq) {
		return seq[idx]
	}
	last := seq[len(seq)-1]
	return last + (idx-(len(seq)-1))*rm.cfg.ItemsIncrement
}

// SpeedMultiplier returns the fall speed multiplier for round r.
func (rm *RoundManager) SpeedMultiplier(r int) float64 {
	checkRound(r)
	return rm.cfg.SpeedMultiplier(r)
}

// EnemyCount returns how many obstacles the round-start spawn creates.
func (rm *RoundManager) EnemyCount(r int) int {
	checkRound(r)
	return rm.enemyBase + (r-1)*rm.cfg.EnemyIncrease
}

// CollectibleCount returns how many items the round-start spawn creates.
func (rm *RoundManager) CollectibleCount(r int) int {
	checkRound(r)
	return rm.collectibleBase + (r-1)*rm.cfg.CollectibleIncrease
}

// EnemyCap returns the maximum number of obstacles on screen.
func (rm *RoundManager) EnemyCap(r int) int {
	checkRound(r)
	return rm.cfg.EnemyCapBase + (r-1)*rm.cfg.EnemyIncrease
}

// CollectibleCap returns the maximum number of items on screen.
func (rm *RoundManager) CollectibleCap(r int) int {
	checkRound(r)
	return rm.cfg.CollectibleCapBase + (r-1)*rm.cfg.CollectibleCapStep
}

// EnemySpawnFrames returns reference frames between continuous obstacle spawns.
func (rm *RoundManager) EnemySpawnFrames(r int) int {
	return max(rm.cfg.MinEnemySpawnFrames, int(float64(rm.cfg.EnemySpawnFrames)/rm.SpeedMultiplier(r)))
}

// CollectibleSpawnFrames returns reference frames between continuous item spawns.
func (rm *RoundManager) CollectibleSpawnFrames(r int) int {
	return max(rm.cfg.MinCollectibleFrames, int(float64(rm.cfg.CollectibleSpawnFrames)/rm.SpeedMultiplier(r)))
}

// Profile bundles every derived parameter for round r.
func (rm *RoundManager) Profile(r int) DifficultyProfile {
	return DifficultyProfile{
		Round:                  r,
		ItemsGoal:              rm.ItemsGoal(r),
		SpeedMultiplier:        rm.SpeedMultiplier(r),
		EnemyCount:             rm.EnemyCount(r),
		CollectibleCount:       rm.CollectibleCount(r),
		EnemyCap:               rm.EnemyCap(r),
		CollectibleCap:         rm.CollectibleCap(r),
		EnemySpawnFrames:       rm.EnemySpawnFrames(r),
		CollectibleSpawnFrames: rm.CollectibleSpawnFrames(r),
	}
}

// Elapsed returns seconds of simulation time spent in the current round.
func (rm *RoundManager) Elapsed() float64 {
	return float64(rm.now-rm.state.StartTick) / float64(rm.rate)
}

// Timed reports whether rounds have a time limit.
func (rm *RoundManager) Timed() bool {
	return rm.cfg.TimeLimit > 0
}

// TimeLeft returns the seconds remaining, or 0 when rounds are untimed.
func (rm *RoundManager) TimeLeft() float64 {
	if !rm.Timed() {
		return 0
	}
	return max(0, rm.cfg.TimeLimit-rm.Elapsed())
}

// IsTimeUp reports whether a timed round has run out. Untimed rounds never do.
func (rm *RoundManager) IsTimeUp() bool {
	if !rm.Timed() {
		return false
	}
	return rm.TimeLeft() <= 0
}

// RoundBonus returns the clear bonus for the current round, including the
// time term when rounds are timed. Call it before AdvanceRound.
func (rm *RoundManager) RoundBonus() int {
	bonus := rm.cfg.ClearBonus
	if rm.Timed() {
		bonus += int(rm.TimeLeft() * float64(rm.cfg.TimeBonusPerSecond))
	}
	return bonus
}

// Progress returns the fraction of the current goal collected, in [0, 1].
func (rm *RoundManager) Progress() float64 {
	goal := rm.ItemsGoal(rm.state.Round)
	return min(1, float64(rm.state.ItemsCollected)/float64(goal))
}

func checkRound(r int) {
	if r < 1 {
		panic(fmt.Sprintf("rain: round %d out of range", r))
	}
}
