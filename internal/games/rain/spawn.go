package rain

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/makeup-rain/internal/config"
	"github.com/vovakirdan/makeup-rain/internal/core"
)

// Spawner populates obstacles and items: a bulk spawn when a round starts
// and timer-gated single spawns under the round caps afterwards.
type Spawner struct {
	cfg             config.RainConfig
	rng             *rand.Rand
	rate            int
	enemy           Sprite
	collectible     Sprite
	lastEnemy       int
	lastCollectible int
}

// NewSpawner creates a spawner drawing randomness from rng.
func NewSpawner(cfg config.RainConfig, rng *rand.Rand, rate int, sprites Sprites) *Spawner {
	return &Spawner{
		cfg:         cfg,
		rng:         rng,
		rate:        rate,
		enemy:       sprites.Enemy,
		collectible: sprites.Collectible,
	}
}

// Reset rewinds the continuous spawn timers.
func (s *Spawner) Reset() {
	s.lastEnemy = 0
	s.lastCollectible = 0
}

// Bulk creates the round-start population for the current round.
func (s *Spawner) Bulk(rm *RoundManager, enemies *Arena[Enemy], collectibles *Arena[Collectible], t tuning) {
	r := rm.Round()
	mult := rm.SpeedMultiplier(r)
	for range rm.EnemyCount(r) {
		enemies.Add(s.newEnemy(mult))
	}
	for range rm.CollectibleCount(r) {
		collectibles.Add(s.newCollectible(mult, t))
	}
}

// Continuous spawns at most one obstacle and one item on frame, respecting
// the spawn intervals and on-screen caps. Items stop once the round goal is met.
func (s *Spawner) Continuous(frame int, rm *RoundManager, enemies *Arena[Enemy], collectibles *Arena[Collectible], t tuning) {
	r := rm.Round()
	mult := rm.SpeedMultiplier(r)

	enemyEvery := core.TicksFor(rm.EnemySpawnFrames(r), s.rate)
	if frame-s.lastEnemy >= enemyEvery && enemies.Live() < rm.EnemyCap(r) {
		enemies.Add(s.newEnemy(mult))
		s.lastEnemy = frame
	}

	if rm.ItemsCollected() >= rm.ItemsGoal(r) {
		return
	}
	itemEvery := core.TicksFor(rm.CollectibleSpawnFrames(r), s.rate)
	if frame-s.lastCollectible >= itemEvery && collectibles.Live() < rm.CollectibleCap(r) {
		collectibles.Add(s.newCollectible(mult, t))
		s.lastCollectible = frame
	}
}

func (s *Spawner) newEnemy(mult float64) Enemy {
	x, y := s.position(s.enemy, s.cfg.Enemy.SpawnTop)
	return Enemy{
		X:     x,
		Y:     y,
		Speed: uniform(s.rng, s.cfg.Enemy.MinSpeed, s.cfg.Enemy.MaxSpeed) * mult,
		Spin:  uniform(s.rng, -s.cfg.Enemy.Rotation, s.cfg.Enemy.Rotation),
	}
}

func (s *Spawner) newCollectible(mult float64, t tuning) Collectible {
	x, y := s.position(s.collectible, s.cfg.Collectible.SpawnTop)
	speed := uniform(s.rng, s.cfg.Collectible.MinSpeed, s.cfg.Collectible.MaxSpeed) * mult
	phase := uniform(s.rng, 0, 2*math.Pi) * 10
	return NewCollectible(x, y, speed, phase, t)
}

// position picks a whole-unit spot above the playfield: x across the world
// width, y between -top and the sprite's own height above the edge.
func (s *Spawner) position(sp Sprite, top float64) (float64, float64) {
	maxX := int(s.cfg.World.Width - sp.Width())
	x := randInt(s.rng, 0, max(maxX, 0))
	y := randInt(s.rng, -int(top), -int(sp.Height()))
	return float64(x), float64(y)
}
