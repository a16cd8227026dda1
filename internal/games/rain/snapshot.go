package rain

import (
	"fmt"
	"hash/fnv"
)

// Snapshot captures the game state for determinism testing.
// Positions are stored in thousandths of a world unit.
type Snapshot struct {
	Tick           uint64
	Frame          int
	Phase          Phase
	Paused         bool
	Round          int
	ItemsCollected int
	Score          int
	HighScore      int
	Combo          int
	Multiplier     int // x1000
	Players        []PlayerSnapshot
	Enemies        [][2]int
	Collectibles   [][2]int
	ParticleCount  int
}

// PlayerSnapshot is one player's state.
type PlayerSnapshot struct {
	X            int
	Lives        int
	Score        int
	Invulnerable bool
	Dying        bool
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	combo, mult, _ := g.score.Combo()
	snap := Snapshot{
		Tick:           g.tick,
		Frame:          g.frame,
		Phase:          g.phase,
		Paused:         g.paused,
		Round:          g.round.Round(),
		ItemsCollected: g.round.ItemsCollected(),
		Score:          g.score.Score(),
		HighScore:      g.score.HighScore(),
		Combo:          combo,
		Multiplier:     milli(mult),
		ParticleCount:  g.particles.Len(),
	}
	for _, p := range g.players {
		snap.Players = append(snap.Players, PlayerSnapshot{
			X:            milli(p.X),
			Lives:        p.Lives,
			Score:        p.Score,
			Invulnerable: p.Invulnerable,
			Dying:        p.Dying,
		})
	}
	g.enemies.Each(func(_ int, e *Enemy) {
		snap.Enemies = append(snap.Enemies, [2]int{milli(e.X), milli(e.Y)})
	})
	g.items.Each(func(_ int, c *Collectible) {
		snap.Collectibles = append(snap.Collectibles, [2]int{milli(c.X), milli(c.Y)})
	})
	return snap
}

// Hash returns a hash of the snapshot for determinism testing.
func (snap Snapshot) Hash() uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "T:%d;F:%d;P:%d;%t;R:%d;I:%d;S:%d;H:%d;C:%d;M:%d;N:%d;",
		snap.Tick, snap.Frame, snap.Phase, snap.Paused, snap.Round, snap.ItemsCollected,
		snap.Score, snap.HighScore, snap.Combo, snap.Multiplier, snap.ParticleCount)
	for _, p := range snap.Players {
		fmt.Fprintf(h, "p%d,%d,%d,%t,%t;", p.X, p.Lives, p.Score, p.Invulnerable, p.Dying)
	}
	for _, e := range snap.Enemies {
		fmt.Fprintf(h, "e%d,%d;", e[0], e[1])
	}
	for _, c := range snap.Collectibles {
		fmt.Fprintf(h, "c%d,%d;", c[0], c[1])
	}
	return h.Sum64()
}

func milli(v float64) int {
	return int(v * 1000)
}
