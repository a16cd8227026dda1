package rain

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/makeup-rain/internal/config"
	"github.com/vovakirdan/makeup-rain/internal/core"
)

// Particle is a decorative spark thrown by bursts.
type Particle struct {
	X, Y    float64
	VX, VY  float64 // Units per reference frame
	Life    int     // Ticks left
	MaxLife int
	Size    int
	Color   core.Color
}

// Ratio returns the fraction of lifetime left, in [0, 1].
func (p Particle) Ratio() float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	return float64(p.Life) / float64(p.MaxLife)
}

// ParticleSystem owns every live particle and enforces the global cap.
// Bursts that would exceed the cap are truncated; existing particles are
// never evicted.
type ParticleSystem struct {
	cfg   config.ParticleConfig
	rng   *rand.Rand
	rate  int
	items Arena[Particle]
}

// NewParticleSystem creates an empty system drawing randomness from rng.
func NewParticleSystem(cfg config.ParticleConfig, rng *rand.Rand, rate int) *ParticleSystem {
	return &ParticleSystem{cfg: cfg, rng: rng, rate: rate}
}

// Burst emits up to count particles at (x, y) and returns how many were created.
func (ps *ParticleSystem) Burst(x, y float64, c core.Color, count int) int {
	room := ps.cfg.Max - ps.items.Live()
	n := min(count, room)
	for range max(n, 0) {
		angle := ps.rng.Float64() * 2 * math.Pi
		speed := uniform(ps.rng, ps.cfg.MinSpeed, ps.cfg.MaxSpeed)
		life := core.TicksFor(randInt(ps.rng, ps.cfg.MinLifetime, ps.cfg.MaxLifetime), ps.rate)
		ps.items.Add(Particle{
			X:       x,
			Y:       y,
			VX:      speed * math.Cos(angle),
			VY:      speed*math.Sin(angle) - uniform(ps.rng, ps.cfg.MinKick, ps.cfg.MaxKick),
			Life:    life,
			MaxLife: life,
			Size:    randInt(ps.rng, ps.cfg.MinSize, ps.cfg.MaxSize),
			Color:   c,
		})
	}
	return max(n, 0)
}

// Update moves every particle, applies gravity and drops expired ones.
func (ps *ParticleSystem) Update(t tuning) {
	ps.items.Each(func(i int, p *Particle) {
		p.X += p.VX * t.dt
		p.Y += p.VY * t.dt
		p.VY += ps.cfg.Gravity * t.dt
		p.Life--
		if p.Life <= 0 {
			ps.items.Mark(i)
		}
	})
	ps.items.Compact()
}

// Len returns the number of live particles.
func (ps *ParticleSystem) Len() int {
	return ps.items.Live()
}

// Each calls fn for every live particle.
func (ps *ParticleSystem) Each(fn func(p Particle)) {
	ps.items.Each(func(_ int, p *Particle) { fn(*p) })
}

// Clear removes all particles.
func (ps *ParticleSystem) Clear() {
	ps.items.Clear()
}

// uniform returns a float in [lo, hi).
func uniform(rng *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}

// randInt returns an int in [lo, hi].
func randInt(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}
