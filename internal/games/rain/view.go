package rain

import "github.com/vovakirdan/makeup-rain/internal/core"

// PlayerView is a player as a renderer sees it.
type PlayerView struct {
	ID           core.PlayerID
	X, Y         float64
	Lives        int
	Score        int
	Alpha        int // Blink while invulnerable
	Fade         int // Death animation opacity
	Invulnerable bool
	Dying        bool
	Dead         bool
	Tint         core.Color
}

// EnemyView is an obstacle with its cosmetic rotation.
type EnemyView struct {
	X, Y  float64
	Angle float64
}

// CollectibleView is an item with its cosmetic glow.
type CollectibleView struct {
	X, Y  float64
	Alpha int
}

// ParticleView is a particle with its remaining life fraction.
type ParticleView struct {
	X, Y  float64
	Size  int
	Ratio float64
	Color core.Color
}

// TextView is a floating score label.
type TextView struct {
	Text  string
	X, Y  float64
	Ratio float64
	Color core.Color
}

// View is everything a renderer needs for one frame.
type View struct {
	Width, Height  float64
	Mode           Mode
	Phase          Phase
	Paused         bool
	Round          int
	ItemsCollected int
	ItemsGoal      int
	Progress       float64
	Timed          bool
	TimeLeft       float64
	Score          int
	HighScore      int
	NewRecord      bool
	Combo          int
	Multiplier     float64
	ComboRatio     float64
	SpeedMult      float64
	Players        []PlayerView
	Enemies        []EnemyView
	Collectibles   []CollectibleView
	Particles      []ParticleView
	Texts          []TextView
	Clear          RoundClear
	TransitionLeft float64 // Fraction of the transition card time left
}

// View captures the current frame.
func (g *Game) View() View {
	combo, mult, ratio := g.score.Combo()
	r := g.round.Round()
	v := View{
		Width:          g.cfg.World.Width,
		Height:         g.cfg.World.Height,
		Mode:           g.mode,
		Phase:          g.phase,
		Paused:         g.paused,
		Round:          r,
		ItemsCollected: g.round.ItemsCollected(),
		ItemsGoal:      g.round.ItemsGoal(r),
		Progress:       g.round.Progress(),
		Timed:          g.round.Timed(),
		TimeLeft:       g.round.TimeLeft(),
		Score:          g.score.Score(),
		HighScore:      g.score.HighScore(),
		NewRecord:      g.score.NewRecord(),
		Combo:          combo,
		Multiplier:     mult,
		ComboRatio:     ratio,
		SpeedMult:      g.round.SpeedMultiplier(r),
		Clear:          g.lastClear,
	}
	if g.phase == PhaseTransition && g.tuning.transitionTicks > 0 {
		v.TransitionLeft = float64(g.timer) / float64(g.tuning.transitionTicks)
	}

	for _, p := range g.players {
		v.Players = append(v.Players, PlayerView{
			ID:           p.ID,
			X:            p.X,
			Y:            p.Y,
			Lives:        p.Lives,
			Score:        p.Score,
			Alpha:        p.Alpha,
			Fade:         p.Fade(g.tuning),
			Invulnerable: p.Invulnerable,
			Dying:        p.Dying,
			Dead:         p.IsDead(g.tuning),
			Tint:         p.Tint,
		})
	}
	g.enemies.Each(func(_ int, e *Enemy) {
		v.Enemies = append(v.Enemies, EnemyView{X: e.X, Y: e.Y, Angle: e.Angle})
	})
	g.items.Each(func(_ int, c *Collectible) {
		v.Collectibles = append(v.Collectibles, CollectibleView{X: c.X, Y: c.Y, Alpha: c.Alpha(g.tuning)})
	})
	g.particles.Each(func(p Particle) {
		v.Particles = append(v.Particles, ParticleView{X: p.X, Y: p.Y, Size: p.Size, Ratio: p.Ratio(), Color: p.Color})
	})
	for _, t := range g.score.Texts() {
		ratio := 0.0
		if t.MaxLife > 0 {
			ratio = float64(t.Life) / float64(t.MaxLife)
		}
		v.Texts = append(v.Texts, TextView{Text: t.Text, X: t.X, Y: t.Y, Ratio: ratio, Color: t.Color})
	}
	return v
}
