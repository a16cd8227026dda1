package rain

import "github.com/vovakirdan/makeup-rain/internal/core"

// collidePlayer resolves one active player's overlaps for this tick.
// Items are checked first; obstacles only while the player is vulnerable.
// Returns true when a collection completed the round, in which case the
// transition has already started and the rest of the tick's collisions
// are skipped.
func (g *Game) collidePlayer(p *Player) bool {
	pm := g.sprites.Player.Mask
	cm := g.sprites.Collectible.Mask

	for i := 0; i < g.items.Len(); i++ {
		if !g.items.Alive(i) {
			continue
		}
		c := g.items.At(i)
		if !pm.Overlaps(p.X, p.Y, cm, c.X, c.Y) {
			continue
		}
		g.items.Mark(i)

		cx, cy := c.X+cm.Width()/2, c.Y+cm.Height()/2
		p.Score += g.score.AddPoints(cx, cy)
		g.particles.Burst(cx, cy, p.burstColor(core.ColorPink), g.cfg.Particles.CollectBurst)

		if g.round.OnItemCollected() {
			g.startTransition()
			return true
		}
	}

	if p.Invulnerable {
		return false
	}

	em := g.sprites.Enemy.Mask
	hit := false
	for i := 0; i < g.enemies.Len(); i++ {
		if !g.enemies.Alive(i) {
			continue
		}
		e := g.enemies.At(i)
		if pm.Overlaps(p.X, p.Y, em, e.X, e.Y) {
			g.enemies.Mark(i)
			hit = true
		}
	}
	if !hit {
		return false
	}

	p.TakeDamage(g.tuning)
	g.score.BreakCombo()

	cx, cy := p.Center()
	if p.Dying {
		g.particles.Burst(cx, cy, p.burstColor(core.ColorBrightWhite), g.cfg.Particles.DeathBurst)
		g.logger.Debug("player down", "player", p.ID, "round", g.round.Round())
	} else {
		g.particles.Burst(cx, cy, core.ColorBrightRed, g.cfg.Particles.DamageBurst)
	}
	return false
}

// burstColor returns the player's tint, or fallback for an untinted player.
func (p *Player) burstColor(fallback core.Color) core.Color {
	if p.Tint == core.ColorDefault {
		return fallback
	}
	return p.Tint
}
