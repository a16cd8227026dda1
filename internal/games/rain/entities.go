package rain

import (
	"fmt"
	"math"

	"github.com/vovakirdan/makeup-rain/internal/config"
	"github.com/vovakirdan/makeup-rain/internal/core"
)

// Alpha values exposed to renderers.
const (
	AlphaOpaque = 255
	AlphaBlink  = 128
)

// tuning holds per-tick values derived from the config and tick rate.
type tuning struct {
	dt              float64 // Reference frames per tick
	worldW          float64
	worldH          float64
	cullY           float64
	playerSpeed     float64 // Units per reference frame
	invulnTicks     int
	deathTicks      int
	blinkTicks      int
	driftAmp        float64
	driftStep       float64 // Degrees per reference frame
	pulseStep       float64
	pulseDepth      float64
	transitionTicks int
}

func newTuning(cfg config.RainConfig, rate int) tuning {
	driftAmp := 0.0
	if cfg.Collectible.DriftStep != 0 {
		// Integral of speed*cos(phase) with the phase advancing DriftStep degrees per frame.
		driftAmp = cfg.Collectible.DriftSpeed / core.Radians(cfg.Collectible.DriftStep)
	}
	return tuning{
		dt:              core.PerTick(1, rate),
		worldW:          cfg.World.Width,
		worldH:          cfg.World.Height,
		cullY:           cfg.World.Height + cfg.World.CullMargin,
		playerSpeed:     cfg.Player.Speed,
		invulnTicks:     core.MillisToTicks(cfg.Player.InvulnerableMs, rate),
		deathTicks:      core.TicksFor(cfg.Player.DeathFrames, rate),
		blinkTicks:      max(core.TicksFor(cfg.Player.BlinkFrames, rate), 1),
		driftAmp:        driftAmp,
		driftStep:       cfg.Collectible.DriftStep,
		pulseStep:       cfg.Collectible.PulseStep,
		pulseDepth:      float64(cfg.Collectible.PulseDepth),
		transitionTicks: core.TicksFor(cfg.Round.TransitionFrames, rate),
	}
}

// Player is a catcher moving along the bottom of the playfield.
type Player struct {
	ID                core.PlayerID
	X, Y              float64
	W, H              float64
	Lives             int
	Invulnerable      bool
	InvulnerableTimer int
	Alpha             int
	Score             int
	Dying             bool
	DeathTimer        int
	Tint              core.Color
}

// NewPlayer places a player centered on x, resting on the bottom margin.
func NewPlayer(id core.PlayerID, centerX float64, sprite Sprite, cfg config.RainConfig, tint core.Color) *Player {
	w, h := sprite.Width(), sprite.Height()
	return &Player{
		ID:    id,
		X:     math.Floor(centerX - w/2),
		Y:     cfg.World.Height - h - cfg.Player.BottomMargin,
		W:     w,
		H:     h,
		Lives: cfg.Player.Lives,
		Alpha: AlphaOpaque,
		Tint:  tint,
	}
}

// Update applies one tick of movement and timers.
// A dying player ignores input and only advances the death animation.
func (p *Player) Update(left, right bool, t tuning) {
	if p.Lives < 0 {
		panic(fmt.Sprintf("rain: player %s has %d lives", p.ID, p.Lives))
	}
	if p.Dying {
		p.DeathTimer++
		return
	}

	step := t.playerSpeed * t.dt
	if left {
		p.X -= step
	}
	if right {
		p.X += step
	}
	p.X = core.ClampF(p.X, 0, t.worldW-p.W)

	if p.Invulnerable {
		p.InvulnerableTimer--
		if p.InvulnerableTimer <= 0 {
			p.Invulnerable = false
			p.Alpha = AlphaOpaque
		} else if (p.InvulnerableTimer/t.blinkTicks)%2 == 0 {
			p.Alpha = AlphaBlink
		} else {
			p.Alpha = AlphaOpaque
		}
	}
}

// TakeDamage removes a life unless the player is protected.
// Losing the last life starts the death animation; otherwise the player
// becomes invulnerable for a while. Reports whether damage was applied.
func (p *Player) TakeDamage(t tuning) bool {
	if p.Invulnerable || p.Lives <= 0 {
		return false
	}
	p.Lives--
	if p.Lives == 0 {
		p.Dying = true
		p.DeathTimer = 0
		return true
	}
	p.Invulnerable = true
	p.InvulnerableTimer = t.invulnTicks
	return true
}

// Active reports whether the player still takes part in collisions.
func (p *Player) Active() bool {
	return p.Lives > 0 && !p.Dying
}

// IsDead reports whether the death animation has finished. Terminal.
func (p *Player) IsDead(t tuning) bool {
	return p.Dying && p.DeathTimer > t.deathTicks
}

// Fade returns the opacity during the death animation, 255 otherwise.
func (p *Player) Fade(t tuning) int {
	if !p.Dying {
		return AlphaOpaque
	}
	if t.deathTicks <= 0 {
		return 0
	}
	f := int(255 * (1 - float64(p.DeathTimer)/float64(t.deathTicks)))
	return core.Clamp(f, 0, 255)
}

// Center returns the middle of the player's box.
func (p *Player) Center() (float64, float64) {
	return p.X + p.W/2, p.Y + p.H/2
}

// Enemy is a falling obstacle.
type Enemy struct {
	X, Y  float64
	Speed float64 // Units per reference frame
	Spin  float64 // Degrees per reference frame
	Angle float64
}

// Update moves the obstacle and reports whether it is still in play.
func (e *Enemy) Update(t tuning) bool {
	e.Y += e.Speed * t.dt
	e.Angle += e.Spin * t.dt
	return e.Y <= t.cullY
}

// Collectible is a falling makeup item.
type Collectible struct {
	X, Y  float64
	BaseX float64
	Speed float64
	Phase float64 // Drift phase in degrees
	Pulse float64 // Alpha pulse phase in degrees
}

// NewCollectible creates an item at (x, y) with its drift phase at phase degrees.
// The drift is anchored so the item starts exactly at x.
func NewCollectible(x, y, speed, phase float64, t tuning) Collectible {
	return Collectible{
		X:     x,
		Y:     y,
		BaseX: x - t.driftAmp*math.Sin(core.Radians(phase)),
		Speed: speed,
		Phase: phase,
	}
}

// Update moves the item and reports whether it is still in play.
// Horizontal drift is a bounded sine around BaseX.
func (c *Collectible) Update(t tuning) bool {
	c.Y += c.Speed * t.dt
	c.Phase += t.driftStep * t.dt
	c.Pulse += t.pulseStep * t.dt
	c.X = c.BaseX + t.driftAmp*math.Sin(core.Radians(c.Phase))
	return c.Y <= t.cullY
}

// Alpha returns the cosmetic glow.
func (c *Collectible) Alpha(t tuning) int {
	pulse := math.Abs(math.Sin(core.Radians(c.Pulse)))
	return int(255 - pulse*t.pulseDepth)
}
