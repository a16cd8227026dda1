package rain

import (
	"strings"

	"github.com/charmbracelet/log"
	"github.com/vovakirdan/makeup-rain/internal/config"
	"github.com/vovakirdan/makeup-rain/internal/core"
)

// Sprite size limits in glyph cells.
const (
	maxSpriteCols = 16
	maxSpriteRows = 6
)

// placeholderArt replaces art that cannot be used.
var placeholderArt = []string{"[?]"}

// Sprite is ASCII art plus the collision mask derived from it.
type Sprite struct {
	Art  []string
	Mask core.Mask
}

// Width returns the sprite width in world units.
func (s Sprite) Width() float64 {
	return s.Mask.Width()
}

// Height returns the sprite height in world units.
func (s Sprite) Height() float64 {
	return s.Mask.Height()
}

// Sprites holds every drawable shape of a run.
type Sprites struct {
	Player      Sprite
	Enemy       Sprite
	Collectible Sprite
	Life        string
}

// LoadSprites builds sprites from configured art. Unusable art is replaced by
// a visible placeholder and logged, never failing the run.
func LoadSprites(cfg config.RainConfig, logger *log.Logger) Sprites {
	build := func(name string, art []string) Sprite {
		if reason := invalidArt(art); reason != "" {
			logger.Warn("sprite replaced by placeholder", "sprite", name, "reason", reason)
			art = placeholderArt
		}
		return Sprite{
			Art:  art,
			Mask: core.NewMask(art, cfg.World.CellWidth, cfg.World.CellHeight),
		}
	}

	life := cfg.Sprites.Life
	if strings.TrimSpace(life) == "" {
		life = "♥"
	}

	return Sprites{
		Player:      build("player", cfg.Sprites.Player),
		Enemy:       build("enemy", cfg.Sprites.Enemy),
		Collectible: build("collectible", cfg.Sprites.Collectible),
		Life:        life,
	}
}

// invalidArt returns why art cannot be used, or "" if it can.
func invalidArt(art []string) string {
	if len(art) == 0 {
		return "empty"
	}
	if len(art) > maxSpriteRows {
		return "too tall"
	}
	solid := false
	for _, row := range art {
		if len([]rune(row)) > maxSpriteCols {
			return "too wide"
		}
		if strings.TrimSpace(row) != "" {
			solid = true
		}
	}
	if !solid {
		return "blank"
	}
	return ""
}
