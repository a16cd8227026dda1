package rain

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/makeup-rain/internal/core"
)

// Visual characters for rendering
const (
	BarFull     = '█'
	BarEmpty    = '░'
	SparkBright = '*'
	SparkMid    = '+'
	SparkDim    = '.'
)

// Entity colors
const (
	ColorCactus = core.ColorGreen
	ColorMakeup = core.ColorPink
	ColorPlayer = core.ColorBrightCyan
)

// line is one row of a centered message box.
type line struct {
	text  string
	color core.Color
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	RenderView(dst, g.View(), g.sprites)
}

// RenderView draws a captured frame. World units are scaled to the screen
// so any terminal size shows the whole playfield.
func RenderView(dst *core.Screen, v View, sp Sprites) {
	dst.Clear()
	proj := projector{sx: float64(dst.Width()) / v.Width, sy: float64(dst.Height()) / v.Height}

	for _, p := range v.Particles {
		ch := SparkDim
		switch {
		case p.Ratio > 0.66:
			ch = SparkBright
		case p.Ratio > 0.33:
			ch = SparkMid
		}
		c := p.Color
		if p.Ratio < 0.5 {
			c = c.Dimmed()
		}
		x, y := proj.cell(p.X, p.Y)
		dst.SetWithColor(x, y, ch, c)
	}

	for _, c := range v.Collectibles {
		color := ColorMakeup
		if c.Alpha < 240 {
			color = color.Dimmed()
		}
		x, y := proj.cell(c.X, c.Y)
		dst.DrawSprite(x, y, sp.Collectible.Art, color)
	}

	for _, e := range v.Enemies {
		x, y := proj.cell(e.X, e.Y)
		dst.DrawSprite(x, y, spinArt(sp.Enemy.Art, e.Angle), ColorCactus)
	}

	for _, p := range v.Players {
		if p.Dead {
			continue
		}
		color := ColorPlayer
		if p.Tint != core.ColorDefault {
			color = p.Tint
		}
		alpha := p.Alpha
		if p.Dying {
			alpha = p.Fade
		}
		if alpha < 64 {
			continue
		}
		if alpha < 200 {
			color = color.Dimmed()
		}
		x, y := proj.cell(p.X, p.Y)
		dst.DrawSprite(x, y, sp.Player.Art, color)
	}

	for _, t := range v.Texts {
		c := t.Color
		if t.Ratio < 0.4 {
			c = c.Dimmed()
		}
		x, y := proj.cell(t.X, t.Y)
		dst.DrawTextColor(x-len([]rune(t.Text))/2, y, t.Text, c)
	}

	drawHUD(dst, v, sp)

	switch {
	case v.Phase == PhaseGameOver:
		drawMessage(dst, []line{
			{"GAME OVER", core.ColorBrightRed},
			{fmt.Sprintf("Score: %d", v.Score), core.ColorGold},
		})
	case v.Paused:
		drawMessage(dst, []line{
			{"PAUSED", core.ColorBrightYellow},
			{"P resume  |  Esc menu", core.ColorGray},
		})
	case v.Phase == PhaseTransition:
		drawMessage(dst, transitionCard(v))
	}
}

// transitionCard lists the finished round, its bonus and the next round.
func transitionCard(v View) []line {
	speedColor := core.ColorBrightYellow
	if v.SpeedMult >= 2 {
		speedColor = core.ColorBrightRed
	}
	return []line{
		{fmt.Sprintf("ROUND %d CLEAR!", v.Clear.Round), core.ColorBrightCyan},
		{fmt.Sprintf("Bonus +%d", v.Clear.Bonus), core.ColorGold},
		{fmt.Sprintf("Next: Round %d", v.Clear.Next), core.ColorPink},
		{fmt.Sprintf("Speed x%.1f", v.SpeedMult), speedColor},
	}
}

// drawHUD draws the round, progress, score and lives rows.
func drawHUD(dst *core.Screen, v View, sp Sprites) {
	x := 1
	x = put(dst, x, 0, fmt.Sprintf("Round %d ", v.Round), core.ColorBrightCyan)
	x = put(dst, x, 0, progressBar(v.Progress, 10), core.ColorPink)
	x = put(dst, x, 0, fmt.Sprintf(" %d/%d  ", v.ItemsCollected, v.ItemsGoal), core.ColorWhite)

	if v.Timed {
		c := core.ColorWhite
		if v.TimeLeft < 10 {
			c = core.ColorBrightRed
		}
		x = put(dst, x, 0, fmt.Sprintf("%2.0fs  ", math.Ceil(v.TimeLeft)), c)
	}
	if v.Combo > 0 {
		put(dst, x, 0, fmt.Sprintf("Combo %d x%.1f %s", v.Combo, v.Multiplier, progressBar(v.ComboRatio, 5)), core.ColorCyan)
	}

	hi := fmt.Sprintf("Hi %d ", v.HighScore)
	dst.DrawTextColor(dst.Width()-len(hi), 0, hi, core.ColorGray)

	if v.Mode == ModeCoop && len(v.Players) == 2 {
		p1, p2 := v.Players[0], v.Players[1]
		put(dst, 1, 1, playerLine(p1, sp.Life), p1.Tint)
		right := playerLine(p2, sp.Life)
		dst.DrawTextColor(dst.Width()-len([]rune(right))-1, 1, right, p2.Tint)
		total := fmt.Sprintf("Total %d", v.Score)
		dst.DrawTextCentered(1, total, core.ColorGold)
		return
	}

	if len(v.Players) > 0 {
		p := v.Players[0]
		x = put(dst, 1, 1, fmt.Sprintf("Score %d  ", v.Score), core.ColorGold)
		put(dst, x, 1, strings.Repeat(sp.Life, max(p.Lives, 0)), core.ColorBrightRed)
	}
}

// playerLine formats a cooperative player's score and lives.
func playerLine(p PlayerView, life string) string {
	return fmt.Sprintf("%s %d %s", p.ID, p.Score, strings.Repeat(life, max(p.Lives, 0)))
}

// progressBar renders ratio as a bar of width cells.
func progressBar(ratio float64, width int) string {
	filled := core.Clamp(int(math.Round(ratio*float64(width))), 0, width)
	return strings.Repeat(string(BarFull), filled) + strings.Repeat(string(BarEmpty), width-filled)
}

// put draws text and returns the column after it.
func put(dst *core.Screen, x, y int, text string, c core.Color) int {
	dst.DrawTextColor(x, y, text, c)
	return x + len([]rune(text))
}

// drawMessage draws a box in the center of the screen.
func drawMessage(dst *core.Screen, lines []line) {
	w := 0
	for _, l := range lines {
		w = max(w, len([]rune(l.text)))
	}
	boxW := w + 4
	boxH := len(lines) + 2
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorPurple)
	for i, l := range lines {
		dst.DrawTextCentered(box.Y+1+i, l.text, l.color)
	}
}

// projector maps world units to screen cells.
type projector struct {
	sx, sy float64
}

func (p projector) cell(x, y float64) (int, int) {
	return int(math.Floor(x * p.sx)), int(math.Floor(y * p.sy))
}

// turnedRunes maps glyphs to their look after a half turn.
var turnedRunes = map[rune]rune{
	'(': ')', ')': '(',
	'<': '>', '>': '<',
	'[': ']', ']': '[',
	'{': '}', '}': '{',
	'.': '\'', '\'': '.',
	'^': 'v', 'v': '^',
}

// spinArt approximates rotation in a grid of glyphs: the art is turned by a
// half turn while the angle points into the lower half of the circle.
func spinArt(art []string, angle float64) []string {
	a := math.Mod(angle, 360)
	if a < 0 {
		a += 360
	}
	if a < 90 || a >= 270 {
		return art
	}

	cols := 0
	for _, row := range art {
		cols = max(cols, len([]rune(row)))
	}
	out := make([]string, len(art))
	for i, row := range art {
		rs := []rune(row)
		turned := make([]rune, cols)
		for j := range turned {
			turned[j] = ' '
		}
		for j, r := range rs {
			if t, ok := turnedRunes[r]; ok {
				r = t
			}
			turned[cols-1-j] = r
		}
		out[len(art)-1-i] = string(turned)
	}
	return out
}
