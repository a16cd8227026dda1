package rain

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/vovakirdan/makeup-rain/internal/config"
	"github.com/vovakirdan/makeup-rain/internal/core"
)

// HighScoreStore persists the best score. Implementations return 0 for a
// missing or unreadable record.
type HighScoreStore interface {
	LoadHighScore() (int, error)
	SaveHighScore(score int) error
}

// memoryHighScores keeps the record in memory only.
type memoryHighScores struct {
	best int
}

func (m *memoryHighScores) LoadHighScore() (int, error) { return m.best, nil }

func (m *memoryHighScores) SaveHighScore(score int) error {
	m.best = score
	return nil
}

// FloatingText is a short-lived label rising from a collection point.
type FloatingText struct {
	Text    string
	X, Y    float64
	VY      float64
	Life    int
	MaxLife int
	Color   core.Color
}

// comboStep maps a combo count threshold to its multiplier.
type comboStep struct {
	count      int
	multiplier float64
}

// ScoreSystem tracks the run score, the combo and the high score.
type ScoreSystem struct {
	cfg         config.ScoreConfig
	points      int
	steps       []comboStep
	window      int // Combo window in ticks
	rate        int
	logger      *log.Logger
	store       HighScoreStore
	score       int
	combo       int
	comboTimer  int
	multiplier  float64
	highScore   int
	startHigh   int
	texts       []FloatingText
	saveFailure error
}

// NewScoreSystem loads the high score from store. A failed load is logged
// and treated as 0.
func NewScoreSystem(cfg config.RainConfig, rate int, store HighScoreStore, logger *log.Logger) *ScoreSystem {
	steps := make([]comboStep, 0, len(cfg.Score.ComboMultipliers))
	for count, mult := range cfg.Score.ComboMultipliers {
		steps = append(steps, comboStep{count: count, multiplier: mult})
	}
	slices.SortFunc(steps, func(a, b comboStep) int { return a.count - b.count })

	if store == nil {
		store = &memoryHighScores{}
	}
	high, err := store.LoadHighScore()
	if err != nil {
		logger.Warn("cannot load high score, starting from 0", "err", err)
		high = 0
	}
	high = max(high, 0)

	return &ScoreSystem{
		cfg:        cfg.Score,
		points:     cfg.Collectible.Points,
		steps:      steps,
		window:     core.MillisToTicks(cfg.Score.ComboWindowMs, rate),
		rate:       rate,
		logger:     logger,
		store:      store,
		multiplier: 1,
		highScore:  high,
		startHigh:  high,
	}
}

// Reset clears the run score and combo. The high score is kept.
func (s *ScoreSystem) Reset() {
	s.score = 0
	s.combo = 0
	s.comboTimer = 0
	s.multiplier = 1
	s.startHigh = s.highScore
	s.texts = s.texts[:0]
}

// AddPoints scores one collection at (x, y): extends the combo, recomputes
// the multiplier and returns the points earned.
func (s *ScoreSystem) AddPoints(x, y float64) int {
	s.combo++
	s.comboTimer = s.window
	s.multiplier = s.MultiplierFor(s.combo)

	earned := int(float64(s.points) * s.multiplier)
	s.score += earned

	text := fmt.Sprintf("+%d", earned)
	color := core.ColorGold
	if s.multiplier > 1 {
		text += fmt.Sprintf(" x%.1f!", s.multiplier)
		color = core.ColorPink
	}
	s.addText(text, x, y, color, s.cfg.TextLifetime)

	if every := s.cfg.ComboBannerEvery; every > 0 && s.combo >= every && s.combo%every == 0 {
		s.addText(fmt.Sprintf("COMBO x%d!", s.combo), x, y-40, core.ColorCyan, s.cfg.ComboTextLifetime)
	}

	s.checkHighScore()
	return earned
}

// AddBonus credits round bonus points to the run total.
func (s *ScoreSystem) AddBonus(points int) {
	if points <= 0 {
		return
	}
	s.score += points
	s.checkHighScore()
}

// MultiplierFor returns the multiplier of the highest threshold not above count.
func (s *ScoreSystem) MultiplierFor(count int) float64 {
	mult := 1.0
	for _, st := range s.steps {
		if count >= st.count {
			mult = st.multiplier
		}
	}
	return mult
}

// BreakCombo resets the combo count and multiplier.
func (s *ScoreSystem) BreakCombo() {
	s.combo = 0
	s.comboTimer = 0
	s.multiplier = 1
}

// UpdateCombo decays the combo timer by one tick, breaking the combo at zero.
func (s *ScoreSystem) UpdateCombo() {
	if s.combo == 0 {
		return
	}
	s.comboTimer--
	if s.comboTimer <= 0 {
		s.BreakCombo()
	}
}

// UpdateTexts moves floating texts and drops expired ones.
func (s *ScoreSystem) UpdateTexts(t tuning) {
	n := 0
	for _, ft := range s.texts {
		ft.Y += ft.VY * t.dt
		ft.VY += 0.05 * t.dt
		ft.Life--
		if ft.Life > 0 {
			s.texts[n] = ft
			n++
		}
	}
	s.texts = s.texts[:n]
}

// Score returns the run total.
func (s *ScoreSystem) Score() int {
	return s.score
}

// HighScore returns the best score, including the current run.
func (s *ScoreSystem) HighScore() int {
	return s.highScore
}

// NewRecord reports whether this run beat the record it started with.
func (s *ScoreSystem) NewRecord() bool {
	return s.score > s.startHigh
}

// Combo returns the combo count, the multiplier and the fraction of the
// combo window left.
func (s *ScoreSystem) Combo() (count int, multiplier, ratio float64) {
	if s.window > 0 {
		ratio = max(0, float64(s.comboTimer)/float64(s.window))
	}
	return s.combo, s.multiplier, ratio
}

// Texts returns the live floating texts.
func (s *ScoreSystem) Texts() []FloatingText {
	return s.texts
}

// SaveFailure returns the last persistence error, nil after a good save.
func (s *ScoreSystem) SaveFailure() error {
	return s.saveFailure
}

func (s *ScoreSystem) addText(text string, x, y float64, c core.Color, lifetime int) {
	life := core.TicksFor(lifetime, s.rate)
	s.texts = append(s.texts, FloatingText{
		Text:    text,
		X:       x,
		Y:       y,
		VY:      -2,
		Life:    life,
		MaxLife: life,
		Color:   c,
	})
}

// checkHighScore writes through every improvement. A failed save keeps the
// in-memory record; the next improvement retries.
func (s *ScoreSystem) checkHighScore() {
	if s.score <= s.highScore {
		return
	}
	s.highScore = s.score
	if err := s.store.SaveHighScore(s.highScore); err != nil {
		s.saveFailure = err
		s.logger.Warn("cannot save high score", "score", s.highScore, "err", err)
		return
	}
	s.saveFailure = nil
}
