package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// melody is a bright arpeggio in C major, in Hz. Zero is a rest.
var melody = []float64{
	523.25, 659.25, 783.99, 1046.50,
	783.99, 659.25, 523.25, 0,
	587.33, 698.46, 880.00, 1174.66,
	880.00, 698.46, 587.33, 0,
}

const (
	noteLength = 180 * time.Millisecond
	tuneLevel  = 0.2
)

// Tune is an endless synthesized loop used when no music file is set.
type Tune struct {
	rate    beep.SampleRate
	noteLen int
	pos     int
	phase   float64
}

// NewTune creates the built-in loop at rate.
func NewTune(rate beep.SampleRate) *Tune {
	return &Tune{rate: rate, noteLen: max(rate.N(noteLength), 1)}
}

// Stream fills samples with the next part of the loop. It never ends.
func (t *Tune) Stream(samples [][2]float64) (n int, ok bool) {
	release := max(t.noteLen/4, 1)
	for i := range samples {
		note := melody[(t.pos/t.noteLen)%len(melody)]
		left := t.noteLen - t.pos%t.noteLen

		v := 0.0
		if note > 0 {
			env := 1.0
			if left < release {
				env = float64(left) / float64(release)
			}
			v = tuneLevel * env * math.Sin(2*math.Pi*t.phase)
			t.phase += note / float64(t.rate)
			t.phase -= math.Floor(t.phase)
		}
		samples[i][0] = v
		samples[i][1] = v

		t.pos = (t.pos + 1) % (t.noteLen * len(melody))
	}
	return len(samples), true
}

// Err always returns nil.
func (t *Tune) Err() error { return nil }
