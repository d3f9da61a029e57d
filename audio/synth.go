package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// waveform selects an oscillator shape
type waveform int

const (
	sine waveform = iota
	square
	saw
	noise
)

// note is one enveloped tone; notes of a cue play back to back
type note struct {
	freq    float64 // Hz, ignored for noise
	wave    waveform
	length  time.Duration
	attack  time.Duration
	release time.Duration
}

// sample returns the wave value at phase in [0, 1)
func (w waveform) sample(phase float64, rng *rand.Rand) float64 {
	switch w {
	case square:
		if phase < 0.5 {
			return 1
		}
		return -1
	case saw:
		return 2 * (phase - 0.5)
	case noise:
		return rng.Float64()*2 - 1
	}
	return math.Sin(2 * math.Pi * phase)
}

// gain is the linear envelope level at sample i of a note n samples long
func gain(i, n, attack, release int) float64 {
	releaseStart := n - release
	if releaseStart < attack {
		releaseStart = attack
	}
	switch {
	case i < attack:
		return float64(i) / float64(attack)
	case i >= releaseStart && release > 0:
		return float64(n-i) / float64(release)
	}
	return 1
}

// synthesize renders notes into one mono buffer at unity gain
// Noise is seeded so a cue always renders the same samples
func synthesize(notes []note, rate beep.SampleRate, seed int64) []float64 {
	total := 0
	for _, nt := range notes {
		total += rate.N(nt.length)
	}
	buf := make([]float64, 0, total)
	rng := rand.New(rand.NewSource(seed))

	for _, nt := range notes {
		n := rate.N(nt.length)
		att, rel := rate.N(nt.attack), rate.N(nt.release)
		step := nt.freq / float64(rate)
		phase := 0.0
		for i := 0; i < n; i++ {
			buf = append(buf, nt.wave.sample(phase, rng)*gain(i, n, att, rel))
			phase += step
			phase -= math.Floor(phase)
		}
	}
	return buf
}

// clip streams a mono buffer to both channels once
type clip struct {
	data []float64
	pos  int
}

func (c *clip) Stream(samples [][2]float64) (int, bool) {
	if c.pos >= len(c.data) {
		return 0, false
	}
	n := toStereo(samples, c.data[c.pos:])
	c.pos += n
	return n, true
}

func (c *clip) Err() error { return nil }

func toStereo(dst [][2]float64, src []float64) int {
	n := min(len(dst), len(src))
	for i := 0; i < n; i++ {
		dst[i][0], dst[i][1] = src[i], src[i]
	}
	return n
}

// withVolume scales s linearly; volume 0 is silence
func withVolume(s beep.Streamer, volume float64) beep.Streamer {
	volume = max(0, min(1, volume))
	return &effects.Gain{Streamer: s, Gain: volume - 1}
}
