// internal/sound/tone.go
package sound

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave форма волны осциллятора.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveTriangle
)

// tone генерирует волну с экспоненциальным скольжением частоты
// и затуханием громкости до 1% к концу длительности.
type tone struct {
	wave     Wave
	from, to float64
	phase    float64
	position int
	duration int
	rate     beep.SampleRate
}

// NewTone creates a streamer that sweeps from one frequency to another.
func NewTone(wave Wave, from, to float64, d time.Duration, rate beep.SampleRate) beep.Streamer {
	if to <= 0 {
		to = 0.01
	}
	return &tone{wave: wave, from: from, to: to, duration: rate.N(d), rate: rate}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.duration {
			return i, i > 0
		}
		p := float64(t.position) / float64(t.duration)
		freq := t.from * math.Pow(t.to/t.from, p)
		gain := math.Pow(0.01, p)

		var v float64
		switch t.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * t.phase)
		case WaveSquare:
			v = 1
			if t.phase >= 0.5 {
				v = -1
			}
		case WaveSaw:
			v = 2 * (t.phase - 0.5)
		case WaveTriangle:
			v = 4*math.Abs(t.phase-0.5) - 1
		}
		samples[i][0] = v * gain
		samples[i][1] = v * gain

		t.phase += freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// withVolume scales a streamer linearly. Zero or less is silence.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// note одна нота патча. Delay задаёт сдвиг начала относительно звука.
type note struct {
	wave     Wave
	from, to float64
	duration time.Duration
	volume   float64
	delay    time.Duration
}

func (n note) streamer(rate beep.SampleRate) beep.Streamer {
	s := withVolume(NewTone(n.wave, n.from, n.to, n.duration, rate), n.volume)
	if n.delay > 0 {
		s = beep.Seq(beep.Silence(rate.N(n.delay)), s)
	}
	return s
}

// build смешивает ноты патча в один поток.
func build(notes []note, rate beep.SampleRate) beep.Streamer {
	if len(notes) == 1 {
		return notes[0].streamer(rate)
	}
	streams := make([]beep.Streamer, len(notes))
	for i, n := range notes {
		streams[i] = n.streamer(rate)
	}
	return beep.Mix(streams...)
}
