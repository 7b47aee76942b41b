package audio

import (
	"context"
	"math"
	"math/rand"
)

// SynthDriver is a Driver that generates samples instead of reading real
// I²S hardware, used by the `tvpulse run --source=synth` simulator mode and
// by tests. It never fails, so it only ever produces full windows.
type SynthDriver struct {
	SampleRate int

	// ToneHz and ToneAmplitude describe a sine wave component, in addition
	// to NoiseAmplitude white noise. A silent room is ToneAmplitude=0,
	// NoiseAmplitude=0.
	ToneHz          float64
	ToneAmplitude   float64
	NoiseAmplitude  float64

	phase float64
	rng   *rand.Rand
}

// NewSilentDriver returns a SynthDriver producing exact zeros, matching the
// "silent room" scenario of spec §8.
func NewSilentDriver(sampleRate int) *SynthDriver {
	return &SynthDriver{SampleRate: sampleRate}
}

// NewToneDriver returns a SynthDriver producing a pure sine wave at hz with
// the given amplitude, matching the "steady tone" scenario of spec §8.
func NewToneDriver(sampleRate int, hz, amplitude float64) *SynthDriver {
	return &SynthDriver{SampleRate: sampleRate, ToneHz: hz, ToneAmplitude: amplitude}
}

// ReadFrames implements Driver.
func (d *SynthDriver) ReadFrames(ctx context.Context, n int) ([]int32, error) {
	if d.rng == nil {
		d.rng = rand.New(rand.NewSource(1))
	}
	out := make([]int32, n)
	step := 2 * math.Pi * d.ToneHz / float64(d.SampleRate)
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		v := d.ToneAmplitude * math.Sin(d.phase)
		d.phase += step
		if d.NoiseAmplitude > 0 {
			v += d.NoiseAmplitude * (2*d.rng.Float64() - 1)
		}
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		out[i] = int32(v * math.MaxInt32)
	}
	return out, nil
}
