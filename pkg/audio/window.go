// Package audio implements the Audio Source (C1): it reads PCM samples
// from an I²S-style driver and hands off fixed-size capture windows to the
// DSP stage through a single-slot channel.
package audio

import "github.com/audiencelink/tvpulse/pkg/sysconfig"

// Window is one unit of work handed from capture to processing (spec §3,
// "AudioWindow"). Samples are normalized to [-1.0, +1.0]; Timestamp is the
// microsecond Unix time at the start of acquisition. Config is the full
// snapshot active at acquisition start, carried alongside the window so
// processing never has to re-read the store mid-window (spec §4.5's
// invariant: "the in-flight window uses the parameters that were active
// at its acquisition start").
type Window struct {
	Samples         []float32
	Timestamp       int64 // microseconds since Unix epoch
	SampleRate      int
	CaptureDuration int // seconds
	Config          sysconfig.AudioConfig
}

// ExpectedSamples returns sample_rate × capture_duration, the exact length
// Samples must have per spec §3's invariant.
func (w *Window) ExpectedSamples() int {
	return w.SampleRate * w.CaptureDuration
}
