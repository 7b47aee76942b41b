// Package sysconfig holds the live DSP tuning parameters (AudioConfig),
// their validated ranges, the quality presets, and a snapshot-based store
// that lets capture, processing, and the HMI share the config without a
// shared mutable struct.
package sysconfig

import (
	"fmt"
	"math"
)

// AudioConfig is the active set of tuning parameters for capture and DSP.
//
// MinFreq, MaxFreq, and HopLength are not operator-editable (the HMI menu
// has no item for them) but are kept here because the DSP pipeline needs
// them per window and they must obey the same "snapshot per window"
// discipline as everything else. They are recomputed whenever SampleRate
// or FFTSize changes.
type AudioConfig struct {
	SampleRate       int
	FFTSize          int
	NMels            int
	CaptureDuration  int // seconds
	CaptureInterval  int // seconds
	NoiseThreshold   float64
	QualityLevel     int
	HopLength        int
	MinFreq          float64
	MaxFreq          float64
}

// Default returns the factory-default configuration: quality preset 3,
// with noise_threshold at the first value of its cycle (0.001). Presets do
// not touch noise_threshold, so it has to be seeded here.
func Default() AudioConfig {
	c := AudioConfig{QualityLevel: 3, NoiseThreshold: noiseThresholds[0]}
	applyPreset(&c, 3)
	return c
}

// deriveBand recomputes HopLength, MinFreq, and MaxFreq from SampleRate and
// FFTSize. Called after any change to either field so the invariants in
// spec §3 (hop_length ≤ fft_size, min_freq < max_freq ≤ sample_rate/2) hold
// without requiring the operator (or a preset) to set them explicitly.
func (c *AudioConfig) deriveBand() {
	c.HopLength = c.FFTSize / 2
	c.MinFreq = 50
	nyquist := float64(c.SampleRate) / 2
	c.MaxFreq = nyquist
	if c.MinFreq >= c.MaxFreq {
		c.MinFreq = c.MaxFreq / 2
	}
}

// Validate checks every invariant in spec §3. It does not mutate c.
func (c AudioConfig) Validate() error {
	if !isPowerOfTwo(c.FFTSize) {
		return fmt.Errorf("sysconfig: fft_size %d is not a power of two", c.FFTSize)
	}
	if !inSet(c.SampleRate, validSampleRates) {
		return fmt.Errorf("sysconfig: sample_rate %d out of range", c.SampleRate)
	}
	if !inSet(c.FFTSize, fftSizes) {
		return fmt.Errorf("sysconfig: fft_size %d out of range", c.FFTSize)
	}
	if !inSet(c.NMels, validNMels) {
		return fmt.Errorf("sysconfig: n_mels %d out of range", c.NMels)
	}
	if !inSet(c.CaptureDuration, validCaptureDurations) {
		return fmt.Errorf("sysconfig: capture_duration %d out of range", c.CaptureDuration)
	}
	if !inSet(c.CaptureInterval, validCaptureIntervals) {
		return fmt.Errorf("sysconfig: capture_interval %d out of range", c.CaptureInterval)
	}
	if !inSetFloat(c.NoiseThreshold, noiseThresholds) {
		return fmt.Errorf("sysconfig: noise_threshold %v out of range", c.NoiseThreshold)
	}
	if c.QualityLevel < 1 || c.QualityLevel > 5 {
		return fmt.Errorf("sysconfig: quality_level %d out of range", c.QualityLevel)
	}
	if c.HopLength <= 0 || c.HopLength > c.FFTSize {
		return fmt.Errorf("sysconfig: hop_length %d must be in (0, fft_size]", c.HopLength)
	}
	if !(c.MinFreq < c.MaxFreq) || c.MaxFreq > float64(c.SampleRate)/2 {
		return fmt.Errorf("sysconfig: frequency band [%v, %v] invalid for sample_rate %d", c.MinFreq, c.MaxFreq, c.SampleRate)
	}
	return nil
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

func inSet(v int, set []int) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func inSetFloat(v float64, set []float64) bool {
	for _, s := range set {
		if math.Abs(s-v) < 1e-9 {
			return true
		}
	}
	return false
}
