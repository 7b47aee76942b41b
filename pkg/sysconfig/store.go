package sysconfig

import (
	"context"
	"log/slog"
	"sync"
)

// Field names a single operator-editable parameter, matching the 7
// parameter rows of the HMI config menu (spec §4.6); "Exit" is handled by
// the HMI directly and has no Field.
type Field int

const (
	FieldSampleRate Field = iota
	FieldFFTSize
	FieldNMels
	FieldCaptureDuration
	FieldCaptureInterval
	FieldNoiseThreshold
	FieldQualityLevel
)

func (f Field) String() string {
	switch f {
	case FieldSampleRate:
		return "sample_rate"
	case FieldFFTSize:
		return "fft_size"
	case FieldNMels:
		return "n_mels"
	case FieldCaptureDuration:
		return "capture_duration"
	case FieldCaptureInterval:
		return "capture_interval"
	case FieldNoiseThreshold:
		return "noise_threshold"
	case FieldQualityLevel:
		return "quality_level"
	default:
		return "unknown"
	}
}

// Persister is the NVS-like backing store for the config blob. pkg/nvstore
// implements it over BadgerDB; tests use an in-memory stub.
type Persister interface {
	Save(ctx context.Context, key string, blob []byte) error
	Load(ctx context.Context, key string) ([]byte, error)
}

const nvsKey = "audio_config"

// Store holds the single active AudioConfig behind a mutex and hands out
// immutable snapshots to readers. This is the "single-writer snapshot swap"
// pattern spec §9 asks for in place of the source's unsynchronized shared
// struct: C1/C2/C6 call Snapshot() and get a value they can use for an
// entire capture cycle without it changing underneath them; only Set,
// Advance, and ApplyPreset (driven by the HMI/button handler) ever mutate
// the live config, under the mutex.
type Store struct {
	mu        sync.RWMutex
	cfg       AudioConfig
	persister Persister
	log       *slog.Logger
}

// NewStore creates a Store seeded with the default configuration.
func NewStore(persister Persister, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{cfg: Default(), persister: persister, log: log}
}

// Snapshot returns a copy of the currently active config. Cheap: no
// allocation beyond the returned value, safe to call from any task.
func (s *Store) Snapshot() AudioConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Set validates and applies a single field, per spec §4.5: "validates
// against range in §6; rejects out-of-range values." On rejection the
// previous value is left untouched.
func (s *Store) Set(field Field, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.cfg
	switch field {
	case FieldSampleRate:
		v, ok := value.(int)
		if !ok || !inSet(v, sampleRates) {
			return errRange(field.String(), value)
		}
		next.SampleRate = v
		next.deriveBand()
	case FieldFFTSize:
		v, ok := value.(int)
		if !ok || !inSet(v, fftSizes) {
			return errRange(field.String(), value)
		}
		next.FFTSize = v
		next.deriveBand()
	case FieldNMels:
		v, ok := value.(int)
		if !ok || !inSet(v, nMelsValues) {
			return errRange(field.String(), value)
		}
		next.NMels = v
	case FieldCaptureDuration:
		v, ok := value.(int)
		if !ok || !inSet(v, captureDurations) {
			return errRange(field.String(), value)
		}
		next.CaptureDuration = v
	case FieldCaptureInterval:
		v, ok := value.(int)
		if !ok || !inSet(v, captureIntervals) {
			return errRange(field.String(), value)
		}
		next.CaptureInterval = v
	case FieldNoiseThreshold:
		v, ok := value.(float64)
		if !ok || !inSetFloat(v, noiseThresholds) {
			return errRange(field.String(), value)
		}
		next.NoiseThreshold = v
	case FieldQualityLevel:
		v, ok := value.(int)
		if !ok || v < 1 || v > 5 {
			return errRange(field.String(), value)
		}
		next.QualityLevel = v
	default:
		return errRange("field", field)
	}

	if err := next.Validate(); err != nil {
		return err
	}
	s.cfg = next
	return nil
}

// Advance moves field to its next value in the §6 wrap-around cycle and
// applies it. This is what Button 2 does on a parameter menu item.
func (s *Store) Advance(field Field) (AudioConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.cfg
	switch field {
	case FieldSampleRate:
		next.SampleRate = nextInt(next.SampleRate, sampleRates)
		next.deriveBand()
	case FieldFFTSize:
		next.FFTSize = nextInt(next.FFTSize, fftSizes)
		next.deriveBand()
	case FieldNMels:
		next.NMels = nextInt(next.NMels, nMelsValues)
	case FieldCaptureDuration:
		next.CaptureDuration = nextInt(next.CaptureDuration, captureDurations)
	case FieldCaptureInterval:
		next.CaptureInterval = nextInt(next.CaptureInterval, captureIntervals)
	case FieldNoiseThreshold:
		next.NoiseThreshold = nextFloat(next.NoiseThreshold, noiseThresholds)
	case FieldQualityLevel:
		level := next.QualityLevel%5 + 1
		applyPreset(&next, level)
		s.cfg = next
		return s.cfg, nil
	default:
		return s.cfg, errRange("field", field)
	}
	if err := next.Validate(); err != nil {
		return s.cfg, err
	}
	s.cfg = next
	return s.cfg, nil
}

// ApplyPreset overwrites the five preset-controlled fields atomically.
func (s *Store) ApplyPreset(level int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := ApplyPreset(s.cfg, level)
	if err != nil {
		return err
	}
	s.cfg = next
	return nil
}

// Persist writes the current config to the NVS-like backing store under
// "audio_config". Errors are logged but otherwise swallowed: spec §7 says
// the device must stay operational even if NVS writes fail.
func (s *Store) Persist(ctx context.Context) {
	blob := s.Snapshot().Encode()
	if s.persister == nil {
		return
	}
	if err := s.persister.Save(ctx, nvsKey, blob); err != nil {
		s.log.Warn("sysconfig: persist failed", "error", err)
	}
}

// Load reads the config from the backing store. On any failure (missing
// key, corrupt blob, backend error) the default config is used silently,
// per spec §4.5/§7.
func (s *Store) Load(ctx context.Context) {
	if s.persister == nil {
		return
	}
	blob, err := s.persister.Load(ctx, nvsKey)
	if err != nil {
		s.log.Debug("sysconfig: load failed, using defaults", "error", err)
		return
	}
	cfg, err := Decode(blob)
	if err != nil || cfg.Validate() != nil {
		s.log.Warn("sysconfig: stored config invalid, using defaults", "error", err)
		return
	}
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
}
