package audio

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/audiencelink/tvpulse/pkg/sysconfig"
)

// Source drives the Audio Capture task (C1): acquire a window, hand it off
// on a single-slot channel, sleep for capture_interval, repeat.
type Source struct {
	Driver Driver
	Config *sysconfig.Store
	Log    *slog.Logger

	// Now is overridable in tests; defaults to time.Now.
	Now func() time.Time
}

// NewSource constructs a Source ready to Run.
func NewSource(driver Driver, cfg *sysconfig.Store, log *slog.Logger) *Source {
	if log == nil {
		log = slog.Default()
	}
	return &Source{Driver: driver, Config: cfg, Log: log, Now: time.Now}
}

// AcquireWindow blocks until exactly sample_rate × capture_duration samples
// have been read, using the config snapshot active at the start of the
// call (spec §4.5's "in-flight window uses the parameters that were active
// at its acquisition start").
func (s *Source) AcquireWindow(ctx context.Context) (*Window, error) {
	cfg := s.Config.Snapshot()
	n := cfg.SampleRate * cfg.CaptureDuration

	start := s.Now()
	raw, err := s.Driver.ReadFrames(ctx, n)
	if err != nil {
		return nil, err
	}

	samples := make([]float32, len(raw))
	for i, v := range raw {
		samples[i] = float32(v) / float32(math.MaxInt32)
	}

	return &Window{
		Samples:         samples,
		Timestamp:       start.UnixMicro(),
		SampleRate:      cfg.SampleRate,
		CaptureDuration: cfg.CaptureDuration,
		Config:          cfg,
	}, nil
}

// Run repeatedly acquires windows and offers them on out, a channel with
// capacity 1 (the single-slot queue of spec §4.4). If out already holds an
// unconsumed window, the newly acquired one is dropped and a warning is
// logged — the window already in the slot survives, and the newest one
// produced while the slot is still full is the one thrown away, matching
// spec §4.4/§5's drop policy.
//
// Run returns only on a fatal driver error or context cancellation.
func (s *Source) Run(ctx context.Context, out chan<- *Window) error {
	for {
		w, err := s.AcquireWindow(ctx)
		if err != nil {
			return err
		}

		select {
		case out <- w:
		default:
			s.Log.Warn("audio: queue full, dropping newest window", "timestamp", w.Timestamp)
		}

		cfg := s.Config.Snapshot()
		interval := time.Duration(cfg.CaptureInterval) * time.Second
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
}
