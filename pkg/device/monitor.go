package device

import (
	"context"
	"log/slog"
	"time"
)

// monitorInterval matches the System Monitor task's 30-second cadence
// (spec §5).
const monitorInterval = 30 * time.Second

// Monitor periodically logs the Counters, the closest analogue to the
// source's System Monitor task without real heap/CPU telemetry to
// report (spec §5, "System Monitor ... logs counters via slog").
type Monitor struct {
	Counters *Counters
	Log      *slog.Logger
}

// NewMonitor constructs a Monitor.
func NewMonitor(counters *Counters, log *slog.Logger) *Monitor {
	if log == nil {
		log = slog.Default()
	}
	return &Monitor{Counters: counters, Log: log}
}

// Run ticks every monitorInterval until ctx is canceled.
func (m *Monitor) Run(ctx context.Context) error {
	ticker := time.NewTicker(monitorInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			m.Log.Info("device: counters",
				"samples_processed", m.Counters.SamplesProcessed(),
				"transmissions_sent", m.Counters.TransmissionsSent(),
			)
		}
	}
}
