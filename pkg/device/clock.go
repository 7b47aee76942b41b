package device

import (
	"context"
	"log/slog"
	"time"
)

// clockSyncInterval matches the Time Sync task's 1-hour cadence (spec §5).
const clockSyncInterval = time.Hour

// ClockFunc is exchanged for the real wall clock in tests.
type ClockFunc func() time.Time

// ClockSync stands in for the link layer's periodic time sync (spec §2,
// "link layer ... provides a monotonic real-time clock"). There is no real
// NTP exchange to simulate here — sync just records the last-synced wall
// time via Now. No other component reads it: capture windows are stamped
// by audio.Source.Now, not through ClockSync.
type ClockSync struct {
	Now ClockFunc
	Log *slog.Logger

	lastSync time.Time
}

// NewClockSync constructs a ClockSync.
func NewClockSync(now ClockFunc, log *slog.Logger) *ClockSync {
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = slog.Default()
	}
	return &ClockSync{Now: now, Log: log}
}

// LastSync returns the wall time of the most recent sync.
func (c *ClockSync) LastSync() time.Time {
	return c.lastSync
}

// Run ticks every clockSyncInterval until ctx is canceled.
func (c *ClockSync) Run(ctx context.Context) error {
	c.sync()
	ticker := time.NewTicker(clockSyncInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			c.sync()
		}
	}
}

func (c *ClockSync) sync() {
	c.lastSync = c.Now()
	c.Log.Debug("device: clock sync", "at", c.lastSync)
}
