// Package device implements the ambient link-layer and housekeeping
// tasks: network association, time sync, system monitoring, and the
// monotonic Counters shared across the pipeline (spec §3, §5).
package device

import "sync/atomic"

// Counters holds the monotonic totals of spec §3 ("Counters"). They are
// reset only on reboot (process start), matching the teacher's
// single-writer atomic idiom (pkg/audio/pcm.AtomicFloat32) generalized
// to the built-in atomic.Uint64.
type Counters struct {
	samplesProcessed  atomic.Uint64
	transmissionsSent atomic.Uint64
}

// AddSamplesProcessed adds n to the running sample count.
func (c *Counters) AddSamplesProcessed(n uint64) {
	c.samplesProcessed.Add(n)
}

// AddTransmissionsSent adds n to the running transmission count.
func (c *Counters) AddTransmissionsSent(n uint64) {
	c.transmissionsSent.Add(n)
}

// SamplesProcessed returns the current total.
func (c *Counters) SamplesProcessed() uint64 {
	return c.samplesProcessed.Load()
}

// TransmissionsSent returns the current total.
func (c *Counters) TransmissionsSent() uint64 {
	return c.transmissionsSent.Load()
}
