package audio

import "context"

// Driver is the behavioral contract for the I²S microphone peripheral
// (spec §1: "only their behavioural contract is specified"). A real
// implementation opens an I²S slave-clocked stereo-mono channel at the
// given sample rate with 32-bit sample width and delivers single-channel
// (left) samples; ReadFrames blocks until exactly n frames are read and
// never returns a short read.
type Driver interface {
	// ReadFrames blocks until exactly n raw 32-bit left-channel samples
	// have been read, or returns a fatal error (spec §4.1: "Fails only on
	// unrecoverable driver error").
	ReadFrames(ctx context.Context, n int) ([]int32, error)
}
