package hmi

import (
	"context"
	"time"
)

// debounceWindow matches the 200ms button debounce of spec §4.6.
const debounceWindow = 200 * time.Millisecond

// Button identifies which of the two physical buttons fired.
type Button int

const (
	Button1 Button = iota // Navigate
	Button2               // Edit/Exit
)

// ButtonEvent is a single debounced press, the unit the rest of the HMI
// reacts to.
type ButtonEvent struct {
	Button Button
}

// InputSource delivers raw, undebounced button presses — a simulated
// keyboard source in `tvpulse run`, or in principle a GPIO poller.
type InputSource interface {
	// Presses returns a channel of raw presses. The channel is closed
	// when the source is done producing events.
	Presses() <-chan Button
}

// InputLoop reads raw presses from an InputSource and emits one
// ButtonEvent per press, dropping any further press of the *same* button
// within debounceWindow (spec §4.6's "200 ms debounce").
type InputLoop struct {
	Source InputSource
	Out    chan ButtonEvent

	lastPress [2]time.Time
}

// NewInputLoop constructs an InputLoop with a buffered output channel.
func NewInputLoop(source InputSource) *InputLoop {
	return &InputLoop{Source: source, Out: make(chan ButtonEvent, 4)}
}

// Run consumes raw presses until the source's channel closes or ctx is
// canceled.
func (l *InputLoop) Run(ctx context.Context) error {
	presses := l.Source.Presses()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case b, ok := <-presses:
			if !ok {
				return nil
			}
			now := time.Now()
			if now.Sub(l.lastPress[b]) < debounceWindow {
				continue
			}
			l.lastPress[b] = now
			select {
			case l.Out <- ButtonEvent{Button: b}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}
