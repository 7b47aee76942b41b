package hmi

import (
	"bufio"
	"io"
)

// KeyboardSource reads lines from r and turns "1"/"b1"
// into Button1 and "2"/"b2" into Button2, standing in for the two
// physical buttons when running `tvpulse run` in a terminal (spec §4.6).
type KeyboardSource struct {
	r  io.Reader
	ch chan Button
}

// NewKeyboardSource constructs a KeyboardSource reading from r (typically
// os.Stdin). Call Run to start pumping lines; Presses() is valid
// immediately.
func NewKeyboardSource(r io.Reader) *KeyboardSource {
	return &KeyboardSource{r: r, ch: make(chan Button, 4)}
}

// Presses implements InputSource.
func (k *KeyboardSource) Presses() <-chan Button {
	return k.ch
}

// Run scans lines from r until EOF, closing the channel when done.
func (k *KeyboardSource) Run() {
	defer close(k.ch)
	scanner := bufio.NewScanner(k.r)
	for scanner.Scan() {
		switch scanner.Text() {
		case "1", "b1":
			k.ch <- Button1
		case "2", "b2":
			k.ch <- Button2
		}
	}
}
