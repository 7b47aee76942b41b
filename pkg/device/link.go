package device

import "sync/atomic"

// Link is a stand-in for the network association half of the link layer
// (spec §1, "out of scope ... only its behavioural contract"). It
// satisfies transport.LinkChecker and pipeline.LinkChecker so both the
// transport client and the supervisor observe the same association
// state.
type Link struct {
	up atomic.Bool
}

// NewLink constructs a Link, initially associated.
func NewLink() *Link {
	l := &Link{}
	l.up.Store(true)
	return l
}

// LinkUp implements transport.LinkChecker / pipeline.LinkChecker.
func (l *Link) LinkUp() bool {
	return l.up.Load()
}

// SetUp flips the association state, for simulating a dropped or
// restored link (`tvpulse run --simulate-link-drop`, tests).
func (l *Link) SetUp(up bool) {
	l.up.Store(up)
}
