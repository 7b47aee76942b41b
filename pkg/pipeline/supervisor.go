package pipeline

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/audiencelink/tvpulse/pkg/audio"
	"github.com/audiencelink/tvpulse/pkg/device"
	"github.com/audiencelink/tvpulse/pkg/fingerprint"
	"github.com/audiencelink/tvpulse/pkg/sysconfig"
	"github.com/audiencelink/tvpulse/pkg/transport"
)

// errorCooldown is the 5-second pause the supervisor spends in Error
// before returning to Sampling (spec §4.4).
const errorCooldown = 5 * time.Second

// LinkChecker reports network association. Both the supervisor (for the
// Connecting→Sampling transition) and transport.Client (for NotReady)
// consult the same signal.
type LinkChecker = transport.LinkChecker

// Supervisor drives the state machine of spec §4.4: it owns the
// single-slot queue (a buffered-1 channel of *audio.Window, filled by
// audio.Source.Run), runs each window through the DSP pipeline and the
// transport client, and reacts to HMI-originated Config requests.
type Supervisor struct {
	Windows  <-chan *audio.Window
	Pipeline *fingerprint.Pipeline
	Client   *transport.Client
	Config   *sysconfig.Store
	Counters *device.Counters
	Link     LinkChecker
	Log      *slog.Logger

	// EnterConfig and ExitConfig are pushed by the HMI's button handler
	// (spec §4.4, "Any -- B1 ... -> Config" / "Config -- Exit -> Sampling").
	EnterConfig chan struct{}
	ExitConfig  chan struct{}

	broadcaster *Broadcaster
	state       atomic.Int32
}

// NewSupervisor constructs a Supervisor. windows is the single-slot
// channel audio.Source.Run writes into.
func NewSupervisor(windows <-chan *audio.Window, pl *fingerprint.Pipeline, client *transport.Client, cfg *sysconfig.Store, counters *device.Counters, link LinkChecker, log *slog.Logger) *Supervisor {
	if log == nil {
		log = slog.Default()
	}
	return &Supervisor{
		Windows:     windows,
		Pipeline:    pl,
		Client:      client,
		Config:      cfg,
		Counters:    counters,
		Link:        link,
		Log:         log,
		EnterConfig: make(chan struct{}, 1),
		ExitConfig:  make(chan struct{}, 1),
		broadcaster: NewBroadcaster(),
	}
}

// State returns the supervisor's current state. Safe for concurrent use
// by the display task (spec §4.4: "the displayed state equals the
// supervisor's current state within one display refresh period").
func (s *Supervisor) State() State {
	return State(s.state.Load())
}

// Subscribe returns a channel of state Transitions for the display task.
func (s *Supervisor) Subscribe() <-chan Transition {
	return s.broadcaster.Subscribe()
}

func (s *Supervisor) setState(next State) {
	prev := State(s.state.Swap(int32(next)))
	if prev == next {
		return
	}
	s.Log.Debug("pipeline: state transition", "from", prev, "to", next)
	s.broadcaster.Publish(Transition{From: prev, To: next})
}

// Run drives the state machine until ctx is canceled. It never returns
// nil: a canceled context surfaces as ctx.Err().
func (s *Supervisor) Run(ctx context.Context) error {
	s.setState(Init)
	s.setState(Connecting)

	if err := s.awaitLink(ctx); err != nil {
		return err
	}
	s.setState(Sampling)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-s.EnterConfig:
			s.setState(Config)
			if err := s.runConfigLoop(ctx); err != nil {
				return err
			}
			if err := s.awaitLink(ctx); err != nil {
				return err
			}
			s.setState(Sampling)

		case w := <-s.Windows:
			if err := s.handleWindow(ctx, w); err != nil {
				return err
			}
		}
	}
}

// awaitLink blocks until the link comes up, polling the way the link
// layer's own association retry would (spec §1, link layer out of scope
// beyond its behavioural contract). A nil Link is treated as always up.
func (s *Supervisor) awaitLink(ctx context.Context) error {
	if s.Link == nil {
		return nil
	}
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()
	for !s.Link.LinkUp() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}

// runConfigLoop blocks until the HMI signals Exit, ignoring incoming
// windows (spec §4.4: Config is reached from any active state and only
// exited via the menu's "Exit" item). Windows produced by the capture
// task while in Config are left to the single-slot queue's own drop
// policy — the supervisor simply doesn't drain it.
func (s *Supervisor) runConfigLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.ExitConfig:
			s.Config.Persist(ctx)
			return nil
		}
	}
}

func (s *Supervisor) handleWindow(ctx context.Context, w *audio.Window) error {
	s.setState(Processing)
	s.Counters.AddSamplesProcessed(uint64(len(w.Samples)))

	fp := s.Pipeline.Process(w, w.Config)
	if !fp.Publishable() {
		s.setState(Sampling)
		return nil
	}

	s.setState(Transmitting)
	if err := s.Client.Publish(ctx, fp); err != nil {
		s.Log.Warn("pipeline: transmission failed", "error", err)
		s.setState(Error)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(errorCooldown):
		case <-s.EnterConfig:
			// B1 cuts the cooldown short (spec §4.4: "Error -- ... or B1
			// pressed -> Sampling").
		}
		if s.Link != nil && !s.Link.LinkUp() {
			// "Error -- ... -> Sampling (or Init if link lost)": a lost
			// link routes back through Connecting instead of pretending
			// the link is still associated.
			s.setState(Connecting)
			if err := s.awaitLink(ctx); err != nil {
				return err
			}
		}
		s.setState(Sampling)
		return nil
	}

	s.Counters.AddTransmissionsSent(1)
	s.setState(Sampling)
	return nil
}
