package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/audiencelink/tvpulse/pkg/audio"
	"github.com/audiencelink/tvpulse/pkg/device"
	"github.com/audiencelink/tvpulse/pkg/fingerprint"
	"github.com/audiencelink/tvpulse/pkg/sysconfig"
	"github.com/audiencelink/tvpulse/pkg/transport"
)

func newTestSupervisor(t *testing.T, windows chan *audio.Window, serverURL string) (*Supervisor, *device.Counters) {
	t.Helper()
	cfg := sysconfig.NewStore(nil, nil)
	link := device.NewLink()
	counters := &device.Counters{}
	client := transport.NewClient(serverURL, "device-test", link, nil)
	pl := fingerprint.NewPipeline(nil)
	s := NewSupervisor(windows, pl, client, cfg, counters, link, nil)
	return s, counters
}

func TestSupervisor_SilentWindowReturnsToSampling(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("a below-threshold window must never reach transport")
	}))
	defer srv.Close()

	cfg := sysconfig.Default()
	windows := make(chan *audio.Window, 1)
	s, counters := newTestSupervisor(t, windows, srv.URL)

	w := &audio.Window{
		Samples:         make([]float32, cfg.SampleRate*cfg.CaptureDuration),
		Timestamp:       42,
		SampleRate:      cfg.SampleRate,
		CaptureDuration: cfg.CaptureDuration,
		Config:          cfg,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	go func() { _ = s.Run(ctx) }()

	// awaitLink with a nil Link returns instantly, but here Link is
	// non-nil and starts associated, so Run proceeds straight to Sampling.
	windows <- w

	deadline := time.After(time.Second)
	for {
		select {
		case <-deadline:
			t.Fatal("supervisor never returned to Sampling after a silent window")
		default:
		}
		if s.State() == Sampling && counters.SamplesProcessed() > 0 {
			return
		}
		time.Sleep(time.Millisecond)
	}
}

func TestSupervisor_EnterConfigThenExitReturnsToSampling(t *testing.T) {
	windows := make(chan *audio.Window, 1)
	s, _ := newTestSupervisor(t, windows, "http://127.0.0.1:0")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	go func() { _ = s.Run(ctx) }()

	waitForState(t, s, Sampling)

	s.EnterConfig <- struct{}{}
	waitForState(t, s, Config)

	s.ExitConfig <- struct{}{}
	waitForState(t, s, Sampling)
}

func waitForState(t *testing.T, s *Supervisor, want State) {
	t.Helper()
	deadline := time.After(time.Second)
	for {
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for state %v, last seen %v", want, s.State())
		default:
		}
		if s.State() == want {
			return
		}
		time.Sleep(time.Millisecond)
	}
}

func TestState_StringAndJSONRoundTrip(t *testing.T) {
	for _, st := range []State{Init, Connecting, Sampling, Processing, Transmitting, Config, Error} {
		b, err := st.MarshalJSON()
		if err != nil {
			t.Fatalf("MarshalJSON(%v): %v", st, err)
		}
		var got State
		if err := got.UnmarshalJSON(b); err != nil {
			t.Fatalf("UnmarshalJSON(%q): %v", b, err)
		}
		if got != st {
			t.Fatalf("round trip %v -> %q -> %v", st, b, got)
		}
	}
}

func TestBroadcaster_PublishDoesNotBlockWithoutSubscribers(t *testing.T) {
	b := NewBroadcaster()
	b.Publish(Transition{From: Init, To: Connecting})
}

func TestBroadcaster_SubscriberSeesLatestTransition(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Subscribe()

	b.Publish(Transition{From: Init, To: Connecting})
	b.Publish(Transition{From: Connecting, To: Sampling})

	got := <-ch
	if got.To != Sampling {
		t.Fatalf("got %v, want transition to Sampling (latest overwrites stale)", got)
	}
}
