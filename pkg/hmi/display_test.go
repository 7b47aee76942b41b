package hmi

import (
	"testing"

	"github.com/audiencelink/tvpulse/pkg/audio"
	"github.com/audiencelink/tvpulse/pkg/device"
	"github.com/audiencelink/tvpulse/pkg/fingerprint"
	"github.com/audiencelink/tvpulse/pkg/pipeline"
	"github.com/audiencelink/tvpulse/pkg/sysconfig"
	"github.com/audiencelink/tvpulse/pkg/transport"
)

type recordingSink struct {
	shown int
}

func (r *recordingSink) Show(Frame, string) { r.shown++ }

func TestDisplayLoop_SkipsRedrawWhenUnchanged(t *testing.T) {
	windows := make(chan *audio.Window)
	store := sysconfig.NewStore(nil, nil)
	link := device.NewLink()
	counters := &device.Counters{}
	client := transport.NewClient("http://127.0.0.1:0", "device-test", link, nil)
	pl := fingerprint.NewPipeline(nil)
	sup := pipeline.NewSupervisor(windows, pl, client, store, counters, link, nil)

	var menu Menu
	sink := &recordingSink{}
	loop := NewDisplayLoop(sup, store, counters, &menu, sink)

	loop.tick()
	loop.tick()
	loop.tick()

	if sink.shown != 1 {
		t.Fatalf("shown = %d, want 1 (no state/metric change between ticks)", sink.shown)
	}

	counters.AddSamplesProcessed(1)
	loop.tick()
	if sink.shown != 2 {
		t.Fatalf("shown = %d, want 2 after a counter change", sink.shown)
	}
}
