package hmi

import (
	"context"
	"fmt"
	"time"

	"github.com/audiencelink/tvpulse/pkg/device"
	"github.com/audiencelink/tvpulse/pkg/pipeline"
	"github.com/audiencelink/tvpulse/pkg/sysconfig"
)

// refreshPeriod is the 500ms display wake cadence of spec §4.6, and also
// the bound spec §4.4 gives for "displayed state equals the supervisor's
// current state."
const refreshPeriod = 500 * time.Millisecond

// Sink receives a rendered Frame. TerminalSink writes to a terminal;
// WebView pushes to connected debug clients.
type Sink interface {
	Show(f Frame, rendered string)
}

// DisplayLoop wakes every refreshPeriod and redraws only when the Frame
// content changed since the last draw (spec §4.6).
type DisplayLoop struct {
	Supervisor *pipeline.Supervisor
	Config     *sysconfig.Store
	Counters   *device.Counters
	Menu       *Menu
	Renderer   *Renderer
	Sinks      []Sink

	last Frame
}

// NewDisplayLoop constructs a DisplayLoop.
func NewDisplayLoop(sup *pipeline.Supervisor, cfg *sysconfig.Store, counters *device.Counters, menu *Menu, sinks ...Sink) *DisplayLoop {
	return &DisplayLoop{
		Supervisor: sup,
		Config:     cfg,
		Counters:   counters,
		Menu:       menu,
		Renderer:   NewRenderer(),
		Sinks:      sinks,
	}
}

// Run ticks until ctx is canceled, drawing the first frame immediately.
func (d *DisplayLoop) Run(ctx context.Context) error {
	d.tick()
	ticker := time.NewTicker(refreshPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			d.tick()
		}
	}
}

func (d *DisplayLoop) tick() {
	state := d.Supervisor.State()
	cfg := d.Config.Snapshot()

	var frame Frame
	if state == pipeline.Config {
		frame = BuildConfigFrame(d.Menu, cfg)
	} else {
		frame = BuildRuntimeFrame(state, cfg, d.Counters)
	}

	if frame.Equal(d.last) {
		return
	}
	d.last = frame

	rendered := d.Renderer.Render(frame)
	for _, s := range d.Sinks {
		s.Show(frame, rendered)
	}
}

// TerminalSink writes rendered frames to a fmt.Stringer-friendly output
// via a plain func, letting tests capture output without a real tty.
type TerminalSink struct {
	Write func(string)
}

// Show implements Sink.
func (t TerminalSink) Show(_ Frame, rendered string) {
	if t.Write != nil {
		t.Write(rendered)
		return
	}
	fmt.Println(rendered)
}
