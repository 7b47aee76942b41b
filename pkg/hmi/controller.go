package hmi

import (
	"context"
	"log/slog"

	"github.com/audiencelink/tvpulse/pkg/pipeline"
	"github.com/audiencelink/tvpulse/pkg/sysconfig"
)

// Controller wires ButtonEvents to the Menu, the sysconfig.Store, and the
// Supervisor's EnterConfig/ExitConfig signals, implementing the input
// semantics of spec §4.6.
type Controller struct {
	Supervisor *pipeline.Supervisor
	Store      *sysconfig.Store
	Menu       *Menu
	Input      <-chan ButtonEvent
	Log        *slog.Logger
}

// NewController constructs a Controller.
func NewController(sup *pipeline.Supervisor, store *sysconfig.Store, menu *Menu, input <-chan ButtonEvent, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.Default()
	}
	return &Controller{Supervisor: sup, Store: store, Menu: menu, Input: input, Log: log}
}

// Run dispatches ButtonEvents until Input closes or ctx is canceled.
func (c *Controller) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-c.Input:
			if !ok {
				return nil
			}
			switch ev.Button {
			case Button1:
				c.onButton1()
			case Button2:
				c.onButton2()
			}
		}
	}
}

func (c *Controller) onButton1() {
	switch c.Supervisor.State() {
	case pipeline.Error:
		// "Error -- ... or B1 pressed -> Sampling" (spec §4.4); the
		// supervisor's error cooldown already watches EnterConfig for
		// exactly this shortcut, so B1 here means "cut the wait short",
		// not "open Config".
		trySend(c.Supervisor.EnterConfig)
	case pipeline.Config:
		c.Menu.Advance()
	default:
		c.Menu.Reset()
		trySend(c.Supervisor.EnterConfig)
	}
}

func (c *Controller) onButton2() {
	if c.Supervisor.State() != pipeline.Config {
		return
	}
	cur := c.Menu.Current()
	if cur.exit {
		trySend(c.Supervisor.ExitConfig)
		return
	}
	if _, err := c.Store.Advance(cur.field); err != nil {
		// Configuration error (spec §7): keep the previous value, no redraw.
		c.Log.Debug("hmi: advance rejected", "field", cur.field, "error", err)
	}
}

func trySend(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}
