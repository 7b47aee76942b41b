// Package hmi implements the HMI (C6): a 128x64, four-line display and
// two-button input, translated into menu navigation and config edits.
package hmi

import (
	"fmt"

	"github.com/audiencelink/tvpulse/pkg/device"
	"github.com/audiencelink/tvpulse/pkg/pipeline"
	"github.com/audiencelink/tvpulse/pkg/sysconfig"
)

// lineWidth is the 32-column line width of the 128x64 display (spec
// §4.6).
const lineWidth = 32

// Frame is the four-line, 32-column-per-line content of one redraw (spec
// §4.6). Both the lipgloss terminal renderer and the debug web view
// render from the same Frame.
type Frame struct {
	State pipeline.State
	Lines [4]string
}

// Equal reports whether two frames have identical content, used by the
// display loop to decide whether a redraw is warranted. It compares the
// state and all four lines, so besides state, sample count, and
// transmission count, a change of the shown sample rate, quality level,
// or config menu item also triggers a redraw.
func (f Frame) Equal(other Frame) bool {
	return f == other
}

// BuildRuntimeFrame renders the state-plus-metrics screen shown in every
// non-Config state (spec §4.6).
func BuildRuntimeFrame(state pipeline.State, cfg sysconfig.AudioConfig, counters *device.Counters) Frame {
	return Frame{
		State: state,
		Lines: [4]string{
			clip(fmt.Sprintf("State: %s", state)),
			clip(fmt.Sprintf("Rate: %d Hz  Q%d", cfg.SampleRate, cfg.QualityLevel)),
			clip(fmt.Sprintf("Samples: %d", counters.SamplesProcessed())),
			clip(fmt.Sprintf("Sent: %d", counters.TransmissionsSent())),
		},
	}
}

// BuildConfigFrame renders the 8-item menu screen, one item at a time
// (spec §4.6).
func BuildConfigFrame(menu *Menu, cfg sysconfig.AudioConfig) Frame {
	cur := menu.Current()
	return Frame{
		State: pipeline.Config,
		Lines: [4]string{
			clip("Config"),
			clip(cur.label),
			clip(valueLine(cur, cfg)),
			clip("B1 next  B2 edit"),
		},
	}
}

func valueLine(cur item, cfg sysconfig.AudioConfig) string {
	if cur.exit {
		return "(activate to leave)"
	}
	switch cur.field {
	case sysconfig.FieldSampleRate:
		return fmt.Sprintf("%d Hz", cfg.SampleRate)
	case sysconfig.FieldFFTSize:
		return fmt.Sprintf("%d", cfg.FFTSize)
	case sysconfig.FieldNMels:
		return fmt.Sprintf("%d", cfg.NMels)
	case sysconfig.FieldCaptureDuration:
		return fmt.Sprintf("%d s", cfg.CaptureDuration)
	case sysconfig.FieldCaptureInterval:
		return fmt.Sprintf("%d s", cfg.CaptureInterval)
	case sysconfig.FieldNoiseThreshold:
		return fmt.Sprintf("%.3f", cfg.NoiseThreshold)
	case sysconfig.FieldQualityLevel:
		return fmt.Sprintf("%d", cfg.QualityLevel)
	default:
		return ""
	}
}

func clip(s string) string {
	if len(s) <= lineWidth {
		return s
	}
	return s[:lineWidth]
}
