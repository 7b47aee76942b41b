package hmi

import (
	"testing"

	"github.com/audiencelink/tvpulse/pkg/device"
	"github.com/audiencelink/tvpulse/pkg/pipeline"
	"github.com/audiencelink/tvpulse/pkg/sysconfig"
)

func TestBuildRuntimeFrame_LinesFitWithinWidth(t *testing.T) {
	cfg := sysconfig.Default()
	counters := &device.Counters{}
	counters.AddSamplesProcessed(480000)
	counters.AddTransmissionsSent(3)

	f := BuildRuntimeFrame(pipeline.Sampling, cfg, counters)
	for _, line := range f.Lines {
		if len(line) > lineWidth {
			t.Fatalf("line %q exceeds %d columns", line, lineWidth)
		}
	}
}

func TestBuildConfigFrame_ShowsCurrentItem(t *testing.T) {
	cfg := sysconfig.Default()
	var m Menu
	f := BuildConfigFrame(&m, cfg)
	if f.Lines[1] != "Sample Rate" {
		t.Fatalf("Lines[1] = %q, want %q", f.Lines[1], "Sample Rate")
	}
}

func TestFrame_EqualDetectsChange(t *testing.T) {
	cfg := sysconfig.Default()
	counters := &device.Counters{}

	a := BuildRuntimeFrame(pipeline.Sampling, cfg, counters)
	b := BuildRuntimeFrame(pipeline.Sampling, cfg, counters)
	if !a.Equal(b) {
		t.Fatal("identical frames should be Equal")
	}

	counters.AddSamplesProcessed(1)
	c := BuildRuntimeFrame(pipeline.Sampling, cfg, counters)
	if a.Equal(c) {
		t.Fatal("frames with different sample counts should not be Equal")
	}
}
