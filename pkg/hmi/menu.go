package hmi

import "github.com/audiencelink/tvpulse/pkg/sysconfig"

// item is one entry of the Config screen's 8-item cyclic menu (spec
// §4.6). The first seven map directly to a sysconfig.Field; the eighth,
// exitItem, has none — Button 2 on it leaves Config instead of advancing
// a value.
type item struct {
	label string
	field sysconfig.Field
	exit  bool
}

var menuItems = []item{
	{label: "Sample Rate", field: sysconfig.FieldSampleRate},
	{label: "FFT Size", field: sysconfig.FieldFFTSize},
	{label: "MFCC Coeffs", field: sysconfig.FieldNMels},
	{label: "Capture Dur", field: sysconfig.FieldCaptureDuration},
	{label: "Capture Intv", field: sysconfig.FieldCaptureInterval},
	{label: "Noise Thresh", field: sysconfig.FieldNoiseThreshold},
	{label: "Quality Lvl", field: sysconfig.FieldQualityLevel},
	{label: "Exit", exit: true},
}

// Menu tracks the cursor position within the Config screen's menu.
type Menu struct {
	cursor int
}

// Reset returns the cursor to item 0, matching "enter Config (cursor =
// 0)" in spec §4.6.
func (m *Menu) Reset() {
	m.cursor = 0
}

// Advance moves the cursor to the next item, mod 8 (Button 1 inside
// Config).
func (m *Menu) Advance() {
	m.cursor = (m.cursor + 1) % len(menuItems)
}

// Current returns the menu item under the cursor.
func (m *Menu) Current() item {
	return menuItems[m.cursor]
}

// IsExit reports whether the cursor sits on the "Exit" item.
func (m *Menu) IsExit() bool {
	return m.Current().exit
}
