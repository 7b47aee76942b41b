package sysconfig

// preset is one row of the §6 quality preset table.
type preset struct {
	sampleRate      int
	fftSize         int
	nMels           int
	captureDuration int
	captureInterval int
}

// presets is indexed by quality level 1..5 (index 0 unused).
var presets = [6]preset{
	1: {sampleRate: 8000, fftSize: 512, nMels: 10, captureDuration: 15, captureInterval: 120},
	2: {sampleRate: 16000, fftSize: 512, nMels: 12, captureDuration: 20, captureInterval: 90},
	3: {sampleRate: 16000, fftSize: 1024, nMels: 13, captureDuration: 30, captureInterval: 60},
	4: {sampleRate: 22050, fftSize: 1024, nMels: 15, captureDuration: 45, captureInterval: 45},
	5: {sampleRate: 44100, fftSize: 2048, nMels: 20, captureDuration: 60, captureInterval: 30},
}

// applyPreset overwrites the five preset-controlled fields of c in place
// and recomputes the derived frequency band.
func applyPreset(c *AudioConfig, level int) {
	p := presets[level]
	c.SampleRate = p.sampleRate
	c.FFTSize = p.fftSize
	c.NMels = p.nMels
	c.CaptureDuration = p.captureDuration
	c.CaptureInterval = p.captureInterval
	c.QualityLevel = level
	c.deriveBand()
}

// ApplyPreset returns a copy of c with quality level preset applied
// atomically (all five fields, or none on error).
func ApplyPreset(c AudioConfig, level int) (AudioConfig, error) {
	if level < 1 || level > 5 {
		return c, errRange("quality_level", level)
	}
	applyPreset(&c, level)
	return c, nil
}

func errRange(field string, v any) error {
	return &RangeError{Field: field, Value: v}
}

// RangeError reports a set(field, value) rejection (spec §7: "configuration
// error... returns a validation failure to the caller").
type RangeError struct {
	Field string
	Value any
}

func (e *RangeError) Error() string {
	return "sysconfig: " + e.Field + " value out of range"
}
