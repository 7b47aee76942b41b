package sysconfig

// These are the wrap-around cycles from spec §6. Button 2 (Edit) advances
// the selected menu item to the next value in its cycle, wrapping at the
// end. The upper bound of each open-ended "→ …" cycle in the spec is taken
// for sample_rate and fft_size from the highest value the preset table (§6)
// uses for them (44100 and 2048) rather than extrapolated further;
// capture_interval steps by 30 up to the 300 its own cycle names (the preset
// table's highest interval is only 120). See DESIGN.md for this decision.
var (
	sampleRates      = []int{16000, 22050, 44100}
	fftSizes         = []int{512, 1024, 2048}
	nMelsValues      = []int{10, 12, 14, 16, 18, 20}
	captureDurations = []int{15, 30, 45, 60}
	captureIntervals = []int{30, 60, 90, 120, 150, 180, 210, 240, 270, 300}
	noiseThresholds  = buildNoiseThresholds()
)

// validSampleRates, validNMels, validCaptureDurations, and
// validCaptureIntervals are what Validate checks a stored or preset-applied
// AudioConfig against. They are wider than the Button-2 cycles above: the
// preset table (§6) assigns preset 1's sample_rate=8000, presets 3 and 4's
// n_mels=13/15, preset 2's capture_duration=20, and preset 4's
// capture_interval=45, none of which appear in the operator's manual cycle
// for that field. A config reached by applying a preset must still validate,
// so these are the union of each cycle with every value the preset table can
// assign to it; Advance keeps using the narrower cycles above unchanged.
var (
	validSampleRates      = []int{8000, 16000, 22050, 44100}
	validNMels            = []int{10, 12, 13, 14, 15, 16, 18, 20}
	validCaptureDurations = []int{15, 20, 30, 45, 60}
	validCaptureIntervals = []int{30, 45, 60, 90, 120, 150, 180, 210, 240, 270, 300}
)

// buildNoiseThresholds generates 0.001, 0.011, 0.021, ... up to and
// including the last value ≤ 0.1, per spec §6.
func buildNoiseThresholds() []float64 {
	var vals []float64
	for v := 0.001; v <= 0.1+1e-9; v += 0.01 {
		vals = append(vals, roundThreshold(v))
	}
	return vals
}

func roundThreshold(v float64) float64 {
	// Avoid float64 accumulation drift (0.001 + 0.01*9 should read 0.091).
	return float64(int(v*1000+0.5)) / 1000
}

func nextInt(cur int, cycle []int) int {
	for i, v := range cycle {
		if v == cur {
			return cycle[(i+1)%len(cycle)]
		}
	}
	return cycle[0]
}

func nextFloat(cur float64, cycle []float64) float64 {
	for i, v := range cycle {
		if inSetFloat(cur, []float64{v}) {
			return cycle[(i+1)%len(cycle)]
		}
	}
	return cycle[0]
}
