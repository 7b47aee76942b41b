package sysconfig

import "testing"

func TestDefault_Validates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default() failed Validate: %v", err)
	}
}

func TestValidate_RejectsNonPowerOfTwoFFTSize(t *testing.T) {
	c := Default()
	c.FFTSize = 1000
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for non-power-of-two fft_size")
	}
}

func TestValidate_RejectsBadFrequencyBand(t *testing.T) {
	c := Default()
	c.MaxFreq = float64(c.SampleRate) // above Nyquist
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for max_freq above Nyquist")
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	c, err := ApplyPreset(Default(), 4)
	if err != nil {
		t.Fatal(err)
	}
	c.NoiseThreshold = 0.031

	got, err := Decode(c.Encode())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got != c {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, c)
	}
}

func TestDecode_RejectsBadMagic(t *testing.T) {
	if _, err := Decode([]byte{0, 1, 2, 3}); err == nil {
		t.Fatal("expected error for garbage blob")
	}
}

func TestApplyPreset_AllLevels(t *testing.T) {
	for level := 1; level <= 5; level++ {
		c, err := ApplyPreset(Default(), level)
		if err != nil {
			t.Fatalf("level %d: %v", level, err)
		}
		if err := c.Validate(); err != nil {
			t.Fatalf("level %d produced invalid config: %v", level, err)
		}
		if c.QualityLevel != level {
			t.Fatalf("level %d: QualityLevel = %d", level, c.QualityLevel)
		}
	}
}

func TestApplyPreset_RejectsOutOfRangeLevel(t *testing.T) {
	if _, err := ApplyPreset(Default(), 6); err == nil {
		t.Fatal("expected error for quality_level 6")
	}
}
