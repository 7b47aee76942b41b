package fingerprint

import (
	"crypto/md5"
	"encoding/base64"
	"encoding/binary"
	"encoding/hex"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/stat"

	"github.com/audiencelink/tvpulse/pkg/audio"
	"github.com/audiencelink/tvpulse/pkg/sysconfig"
)

// preEmphasis is the classical single-coefficient pre-emphasis filter
// coefficient (spec §4.2 step 2).
const preEmphasis = 0.97

// silentFrameLog is log(1e-10), used to pad out the feature vector when a
// window is too short to yield n_mels frames (see extractFeatures's doc
// comment).
var silentFrameLog = math.Log(1e-10)

// Pipeline turns audio.Windows into Fingerprints. It holds no mutable
// state between calls: two Pipelines given the same window and config
// always produce byte-identical output (spec §8, "Determinism").
type Pipeline struct {
	Log *slog.Logger
}

// NewPipeline constructs a Pipeline.
func NewPipeline(log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{Log: log}
}

// Process runs the nine-step pipeline of spec §4.2 against w using the
// config snapshot cfg (the snapshot active when w was acquired, per
// spec §4.5). It never returns an error: numerical anomalies and
// below-threshold windows both resolve to a zero-confidence Fingerprint
// that the caller will not publish (spec §4.2's "Failure" paragraph).
func (p *Pipeline) Process(w *audio.Window, cfg sysconfig.AudioConfig) Fingerprint {
	fp := Fingerprint{
		Timestamp:    w.Timestamp,
		Duration:     w.CaptureDuration,
		SampleRate:   w.SampleRate,
		QualityLevel: cfg.QualityLevel,
	}

	energy := meanSquare(w.Samples)
	if energy < cfg.NoiseThreshold {
		p.Log.Debug("fingerprint: discarded below noise threshold", "energy", energy, "threshold", cfg.NoiseThreshold)
		return fp // confidence 0.0, below publish threshold
	}

	samples := append([]float32(nil), w.Samples...)
	applyPreEmphasis(samples)

	features := p.extractFeatures(samples, cfg)

	payload := encodeFeatures(features)
	fp.Features = base64.StdEncoding.EncodeToString(payload)
	fp.Hash = hashFeatures(fp.Features)
	fp.Confidence = confidence(features)
	return fp
}

// meanSquare computes the mean-square energy of x (spec §4.2 step 1).
func meanSquare(x []float32) float64 {
	if len(x) == 0 {
		return 0
	}
	var sum float64
	for _, v := range x {
		f := float64(v)
		sum += f * f
	}
	return sum / float64(len(x))
}

// applyPreEmphasis applies x[i] -= α·x[i-1] in place, iterating from the
// last index down to 1 so every read of x[i-1] sees the unmodified
// original sample (spec §4.2 step 2) rather than a value already rewritten
// by a forward pass.
func applyPreEmphasis(x []float32) {
	for i := len(x) - 1; i >= 1; i-- {
		x[i] -= float32(preEmphasis) * x[i-1]
	}
}

// extractFeatures runs steps 3-6 of spec §4.2: frame, window, FFT, and
// band-energy pool, producing exactly cfg.NMels values.
//
// If the window is too short to yield n_mels frames (only possible with an
// unusually small capture_duration/fft_size combination), the remaining
// slots are padded with the log-energy of silence so the payload always
// has a fixed, deterministic size driven by n_mels alone.
func (p *Pipeline) extractFeatures(samples []float32, cfg sysconfig.AudioConfig) []float64 {
	features := make([]float64, cfg.NMels)

	nFrames := 0
	if len(samples) >= cfg.FFTSize {
		nFrames = (len(samples)-cfg.FFTSize)/cfg.HopLength + 1
	}
	frameCount := min(nFrames, cfg.NMels)

	window := hammingWindow(cfg.FFTSize)
	fft := fourier.NewFFT(cfg.FFTSize)
	binLow, binHigh := bandBins(cfg)

	frame := make([]float64, cfg.FFTSize)
	for k := 0; k < frameCount; k++ {
		start := k * cfg.HopLength
		for i := 0; i < cfg.FFTSize; i++ {
			frame[i] = float64(samples[start+i]) * window[i]
		}

		coeffs := fft.Coefficients(nil, frame)

		var sum float64
		for i := binLow; i <= binHigh; i++ {
			re, im := real(coeffs[i]), imag(coeffs[i])
			sum += re*re + im*im
		}
		features[k] = math.Log(sum + 1e-10)
	}
	for k := frameCount; k < cfg.NMels; k++ {
		features[k] = silentFrameLog
	}
	return features
}

// hammingWindow returns a Hamming window of length n (spec §4.2 step 4).
func hammingWindow(n int) []float64 {
	w := make([]float64, n)
	if n == 1 {
		w[0] = 1
		return w
	}
	for i := range w {
		w[i] = 0.54 - 0.46*math.Cos(2*math.Pi*float64(i)/float64(n-1))
	}
	return w
}

// bandBins maps [min_freq, max_freq] to FFT bin indices using the linear
// mapping of spec §4.2 step 6, clamped to the valid half-spectrum
// [0, fft_size/2).
func bandBins(cfg sysconfig.AudioConfig) (low, high int) {
	halfFFT := cfg.FFTSize / 2
	low = int(cfg.MinFreq * float64(cfg.FFTSize) / float64(cfg.SampleRate))
	high = int(cfg.MaxFreq * float64(cfg.FFTSize) / float64(cfg.SampleRate))
	if low < 0 {
		low = 0
	}
	if high > halfFFT-1 {
		high = halfFFT - 1
	}
	if high < low {
		high = low
	}
	return low, high
}

// encodeFeatures interprets features as raw float64 bytes in a fixed byte
// order (spec §4.2 step 7 says "native endianness"; this implementation
// standardizes on little-endian so the same bytes are produced on every
// build target).
func encodeFeatures(features []float64) []byte {
	buf := make([]byte, 8*len(features))
	for i, f := range features {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(f))
	}
	return buf
}

// hashFeatures computes the 128-bit digest of the base64 text (not the raw
// feature bytes) per spec §4.2 step 8 / §9's preserved quirk: "Fingerprint
// hashing over the base64 of the features ... is unusual but stable —
// preserve it for server-side hash compatibility."
func hashFeatures(base64Text string) string {
	sum := md5.Sum([]byte(base64Text))
	return hex.EncodeToString(sum[:])
}

// confidence implements spec §4.2 step 9, clamping NaN/Inf results to 0
// (spec §4.2's "Failure" paragraph).
func confidence(features []float64) float64 {
	_, variance := stat.MeanVariance(features, nil)

	var energy float64
	for _, f := range features {
		energy += f * f
	}

	c := math.Min(1.0, math.Sqrt(energy)*math.Sqrt(variance)*10)
	if math.IsNaN(c) || math.IsInf(c, 0) {
		return 0
	}
	if c < 0 {
		return 0
	}
	return c
}
