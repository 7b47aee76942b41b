// Package fingerprint implements the DSP / Fingerprinter (C2): it turns one
// audio.Window into a Fingerprint through the deterministic nine-step
// pipeline of spec §4.2 (noise gate, pre-emphasis, framing, Hamming window,
// FFT, band-energy pooling, base64 payload, content hash, confidence).
package fingerprint

// PublishThreshold is the minimum confidence at which a fingerprint is
// forwarded to transport (spec §3, §4.4, Glossary "Publish threshold").
//
// spec §4.4's state diagram labels the Processing→Transmitting edge
// "confidence ≥ 0.1", but spec §8's testable invariant requires
// "0.1 < F.confidence" for every *transmitted* fingerprint. Publishable
// uses the strict inequality so a fingerprint sitting exactly at 0.1 never
// crosses into Transmitting — see DESIGN.md for this boundary decision.
const PublishThreshold = 0.1

// Fingerprint is the artifact transmitted to the server (spec §3).
type Fingerprint struct {
	Hash         string  // 32 lowercase hex characters
	Timestamp    int64   // microseconds since Unix epoch, from the source window
	Confidence   float64 // [0.0, 1.0]
	Duration     int     // seconds
	Features     string  // base64 of the raw feature-vector bytes
	SampleRate   int     // Hz
	QualityLevel int     // 1-5
}

// Publishable reports whether f should be forwarded to transport.
func (f Fingerprint) Publishable() bool {
	return f.Confidence > PublishThreshold
}
