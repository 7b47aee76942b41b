package sysconfig

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// magic tags the blob format so Decode can refuse to silently misread an
// unrelated byte sequence found under the same NVS key.
const magic uint32 = 0x54564331 // "TVC1"

// Encode serializes c to the exact byte image persisted under the
// "audio_config" key (spec §6: "one binary blob ... containing the exact
// AudioConfig byte image").
func (c AudioConfig) Encode() []byte {
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, magic)
	binary.Write(buf, binary.LittleEndian, int64(c.SampleRate))
	binary.Write(buf, binary.LittleEndian, int64(c.FFTSize))
	binary.Write(buf, binary.LittleEndian, int64(c.NMels))
	binary.Write(buf, binary.LittleEndian, int64(c.CaptureDuration))
	binary.Write(buf, binary.LittleEndian, int64(c.CaptureInterval))
	binary.Write(buf, binary.LittleEndian, c.NoiseThreshold)
	binary.Write(buf, binary.LittleEndian, int64(c.QualityLevel))
	binary.Write(buf, binary.LittleEndian, int64(c.HopLength))
	binary.Write(buf, binary.LittleEndian, c.MinFreq)
	binary.Write(buf, binary.LittleEndian, c.MaxFreq)
	return buf.Bytes()
}

// Decode parses a blob written by Encode. Any error (wrong magic, short
// read) is the caller's cue to fall back to defaults, per spec §7 ("the NVS
// config subsystem swallows all failures and falls back to defaults").
func Decode(blob []byte) (AudioConfig, error) {
	var c AudioConfig
	r := bytes.NewReader(blob)
	var gotMagic uint32
	if err := binary.Read(r, binary.LittleEndian, &gotMagic); err != nil {
		return c, err
	}
	if gotMagic != magic {
		return c, fmt.Errorf("sysconfig: bad magic %#x", gotMagic)
	}
	var sampleRate, fftSize, nMels, duration, interval, quality, hop int64
	if err := binary.Read(r, binary.LittleEndian, &sampleRate); err != nil {
		return c, err
	}
	if err := binary.Read(r, binary.LittleEndian, &fftSize); err != nil {
		return c, err
	}
	if err := binary.Read(r, binary.LittleEndian, &nMels); err != nil {
		return c, err
	}
	if err := binary.Read(r, binary.LittleEndian, &duration); err != nil {
		return c, err
	}
	if err := binary.Read(r, binary.LittleEndian, &interval); err != nil {
		return c, err
	}
	if err := binary.Read(r, binary.LittleEndian, &c.NoiseThreshold); err != nil {
		return c, err
	}
	if err := binary.Read(r, binary.LittleEndian, &quality); err != nil {
		return c, err
	}
	if err := binary.Read(r, binary.LittleEndian, &hop); err != nil {
		return c, err
	}
	if err := binary.Read(r, binary.LittleEndian, &c.MinFreq); err != nil {
		return c, err
	}
	if err := binary.Read(r, binary.LittleEndian, &c.MaxFreq); err != nil {
		return c, err
	}
	c.SampleRate = int(sampleRate)
	c.FFTSize = int(fftSize)
	c.NMels = int(nMels)
	c.CaptureDuration = int(duration)
	c.CaptureInterval = int(interval)
	c.QualityLevel = int(quality)
	c.HopLength = int(hop)
	return c, nil
}
