// Package transport implements the Transport component (C3): it
// serializes a Fingerprint into the wire message of spec §6 and POSTs it
// to the aggregator, classifying every failure into the taxonomy of
// spec §4.3.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/audiencelink/tvpulse/pkg/fingerprint"
)

const requestTimeout = 10 * time.Second

// message is the exact JSON wire format of spec §6.
type message struct {
	DeviceID     string  `json:"device_id"`
	Timestamp    int64   `json:"timestamp"`
	Hash         string  `json:"hash"`
	Confidence   float64 `json:"confidence"`
	Duration     int     `json:"duration"`
	Features     string  `json:"features"`
	SampleRate   int     `json:"sample_rate"`
	QualityLevel int     `json:"quality_level"`
}

// LinkChecker reports whether the network link is currently associated.
// Publish consults it before attempting any I/O (spec §4.3's
// precondition).
type LinkChecker interface {
	LinkUp() bool
}

// Client publishes fingerprints to a fixed HTTPS endpoint.
type Client struct {
	URL      string
	DeviceID string
	Link     LinkChecker
	Log      *slog.Logger

	httpClient *http.Client
}

// NewClient constructs a Client with the 10-second total timeout
// required by spec §4.3.
func NewClient(url, deviceID string, link LinkChecker, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		URL:      url,
		DeviceID: deviceID,
		Link:     link,
		Log:      log,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// Publish sends f to the aggregator. It returns nil only when the server
// answers 200 or 201 (spec §6). The returned error is always one of
// NotReadyError, *TimeoutError, *ServerError, or *TransportError.
func (c *Client) Publish(ctx context.Context, f fingerprint.Fingerprint) error {
	if c.Link != nil && !c.Link.LinkUp() {
		return NotReadyError{}
	}

	reqID := uuid.New().String()
	body, err := json.Marshal(message{
		DeviceID:     c.DeviceID,
		Timestamp:    f.Timestamp,
		Hash:         f.Hash,
		Confidence:   f.Confidence,
		Duration:     f.Duration,
		Features:     f.Features,
		SampleRate:   f.SampleRate,
		QualityLevel: f.QualityLevel,
	})
	if err != nil {
		return &TransportError{Cause: fmt.Errorf("marshal: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return &TransportError{Cause: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	c.Log.Debug("transport: publishing fingerprint", "req_id", reqID, "hash", f.Hash, "confidence", f.Confidence)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return &TimeoutError{Cause: err}
		}
		return &TransportError{Cause: err}
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return &ServerError{Status: resp.StatusCode}
	}
	return nil
}

// isTimeout reports whether err carries the net.Error Timeout() signal
// without importing net here just for the type assertion at call sites.
func isTimeout(err error) bool {
	type timeouter interface{ Timeout() bool }
	var t timeouter
	return errors.As(err, &t) && t.Timeout()
}
