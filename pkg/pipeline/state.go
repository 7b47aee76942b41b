// Package pipeline implements the Pipeline Supervisor (C4): the
// lifecycle state machine and the single-slot queue between capture and
// processing.
package pipeline

import "encoding/json"

// State is the finite enumeration of spec §3/§4.4.
type State int

const (
	Init State = iota
	Connecting
	Sampling
	Processing
	Transmitting
	Config
	Error
)

// String returns the lowercase name used in logs and the HMI.
func (s State) String() string {
	switch s {
	case Init:
		return "init"
	case Connecting:
		return "connecting"
	case Sampling:
		return "sampling"
	case Processing:
		return "processing"
	case Transmitting:
		return "transmitting"
	case Config:
		return "config"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalJSON implements json.Marshaler.
func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *State) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return err
	}
	switch name {
	case "init":
		*s = Init
	case "connecting":
		*s = Connecting
	case "sampling":
		*s = Sampling
	case "processing":
		*s = Processing
	case "transmitting":
		*s = Transmitting
	case "config":
		*s = Config
	case "error":
		*s = Error
	default:
		*s = Init
	}
	return nil
}

// Transition describes a single state change, broadcast to Supervisor
// subscribers (spec §9, "coroutine-like flow across six tasks").
type Transition struct {
	From State
	To   State
}
