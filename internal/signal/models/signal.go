package models

import (
	"fmt"
	"time"
)

// Status is the reconciliation state of a signal.
type Status string

const (
	StatusUnmatched      Status = "UNMATCHED"
	StatusMatched        Status = "MATCHED"
	StatusManuallyLinked Status = "MANUALLY_LINKED"
)

// IsLinked reports whether the status carries a request link.
func (s Status) IsLinked() bool {
	return s == StatusMatched || s == StatusManuallyLinked
}

func (s Status) IsValid() bool {
	switch s {
	case StatusUnmatched, StatusMatched, StatusManuallyLinked:
		return true
	}
	return false
}

// Signal is one observation of a terminal transmission, as produced by an
// ingestion channel (email parser, hardware feed, manual entry).
//
// Invariants:
//   - LinkedRequestID is non-zero if and only if Status is not UNMATCHED
//   - Only the reconciliation workflow changes Status and LinkedRequestID
type Signal struct {
	ID              int64          `json:"id"`
	TerminalID      string         `json:"terminal_id,omitempty"`
	MMSI            string         `json:"mmsi,omitempty"`
	IMO             string         `json:"imo,omitempty"`
	VesselName      string         `json:"vessel_name,omitempty"`
	SignalType      string         `json:"signal_type,omitempty"`
	ReceivedAt      time.Time      `json:"received_at"`
	IsTestSignal    bool           `json:"is_test_signal"`
	Metadata        map[string]any `json:"metadata,omitempty"`
	Status          Status         `json:"status"`
	LinkedRequestID int64          `json:"linked_request_id,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
}

// Validate checks the link invariant.
func (s *Signal) Validate() error {
	if !s.Status.IsValid() {
		return fmt.Errorf("signal %d: unknown status %q", s.ID, s.Status)
	}
	if s.Status.IsLinked() != (s.LinkedRequestID != 0) {
		return fmt.Errorf("signal %d: status %s inconsistent with linked request %d", s.ID, s.Status, s.LinkedRequestID)
	}
	return nil
}

// Clone returns a copy that shares no mutable state with s.
func (s *Signal) Clone() *Signal {
	if s == nil {
		return nil
	}
	c := *s
	if s.Metadata != nil {
		c.Metadata = make(map[string]any, len(s.Metadata))
		for k, v := range s.Metadata {
			c.Metadata[k] = v
		}
	}
	return &c
}

// Identifiers is the normalized identifier bundle extracted from a signal.
// VesselName stays raw; names are normalized at comparison time.
type Identifiers struct {
	TerminalID   string
	MMSI         string
	IMO          string
	VesselName   string
	ReceivedAt   time.Time
	IsTestSignal bool
}
