package models

import (
	"time"

	"github.com/google/uuid"
)

// LinkMode records who established a link.
type LinkMode string

const (
	LinkModeAuto   LinkMode = "AUTO"
	LinkModeManual LinkMode = "MANUAL"
)

// LinkDecision is an append-only audit record of a signal-to-request link.
// Overridden is true when a manual link replaced an existing link.
type LinkDecision struct {
	ID                uuid.UUID `json:"id"`
	SignalID          int64     `json:"signal_id"`
	RequestID         int64     `json:"request_id"`
	Mode              LinkMode  `json:"mode"`
	Actor             string    `json:"actor,omitempty"`
	Timestamp         time.Time `json:"timestamp"`
	Overridden        bool      `json:"overridden"`
	PreviousRequestID int64     `json:"previous_request_id,omitempty"`
}

// NewLinkDecision stamps a decision with a fresh id.
func NewLinkDecision(signalID, requestID int64, mode LinkMode, actor string, now time.Time) *LinkDecision {
	return &LinkDecision{
		ID:        uuid.New(),
		SignalID:  signalID,
		RequestID: requestID,
		Mode:      mode,
		Actor:     actor,
		Timestamp: now,
	}
}
