package audit

import (
	"time"

	"github.com/google/uuid"
)

// Action names a link event. The value doubles as the outbox event type.
type Action string

const (
	ActionSignalAutoLinked     Action = "signal_auto_linked"
	ActionSignalManuallyLinked Action = "signal_manually_linked"
	ActionSignalLinkOverridden Action = "signal_link_overridden"
)

// Event is emitted when a signal is linked to a test request. It mirrors the
// stored link decision and adds the correlation id of the HTTP request that
// caused it.
type Event struct {
	Action            Action    `json:"action"`
	Timestamp         time.Time `json:"timestamp"`
	DecisionID        uuid.UUID `json:"decision_id"`
	SignalID          int64     `json:"signal_id"`
	RequestID         int64     `json:"request_id"`
	PreviousRequestID int64     `json:"previous_request_id,omitempty"`
	Mode              string    `json:"mode"`
	Actor             string    `json:"actor,omitempty"`
	CorrelationID     string    `json:"correlation_id,omitempty"`
}
