package handler

import (
	"strings"
	"time"

	"ssto/internal/signal/models"
	"ssto/internal/reconcile/service"
)

// IngestSignalRequest is the body of POST /signals. Any identifier may be
// missing; channels that only fill metadata are resolved by alias.
type IngestSignalRequest struct {
	TerminalID string         `json:"terminal_id"`
	MMSI       string         `json:"mmsi"`
	IMO        string         `json:"imo"`
	VesselName string         `json:"vessel_name"`
	SignalType string         `json:"signal_type"`
	ReceivedAt *time.Time     `json:"received_at"`
	Metadata   map[string]any `json:"metadata"`
}

func (r *IngestSignalRequest) ToSignal() *models.Signal {
	sig := &models.Signal{
		TerminalID: strings.TrimSpace(r.TerminalID),
		MMSI:       strings.TrimSpace(r.MMSI),
		IMO:        strings.TrimSpace(r.IMO),
		VesselName: strings.TrimSpace(r.VesselName),
		SignalType: strings.TrimSpace(r.SignalType),
		Metadata:   r.Metadata,
	}
	if r.ReceivedAt != nil {
		sig.ReceivedAt = *r.ReceivedAt
	}
	return sig
}

// IngestResponse pairs the stored signal with its reconciliation outcome.
type IngestResponse struct {
	Signal         *models.Signal  `json:"signal"`
	Reconciliation *service.Result `json:"reconciliation"`
}

// LinkRequest is the body of POST /signals/{id}/link.
type LinkRequest struct {
	RequestID int64 `json:"request_id"`
	Override  bool  `json:"override"`
}
