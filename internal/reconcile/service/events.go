package service

import (
	"context"

	"ssto/internal/audit"
	"ssto/internal/signal/models"
	"ssto/pkg/requestcontext"
)

type auditEvent struct {
	action   audit.Action
	decision *models.LinkDecision
}

func (e auditEvent) toAudit(ctx context.Context) audit.Event {
	d := e.decision
	return audit.Event{
		Action:            e.action,
		Timestamp:         d.Timestamp,
		DecisionID:        d.ID,
		SignalID:          d.SignalID,
		RequestID:         d.RequestID,
		PreviousRequestID: d.PreviousRequestID,
		Mode:              string(d.Mode),
		Actor:             d.Actor,
		CorrelationID:     requestcontext.RequestID(ctx),
	}
}

func linkAction(d *models.LinkDecision) audit.Action {
	switch {
	case d.Mode == models.LinkModeAuto:
		return audit.ActionSignalAutoLinked
	case d.Overridden:
		return audit.ActionSignalLinkOverridden
	default:
		return audit.ActionSignalManuallyLinked
	}
}
