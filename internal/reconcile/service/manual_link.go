package service

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"ssto/internal/signal/models"
	dErrors "ssto/pkg/domain-errors"
	"ssto/pkg/requestcontext"
)

// ManualLink links a signal to a request on an operator's decision.
//
// A linked signal is only relinked with override set. Confirming an
// auto-link moves the signal to MANUALLY_LINKED on the same request.
// Re-sending the current manual link changes nothing but is still audited.
// When an override moves the link, the previous request stops pointing at
// the signal.
func (s *Service) ManualLink(ctx context.Context, signalID, requestID int64, override bool) (*models.LinkDecision, error) {
	ctx, span := s.tracer.Start(ctx, "reconcile.ManualLink")
	span.SetAttributes(
		attribute.Int64("signal.id", signalID),
		attribute.Int64("request.id", requestID),
		attribute.Bool("link.override", override),
	)
	defer span.End()

	if signalID <= 0 || requestID <= 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "signal_id and request_id must be positive")
	}

	var decision *models.LinkDecision
	err := s.commit(ctx, signalID, func(ctx context.Context) error {
		sig, err := s.signals.FindByID(ctx, signalID)
		if err != nil {
			return translate(err, fmt.Sprintf("signal %d", signalID))
		}
		if _, err := s.requests.FindByID(ctx, requestID); err != nil {
			return translate(err, fmt.Sprintf("request %d", requestID))
		}

		wasLinked := sig.Status.IsLinked()
		if wasLinked && !override {
			return dErrors.New(dErrors.CodeAlreadyLinked, alreadyLinkedMsg(sig))
		}

		decision = models.NewLinkDecision(signalID, requestID, models.LinkModeManual,
			requestcontext.Actor(ctx), requestcontext.Now(ctx))
		if wasLinked {
			decision.Overridden = true
			decision.PreviousRequestID = sig.LinkedRequestID
		}

		unchanged := sig.Status == models.StatusManuallyLinked && sig.LinkedRequestID == requestID
		if !unchanged {
			if err := s.signals.SetStatus(ctx, signalID, sig.Status, models.StatusManuallyLinked, requestID); err != nil {
				return err
			}
			if err := s.requests.SetLinkedSignal(ctx, requestID, signalID); err != nil {
				return err
			}
			if wasLinked && sig.LinkedRequestID != requestID {
				if err := s.requests.ClearLinkedSignal(ctx, sig.LinkedRequestID, signalID); err != nil {
					return err
				}
			}
		}

		if err := s.signals.AppendLinkDecision(ctx, decision); err != nil {
			return err
		}
		return s.emit(ctx, auditEvent{action: linkAction(decision), decision: decision})
	})
	if err != nil {
		err = translate(err, "failed to commit manual link")
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logCommitFailure(ctx, "manual link", signalID, requestID, err)
		return nil, err
	}

	s.metrics.IncrementManualLink(decision.Overridden)
	s.logger.InfoContext(ctx, "signal manually linked",
		"request_id", requestcontext.RequestID(ctx),
		"signal_id", signalID,
		"test_request_id", requestID,
		"actor", decision.Actor,
		"overridden", decision.Overridden,
		"previous_request_id", decision.PreviousRequestID,
	)
	return decision, nil
}

// Decisions returns a signal's link audit trail in append order.
func (s *Service) Decisions(ctx context.Context, signalID int64) ([]*models.LinkDecision, error) {
	ctx, cancel := s.withStoreTimeout(ctx)
	defer cancel()
	if _, err := s.signals.FindByID(ctx, signalID); err != nil {
		return nil, translate(err, fmt.Sprintf("signal %d", signalID))
	}
	out, err := s.signals.ListLinkDecisions(ctx, signalID)
	if err != nil {
		return nil, translate(err, "failed to list link decisions")
	}
	return out, nil
}

func alreadyLinkedMsg(sig *models.Signal) string {
	return fmt.Sprintf("signal %d is already linked to request %d; resend with override to relink", sig.ID, sig.LinkedRequestID)
}
