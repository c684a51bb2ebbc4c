package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"ssto/internal/matching"
	reqmodels "ssto/internal/request/models"
	"ssto/internal/signal/models"
	dErrors "ssto/pkg/domain-errors"
	"ssto/pkg/requestcontext"
)

// Result is the outcome of reconciling one signal. Suggestions are computed
// even when the signal was auto-linked.
type Result struct {
	SignalID     int64                 `json:"signal_id"`
	Matched      bool                  `json:"matched"`
	RequestID    int64                 `json:"request_id,omitempty"`
	Suggestions  []matching.Suggestion `json:"suggestions"`
	Messages     []string              `json:"operator_messages"`
	IsTestSignal bool                  `json:"is_test_signal"`
}

// Reconcile auto-links sig to the eligible request with the same terminal id
// when there is one, and always returns ranked suggestions. The signal must
// still be UNMATCHED; a link that lands first elsewhere yields
// ALREADY_LINKED.
func (s *Service) Reconcile(ctx context.Context, sig *models.Signal) (*Result, error) {
	if sig == nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "signal is required")
	}
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "reconcile.Reconcile")
	span.SetAttributes(attribute.Int64("signal.id", sig.ID))
	defer span.End()

	res, err := s.reconcile(ctx, sig)
	s.metrics.ObserveReconcileLatency(time.Since(start))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.metrics.IncrementReconcileOutcome("error")
		return nil, err
	}
	span.SetAttributes(attribute.Bool("reconcile.matched", res.Matched))
	if res.Matched {
		s.metrics.IncrementReconcileOutcome("matched")
	} else {
		s.metrics.IncrementReconcileOutcome("unmatched")
	}
	s.metrics.ObserveSuggestions(len(res.Suggestions))
	return res, nil
}

func (s *Service) reconcile(ctx context.Context, sig *models.Signal) (*Result, error) {
	if sig.Status.IsLinked() {
		return nil, dErrors.New(dErrors.CodeAlreadyLinked, alreadyLinkedMsg(sig))
	}

	ids := s.extractor.Extract(sig)
	candidates, err := s.eligibleCandidates(ctx)
	if err != nil {
		return nil, err
	}

	res := &Result{SignalID: sig.ID, IsTestSignal: ids.IsTestSignal}
	if match, ok := s.engine.SelectStrict(ids, candidates); ok {
		if err := s.autoLink(ctx, sig, match.Request); err != nil {
			return nil, err
		}
		res.Matched = true
		res.RequestID = match.Request.ID
	}

	res.Suggestions = s.engine.Suggest(ids, candidates, 0)
	res.Messages = matching.OperatorMessages(matching.Outcome{
		Identifiers: ids,
		Matched:     res.Matched,
		RequestID:   res.RequestID,
		Suggestions: res.Suggestions,
	})
	return res, nil
}

func (s *Service) eligibleCandidates(ctx context.Context) ([]*reqmodels.TestRequest, error) {
	ctx, cancel := s.withStoreTimeout(ctx)
	defer cancel()
	candidates, err := s.requests.FindEligibleCandidates(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load candidate requests",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		return nil, translate(err, "failed to load candidate requests")
	}
	return candidates, nil
}

func (s *Service) autoLink(ctx context.Context, sig *models.Signal, req *reqmodels.TestRequest) error {
	decision := models.NewLinkDecision(sig.ID, req.ID, models.LinkModeAuto, "", requestcontext.Now(ctx))

	err := s.commit(ctx, sig.ID, func(ctx context.Context) error {
		if err := s.signals.SetStatus(ctx, sig.ID, models.StatusUnmatched, models.StatusMatched, req.ID); err != nil {
			return err
		}
		if err := s.requests.SetLinkedSignal(ctx, req.ID, sig.ID); err != nil {
			return err
		}
		if err := s.signals.AppendLinkDecision(ctx, decision); err != nil {
			return err
		}
		return s.emit(ctx, auditEvent{action: linkAction(decision), decision: decision})
	})
	if err != nil {
		err = translate(err, "failed to commit auto-link")
		s.logCommitFailure(ctx, "auto-link", sig.ID, req.ID, err)
		return err
	}

	s.logger.InfoContext(ctx, "signal auto-linked",
		"request_id", requestcontext.RequestID(ctx),
		"signal_id", sig.ID,
		"test_request_id", req.ID,
		"terminal_id", req.TerminalID,
	)
	return nil
}

func (s *Service) logCommitFailure(ctx context.Context, op string, signalID, requestID int64, err error) {
	level := s.logger.WarnContext
	if dErrors.HasCode(err, dErrors.CodeStoreUnavailable) {
		level = s.logger.ErrorContext
	}
	level(ctx, op+" commit failed",
		"request_id", requestcontext.RequestID(ctx),
		"signal_id", signalID,
		"test_request_id", requestID,
		"error", err,
	)
}
