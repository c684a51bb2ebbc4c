package service

import (
	"context"

	"ssto/internal/audit"
	reqmodels "ssto/internal/request/models"
	"ssto/internal/signal/models"
)

// RequestStore supplies the candidate pool and records which signal a
// request was linked to.
type RequestStore interface {
	FindEligibleCandidates(ctx context.Context) ([]*reqmodels.TestRequest, error)
	FindByID(ctx context.Context, id int64) (*reqmodels.TestRequest, error)
	SetLinkedSignal(ctx context.Context, requestID, signalID int64) error
	ClearLinkedSignal(ctx context.Context, requestID, signalID int64) error
}

// SignalStore persists signals and the append-only link audit. SetStatus
// must be a compare-and-set on the current status.
type SignalStore interface {
	Create(ctx context.Context, sig *models.Signal) error
	FindByID(ctx context.Context, id int64) (*models.Signal, error)
	SetStatus(ctx context.Context, id int64, expected, next models.Status, requestID int64) error
	AppendLinkDecision(ctx context.Context, d *models.LinkDecision) error
	ListLinkDecisions(ctx context.Context, signalID int64) ([]*models.LinkDecision, error)
	ListByStatus(ctx context.Context, status models.Status) ([]*models.Signal, error)
	CountByStatus(ctx context.Context) (map[models.Status]int, error)
}

// Locker serializes link commits for one signal. The returned func releases
// the lock and is safe to call more than once.
type Locker interface {
	Lock(ctx context.Context, signalID int64) (unlock func(), err error)
}

// TxRunner makes the writes inside fn commit or fail together. Stores pick
// the transaction up from the context passed to fn.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}
