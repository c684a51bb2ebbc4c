package service

import "context"

// inlineTx runs fn directly. The in-memory stores have no transaction to
// join; the per-signal lock and the status compare-and-set carry the
// guarantees.
type inlineTx struct{}

func (inlineTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
