package service

import (
	"context"
	"errors"

	dErrors "ssto/pkg/domain-errors"
	"ssto/pkg/platform/sentinel"
)

// translate maps store facts to the domain taxonomy. Domain errors raised
// inside a commit pass through untouched.
func translate(err error, msg string) error {
	if err == nil {
		return nil
	}
	if _, ok := dErrors.As(err); ok {
		return err
	}
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.Wrap(err, dErrors.CodeNotFound, msg+": not found")
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.Wrap(err, dErrors.CodeAlreadyLinked, "signal was linked concurrently")
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return dErrors.Wrap(err, dErrors.CodeStoreUnavailable, msg+": store call timed out")
	default:
		return dErrors.Wrap(err, dErrors.CodeStoreUnavailable, msg)
	}
}
