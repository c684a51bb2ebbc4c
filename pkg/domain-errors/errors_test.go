package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodes(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, CodeStoreUnavailable, "load signal")

	assert.True(t, Is(err, CodeStoreUnavailable))
	assert.False(t, Is(err, CodeNotFound))
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsRetryable(err))
	assert.Equal(t, "load signal: connection refused", err.Error())

	t.Run("wrapped with fmt keeps code", func(t *testing.T) {
		outer := fmt.Errorf("reconcile: %w", New(CodeAlreadyLinked, "signal is already linked"))
		assert.True(t, Is(outer, CodeAlreadyLinked))
		assert.False(t, IsRetryable(outer))
	})

	t.Run("HasCode walks nested coded errors", func(t *testing.T) {
		inner := New(CodeNotFound, "request not found")
		outer := Wrap(inner, CodeInternal, "manual link")
		assert.True(t, HasCode(outer, CodeNotFound))
		assert.False(t, Is(outer, CodeNotFound))
	})

	t.Run("plain errors carry no code", func(t *testing.T) {
		assert.False(t, Is(cause, CodeInternal))
		assert.False(t, IsRetryable(cause))
	})
}

func TestToHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeNotFound:          http.StatusNotFound,
		CodeAlreadyLinked:     http.StatusConflict,
		CodeInvalidTransition: http.StatusConflict,
		CodeValidation:        http.StatusBadRequest,
		CodeStoreUnavailable:  http.StatusServiceUnavailable,
		CodeInternal:          http.StatusInternalServerError,
	}
	for code, status := range cases {
		assert.Equal(t, status, ToHTTPStatus(code), string(code))
	}
}
