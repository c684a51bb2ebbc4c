package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ssto/internal/request/models"
	"ssto/pkg/platform/sentinel"
)

func seed(t *testing.T, s *InMemory, statuses ...models.Status) []*models.TestRequest {
	t.Helper()
	now := time.Date(2025, 10, 5, 0, 0, 0, 0, time.UTC)
	var out []*models.TestRequest
	for _, st := range statuses {
		r := models.NewTestRequest("Vessel", "273345000", "", "427315936", nil, nil, now)
		r.Status = st
		require.NoError(t, s.Create(context.Background(), r))
		out = append(out, r)
	}
	return out
}

func TestInMemoryEligibleCandidates(t *testing.T) {
	s := NewInMemory()
	seed(t, s,
		models.StatusDraft, models.StatusApproved, models.StatusCompleted,
		models.StatusInTesting, models.StatusCancelled,
	)

	got, err := s.FindEligibleCandidates(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID)
	assert.Equal(t, int64(4), got[1].ID)

	all, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestInMemoryUpdateStatusCAS(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()
	r := seed(t, s, models.StatusApproved)[0]
	at := time.Date(2025, 10, 6, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.UpdateStatus(ctx, r.ID, models.StatusApproved, models.StatusInTesting, at))
	err := s.UpdateStatus(ctx, r.ID, models.StatusApproved, models.StatusCancelled, at)
	assert.True(t, errors.Is(err, sentinel.ErrConflict))

	found, err := s.FindByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInTesting, found.Status)
	assert.Equal(t, at, found.UpdatedAt)

	err = s.UpdateStatus(ctx, 42, models.StatusApproved, models.StatusInTesting, at)
	assert.True(t, errors.Is(err, sentinel.ErrNotFound))
}

func TestInMemoryLinkedSignal(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()
	r := seed(t, s, models.StatusApproved)[0]

	require.NoError(t, s.SetLinkedSignal(ctx, r.ID, 7))
	require.NoError(t, s.ClearLinkedSignal(ctx, r.ID, 8))
	found, _ := s.FindByID(ctx, r.ID)
	assert.Equal(t, int64(7), found.LinkedSignalID)

	require.NoError(t, s.ClearLinkedSignal(ctx, r.ID, 7))
	found, _ = s.FindByID(ctx, r.ID)
	assert.Zero(t, found.LinkedSignalID)

	assert.True(t, errors.Is(s.SetLinkedSignal(ctx, 99, 1), sentinel.ErrNotFound))
}
