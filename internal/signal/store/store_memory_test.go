package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"ssto/internal/signal/models"
	"ssto/pkg/platform/sentinel"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func (s *InMemoryStoreSuite) create(terminal string) *models.Signal {
	sig := &models.Signal{
		TerminalID: terminal,
		ReceivedAt: time.Date(2025, 10, 5, 10, 0, 0, 0, time.UTC),
		Status:     models.StatusUnmatched,
		Metadata:   map[string]any{"subject": "TEST"},
	}
	s.Require().NoError(s.store.Create(s.ctx, sig))
	return sig
}

func (s *InMemoryStoreSuite) TestCreateAssignsIDs() {
	a := s.create("A")
	b := s.create("B")
	s.Equal(int64(1), a.ID)
	s.Equal(int64(2), b.ID)

	err := s.store.Create(s.ctx, &models.Signal{ID: 1, Status: models.StatusUnmatched})
	s.True(errors.Is(err, sentinel.ErrConflict))

	err = s.store.Create(s.ctx, &models.Signal{Status: models.StatusMatched})
	s.Error(err)
}

func (s *InMemoryStoreSuite) TestFindReturnsCopy() {
	sig := s.create("A")
	found, err := s.store.FindByID(s.ctx, sig.ID)
	s.Require().NoError(err)
	found.Metadata["subject"] = "changed"
	found.Status = models.StatusMatched

	again, err := s.store.FindByID(s.ctx, sig.ID)
	s.Require().NoError(err)
	s.Equal("TEST", again.Metadata["subject"])
	s.Equal(models.StatusUnmatched, again.Status)

	_, err = s.store.FindByID(s.ctx, 99)
	s.True(errors.Is(err, sentinel.ErrNotFound))
}

func (s *InMemoryStoreSuite) TestSetStatusCompareAndSet() {
	sig := s.create("A")

	s.Require().NoError(s.store.SetStatus(s.ctx, sig.ID, models.StatusUnmatched, models.StatusMatched, 10))

	err := s.store.SetStatus(s.ctx, sig.ID, models.StatusUnmatched, models.StatusMatched, 11)
	s.True(errors.Is(err, sentinel.ErrConflict))

	found, err := s.store.FindByID(s.ctx, sig.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusMatched, found.Status)
	s.Equal(int64(10), found.LinkedRequestID)

	err = s.store.SetStatus(s.ctx, 99, models.StatusUnmatched, models.StatusMatched, 1)
	s.True(errors.Is(err, sentinel.ErrNotFound))
}

func (s *InMemoryStoreSuite) TestSetStatusRejectsBrokenLinkInvariant() {
	sig := s.create("A")
	err := s.store.SetStatus(s.ctx, sig.ID, models.StatusUnmatched, models.StatusManuallyLinked, 0)
	s.True(errors.Is(err, sentinel.ErrInvalidState))
}

func (s *InMemoryStoreSuite) TestListAndCount() {
	a := s.create("A")
	s.create("B")
	s.create("C")
	s.Require().NoError(s.store.SetStatus(s.ctx, a.ID, models.StatusUnmatched, models.StatusMatched, 5))

	unmatched, err := s.store.ListByStatus(s.ctx, models.StatusUnmatched)
	s.Require().NoError(err)
	s.Require().Len(unmatched, 2)
	s.Equal(int64(2), unmatched[0].ID)
	s.Equal(int64(3), unmatched[1].ID)

	counts, err := s.store.CountByStatus(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, counts[models.StatusUnmatched])
	s.Equal(1, counts[models.StatusMatched])
}

func (s *InMemoryStoreSuite) TestLinkDecisionsAppendOnly() {
	now := time.Now()
	s.Require().NoError(s.store.AppendLinkDecision(s.ctx, models.NewLinkDecision(1, 10, models.LinkModeAuto, "", now)))
	s.Require().NoError(s.store.AppendLinkDecision(s.ctx, models.NewLinkDecision(2, 20, models.LinkModeAuto, "", now)))
	override := models.NewLinkDecision(1, 11, models.LinkModeManual, "op", now)
	override.Overridden = true
	override.PreviousRequestID = 10
	s.Require().NoError(s.store.AppendLinkDecision(s.ctx, override))

	got, err := s.store.ListLinkDecisions(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal(models.LinkModeAuto, got[0].Mode)
	s.True(got[1].Overridden)
	s.Equal(int64(10), got[1].PreviousRequestID)
}
