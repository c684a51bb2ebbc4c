package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"ssto/internal/request/models"
	"ssto/internal/request/store"
	dErrors "ssto/pkg/domain-errors"
	"ssto/pkg/requestcontext"
)

type ServiceSuite struct {
	suite.Suite
	ctx     context.Context
	now     time.Time
	store   *store.InMemory
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.now = time.Date(2025, 10, 5, 9, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)
	s.store = store.NewInMemory()
	s.service = New(s.store)
}

func (s *ServiceSuite) createAt(status models.Status) *models.TestRequest {
	r, err := s.service.Create(s.ctx, &models.CreateRequest{VesselName: " Vitus Bering ", TerminalID: "427315936"})
	s.Require().NoError(err)
	path := map[models.Status][]models.Status{
		models.StatusDraft:     nil,
		models.StatusApproved:  {models.StatusSubmitted, models.StatusInReview, models.StatusApproved},
		models.StatusInTesting: {models.StatusSubmitted, models.StatusInReview, models.StatusApproved, models.StatusInTesting},
		models.StatusCompleted: {models.StatusSubmitted, models.StatusInReview, models.StatusApproved, models.StatusInTesting, models.StatusCompleted},
	}[status]
	for _, next := range path {
		r, err = s.service.Transition(s.ctx, r.ID, next)
		s.Require().NoError(err)
	}
	return r
}

func (s *ServiceSuite) TestCreate() {
	s.Run("starts in draft with trimmed fields", func() {
		r := s.createAt(models.StatusDraft)
		s.Equal(models.StatusDraft, r.Status)
		s.Equal("Vitus Bering", r.VesselName)
		s.Equal(s.now, r.CreatedAt)
	})

	s.Run("requires a vessel or terminal", func() {
		_, err := s.service.Create(s.ctx, &models.CreateRequest{MMSI: "273345000"})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *ServiceSuite) TestTransition() {
	s.Run("walks the happy path", func() {
		r := s.createAt(models.StatusCompleted)
		s.Equal(models.StatusCompleted, r.Status)
	})

	s.Run("completed to in testing is rejected and unchanged", func() {
		r := s.createAt(models.StatusCompleted)

		_, err := s.service.Transition(s.ctx, r.ID, models.StatusInTesting)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidTransition))

		stored, err := s.service.Get(s.ctx, r.ID)
		s.Require().NoError(err)
		s.Equal(models.StatusCompleted, stored.Status)
	})

	s.Run("unknown request", func() {
		_, err := s.service.Transition(s.ctx, 404, models.StatusSubmitted)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("rejected returns to draft", func() {
		r := s.createAt(models.StatusDraft)
		for _, next := range []models.Status{models.StatusSubmitted, models.StatusInReview, models.StatusRejected, models.StatusDraft} {
			var err error
			r, err = s.service.Transition(s.ctx, r.ID, next)
			s.Require().NoError(err)
		}
		s.Equal(models.StatusDraft, r.Status)
	})
}

func (s *ServiceSuite) TestListFiltersByStatus() {
	s.createAt(models.StatusDraft)
	approved := s.createAt(models.StatusApproved)

	list, err := s.service.List(s.ctx, models.StatusApproved)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal(approved.ID, list[0].ID)
}
