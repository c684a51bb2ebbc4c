package handler

import (
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"ssto/internal/request/handler/mocks"
	"ssto/internal/request/models"
	dErrors "ssto/pkg/domain-errors"
	"ssto/pkg/testutil"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service
type HandlerSuite struct {
	suite.Suite
	service *mocks.MockService
	router  chi.Router
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.service = mocks.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.router = chi.NewRouter()
	New(s.service, logger).Register(s.router)
}

func (s *HandlerSuite) TestCreate() {
	planned := time.Date(2025, 10, 5, 9, 30, 0, 0, time.UTC)
	s.service.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, req *models.CreateRequest) (*models.TestRequest, error) {
			s.Equal("Vitus Bering", req.VesselName)
			s.Require().NotNil(req.PlannedTestDate)
			s.True(planned.Equal(*req.PlannedTestDate))
			return &models.TestRequest{ID: 1, VesselName: req.VesselName, Status: models.StatusDraft}, nil
		})

	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/requests", map[string]any{
		"vessel_name":       "Vitus Bering",
		"planned_test_date": planned.Format(time.RFC3339),
	}))

	testutil.AssertStatus(s.T(), rr, http.StatusCreated)
	body := testutil.UnmarshalResponse[models.TestRequest](s.T(), rr)
	s.Equal(int64(1), body.ID)
	s.Equal(models.StatusDraft, body.Status)
}

func (s *HandlerSuite) TestCreateBadBody() {
	rr := testutil.DoRequest(s.router, testutil.NewRequestWithBody(s.T(), http.MethodPost, "/requests", "{"))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
}

func (s *HandlerSuite) TestGetNotFound() {
	s.service.EXPECT().Get(gomock.Any(), int64(9)).
		Return(nil, dErrors.New(dErrors.CodeNotFound, "test request not found"))

	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/requests/9"))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
}

func (s *HandlerSuite) TestGetInvalidID() {
	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/requests/abc"))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
}

func (s *HandlerSuite) TestTransition() {
	s.Run("status parsed case-insensitively", func() {
		s.service.EXPECT().Transition(gomock.Any(), int64(3), models.StatusApproved).
			Return(&models.TestRequest{ID: 3, Status: models.StatusApproved}, nil)

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/requests/3/transitions",
			map[string]string{"status": "approved"}))
		testutil.AssertStatusOK(s.T(), rr)
		testutil.AssertJSONContains(s.T(), rr, "status", "APPROVED")
	})

	s.Run("invalid transition is a conflict", func() {
		s.service.EXPECT().Transition(gomock.Any(), int64(3), models.StatusInTesting).
			Return(nil, dErrors.New(dErrors.CodeInvalidTransition, "invalid transition from COMPLETED to IN_TESTING"))

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/requests/3/transitions",
			map[string]string{"status": "IN_TESTING"}))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusConflict, "invalid_transition")
	})

	s.Run("unknown status rejected before the service", func() {
		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/requests/3/transitions",
			map[string]string{"status": "pending"}))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "validation_error")
	})
}

func (s *HandlerSuite) TestListByStatus() {
	s.service.EXPECT().List(gomock.Any(), models.StatusApproved, models.StatusInTesting).
		Return([]*models.TestRequest{{ID: 1}, {ID: 2}}, nil)

	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/requests?status=approved,in_testing"))
	testutil.AssertStatusOK(s.T(), rr)
	testutil.AssertJSONContains(s.T(), rr, "count", float64(2))
}
