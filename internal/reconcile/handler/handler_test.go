package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"ssto/internal/matching"
	"ssto/internal/reconcile/handler/mocks"
	"ssto/internal/reconcile/service"
	"ssto/internal/signal/models"
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

func (s *HandlerSuite) TestIngest() {
	received := time.Date(2025, 10, 5, 10, 0, 0, 0, time.UTC)
	s.service.EXPECT().Ingest(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, sig *models.Signal) (*models.Signal, *service.Result, error) {
			s.Equal("TST-0001", sig.TerminalID)
			s.True(received.Equal(sig.ReceivedAt))
			s.Equal("SSAS TEST", sig.Metadata["subject"])
			stored := sig.Clone()
			stored.ID = 11
			stored.Status = models.StatusMatched
			stored.LinkedRequestID = 3
			return stored, &service.Result{SignalID: 11, Matched: true, RequestID: 3, Suggestions: []matching.Suggestion{}}, nil
		})

	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/signals", map[string]any{
		"terminal_id": " TST-0001 ",
		"received_at": received.Format(time.RFC3339),
		"metadata":    map[string]any{"subject": "SSAS TEST"},
	}))

	testutil.AssertStatus(s.T(), rr, http.StatusCreated)
	body := testutil.UnmarshalResponse[IngestResponse](s.T(), rr)
	s.Equal(int64(11), body.Signal.ID)
	s.True(body.Reconciliation.Matched)
	s.Equal(int64(3), body.Reconciliation.RequestID)
}

func (s *HandlerSuite) TestIngestBadBody() {
	rr := testutil.DoRequest(s.router, testutil.NewRequestWithBody(s.T(), http.MethodPost, "/signals", "[1,2"))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
}

func (s *HandlerSuite) TestReconcile() {
	s.Run("ok", func() {
		s.service.EXPECT().ReconcileByID(gomock.Any(), int64(5)).
			Return(&service.Result{SignalID: 5, Messages: []string{"m"}}, nil)

		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodPost, "/signals/5/reconcile"))
		testutil.AssertStatusOK(s.T(), rr)
		testutil.AssertJSONContains(s.T(), rr, "matched", false)
	})

	s.Run("already linked", func() {
		s.service.EXPECT().ReconcileByID(gomock.Any(), int64(5)).
			Return(nil, dErrors.New(dErrors.CodeAlreadyLinked, "signal 5 is already linked"))

		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodPost, "/signals/5/reconcile"))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusConflict, "already_linked")
	})

	s.Run("store unavailable is retryable", func() {
		s.service.EXPECT().ReconcileByID(gomock.Any(), int64(5)).
			Return(nil, dErrors.New(dErrors.CodeStoreUnavailable, "failed to load candidate requests"))

		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodPost, "/signals/5/reconcile"))
		testutil.AssertStatus(s.T(), rr, http.StatusServiceUnavailable)
		testutil.AssertRetryable(s.T(), rr, true)
	})

	s.Run("invalid id", func() {
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodPost, "/signals/-1/reconcile"))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})
}

func (s *HandlerSuite) TestLink() {
	s.Run("created", func() {
		s.service.EXPECT().ManualLink(gomock.Any(), int64(4), int64(9), true).
			Return(&models.LinkDecision{SignalID: 4, RequestID: 9, Mode: models.LinkModeManual, Overridden: true}, nil)

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/signals/4/link",
			map[string]any{"request_id": 9, "override": true}))
		testutil.AssertStatus(s.T(), rr, http.StatusCreated)
		body := testutil.UnmarshalResponse[models.LinkDecision](s.T(), rr)
		s.True(body.Overridden)
		s.Equal(models.LinkModeManual, body.Mode)
	})

	s.Run("conflict without override", func() {
		s.service.EXPECT().ManualLink(gomock.Any(), int64(4), int64(9), false).
			Return(nil, dErrors.New(dErrors.CodeAlreadyLinked, "signal 4 is already linked to request 2"))

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/signals/4/link",
			map[string]any{"request_id": 9}))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusConflict, "already_linked")
	})

	s.Run("unknown request", func() {
		s.service.EXPECT().ManualLink(gomock.Any(), int64(4), int64(99), false).
			Return(nil, dErrors.New(dErrors.CodeNotFound, "request 99: not found"))

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/signals/4/link",
			map[string]any{"request_id": 99}))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
	})
}

func (s *HandlerSuite) TestUnmatched() {
	s.Run("query parsed", func() {
		s.service.EXPECT().ListUnmatched(gomock.Any(), service.FeedQuery{Sort: service.SortTime, Dir: service.DirAsc, Limit: 10, Offset: 20}).
			Return(&service.FeedPage{Count: 0, Items: []*service.FeedItem{}}, nil)

		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/signals/unmatched?sort=time&dir=asc&limit=10&offset=20"))
		testutil.AssertStatusOK(s.T(), rr)
		testutil.AssertJSONHasKey(s.T(), rr, "items")
	})

	s.Run("non-numeric limit", func() {
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/signals/unmatched?limit=ten"))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "validation_error")
	})

	s.Run("feed items flatten the signal", func() {
		s.service.EXPECT().ListUnmatched(gomock.Any(), service.FeedQuery{}).
			Return(&service.FeedPage{Count: 1, Items: []*service.FeedItem{{
				Signal:      &models.Signal{ID: 3, Status: models.StatusUnmatched},
				Suggestions: []matching.Suggestion{{RequestID: 8, Score: 40, Reasons: []matching.Reason{matching.ReasonMMSI}}},
				TopScore:    40,
			}}}, nil)

		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/signals/unmatched"))
		testutil.AssertStatusOK(s.T(), rr)
		body := testutil.UnmarshalResponse[struct {
			Count int `json:"count"`
			Items []struct {
				ID       int64  `json:"id"`
				Status   string `json:"status"`
				TopScore int    `json:"top_score"`
			} `json:"items"`
		}](s.T(), rr)
		s.Equal(1, body.Count)
		s.Require().Len(body.Items, 1)
		s.Equal(int64(3), body.Items[0].ID)
		s.Equal("UNMATCHED", body.Items[0].Status)
		s.Equal(40, body.Items[0].TopScore)
	})
}

func (s *HandlerSuite) TestStats() {
	s.service.EXPECT().Stats(gomock.Any()).Return(&service.Stats{
		Total:    2,
		ByStatus: map[models.Status]int{models.StatusUnmatched: 1, models.StatusMatched: 1},
	}, nil)

	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/signals/stats"))
	testutil.AssertStatusOK(s.T(), rr)
	testutil.AssertJSONContains(s.T(), rr, "total", float64(2))
}

func (s *HandlerSuite) TestDecisions() {
	s.service.EXPECT().Decisions(gomock.Any(), int64(2)).Return(nil, nil)

	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/signals/2/decisions"))
	testutil.AssertStatusOK(s.T(), rr)
	testutil.AssertJSONContains(s.T(), rr, "count", float64(0))
}

func (s *HandlerSuite) TestGetSignalNotFound() {
	s.service.EXPECT().GetSignal(gomock.Any(), int64(404)).
		Return(nil, dErrors.New(dErrors.CodeNotFound, "signal: not found"))

	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/signals/404"))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
}
