package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ssto/internal/platform/metrics"
	ptestutil "ssto/pkg/testutil"
	"ssto/pkg/requestcontext"
)

type stubValidator struct {
	claims *OperatorClaims
	err    error
}

func (v stubValidator) ValidateToken(string) (*OperatorClaims, error) {
	return v.claims, v.err
}

func actorEcho(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte(requestcontext.Actor(r.Context())))
}

func TestRequireOperator(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)

	t.Run("missing header", func(t *testing.T) {
		h := RequireOperator(stubValidator{}, logger)(http.HandlerFunc(actorEcho))
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		body := ptestutil.UnmarshalErrorResponse(t, rr)
		assert.Equal(t, "unauthorized", body["error"])
	})

	t.Run("invalid token", func(t *testing.T) {
		h := RequireOperator(stubValidator{err: errors.New("bad signature")}, logger)(http.HandlerFunc(actorEcho))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer nope")
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("valid token sets actor", func(t *testing.T) {
		h := RequireOperator(stubValidator{claims: &OperatorClaims{Operator: "op-7"}}, logger)(http.HandlerFunc(actorEcho))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer good")
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "op-7", rr.Body.String())
	})
}

func TestRequestContext(t *testing.T) {
	var gotID string
	var gotTime time.Time
	h := chimw.RequestID(RequestContext(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = requestcontext.RequestID(r.Context())
		gotTime = requestcontext.Now(r.Context())
	})))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(chimw.RequestIDHeader, "req-123")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, "req-123", gotID)
	assert.Equal(t, "req-123", rr.Header().Get(chimw.RequestIDHeader))
	assert.WithinDuration(t, time.Now(), gotTime, time.Second)
}

func TestLatencyUsesRoutePattern(t *testing.T) {
	m := metrics.NewWith(prometheus.NewRegistry())
	r := chi.NewRouter()
	r.Use(Latency(m))
	r.Get("/signals/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/signals/42", nil))
	require.Equal(t, http.StatusNoContent, rr.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues(http.MethodGet, "/signals/{id}", "204")))
}
