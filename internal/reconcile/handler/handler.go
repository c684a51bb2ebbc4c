package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"ssto/internal/reconcile/service"
	"ssto/internal/signal/models"
	dErrors "ssto/pkg/domain-errors"
	"ssto/pkg/platform/httputil"
	"ssto/pkg/requestcontext"
)

// Service defines the reconciliation operations exposed over HTTP.
type Service interface {
	Ingest(ctx context.Context, sig *models.Signal) (*models.Signal, *service.Result, error)
	GetSignal(ctx context.Context, signalID int64) (*models.Signal, error)
	ReconcileByID(ctx context.Context, signalID int64) (*service.Result, error)
	ManualLink(ctx context.Context, signalID, requestID int64, override bool) (*models.LinkDecision, error)
	Decisions(ctx context.Context, signalID int64) ([]*models.LinkDecision, error)
	ListUnmatched(ctx context.Context, q service.FeedQuery) (*service.FeedPage, error)
	Stats(ctx context.Context) (*service.Stats, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the signal routes. Middleware is applied by the caller.
func (h *Handler) Register(r chi.Router) {
	r.Route("/signals", func(r chi.Router) {
		r.Post("/", h.handleIngest)
		r.Get("/unmatched", h.handleUnmatched)
		r.Get("/stats", h.handleStats)
		r.Get("/{id}", h.handleGet)
		r.Post("/{id}/reconcile", h.handleReconcile)
		r.Post("/{id}/link", h.handleLink)
		r.Get("/{id}/decisions", h.handleDecisions)
	})
}

func (h *Handler) handleIngest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req IngestSignalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid ingest body",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	stored, res, err := h.service.Ingest(ctx, req.ToSignal())
	if err != nil {
		if stored != nil {
			h.logger.WarnContext(ctx, "signal stored but reconciliation failed",
				"request_id", requestcontext.RequestID(ctx),
				"signal_id", stored.ID,
				"error", err,
			)
		}
		h.writeServiceError(ctx, w, "ingest signal", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, IngestResponse{Signal: stored, Reconciliation: res})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	sig, err := h.service.GetSignal(ctx, id)
	if err != nil {
		h.writeServiceError(ctx, w, "get signal", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, sig)
}

func (h *Handler) handleReconcile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	res, err := h.service.ReconcileByID(ctx, id)
	if err != nil {
		h.writeServiceError(ctx, w, "reconcile signal", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) handleLink(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var body LinkRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	decision, err := h.service.ManualLink(ctx, id, body.RequestID, body.Override)
	if err != nil {
		h.writeServiceError(ctx, w, "link signal", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, decision)
}

func (h *Handler) handleDecisions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	decisions, err := h.service.Decisions(ctx, id)
	if err != nil {
		h.writeServiceError(ctx, w, "list link decisions", err)
		return
	}
	if decisions == nil {
		decisions = []*models.LinkDecision{}
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"count": len(decisions), "items": decisions})
}

func (h *Handler) handleUnmatched(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q, err := parseFeedQuery(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	page, err := h.service.ListUnmatched(ctx, q)
	if err != nil {
		h.writeServiceError(ctx, w, "list unmatched signals", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, page)
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	stats, err := h.service.Stats(ctx)
	if err != nil {
		h.writeServiceError(ctx, w, "signal stats", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, stats)
}

// parseFeedQuery reads sort, dir, limit and offset. Sort and direction
// values are checked by the service.
func parseFeedQuery(r *http.Request) (service.FeedQuery, error) {
	values := r.URL.Query()
	q := service.FeedQuery{
		Sort: service.FeedSort(values.Get("sort")),
		Dir:  service.SortDir(values.Get("dir")),
	}
	for name, dst := range map[string]*int{"limit": &q.Limit, "offset": &q.Offset} {
		raw := values.Get(name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return q, dErrors.New(dErrors.CodeValidation, name+" must be an integer")
		}
		*dst = n
	}
	return q, nil
}

func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, op string, err error) {
	if dErrors.HasCode(err, dErrors.CodeStoreUnavailable) || !isDomain(err) {
		h.logger.ErrorContext(ctx, op+" failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
	}
	httputil.WriteError(w, err)
}

func isDomain(err error) bool {
	_, ok := dErrors.As(err)
	return ok
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid id"))
		return 0, false
	}
	return id, true
}
