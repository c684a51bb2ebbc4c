package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"ssto/internal/request/models"
	dErrors "ssto/pkg/domain-errors"
	"ssto/pkg/platform/httputil"
	"ssto/pkg/requestcontext"
)

// Service defines the request operations exposed over HTTP.
type Service interface {
	Create(ctx context.Context, req *models.CreateRequest) (*models.TestRequest, error)
	Get(ctx context.Context, id int64) (*models.TestRequest, error)
	List(ctx context.Context, statuses ...models.Status) ([]*models.TestRequest, error)
	Transition(ctx context.Context, id int64, next models.Status) (*models.TestRequest, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the request routes. Middleware is applied by the caller.
func (h *Handler) Register(r chi.Router) {
	r.Route("/requests", func(r chi.Router) {
		r.Post("/", h.handleCreate)
		r.Get("/", h.handleList)
		r.Get("/{id}", h.handleGet)
		r.Post("/{id}/transitions", h.handleTransition)
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req models.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid create request body",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	created, err := h.service.Create(ctx, &req)
	if err != nil {
		h.writeServiceError(ctx, w, "create request", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var statuses []models.Status
	if raw := r.URL.Query().Get("status"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			st, err := models.ParseStatus(part)
			if err != nil {
				httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeValidation, err.Error()))
				return
			}
			statuses = append(statuses, st)
		}
	}
	list, err := h.service.List(ctx, statuses...)
	if err != nil {
		h.writeServiceError(ctx, w, "list requests", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"count": len(list), "items": list})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	req, err := h.service.Get(ctx, id)
	if err != nil {
		h.writeServiceError(ctx, w, "get request", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, req)
}

func (h *Handler) handleTransition(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var body models.TransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	next, err := models.ParseStatus(body.Status)
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeValidation, err.Error()))
		return
	}
	updated, err := h.service.Transition(ctx, id, next)
	if err != nil {
		h.writeServiceError(ctx, w, "transition request", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, updated)
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
