// Package update заменяет фильтры, сохранённые в сессии.
package update

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/flagship-portal/internal/http/middlewarectx"
	"github.com/magabrotheeeer/flagship-portal/internal/http/response"
	"github.com/magabrotheeeer/flagship-portal/internal/lib/sl"
	"github.com/magabrotheeeer/flagship-portal/internal/models"
	sessionservice "github.com/magabrotheeeer/flagship-portal/internal/services/session"
	"github.com/magabrotheeeer/flagship-portal/internal/state"
)

// Service описывает запись фильтров.
type Service interface {
	SetFilters(ctx context.Context, store *state.Store, filters []models.Filter) ([]models.Filter, error)
}

// Handler обрабатывает PUT /filters.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Сохранить фильтры
// @Tags Filters
// @Accept  json
// @Produce  json
// @Param request body models.DummyFilters true "Фильтры"
// @Success 200 {object} response.Response
// @Failure 422 {object} response.ErrorResponse
// @Router /api/v1/filters [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.filter.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	store, ok := middlewarectx.StoreFromContext(r.Context())
	if !ok {
		response.Fail(w, r, sessionservice.ErrUnauthenticated)
		return
	}

	var req models.DummyFilters
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		response.Fail(w, r, response.NewError(http.StatusBadRequest, "invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Info("validation failed", sl.Err(err))
		response.Invalid(w, r, err)
		return
	}

	filters, err := h.service.SetFilters(r.Context(), store, req.Filters)
	if err != nil {
		log.Error("failed to save filters", sl.Err(err))
		response.Fail(w, r, response.WrapError(http.StatusServiceUnavailable, "session storage unavailable", err))
		return
	}
	response.Render(w, r, response.OK(http.StatusOK, "Filters saved", filters))
}
