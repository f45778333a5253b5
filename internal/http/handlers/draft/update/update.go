// Package update сохраняет очередной шаг черновика новой поездки.
//
// Заполненные поля шага накладываются на черновик, пустые не затирают
// уже введённые значения.
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

// Service описывает запись шага черновика.
type Service interface {
	SaveStep(ctx context.Context, store *state.Store, step models.DummyFlagshipDraft) (models.FlagshipDraft, error)
}

// Handler обрабатывает запросы обновления черновика.
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
// @Summary Сохранить шаг черновика поездки
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param request body models.DummyFlagshipDraft true "Поля шага"
// @Success 200 {object} response.Response
// @Failure 422 {object} response.ErrorResponse
// @Router /api/v1/admin/flagship-draft [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.draft.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	store, ok := middlewarectx.StoreFromContext(r.Context())
	if !ok {
		response.Fail(w, r, sessionservice.ErrUnauthenticated)
		return
	}

	var req models.DummyFlagshipDraft
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

	draft, err := h.service.SaveStep(r.Context(), store, req)
	if err != nil {
		log.Error("failed to save draft step", sl.Err(err))
		response.Fail(w, r, response.WrapError(http.StatusServiceUnavailable, "session storage unavailable", err))
		return
	}

	log.Debug("draft step saved", slog.Int("step", draft.Step))
	response.Render(w, r, response.OK(http.StatusOK, "Draft saved", draft))
}
