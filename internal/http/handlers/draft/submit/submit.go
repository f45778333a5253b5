// Package submit отправляет заполненный черновик: поездка создаётся в
// удалённом сервисе, черновик очищается.
package submit

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/flagship-portal/internal/http/middlewarectx"
	"github.com/magabrotheeeer/flagship-portal/internal/http/response"
	"github.com/magabrotheeeer/flagship-portal/internal/lib/sl"
	"github.com/magabrotheeeer/flagship-portal/internal/models"
	sessionservice "github.com/magabrotheeeer/flagship-portal/internal/services/session"
	"github.com/magabrotheeeer/flagship-portal/internal/state"
	"github.com/magabrotheeeer/flagship-portal/internal/views"
)

// Service описывает отправку черновика.
type Service interface {
	Submit(ctx context.Context, store *state.Store) (*models.Flagship, error)
}

// Handler обрабатывает отправку черновика.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Создать поездку из черновика
// @Tags Admin
// @Produce  json
// @Success 201 {object} response.Response "Карточка созданной поездки"
// @Failure 422 {object} response.ErrorResponse "Черновик не заполнен"
// @Router /api/v1/admin/flagship-draft/submit [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.draft.submit"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	store, ok := middlewarectx.StoreFromContext(r.Context())
	if !ok {
		response.Fail(w, r, sessionservice.ErrUnauthenticated)
		return
	}

	created, err := h.service.Submit(r.Context(), store)
	if err != nil {
		log.Warn("failed to submit flagship draft", sl.Err(err))
		response.FailUpstream(w, r, err)
		return
	}

	log.Info("flagship created", slog.String("flagship_id", created.ID))
	response.Render(w, r, response.OK(http.StatusCreated, "Flagship created", views.NewFlagshipCard(*created, nil)))
}
