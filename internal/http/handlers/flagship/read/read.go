// Package read реализует HTTP-обработчик получения карточки одной поездки по ID.
package read

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/flagship-portal/internal/http/middlewarectx"
	"github.com/magabrotheeeer/flagship-portal/internal/http/response"
	"github.com/magabrotheeeer/flagship-portal/internal/lib/sl"
	sessionservice "github.com/magabrotheeeer/flagship-portal/internal/services/session"
	"github.com/magabrotheeeer/flagship-portal/internal/views"
)

// Service описывает чтение карточки поездки.
type Service interface {
	Card(ctx context.Context, token, id string) (*views.FlagshipCard, error)
}

// Handler обрабатывает запросы на получение поездки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Карточка поездки
// @Tags Flagships
// @Produce  json
// @Param id path string true "ID поездки"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/flagships/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.flagship.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	store, ok := middlewarectx.StoreFromContext(r.Context())
	if !ok {
		response.Fail(w, r, sessionservice.ErrUnauthenticated)
		return
	}

	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		log.Info("empty flagship id")
		response.Fail(w, r, response.NewError(http.StatusBadRequest, "flagship id is required"))
		return
	}

	card, err := h.service.Card(r.Context(), store.BearerToken(), id)
	if err != nil {
		log.Error("failed to read flagship", slog.String("flagship_id", id), sl.Err(err))
		response.FailUpstream(w, r, err)
		return
	}

	response.Render(w, r, response.OKWithData(card))
}
