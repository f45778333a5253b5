// Package list реализует HTTP-обработчик получения каталога поездок.
//
// Карточки возвращаются в порядке удалённого сервиса, без сортировки на стороне портала.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/flagship-portal/internal/http/middlewarectx"
	"github.com/magabrotheeeer/flagship-portal/internal/http/response"
	"github.com/magabrotheeeer/flagship-portal/internal/lib/sl"
	sessionservice "github.com/magabrotheeeer/flagship-portal/internal/services/session"
	"github.com/magabrotheeeer/flagship-portal/internal/views"
)

// Service описывает получение карточек поездок.
type Service interface {
	Cards(ctx context.Context, token string) ([]*views.FlagshipCard, error)
}

// Handler обрабатывает запросы каталога.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Каталог поездок
// @Tags Flagships
// @Produce  json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.ErrorResponse
// @Failure 502 {object} response.ErrorResponse
// @Router /api/v1/flagships [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.flagship.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	store, ok := middlewarectx.StoreFromContext(r.Context())
	if !ok {
		response.Fail(w, r, sessionservice.ErrUnauthenticated)
		return
	}

	cards, err := h.service.Cards(r.Context(), store.BearerToken())
	if err != nil {
		log.Error("failed to list flagships", sl.Err(err))
		response.FailUpstream(w, r, err)
		return
	}

	log.Debug("flagships listed", slog.Int("count", len(cards)))
	response.Render(w, r, response.OKWithData(cards))
}
