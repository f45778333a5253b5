// Package list возвращает карточки запросов на возврат для панели администратора.
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

// Service описывает получение карточек возвратов.
type Service interface {
	Cards(ctx context.Context, token, actorID string) ([]*views.RefundCard, error)
}

// Handler обрабатывает запросы списка возвратов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Запросы на возврат
// @Tags Admin
// @Produce  json
// @Success 200 {object} response.Response
// @Router /api/v1/admin/refunds [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.refund.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	store, ok := middlewarectx.StoreFromContext(r.Context())
	if !ok {
		response.Fail(w, r, sessionservice.ErrUnauthenticated)
		return
	}
	user, _ := store.User.Get()

	cards, err := h.service.Cards(r.Context(), store.BearerToken(), user.ID)
	if err != nil {
		log.Error("failed to list refunds", sl.Err(err))
		response.FailUpstream(w, r, err)
		return
	}

	response.Render(w, r, response.OKWithData(cards))
}
