// Package dashboard возвращает сводку панели администратора.
//
// Разделы загружаются параллельно; раздел, который не удалось получить,
// остаётся нулевым и перечисляется в поле failed. Ответ всегда 200.
package dashboard

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/flagship-portal/internal/http/middlewarectx"
	"github.com/magabrotheeeer/flagship-portal/internal/http/response"
	dashboardservice "github.com/magabrotheeeer/flagship-portal/internal/services/dashboard"
	sessionservice "github.com/magabrotheeeer/flagship-portal/internal/services/session"
)

// Service строит сводку.
type Service interface {
	Summary(ctx context.Context, token string) dashboardservice.Summary
}

// Handler обрабатывает запрос сводки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Сводка панели администратора
// @Tags Admin
// @Produce  json
// @Success 200 {object} response.Response
// @Router /api/v1/admin/dashboard [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dashboard"

	store, ok := middlewarectx.StoreFromContext(r.Context())
	if !ok {
		response.Fail(w, r, sessionservice.ErrUnauthenticated)
		return
	}

	sum := h.service.Summary(r.Context(), store.BearerToken())
	if len(sum.Failed) > 0 {
		h.log.Warn("dashboard is partial",
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.Any("failed", sum.Failed),
		)
	}
	response.Render(w, r, response.OKWithData(sum))
}
