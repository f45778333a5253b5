// Package decide реализует одобрение и отклонение запроса на возврат.
//
// Решение принимается только через действие карточки: если карточка его не
// предлагает (возврат уже рассмотрен), клиент получает 409.
package decide

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
	"github.com/magabrotheeeer/flagship-portal/internal/models"
	sessionservice "github.com/magabrotheeeer/flagship-portal/internal/services/session"
	"github.com/magabrotheeeer/flagship-portal/internal/views"
)

// Service описывает принятие решения по возврату.
type Service interface {
	Decide(ctx context.Context, token, actorID, refundID string, decision models.RefundStatus) (*views.RefundCard, error)
}

// Handler обрабатывает одно из решений: approved или rejected.
type Handler struct {
	log      *slog.Logger
	service  Service
	decision models.RefundStatus
}

// New создает обработчик для решения decision.
func New(log *slog.Logger, service Service, decision models.RefundStatus) *Handler {
	return &Handler{log: log, service: service, decision: decision}
}

// ServeHTTP godoc
// @Summary Одобрить или отклонить возврат
// @Tags Admin
// @Produce  json
// @Param id path string true "ID возврата"
// @Success 200 {object} response.Response "Карточка с новым статусом"
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse "Возврат уже рассмотрен"
// @Router /api/v1/admin/refunds/{id}/approve [post]
// @Router /api/v1/admin/refunds/{id}/reject [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.refund.decide"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("decision", string(h.decision)),
	)

	store, ok := middlewarectx.StoreFromContext(r.Context())
	if !ok {
		response.Fail(w, r, sessionservice.ErrUnauthenticated)
		return
	}

	refundID := strings.TrimSpace(chi.URLParam(r, "id"))
	if refundID == "" {
		response.Fail(w, r, response.NewError(http.StatusBadRequest, "refund id is required"))
		return
	}
	user, _ := store.User.Get()

	card, err := h.service.Decide(r.Context(), store.BearerToken(), user.ID, refundID, h.decision)
	if err != nil {
		log.Warn("refund decision failed", slog.String("refund_id", refundID), sl.Err(err))
		response.FailUpstream(w, r, err)
		return
	}

	log.Info("refund decided", slog.String("refund_id", refundID), slog.String("actor_id", user.ID))
	response.Render(w, r, response.OK(http.StatusOK, "Refund "+string(card.Status), card))
}
