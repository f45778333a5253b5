// Package registrations реализует HTTP-обработчик списка регистраций поездки.
//
// Каждый запрос выполняет полную выборку в удалённом сервисе с текстом из
// параметра search. Список привязан к сессии и поездке, поэтому при ошибке
// выборки клиент получает последнее успешно загруженное состояние.
package registrations

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/flagship-portal/internal/http/middlewarectx"
	"github.com/magabrotheeeer/flagship-portal/internal/http/response"
	registrationservice "github.com/magabrotheeeer/flagship-portal/internal/services/registration"
	sessionservice "github.com/magabrotheeeer/flagship-portal/internal/services/session"
)

// Lists выдаёт список регистраций для сессии и поездки.
type Lists interface {
	Get(sessionID, token, flagshipID string) *registrationservice.List
}

// Handler обрабатывает запросы списка регистраций.
type Handler struct {
	log   *slog.Logger
	lists Lists
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, lists Lists) *Handler {
	return &Handler{log: log, lists: lists}
}

// ServeHTTP godoc
// @Summary Регистрации на поездку
// @Tags Flagships
// @Produce  json
// @Param id path string true "ID поездки"
// @Param search query string false "Строка поиска"
// @Success 200 {object} response.Response "Состояние списка: loading, empty, message, items"
// @Router /api/v1/flagships/{id}/registrations [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.flagship.registrations"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	store, ok := middlewarectx.StoreFromContext(r.Context())
	if !ok {
		response.Fail(w, r, sessionservice.ErrUnauthenticated)
		return
	}

	flagshipID := strings.TrimSpace(chi.URLParam(r, "id"))
	if flagshipID == "" {
		response.Fail(w, r, response.NewError(http.StatusBadRequest, "flagship id is required"))
		return
	}

	list := h.lists.Get(store.SessionID, store.BearerToken(), flagshipID)
	list.Search(r.Context(), r.URL.Query().Get("search"))
	view := list.View()

	log.Debug("registrations view",
		slog.String("flagship_id", flagshipID),
		slog.Bool("loading", view.Loading),
		slog.Int("count", len(view.Items)),
	)
	response.Render(w, r, response.OKWithData(view))
}
