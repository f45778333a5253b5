// Package read возвращает фильтры, сохранённые в сессии.
package read

import (
	"log/slog"
	"net/http"

	"github.com/magabrotheeeer/flagship-portal/internal/http/middlewarectx"
	"github.com/magabrotheeeer/flagship-portal/internal/http/response"
	"github.com/magabrotheeeer/flagship-portal/internal/models"
	sessionservice "github.com/magabrotheeeer/flagship-portal/internal/services/session"
	"github.com/magabrotheeeer/flagship-portal/internal/state"
)

// Service описывает чтение фильтров.
type Service interface {
	Filters(store *state.Store) []models.Filter
}

// Handler обрабатывает GET /filters.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Фильтры сессии
// @Tags Filters
// @Produce  json
// @Success 200 {object} response.Response
// @Router /api/v1/filters [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	store, ok := middlewarectx.StoreFromContext(r.Context())
	if !ok {
		response.Fail(w, r, sessionservice.ErrUnauthenticated)
		return
	}
	response.Render(w, r, response.OKWithData(h.service.Filters(store)))
}
