// Package read возвращает черновик новой поездки текущего администратора.
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

// Service описывает чтение черновика.
type Service interface {
	Draft(store *state.Store) models.FlagshipDraft
}

// Handler обрабатывает запросы чтения черновика.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Черновик новой поездки
// @Tags Admin
// @Produce  json
// @Success 200 {object} response.Response
// @Router /api/v1/admin/flagship-draft [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	store, ok := middlewarectx.StoreFromContext(r.Context())
	if !ok {
		response.Fail(w, r, sessionservice.ErrUnauthenticated)
		return
	}
	response.Render(w, r, response.OKWithData(h.service.Draft(store)))
}
