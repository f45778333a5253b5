// Package health реализует проверку готовности портала.
package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/magabrotheeeer/flagship-portal/internal/http/response"
	"github.com/magabrotheeeer/flagship-portal/internal/lib/sl"
)

// Pinger проверяет доступность хранилища слотов.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler отвечает на /health.
type Handler struct {
	log     *slog.Logger
	storage Pinger
	backend string
}

// New создает обработчик. storage может быть nil, тогда проверяется только сам процесс.
func New(log *slog.Logger, storage Pinger, backend string) *Handler {
	return &Handler{
		log:     log,
		storage: storage,
		backend: backend,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"

	if h.storage != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.storage.Ping(ctx); err != nil {
			h.log.Error("state storage is unreachable", slog.String("op", op), slog.String("backend", h.backend), sl.Err(err))
			response.Fail(w, r, response.WrapError(http.StatusServiceUnavailable, "state storage unavailable", err))
			return
		}
	}

	response.Render(w, r, response.OKWithData(map[string]any{
		"status": "ok",
		"state":  h.backend,
	}))
}
