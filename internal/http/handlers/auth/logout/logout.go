// Package logout реализует выход из системы: все слоты сессии очищаются,
// cookie удаляется, клиент перенаправляется на страницу входа.
package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/flagship-portal/internal/http/cookie"
	"github.com/magabrotheeeer/flagship-portal/internal/lib/sl"
	"github.com/magabrotheeeer/flagship-portal/internal/state"
)

// Sessions восстанавливает и закрывает сессию.
type Sessions interface {
	Resolve(ctx context.Context, cookie string) (*state.Store, error)
	Close(ctx context.Context, store *state.Store) error
}

// Handler обрабатывает выход.
type Handler struct {
	log       *slog.Logger
	sessions  Sessions
	cookie    cookie.Options
	loginPath string
}

// New создает новый экземпляр Handler. loginPath — адрес страницы входа.
func New(log *slog.Logger, sessions Sessions, opts cookie.Options, loginPath string) *Handler {
	return &Handler{
		log:       log,
		sessions:  sessions,
		cookie:    opts,
		loginPath: loginPath,
	}
}

// ServeHTTP godoc
// @Summary Выход из системы
// @Tags Auth
// @Success 303 "Перенаправление на страницу входа"
// @Router /api/v1/auth/logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	// Выход без действующей сессии тоже завершается перенаправлением.
	if c, err := r.Cookie(h.cookie.Name); err == nil && c.Value != "" {
		store, err := h.sessions.Resolve(r.Context(), c.Value)
		if err != nil {
			log.Debug("logout without active session", sl.Err(err))
		} else if err := h.sessions.Close(r.Context(), store); err != nil {
			log.Error("failed to clear session", sl.Err(err))
		}
	}

	cookie.Clear(w, h.cookie)
	http.Redirect(w, r, h.loginPath, http.StatusSeeOther)
}
