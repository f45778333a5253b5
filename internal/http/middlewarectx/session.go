// Package middlewarectx содержит HTTP middleware портала.
//
// SessionMiddleware восстанавливает сессию по подписанной cookie и кладёт
// хранилище её слотов в контекст запроса. Если сессии нет, возвращается 401.
package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/flagship-portal/internal/http/response"
	"github.com/magabrotheeeer/flagship-portal/internal/lib/sl"
	sessionservice "github.com/magabrotheeeer/flagship-portal/internal/services/session"
	"github.com/magabrotheeeer/flagship-portal/internal/state"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// StoreKey — ключ хранилища слотов сессии в контексте.
const StoreKey Key = "session_store"

// Resolver восстанавливает сессию по значению cookie.
type Resolver interface {
	Resolve(ctx context.Context, cookie string) (*state.Store, error)
}

// WithStore возвращает контекст с хранилищем сессии.
func WithStore(ctx context.Context, store *state.Store) context.Context {
	return context.WithValue(ctx, StoreKey, store)
}

// StoreFromContext возвращает хранилище сессии из контекста.
func StoreFromContext(ctx context.Context) (*state.Store, bool) {
	store, ok := ctx.Value(StoreKey).(*state.Store)
	return store, ok && store != nil
}

// SessionMiddleware проверяет cookie cookieName и загружает сессию.
func SessionMiddleware(sessions Resolver, cookieName string, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.SessionMiddleware"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			var value string
			if c, err := r.Cookie(cookieName); err == nil {
				value = c.Value
			}

			store, err := sessions.Resolve(r.Context(), value)
			if err != nil {
				if errors.Is(err, sessionservice.ErrUnauthenticated) {
					log.Debug("request without valid session")
					response.Fail(w, r, err)
					return
				}
				log.Error("failed to load session", sl.Err(err))
				response.Fail(w, r, response.WrapError(http.StatusServiceUnavailable, "session storage unavailable", err))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithStore(r.Context(), store)))
		})
	}
}

// AdminOnly пропускает запрос, только если у текущего пользователя есть роль администратора.
// Роли вычисляются по слоту пользователя на каждый запрос.
func AdminOnly(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			store, ok := StoreFromContext(r.Context())
			if !ok {
				response.Fail(w, r, sessionservice.ErrUnauthenticated)
				return
			}
			if !store.IsAdmin() {
				log.Warn("admin route denied",
					slog.String("session_id", store.SessionID),
					slog.String("request_id", middleware.GetReqID(r.Context())),
				)
				response.Fail(w, r, response.NewError(http.StatusForbidden, "admin role required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
