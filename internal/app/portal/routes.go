package portal

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/flagship-portal/internal/config"
	"github.com/magabrotheeeer/flagship-portal/internal/http/cookie"
	"github.com/magabrotheeeer/flagship-portal/internal/http/handlers/auth/federated"
	"github.com/magabrotheeeer/flagship-portal/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/flagship-portal/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/flagship-portal/internal/http/handlers/auth/signup"
	"github.com/magabrotheeeer/flagship-portal/internal/http/handlers/dashboard"
	draftread "github.com/magabrotheeeer/flagship-portal/internal/http/handlers/draft/read"
	"github.com/magabrotheeeer/flagship-portal/internal/http/handlers/draft/submit"
	draftupdate "github.com/magabrotheeeer/flagship-portal/internal/http/handlers/draft/update"
	filterread "github.com/magabrotheeeer/flagship-portal/internal/http/handlers/filter/read"
	filterupdate "github.com/magabrotheeeer/flagship-portal/internal/http/handlers/filter/update"
	flagshiplist "github.com/magabrotheeeer/flagship-portal/internal/http/handlers/flagship/list"
	flagshipread "github.com/magabrotheeeer/flagship-portal/internal/http/handlers/flagship/read"
	"github.com/magabrotheeeer/flagship-portal/internal/http/handlers/flagship/registrations"
	"github.com/magabrotheeeer/flagship-portal/internal/http/handlers/health"
	"github.com/magabrotheeeer/flagship-portal/internal/http/handlers/refund/decide"
	refundlist "github.com/magabrotheeeer/flagship-portal/internal/http/handlers/refund/list"
	userlist "github.com/magabrotheeeer/flagship-portal/internal/http/handlers/user/list"
	"github.com/magabrotheeeer/flagship-portal/internal/http/handlers/user/me"
	"github.com/magabrotheeeer/flagship-portal/internal/http/middlewarectx"
	"github.com/magabrotheeeer/flagship-portal/internal/models"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config, d Dependencies, metricsHandler http.Handler) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	opts := cookie.Options{
		Name:   cfg.Session.CookieName,
		TTL:    d.Sessions.TTL(),
		Secure: cfg.Session.Secure,
	}

	r.Get("/health", health.New(logger, d.Storage, cfg.State.Backend).ServeHTTP)

	r.Route("/api/v1", func(r chi.Router) {
		// Вход и регистрация с ограничением частоты
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RateLimitMiddleware(logger, cfg.RateLimit.RPS, cfg.RateLimit.Burst))
			r.Post("/auth/login", login.New(logger, d.Auth, d.Sessions, opts).ServeHTTP)
			r.Post("/auth/federated", federated.New(logger, d.Auth, d.Sessions, opts).ServeHTTP)
			r.Post("/auth/signup", signup.New(logger, d.Auth, d.Sessions, opts).ServeHTTP)
		})
		r.Post("/auth/logout", logout.New(logger, d.Sessions, opts, cfg.Session.LoginPath).ServeHTTP)

		// Группа с сессией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.SessionMiddleware(d.Sessions, cfg.Session.CookieName, logger))

			r.Get("/flagships", flagshiplist.New(logger, d.Flagships).ServeHTTP)
			r.Get("/flagships/{id}", flagshipread.New(logger, d.Flagships).ServeHTTP)
			r.Get("/flagships/{id}/registrations", registrations.New(logger, d.Registrations).ServeHTTP)
			r.Get("/users/me", me.New(logger, d.Users).ServeHTTP)
			r.Get("/filters", filterread.New(logger, d.Users).ServeHTTP)
			r.Put("/filters", filterupdate.New(logger, d.Users).ServeHTTP)

			// Панель администратора
			r.Route("/admin", func(r chi.Router) {
				r.Use(middlewarectx.AdminOnly(logger))
				r.Get("/dashboard", dashboard.New(logger, d.Dashboard).ServeHTTP)
				r.Get("/users", userlist.New(logger, d.Users).ServeHTTP)
				r.Get("/refunds", refundlist.New(logger, d.Refunds).ServeHTTP)
				r.Post("/refunds/{id}/approve", decide.New(logger, d.Refunds, models.RefundApproved).ServeHTTP)
				r.Post("/refunds/{id}/reject", decide.New(logger, d.Refunds, models.RefundRejected).ServeHTTP)
				r.Get("/flagship-draft", draftread.New(logger, d.Flagships).ServeHTTP)
				r.Put("/flagship-draft", draftupdate.New(logger, d.Flagships).ServeHTTP)
				r.Post("/flagship-draft/submit", submit.New(logger, d.Flagships).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", metricsHandler)
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
