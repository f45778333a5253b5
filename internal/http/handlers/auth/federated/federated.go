// Package federated реализует вход через внешнего провайдера идентификации.
//
// Профиль, полученный фронтендом от провайдера, обменивается на токен
// удалённого сервиса, после чего открывается серверная сессия.
package federated

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/flagship-portal/internal/http/cookie"
	"github.com/magabrotheeeer/flagship-portal/internal/http/response"
	"github.com/magabrotheeeer/flagship-portal/internal/lib/sl"
	"github.com/magabrotheeeer/flagship-portal/internal/models"
	authservice "github.com/magabrotheeeer/flagship-portal/internal/services/auth"
	"github.com/magabrotheeeer/flagship-portal/internal/state"
	"github.com/magabrotheeeer/flagship-portal/internal/views"
)

// Service обменивает профиль провайдера на токен.
type Service interface {
	ExchangeFederatedIdentity(ctx context.Context, profile models.FederatedProfile) (authservice.SessionToken, error)
}

// Sessions открывает серверную сессию.
type Sessions interface {
	Open(ctx context.Context, tok authservice.SessionToken) (string, *state.Store, error)
}

// Handler обрабатывает вход через провайдера.
type Handler struct {
	log      *slog.Logger
	service  Service
	sessions Sessions
	cookie   cookie.Options
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service, sessions Sessions, opts cookie.Options) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		sessions: sessions,
		cookie:   opts,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Вход через внешнего провайдера
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body models.FederatedProfile true "Профиль провайдера"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /api/v1/auth/federated [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.federated"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.FederatedProfile
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		response.Fail(w, r, response.NewError(http.StatusBadRequest, "invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Info("validation failed", sl.Err(err))
		response.Invalid(w, r, err)
		return
	}

	tok, err := h.service.ExchangeFederatedIdentity(r.Context(), req)
	if err != nil {
		var authErr *authservice.AuthError
		if errors.As(err, &authErr) {
			log.Warn("federated login rejected", sl.Err(err))
			response.Fail(w, r, response.NewError(authErr.Status(), fmt.Sprintf("%s sign-in failed: %s", authErr.Provider, authErr.Reason)))
			return
		}
		log.Error("federated login failed", sl.Err(err))
		response.Fail(w, r, response.WrapError(http.StatusBadGateway, "authentication unavailable", err))
		return
	}

	value, _, err := h.sessions.Open(r.Context(), tok)
	if err != nil {
		log.Error("failed to open session", sl.Err(err))
		response.Fail(w, r, response.WrapError(http.StatusServiceUnavailable, "session storage unavailable", err))
		return
	}
	cookie.Set(w, h.cookie, value)

	log.Info("federated login success", slog.String("provider", tok.Provider), slog.String("user_id", tok.User.ID))
	response.Render(w, r, response.OK(http.StatusOK, "Logged in", views.NewUserCard(tok.User)))
}
