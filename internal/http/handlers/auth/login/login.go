// Package login реализует HTTP-обработчик входа по email и паролю.
//
// После успешной проверки учётных данных в удалённом сервисе открывается
// серверная сессия, а клиенту выставляется подписанная cookie. Причина отказа
// не раскрывается: клиент всегда получает "Invalid email or password".
package login

import (
	"context"
	"encoding/json"
	"errors"
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

// Service описывает проверку учётных данных.
type Service interface {
	Authenticate(ctx context.Context, creds models.Credentials) (authservice.SessionToken, error)
}

// Sessions открывает серверную сессию.
type Sessions interface {
	Open(ctx context.Context, tok authservice.SessionToken) (string, *state.Store, error)
}

// Handler обрабатывает HTTP-запросы входа.
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
// @Summary Вход по email и паролю
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body models.Credentials true "Учетные данные пользователя"
// @Success 200 {object} response.Response "Профиль пользователя, cookie сессии выставлена"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Invalid email or password"
// @Router /api/v1/auth/login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		response.Fail(w, r, response.NewError(http.StatusBadRequest, "invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Info("validation failed", sl.Err(err))
		response.Fail(w, r, response.NewError(http.StatusUnauthorized, authservice.ErrInvalidCredentials.Error()))
		return
	}

	tok, err := h.service.Authenticate(r.Context(), req)
	if err != nil {
		if errors.Is(err, authservice.ErrInvalidCredentials) {
			log.Info("login rejected")
			response.Fail(w, r, response.NewError(http.StatusUnauthorized, err.Error()))
			return
		}
		log.Error("login failed", sl.Err(err))
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

	log.Info("login success", slog.String("user_id", tok.User.ID))
	response.Render(w, r, response.OK(http.StatusOK, "Logged in", views.NewUserCard(tok.User)))
}
