// Package signup реализует регистрацию нового пользователя с немедленным входом.
package signup

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

// Service создаёт учётную запись.
type Service interface {
	Signup(ctx context.Context, req models.SignupRequest) (authservice.SessionToken, error)
}

// Sessions открывает серверную сессию.
type Sessions interface {
	Open(ctx context.Context, tok authservice.SessionToken) (string, *state.Store, error)
}

// Handler обрабатывает запросы регистрации.
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
// @Summary Регистрация пользователя
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body models.SignupRequest true "Данные нового пользователя"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.ErrorResponse "Пользователь уже существует"
// @Failure 422 {object} response.ErrorResponse
// @Router /api/v1/auth/signup [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.signup"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.SignupRequest
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

	tok, err := h.service.Signup(r.Context(), req)
	if err != nil {
		if errors.Is(err, authservice.ErrInvalidCredentials) {
			log.Warn("account created but sign-in failed")
			response.Fail(w, r, response.NewError(http.StatusUnauthorized, err.Error()))
			return
		}
		log.Error("signup failed", sl.Err(err))
		response.FailUpstream(w, r, err)
		return
	}

	value, _, err := h.sessions.Open(r.Context(), tok)
	if err != nil {
		log.Error("failed to open session", sl.Err(err))
		response.Fail(w, r, response.WrapError(http.StatusServiceUnavailable, "session storage unavailable", err))
		return
	}
	cookie.Set(w, h.cookie, value)

	log.Info("signup success", slog.String("user_id", tok.User.ID))
	response.Render(w, r, response.OK(http.StatusCreated, "Account created", views.NewUserCard(tok.User)))
}
