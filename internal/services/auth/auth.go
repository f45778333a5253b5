// Package services содержит аутентификацию портала: обмен учётных данных и
// профиля внешнего провайдера на токен удалённого сервиса.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/magabrotheeeer/flagship-portal/internal/lib/sl"
	"github.com/magabrotheeeer/flagship-portal/internal/models"
)

// ErrInvalidCredentials возвращается при любой неудаче входа по паролю.
// Текст ошибки показывается пользователю как есть.
var ErrInvalidCredentials = errors.New("Invalid email or password")

// ProviderCredentials — провайдер для входа по email и паролю.
const ProviderCredentials = "credentials"

// AuthError — неудачный вход через внешнего провайдера.
type AuthError struct {
	Provider string
	Reason   string
	Err      error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s sign-in failed: %s: %v", e.Provider, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s sign-in failed: %s", e.Provider, e.Reason)
}

func (e *AuthError) Unwrap() error { return e.Err }

// Status возвращает HTTP-код для ответа клиенту.
func (e *AuthError) Status() int { return http.StatusUnauthorized }

// SessionToken — результат успешной аутентификации, из которого открывается сессия.
type SessionToken struct {
	BearerToken string
	Provider    string
	User        models.User
	IssuedAt    time.Time
}

// Remote описывает методы удалённого сервиса, нужные для входа и регистрации.
type Remote interface {
	Login(ctx context.Context, creds models.Credentials) (*models.AuthResult, error)
	FederatedLogin(ctx context.Context, profile models.FederatedProfile) (*models.AuthResult, error)
	CreateUser(ctx context.Context, req models.SignupRequest) (*models.User, error)
}

// AuthService отвечает за вход по паролю, через внешнего провайдера и за регистрацию.
type AuthService struct {
	remote Remote
	log    *slog.Logger
	now    func() time.Time
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(remote Remote, log *slog.Logger) *AuthService {
	return &AuthService{
		remote: remote,
		log:    log,
		now:    time.Now,
	}
}

// Authenticate проверяет email и пароль в удалённом сервисе. Причина отказа
// не раскрывается: любая ошибка превращается в ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, creds models.Credentials) (SessionToken, error) {
	const op = "services.auth.Authenticate"
	log := s.log.With(slog.String("op", op))

	if strings.TrimSpace(creds.Email) == "" || creds.Password == "" {
		return SessionToken{}, ErrInvalidCredentials
	}

	res, err := s.remote.Login(ctx, creds)
	if err != nil {
		log.Warn("remote login failed", sl.Err(err))
		return SessionToken{}, ErrInvalidCredentials
	}
	if res == nil || res.Token == "" {
		log.Warn("remote login returned empty token")
		return SessionToken{}, ErrInvalidCredentials
	}

	return SessionToken{
		BearerToken: res.Token,
		Provider:    ProviderCredentials,
		User:        res.User,
		IssuedAt:    s.now(),
	}, nil
}

// ExchangeFederatedIdentity обменивает профиль внешнего провайдера на токен удалённого сервиса.
func (s *AuthService) ExchangeFederatedIdentity(ctx context.Context, profile models.FederatedProfile) (SessionToken, error) {
	const op = "services.auth.ExchangeFederatedIdentity"
	log := s.log.With(slog.String("op", op), slog.String("provider", profile.Provider))

	if profile.Provider == "" {
		return SessionToken{}, &AuthError{Provider: "federated", Reason: "provider is required"}
	}
	if profile.Subject == "" || profile.Name == "" {
		return SessionToken{}, &AuthError{Provider: profile.Provider, Reason: "incomplete profile"}
	}

	res, err := s.remote.FederatedLogin(ctx, profile)
	if err != nil {
		log.Warn("remote federated login failed", sl.Err(err))
		return SessionToken{}, &AuthError{Provider: profile.Provider, Reason: "token exchange failed", Err: err}
	}
	if res == nil || res.Token == "" {
		return SessionToken{}, &AuthError{Provider: profile.Provider, Reason: "empty token"}
	}

	return SessionToken{
		BearerToken: res.Token,
		Provider:    profile.Provider,
		User:        res.User,
		IssuedAt:    s.now(),
	}, nil
}

// Signup создаёт пользователя в удалённом сервисе и сразу выполняет вход.
func (s *AuthService) Signup(ctx context.Context, req models.SignupRequest) (SessionToken, error) {
	const op = "services.auth.Signup"

	if _, err := s.remote.CreateUser(ctx, req); err != nil {
		return SessionToken{}, fmt.Errorf("%s: %w", op, err)
	}
	return s.Authenticate(ctx, models.Credentials{Email: req.Email, Password: req.Password})
}
