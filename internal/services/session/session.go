// Package services управляет сессиями портала: открывает их после входа,
// восстанавливает по cookie и закрывает при выходе.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/flagship-portal/internal/lib/jwt"
	"github.com/magabrotheeeer/flagship-portal/internal/lib/sl"
	authservice "github.com/magabrotheeeer/flagship-portal/internal/services/auth"
	"github.com/magabrotheeeer/flagship-portal/internal/state"
)

// ErrUnauthenticated возвращается, если cookie отсутствует, подделана,
// истекла или сессия уже закрыта.
var ErrUnauthenticated = &unauthenticatedError{}

type unauthenticatedError struct{}

func (*unauthenticatedError) Error() string { return "authentication required" }
func (*unauthenticatedError) Status() int   { return http.StatusUnauthorized }

// Forgetter освобождает данные, привязанные к сессии вне хранилища слотов.
type Forgetter interface {
	Forget(sessionID string)
}

// SessionService открывает, восстанавливает и закрывает сессии.
type SessionService struct {
	persister state.Persister
	maker     jwt.Maker
	log       *slog.Logger
	newID     func() string
	forget    []Forgetter
}

// NewSessionService создает новый экземпляр SessionService.
func NewSessionService(persister state.Persister, maker jwt.Maker, log *slog.Logger, forget ...Forgetter) *SessionService {
	return &SessionService{
		persister: persister,
		maker:     maker,
		log:       log,
		newID:     uuid.NewString,
		forget:    forget,
	}
}

// TTL возвращает время жизни cookie сессии.
func (s *SessionService) TTL() time.Duration { return s.maker.TTL() }

// Open сохраняет bearer-токен и пользователя в новой сессии и возвращает
// подписанное значение cookie.
func (s *SessionService) Open(ctx context.Context, tok authservice.SessionToken) (string, *state.Store, error) {
	const op = "services.session.Open"

	if tok.BearerToken == "" {
		return "", nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	store := state.NewStore(s.newID(), s.persister)
	err := store.Auth.Set(ctx, state.Auth{
		BearerToken: tok.BearerToken,
		Provider:    tok.Provider,
		CreatedAt:   tok.IssuedAt,
	})
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := store.User.Set(ctx, tok.User); err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	cookie, err := s.maker.GenerateToken(store.SessionID, tok.User.ID)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("session opened",
		slog.String("session_id", store.SessionID),
		slog.String("user_id", tok.User.ID),
		slog.String("provider", tok.Provider),
	)
	return cookie, store, nil
}

// Resolve проверяет cookie и загружает состояние сессии.
func (s *SessionService) Resolve(ctx context.Context, cookie string) (*state.Store, error) {
	const op = "services.session.Resolve"

	if cookie == "" {
		return nil, ErrUnauthenticated
	}
	claims, err := s.maker.ParseToken(cookie)
	if err != nil {
		s.log.Debug("invalid session cookie", sl.Err(err))
		return nil, ErrUnauthenticated
	}

	store := state.NewStore(claims.SessionID, s.persister)
	if err := store.Load(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if store.BearerToken() == "" {
		return nil, ErrUnauthenticated
	}
	return store, nil
}

// Close очищает все слоты сессии.
func (s *SessionService) Close(ctx context.Context, store *state.Store) error {
	const op = "services.session.Close"

	for _, f := range s.forget {
		f.Forget(store.SessionID)
	}
	if err := store.Clear(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("session closed", slog.String("session_id", store.SessionID))
	return nil
}

// IsUnauthenticated сообщает, означает ли err отсутствие действующей сессии.
func IsUnauthenticated(err error) bool {
	return errors.Is(err, ErrUnauthenticated)
}
