package state

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/flagship-portal/internal/models"
)

const (
	SlotAuth    = "auth"
	SlotUser    = "user"
	SlotDraft   = "flagship_draft"
	SlotFilters = "filters"
)

// Auth — данные серверной сессии: bearer-токен удалённого сервиса.
type Auth struct {
	BearerToken string    `json:"bearerToken"`
	Provider    string    `json:"provider,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Store объединяет слоты одной сессии. Согласованность между слотами не поддерживается.
type Store struct {
	SessionID string
	Auth      *Slot[Auth]
	User      *Slot[models.User]
	Draft     *Slot[models.FlagshipDraft]
	Filters   *Slot[[]models.Filter]
}

// NewStore создаёт пустое хранилище сессии.
func NewStore(sessionID string, persister Persister) *Store {
	return &Store{
		SessionID: sessionID,
		Auth:      NewSlot[Auth](SlotAuth, sessionID, persister),
		User:      NewSlot[models.User](SlotUser, sessionID, persister),
		Draft:     NewSlot[models.FlagshipDraft](SlotDraft, sessionID, persister),
		Filters:   NewSlot[[]models.Filter](SlotFilters, sessionID, persister),
	}
}

// Load восстанавливает все слоты.
func (s *Store) Load(ctx context.Context) error {
	const op = "state.Store.Load"
	errs := []error{
		s.Auth.Load(ctx),
		s.User.Load(ctx),
		s.Draft.Load(ctx),
		s.Filters.Load(ctx),
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Clear очищает все слоты (выход из системы).
func (s *Store) Clear(ctx context.Context) error {
	const op = "state.Store.Clear"
	errs := []error{
		s.Auth.Clear(ctx),
		s.User.Clear(ctx),
		s.Draft.Clear(ctx),
		s.Filters.Clear(ctx),
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Roles вычисляет роли текущего пользователя заново при каждом вызове.
func (s *Store) Roles() []string {
	user, ok := s.User.Get()
	if !ok {
		return nil
	}
	return append([]string(nil), user.Roles...)
}

// IsAdmin сообщает, есть ли у текущего пользователя роль администратора.
func (s *Store) IsAdmin() bool {
	user, ok := s.User.Get()
	return ok && user.HasRole(models.RoleAdmin)
}

// BearerToken возвращает токен удалённого сервиса или пустую строку.
func (s *Store) BearerToken() string {
	auth, ok := s.Auth.Get()
	if !ok {
		return ""
	}
	return auth.BearerToken
}
