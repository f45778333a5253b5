// Package services содержит профиль текущего пользователя, список пользователей
// для администратора и сохранённые фильтры сессии.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/flagship-portal/internal/lib/sl"
	"github.com/magabrotheeeer/flagship-portal/internal/models"
	"github.com/magabrotheeeer/flagship-portal/internal/state"
	"github.com/magabrotheeeer/flagship-portal/internal/views"
)

// Remote описывает методы удалённого сервиса для работы с пользователями.
type Remote interface {
	GetMe(ctx context.Context, token string) (*models.User, error)
	ListUsers(ctx context.Context, token string) ([]models.User, error)
}

// UserService отдаёт карточки пользователей и управляет слотом фильтров.
type UserService struct {
	remote Remote
	log    *slog.Logger
}

// NewUserService создает новый экземпляр UserService.
func NewUserService(remote Remote, log *slog.Logger) *UserService {
	return &UserService{remote: remote, log: log}
}

// Me обновляет слот пользователя из удалённого сервиса и возвращает карточку.
// Если сервис недоступен, карточка строится по сохранённому значению слота.
func (s *UserService) Me(ctx context.Context, store *state.Store) (views.UserCard, error) {
	const op = "services.user.Me"
	log := s.log.With(slog.String("op", op), slog.String("session_id", store.SessionID))

	fresh, err := s.remote.GetMe(ctx, store.BearerToken())
	if err == nil && fresh != nil {
		if err := store.User.Set(ctx, *fresh); err != nil {
			log.Warn("failed to persist user slot", sl.Err(err))
		}
		return views.NewUserCard(*fresh), nil
	}

	if err == nil {
		err = errors.New("remote returned no user")
	}
	cached, ok := store.User.Get()
	if !ok {
		return views.UserCard{}, fmt.Errorf("%s: %w", op, err)
	}
	log.Warn("remote user lookup failed, using session copy", sl.Err(err))
	return views.NewUserCard(cached), nil
}

// List возвращает карточки всех пользователей в порядке удалённого сервиса.
func (s *UserService) List(ctx context.Context, token string) ([]views.UserCard, error) {
	const op = "services.user.List"

	users, err := s.remote.ListUsers(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	cards := make([]views.UserCard, 0, len(users))
	for _, u := range users {
		cards = append(cards, views.NewUserCard(u))
	}
	return cards, nil
}

// Filters возвращает фильтры сессии. Пустой слот возвращается как пустой список.
func (s *UserService) Filters(store *state.Store) []models.Filter {
	filters, _ := store.Filters.Get()
	if filters == nil {
		return []models.Filter{}
	}
	return filters
}

// SetFilters заменяет фильтры сессии.
func (s *UserService) SetFilters(ctx context.Context, store *state.Store, filters []models.Filter) ([]models.Filter, error) {
	const op = "services.user.SetFilters"

	if filters == nil {
		filters = []models.Filter{}
	}
	if err := store.Filters.Set(ctx, filters); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return filters, nil
}
