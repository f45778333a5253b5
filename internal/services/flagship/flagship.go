// Package services содержит каталог поездок и пошаговый черновик новой поездки.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/flagship-portal/internal/lib/datefmt"
	"github.com/magabrotheeeer/flagship-portal/internal/lib/sl"
	"github.com/magabrotheeeer/flagship-portal/internal/models"
	"github.com/magabrotheeeer/flagship-portal/internal/state"
	"github.com/magabrotheeeer/flagship-portal/internal/views"
)

// DraftError — черновик нельзя отправить: не заполнены поля или даты некорректны.
type DraftError struct {
	Fields []string
	Reason string
}

func (e *DraftError) Error() string {
	if len(e.Fields) > 0 {
		return "flagship draft is incomplete: " + strings.Join(e.Fields, ", ")
	}
	return "flagship draft is invalid: " + e.Reason
}

// Status возвращает HTTP-код для ответа клиенту.
func (e *DraftError) Status() int { return http.StatusUnprocessableEntity }

// Remote описывает методы удалённого сервиса для работы с поездками.
type Remote interface {
	ListFlagships(ctx context.Context, token string) ([]models.Flagship, error)
	GetFlagship(ctx context.Context, token, id string) (*models.Flagship, error)
	CreateFlagship(ctx context.Context, token string, f models.NewFlagship) (*models.Flagship, error)
}

// FlagshipService строит карточки поездок и ведёт черновик администратора.
type FlagshipService struct {
	remote   Remote
	validate *validator.Validate
	log      *slog.Logger
}

// NewFlagshipService создает новый экземпляр FlagshipService.
func NewFlagshipService(remote Remote, log *slog.Logger) *FlagshipService {
	return &FlagshipService{
		remote:   remote,
		validate: validator.New(),
		log:      log,
	}
}

// Cards возвращает карточки поездок в порядке удалённого сервиса.
func (s *FlagshipService) Cards(ctx context.Context, token string) ([]*views.FlagshipCard, error) {
	const op = "services.flagship.Cards"

	flagships, err := s.remote.ListFlagships(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return views.FlagshipCards(flagships), nil
}

// Card возвращает карточку одной поездки.
func (s *FlagshipService) Card(ctx context.Context, token, id string) (*views.FlagshipCard, error) {
	const op = "services.flagship.Card"

	f, err := s.remote.GetFlagship(ctx, token, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return views.NewFlagshipCard(*f, nil), nil
}

// Draft возвращает текущий черновик сессии.
func (s *FlagshipService) Draft(store *state.Store) models.FlagshipDraft {
	draft, _ := store.Draft.Get()
	return draft
}

// SaveStep накладывает данные очередного шага на черновик.
func (s *FlagshipService) SaveStep(ctx context.Context, store *state.Store, step models.DummyFlagshipDraft) (models.FlagshipDraft, error) {
	const op = "services.flagship.SaveStep"

	draft, err := store.Draft.Update(ctx, func(current models.FlagshipDraft) models.FlagshipDraft {
		return current.Merge(step)
	})
	if err != nil {
		return draft, fmt.Errorf("%s: %w", op, err)
	}
	return draft, nil
}

// Submit проверяет черновик, создаёт поездку в удалённом сервисе и очищает черновик.
func (s *FlagshipService) Submit(ctx context.Context, store *state.Store) (*models.Flagship, error) {
	const op = "services.flagship.Submit"

	draft, ok := store.Draft.Get()
	if !ok {
		return nil, &DraftError{Reason: "draft is empty"}
	}
	req := draft.Finalize()
	if err := s.check(req); err != nil {
		return nil, err
	}

	created, err := s.remote.CreateFlagship(ctx, store.BearerToken(), req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := store.Draft.Clear(ctx); err != nil {
		s.log.Warn("failed to clear flagship draft",
			slog.String("op", op),
			slog.String("session_id", store.SessionID),
			sl.Err(err),
		)
	}
	return created, nil
}

func (s *FlagshipService) check(req models.NewFlagship) error {
	if err := s.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fe.Field())
			}
			return &DraftError{Fields: fields}
		}
		return &DraftError{Reason: err.Error()}
	}

	start, err := datefmt.Parse(req.StartDate)
	if err != nil {
		return &DraftError{Reason: "start date is not a date"}
	}
	end, err := datefmt.Parse(req.EndDate)
	if err != nil {
		return &DraftError{Reason: "end date is not a date"}
	}
	if end.Before(start) {
		return &DraftError{Reason: "end date is before start date"}
	}
	return nil
}
