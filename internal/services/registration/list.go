// Package services содержит контейнер списка регистраций поездки.
//
// Каждый поиск заново запрашивает удалённый сервис, фильтрация на стороне
// портала не выполняется. Ответы применяются в порядке завершения запросов:
// медленный ранний поиск может перезаписать результат более позднего.
package services

import (
	"context"
	"log/slog"
	"sync"

	"github.com/magabrotheeeer/flagship-portal/internal/lib/sl"
	"github.com/magabrotheeeer/flagship-portal/internal/models"
)

// EmptyMessage показывается, когда загруженный список пуст.
const EmptyMessage = "No registrations found"

// Fetcher запрашивает регистрации поездки у удалённого сервиса.
type Fetcher interface {
	ListRegistrations(ctx context.Context, token, flagshipID, search string) ([]models.Registration, error)
}

// View — состояние списка для отображения.
type View struct {
	FlagshipID string                `json:"flagshipId"`
	Search     string                `json:"search"`
	Loading    bool                  `json:"loading"`
	Empty      bool                  `json:"empty"`
	Message    string                `json:"message,omitempty"`
	Items      []models.Registration `json:"items"`
}

// List — список регистраций одной поездки.
type List struct {
	fetcher    Fetcher
	log        *slog.Logger
	token      string
	flagshipID string

	mu     sync.Mutex
	search string
	items  []models.Registration
	loaded bool
}

// NewList создаёт список для поездки flagshipID. Данные загружаются первым вызовом Search.
func NewList(fetcher Fetcher, log *slog.Logger, token, flagshipID string) *List {
	return &List{
		fetcher:    fetcher,
		log:        log,
		token:      token,
		flagshipID: flagshipID,
	}
}

// FlagshipID возвращает идентификатор поездки, к которой привязан список.
func (l *List) FlagshipID() string { return l.flagshipID }

// Search запрашивает регистрации с текстом поиска text. При ошибке она
// записывается в лог, а список сохраняет последнее известное значение.
// Загрузка завершается первым ответом, успешным или нет.
func (l *List) Search(ctx context.Context, text string) {
	const op = "services.registration.Search"

	l.mu.Lock()
	l.search = text
	l.mu.Unlock()

	items, err := l.fetcher.ListRegistrations(ctx, l.token, l.flagshipID, text)
	if err != nil {
		l.log.Error("failed to fetch registrations",
			slog.String("op", op),
			slog.String("flagship_id", l.flagshipID),
			slog.String("search", text),
			sl.Err(err),
		)
		l.mu.Lock()
		l.loaded = true
		l.mu.Unlock()
		return
	}

	l.mu.Lock()
	l.items = items
	l.loaded = true
	l.mu.Unlock()
}

// View возвращает текущее состояние списка.
func (l *List) View() View {
	l.mu.Lock()
	defer l.mu.Unlock()

	v := View{
		FlagshipID: l.flagshipID,
		Search:     l.search,
		Loading:    !l.loaded,
		Items:      append([]models.Registration{}, l.items...),
	}
	if l.loaded && len(l.items) == 0 {
		v.Empty = true
		v.Message = EmptyMessage
	}
	return v
}
