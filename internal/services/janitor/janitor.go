// Package services содержит фоновую очистку просроченного состояния сессий.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/flagship-portal/internal/lib/sl"
)

// Purger удаляет записи с истёкшим сроком и возвращает их число.
// Его реализуют хранилище слотов в postgres и реестр списков регистраций.
type Purger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// JanitorService периодически вызывает все зарегистрированные Purger.
// Redis удаляет ключи сам по TTL, поэтому хранилище слотов добавляется
// только для postgres.
type JanitorService struct {
	purgers []Purger
	log     *slog.Logger
}

// NewJanitorService создает новый экземпляр JanitorService.
func NewJanitorService(log *slog.Logger, purgers ...Purger) *JanitorService {
	return &JanitorService{
		purgers: purgers,
		log:     log,
	}
}

// Run выполняет очистку сразу и затем каждые interval до отмены ctx.
func (s *JanitorService) Run(ctx context.Context, interval time.Duration) {
	s.RunOnce(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("state janitor stopped")
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce вызывает каждый Purger и возвращает общее число удалённых записей.
// Ошибка одного Purger не мешает остальным.
func (s *JanitorService) RunOnce(ctx context.Context) int64 {
	const op = "services.janitor.RunOnce"

	var total int64
	for _, p := range s.purgers {
		log := s.log.With(slog.String("op", op), slog.String("purger", fmt.Sprintf("%T", p)))

		n, err := p.PurgeExpired(ctx)
		if err != nil {
			log.Error("failed to purge expired state", sl.Err(err))
			continue
		}
		if n > 0 {
			log.Info("expired state purged", slog.Int64("count", n))
		}
		total += n
	}
	return total
}
