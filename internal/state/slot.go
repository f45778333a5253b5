package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// Slot — один независимый слот состояния. Запись сначала меняет значение
// в памяти, затем вызывает Persister; ошибка сохранения возвращается вызывающему,
// но значение в памяти остаётся.
type Slot[T any] struct {
	mu        sync.RWMutex
	name      string
	sessionID string
	value     T
	set       bool
	persister Persister
}

// NewSlot создаёт пустой слот.
func NewSlot[T any](name, sessionID string, persister Persister) *Slot[T] {
	return &Slot[T]{name: name, sessionID: sessionID, persister: persister}
}

// Name возвращает имя слота.
func (s *Slot[T]) Name() string { return s.name }

// Get возвращает текущее значение и признак того, что оно было задано.
func (s *Slot[T]) Get() (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value, s.set
}

// Set записывает значение и сохраняет его.
func (s *Slot[T]) Set(ctx context.Context, value T) error {
	const op = "state.Slot.Set"

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%s: %s: %w", op, s.name, err)
	}

	s.mu.Lock()
	s.value = value
	s.set = true
	s.mu.Unlock()

	if err := s.persister.Save(ctx, s.sessionID, s.name, raw); err != nil {
		return fmt.Errorf("%s: %s: %w", op, s.name, err)
	}
	return nil
}

// Update читает значение, применяет fn и записывает результат под одной блокировкой.
func (s *Slot[T]) Update(ctx context.Context, fn func(current T) T) (T, error) {
	const op = "state.Slot.Update"

	s.mu.Lock()
	next := fn(s.value)
	raw, err := json.Marshal(next)
	if err != nil {
		s.mu.Unlock()
		var zero T
		return zero, fmt.Errorf("%s: %s: %w", op, s.name, err)
	}
	s.value = next
	s.set = true
	s.mu.Unlock()

	if err := s.persister.Save(ctx, s.sessionID, s.name, raw); err != nil {
		return next, fmt.Errorf("%s: %s: %w", op, s.name, err)
	}
	return next, nil
}

// Clear сбрасывает значение и удаляет сохранённую копию.
func (s *Slot[T]) Clear(ctx context.Context) error {
	const op = "state.Slot.Clear"

	s.mu.Lock()
	var zero T
	s.value = zero
	s.set = false
	s.mu.Unlock()

	if err := s.persister.Delete(ctx, s.sessionID, s.name); err != nil {
		return fmt.Errorf("%s: %s: %w", op, s.name, err)
	}
	return nil
}

// Load восстанавливает значение из Persister. Отсутствующий слот оставляет пустое значение.
func (s *Slot[T]) Load(ctx context.Context) error {
	const op = "state.Slot.Load"

	raw, err := s.persister.Load(ctx, s.sessionID, s.name)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s: %s: %w", op, s.name, err)
	}

	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		return fmt.Errorf("%s: %s: %w", op, s.name, err)
	}

	s.mu.Lock()
	s.value = value
	s.set = true
	s.mu.Unlock()
	return nil
}
