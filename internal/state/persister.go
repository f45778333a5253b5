// Package state содержит явные контейнеры состояния сессии портала: текущего
// пользователя, черновика поездки и списка фильтров. Каждый слот независим,
// сохранение выполняется внедряемым Persister при каждой записи.
package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrNotFound возвращается Persister, если слот ещё не сохранялся.
var ErrNotFound = errors.New("state slot not found")

// Persister сохраняет и восстанавливает сериализованные слоты сессии.
type Persister interface {
	// Save сохраняет значение слота.
	Save(ctx context.Context, sessionID, slot string, value []byte) error
	// Load возвращает сохранённое значение или ErrNotFound.
	Load(ctx context.Context, sessionID, slot string) ([]byte, error)
	// Delete удаляет слот. Отсутствие слота ошибкой не считается.
	Delete(ctx context.Context, sessionID, slot string) error
}

// JSONCache — часть cache.Cache, нужная для хранения слотов в redis.
type JSONCache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, keys ...string) error
}

// RedisPersister хранит слоты в redis под ключами state:<session>:<slot>.
type RedisPersister struct {
	cache JSONCache
	ttl   time.Duration
}

// NewRedisPersister создаёт Persister поверх кеша; ttl совпадает со временем жизни сессии.
func NewRedisPersister(cache JSONCache, ttl time.Duration) *RedisPersister {
	return &RedisPersister{cache: cache, ttl: ttl}
}

func redisKey(sessionID, slot string) string {
	return fmt.Sprintf("state:%s:%s", sessionID, slot)
}

// Save сохраняет слот.
func (p *RedisPersister) Save(ctx context.Context, sessionID, slot string, value []byte) error {
	const op = "state.RedisPersister.Save"
	if err := p.cache.Set(ctx, redisKey(sessionID, slot), json.RawMessage(value), p.ttl); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Load читает слот.
func (p *RedisPersister) Load(ctx context.Context, sessionID, slot string) ([]byte, error) {
	const op = "state.RedisPersister.Load"
	var raw json.RawMessage
	found, err := p.cache.Get(ctx, redisKey(sessionID, slot), &raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !found {
		return nil, ErrNotFound
	}
	return raw, nil
}

// Delete удаляет слот.
func (p *RedisPersister) Delete(ctx context.Context, sessionID, slot string) error {
	const op = "state.RedisPersister.Delete"
	if err := p.cache.Invalidate(ctx, redisKey(sessionID, slot)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// SlotRepository — хранилище слотов в postgres (таблица state_slots).
type SlotRepository interface {
	UpsertSlot(ctx context.Context, sessionID, slot string, value []byte, expiresAt time.Time) error
	GetSlot(ctx context.Context, sessionID, slot string) ([]byte, error)
	DeleteSlot(ctx context.Context, sessionID, slot string) error
}

// PostgresPersister хранит слоты в postgres. Переживает перезапуск redis.
type PostgresPersister struct {
	repo SlotRepository
	ttl  time.Duration
	now  func() time.Time
}

// NewPostgresPersister создаёт Persister поверх репозитория.
func NewPostgresPersister(repo SlotRepository, ttl time.Duration) *PostgresPersister {
	return &PostgresPersister{repo: repo, ttl: ttl, now: time.Now}
}

// Save сохраняет слот.
func (p *PostgresPersister) Save(ctx context.Context, sessionID, slot string, value []byte) error {
	const op = "state.PostgresPersister.Save"
	if err := p.repo.UpsertSlot(ctx, sessionID, slot, value, p.now().Add(p.ttl)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Load читает слот. Репозиторий возвращает ErrNotFound для отсутствующих и истёкших слотов.
func (p *PostgresPersister) Load(ctx context.Context, sessionID, slot string) ([]byte, error) {
	const op = "state.PostgresPersister.Load"
	value, err := p.repo.GetSlot(ctx, sessionID, slot)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return value, nil
}

// Delete удаляет слот.
func (p *PostgresPersister) Delete(ctx context.Context, sessionID, slot string) error {
	const op = "state.PostgresPersister.Delete"
	if err := p.repo.DeleteSlot(ctx, sessionID, slot); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// MemoryPersister хранит слоты в памяти процесса. Используется в тестах и CLI.
type MemoryPersister struct {
	mu    sync.Mutex
	items map[string][]byte
}

// NewMemoryPersister создаёт пустой MemoryPersister.
func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{items: make(map[string][]byte)}
}

// Save сохраняет копию значения.
func (p *MemoryPersister) Save(_ context.Context, sessionID, slot string, value []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.items[redisKey(sessionID, slot)] = append([]byte(nil), value...)
	return nil
}

// Load возвращает копию значения.
func (p *MemoryPersister) Load(_ context.Context, sessionID, slot string) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	v, ok := p.items[redisKey(sessionID, slot)]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Delete удаляет значение.
func (p *MemoryPersister) Delete(_ context.Context, sessionID, slot string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.items, redisKey(sessionID, slot))
	return nil
}
