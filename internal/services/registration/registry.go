package services

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// session — списки одной сессии и время последнего обращения к ним.
type session struct {
	lists    map[string]*List
	lastSeen time.Time
}

// Registry хранит списки регистраций по сессии и поездке, чтобы повторные
// поиски работали с одним и тем же контейнером. Списки сессии, к которым
// не обращались дольше idle, удаляет PurgeExpired.
type Registry struct {
	fetcher Fetcher
	log     *slog.Logger
	idle    time.Duration
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

// NewRegistry создаёт пустой реестр. idle обычно равен времени жизни сессии.
func NewRegistry(fetcher Fetcher, log *slog.Logger, idle time.Duration) *Registry {
	return &Registry{
		fetcher:  fetcher,
		log:      log,
		idle:     idle,
		now:      time.Now,
		sessions: make(map[string]*session),
	}
}

// Get возвращает список поездки flagshipID для сессии sessionID, создавая его при необходимости.
func (r *Registry) Get(sessionID, token, flagshipID string) *List {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[sessionID]
	if !ok {
		s = &session{lists: make(map[string]*List)}
		r.sessions[sessionID] = s
	}
	s.lastSeen = r.now()

	l, ok := s.lists[flagshipID]
	if !ok || l.token != token {
		l = NewList(r.fetcher, r.log, token, flagshipID)
		s.lists[flagshipID] = l
	}
	return l
}

// Forget удаляет все списки сессии.
func (r *Registry) Forget(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionID)
}

// PurgeExpired удаляет списки сессий, простаивающих дольше idle, и
// возвращает число удалённых сессий.
func (r *Registry) PurgeExpired(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.idle)
	var n int64
	for id, s := range r.sessions {
		if s.lastSeen.Before(cutoff) {
			delete(r.sessions, id)
			n++
		}
	}
	return n, nil
}

// Len возвращает число сессий, у которых есть списки.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
