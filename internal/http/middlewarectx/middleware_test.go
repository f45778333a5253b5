package middlewarectx_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/flagship-portal/internal/http/middlewarectx"
	"github.com/magabrotheeeer/flagship-portal/internal/models"
	sessionservice "github.com/magabrotheeeer/flagship-portal/internal/services/session"
	"github.com/magabrotheeeer/flagship-portal/internal/state"
)

type ResolverMock struct {
	mock.Mock
}

func (m *ResolverMock) Resolve(ctx context.Context, cookie string) (*state.Store, error) {
	args := m.Called(ctx, cookie)
	store, _ := args.Get(0).(*state.Store)
	return store, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func newStore(t *testing.T, roles ...string) *state.Store {
	t.Helper()
	store := state.NewStore("sid", state.NewMemoryPersister())
	require.NoError(t, store.User.Set(context.Background(), models.User{ID: "u1", Roles: roles}))
	return store
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var got map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	return got
}

func TestSessionMiddleware(t *testing.T) {
	store := newStore(t)

	tests := []struct {
		name       string
		cookie     string
		mockStore  *state.Store
		mockErr    error
		wantStatus int
		wantCalled bool
	}{
		{
			name:       "valid session",
			cookie:     "good",
			mockStore:  store,
			wantStatus: http.StatusOK,
			wantCalled: true,
		},
		{
			name:       "missing cookie",
			mockErr:    sessionservice.ErrUnauthenticated,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "storage failure",
			cookie:     "good",
			mockErr:    errors.New("redis: connection refused"),
			wantStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := new(ResolverMock)
			resolver.On("Resolve", mock.Anything, tt.cookie).Return(tt.mockStore, tt.mockErr).Once()

			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				got, ok := middlewarectx.StoreFromContext(r.Context())
				assert.True(t, ok)
				assert.Same(t, store, got)
				w.WriteHeader(http.StatusOK)
			})
			h := middlewarectx.SessionMiddleware(resolver, "flagship_session", newNoopLogger())(next)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "flagship_session", Value: tt.cookie})
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCalled, called)
			if !tt.wantCalled {
				body := decode(t, rec)
				assert.Equal(t, float64(tt.wantStatus), body["statusCode"])
				assert.Nil(t, body["data"])
			}
			resolver.AssertExpectations(t)
		})
	}
}

func TestAdminOnly(t *testing.T) {
	tests := []struct {
		name       string
		store      *state.Store
		wantStatus int
	}{
		{name: "admin", store: newStore(t, "user", "admin"), wantStatus: http.StatusOK},
		{name: "regular user", store: newStore(t, "user"), wantStatus: http.StatusForbidden},
		{name: "no session", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
			h := middlewarectx.AdminOnly(newNoopLogger())(next)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/refunds", nil)
			if tt.store != nil {
				req = req.WithContext(middlewarectx.WithStore(req.Context(), tt.store))
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestAdminOnly_RolesFollowUserSlot(t *testing.T) {
	store := newStore(t, "user")
	h := middlewarectx.AdminOnly(newNoopLogger())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	serve := func() int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(middlewarectx.WithStore(req.Context(), store))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusForbidden, serve())
	require.NoError(t, store.User.Set(context.Background(), models.User{ID: "u1", Roles: []string{"admin"}}))
	assert.Equal(t, http.StatusOK, serve())
}

func TestRateLimitMiddleware(t *testing.T) {
	h := middlewarectx.RateLimitMiddleware(newNoopLogger(), 0.001, 2)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	serve := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, serve("10.0.0.1:1000"))
	assert.Equal(t, http.StatusOK, serve("10.0.0.1:1001"))
	assert.Equal(t, http.StatusTooManyRequests, serve("10.0.0.1:1002"))
	assert.Equal(t, http.StatusOK, serve("10.0.0.2:1000"), "limits are per client address")
}
