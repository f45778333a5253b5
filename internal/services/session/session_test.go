package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/flagship-portal/internal/lib/jwt"
	"github.com/magabrotheeeer/flagship-portal/internal/models"
	authservice "github.com/magabrotheeeer/flagship-portal/internal/services/auth"
	"github.com/magabrotheeeer/flagship-portal/internal/state"
)

type forgetRecorder struct {
	ids []string
}

func (f *forgetRecorder) Forget(sessionID string) { f.ids = append(f.ids, sessionID) }

func newTestService(t *testing.T, forget ...Forgetter) (*SessionService, *state.MemoryPersister) {
	t.Helper()
	p := state.NewMemoryPersister()
	svc := NewSessionService(p, jwt.NewJWTMaker("test-secret", time.Hour),
		slog.New(slog.NewTextHandler(io.Discard, nil)), forget...)
	svc.newID = func() string { return "sid-1" }
	return svc, p
}

func testToken() authservice.SessionToken {
	return authservice.SessionToken{
		BearerToken: "remote-token",
		Provider:    authservice.ProviderCredentials,
		User:        models.User{ID: "u1", Roles: []string{"admin"}},
		IssuedAt:    time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestSessionService_OpenResolve(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cookie, store, err := svc.Open(ctx, testToken())
	require.NoError(t, err)
	require.NotEmpty(t, cookie)
	assert.Equal(t, "sid-1", store.SessionID)
	assert.True(t, store.IsAdmin())

	resolved, err := svc.Resolve(ctx, cookie)
	require.NoError(t, err)
	assert.Equal(t, "sid-1", resolved.SessionID)
	assert.Equal(t, "remote-token", resolved.BearerToken())
	assert.Equal(t, []string{"admin"}, resolved.Roles())
}

func TestSessionService_OpenRejectsEmptyToken(t *testing.T) {
	svc, _ := newTestService(t)

	_, _, err := svc.Open(context.Background(), authservice.SessionToken{})
	assert.True(t, IsUnauthenticated(err))
}

func TestSessionService_ResolveInvalid(t *testing.T) {
	svc, _ := newTestService(t)
	other := jwt.NewJWTMaker("other-secret", time.Hour)
	forged, err := other.GenerateToken("sid-1", "u1")
	require.NoError(t, err)

	for name, cookie := range map[string]string{
		"empty":  "",
		"junk":   "not-a-jwt",
		"forged": forged,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Resolve(context.Background(), cookie)
			assert.ErrorIs(t, err, ErrUnauthenticated)
		})
	}
}

func TestSessionService_Close(t *testing.T) {
	rec := &forgetRecorder{}
	svc, p := newTestService(t, rec)
	ctx := context.Background()

	cookie, store, err := svc.Open(ctx, testToken())
	require.NoError(t, err)
	require.NoError(t, store.Filters.Set(ctx, []models.Filter{{Key: "city"}}))

	require.NoError(t, svc.Close(ctx, store))
	assert.Equal(t, []string{"sid-1"}, rec.ids)

	_, err = p.Load(ctx, "sid-1", state.SlotFilters)
	assert.ErrorIs(t, err, state.ErrNotFound)

	_, err = svc.Resolve(ctx, cookie)
	assert.ErrorIs(t, err, ErrUnauthenticated, "closed session cookie is rejected")
}
