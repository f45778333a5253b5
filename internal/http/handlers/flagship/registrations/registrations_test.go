package registrations

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/flagship-portal/internal/http/middlewarectx"
	"github.com/magabrotheeeer/flagship-portal/internal/models"
	registrationservice "github.com/magabrotheeeer/flagship-portal/internal/services/registration"
	"github.com/magabrotheeeer/flagship-portal/internal/state"
)

type FetcherMock struct {
	mock.Mock
}

func (m *FetcherMock) ListRegistrations(ctx context.Context, token, flagshipID, search string) ([]models.Registration, error) {
	args := m.Called(ctx, token, flagshipID, search)
	res, _ := args.Get(0).([]models.Registration)
	return res, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func doRequest(t *testing.T, h http.Handler, store *state.Store, flagshipID, search string) registrationservice.View {
	t.Helper()

	url := "/api/v1/flagships/" + flagshipID + "/registrations"
	if search != "" {
		url += "?search=" + search
	}
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", flagshipID)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	req = req.WithContext(middlewarectx.WithStore(ctx, store))
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var got struct {
		Data registrationservice.View `json:"data"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	return got.Data
}

func TestRegistrationsHandler_ServeHTTP(t *testing.T) {
	store := state.NewStore("sid", state.NewMemoryPersister())
	require.NoError(t, store.Auth.Set(context.Background(), state.Auth{BearerToken: "bearer"}))

	fetcher := new(FetcherMock)
	fetcher.On("ListRegistrations", mock.Anything, "bearer", "f1", "").
		Return([]models.Registration{{ID: "r1", FlagshipID: "f1"}, {ID: "r2", FlagshipID: "f1"}}, nil).Once()
	fetcher.On("ListRegistrations", mock.Anything, "bearer", "f1", "zzz").
		Return([]models.Registration{}, nil).Once()
	fetcher.On("ListRegistrations", mock.Anything, "bearer", "f1", "boom").
		Return(nil, errors.New("timeout")).Once()

	h := New(newNoopLogger(), registrationservice.NewRegistry(fetcher, newNoopLogger(), time.Hour))

	view := doRequest(t, h, store, "f1", "")
	assert.False(t, view.Loading)
	assert.False(t, view.Empty)
	require.Len(t, view.Items, 2)
	assert.Equal(t, "r1", view.Items[0].ID)

	view = doRequest(t, h, store, "f1", "zzz")
	assert.True(t, view.Empty)
	assert.Equal(t, registrationservice.EmptyMessage, view.Message)

	view = doRequest(t, h, store, "f1", "boom")
	assert.Equal(t, "boom", view.Search)
	assert.True(t, view.Empty, "ошибка выборки оставляет последнее значение")

	fetcher.AssertExpectations(t)
}

func TestRegistrationsHandler_FirstFetchFails(t *testing.T) {
	store := state.NewStore("sid", state.NewMemoryPersister())
	require.NoError(t, store.Auth.Set(context.Background(), state.Auth{BearerToken: "bearer"}))

	fetcher := new(FetcherMock)
	fetcher.On("ListRegistrations", mock.Anything, "bearer", "f2", "").Return(nil, errors.New("timeout"))

	h := New(newNoopLogger(), registrationservice.NewRegistry(fetcher, newNoopLogger(), time.Hour))

	view := doRequest(t, h, store, "f2", "")
	assert.False(t, view.Loading)
	assert.True(t, view.Empty)
	assert.Equal(t, registrationservice.EmptyMessage, view.Message)
	assert.Empty(t, view.Items)
}
