package list

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
	"github.com/magabrotheeeer/flagship-portal/internal/state"
	"github.com/magabrotheeeer/flagship-portal/internal/views"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Cards(ctx context.Context, token string) ([]*views.FlagshipCard, error) {
	args := m.Called(ctx, token)
	res, _ := args.Get(0).([]*views.FlagshipCard)
	return res, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func newSessionRequest(t *testing.T) *http.Request {
	t.Helper()
	store := state.NewStore("sid", state.NewMemoryPersister())
	require.NoError(t, store.Auth.Set(context.Background(), state.Auth{BearerToken: "bearer"}))
	req := httptest.NewRequest(http.MethodGet, "/api/v1/flagships", nil)
	return req.WithContext(middlewarectx.WithStore(req.Context(), store))
}

func TestListHandler_ServeHTTP(t *testing.T) {
	t.Run("карточки в порядке удалённого сервиса", func(t *testing.T) {
		svc := new(ServiceMock)
		cards := views.FlagshipCards([]models.Flagship{
			{ID: "b", Name: "Hunza", StartDate: "2024-03-01", EndDate: "2024-03-22"},
			{ID: "a", Name: "Skardu"},
		})
		svc.On("Cards", mock.Anything, "bearer").Return(cards, nil)

		w := httptest.NewRecorder()
		New(newNoopLogger(), svc).ServeHTTP(w, newSessionRequest(t))

		assert.Equal(t, http.StatusOK, w.Code)
		var got struct {
			Data []views.FlagshipCard `json:"data"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
		require.Len(t, got.Data, 2)
		assert.Equal(t, "b", got.Data[0].ID)
		assert.Equal(t, "1-22nd March 2024", got.Data[0].DateLabel)
		assert.Equal(t, views.PlaceholderImage, got.Data[1].Image)
		svc.AssertExpectations(t)
	})

	t.Run("удалённый сервис недоступен", func(t *testing.T) {
		svc := new(ServiceMock)
		svc.On("Cards", mock.Anything, "bearer").Return(nil, errors.New("dial tcp: refused"))

		w := httptest.NewRecorder()
		New(newNoopLogger(), svc).ServeHTTP(w, newSessionRequest(t))

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})

	t.Run("без сессии", func(t *testing.T) {
		svc := new(ServiceMock)
		w := httptest.NewRecorder()
		New(newNoopLogger(), svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/flagships", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		svc.AssertNotCalled(t, "Cards", mock.Anything, mock.Anything)
	})
}
