package me

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

func (m *ServiceMock) Me(ctx context.Context, store *state.Store) (views.UserCard, error) {
	args := m.Called(ctx, store)
	card, _ := args.Get(0).(views.UserCard)
	return card, args.Error(1)
}

func TestMeHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(*ServiceMock)
		wantStatus int
		wantNotice string
	}{
		{
			name: "документы на проверке",
			setup: func(m *ServiceMock) {
				card := views.NewUserCard(models.User{ID: "u1", Verification: models.VerificationPending})
				m.On("Me", mock.Anything, mock.Anything).Return(card, nil)
			},
			wantStatus: http.StatusOK,
			wantNotice: "Verification in review",
		},
		{
			name: "удалённый сервис недоступен",
			setup: func(m *ServiceMock) {
				m.On("Me", mock.Anything, mock.Anything).Return(views.UserCard{}, errors.New("dial tcp"))
			},
			wantStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			tt.setup(svc)

			store := state.NewStore("sid", state.NewMemoryPersister())
			req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
			req = req.WithContext(middlewarectx.WithStore(req.Context(), store))
			w := httptest.NewRecorder()

			New(slog.New(slog.NewTextHandler(io.Discard, nil)), svc).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantNotice != "" {
				var got struct {
					Data views.UserCard `json:"data"`
				}
				require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
				assert.Equal(t, tt.wantNotice, got.Data.Notice)
				assert.Equal(t, views.BadgeWarning, got.Data.Badge)
			}
			svc.AssertExpectations(t)
		})
	}
}
