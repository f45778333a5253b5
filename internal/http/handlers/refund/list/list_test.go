package list

import (
	"context"
	"encoding/json"
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

func (m *ServiceMock) Cards(ctx context.Context, token, actorID string) ([]*views.RefundCard, error) {
	args := m.Called(ctx, token, actorID)
	res, _ := args.Get(0).([]*views.RefundCard)
	return res, args.Error(1)
}

func TestListHandler_ServeHTTP(t *testing.T) {
	ctx := context.Background()
	store := state.NewStore("sid", state.NewMemoryPersister())
	require.NoError(t, store.Auth.Set(ctx, state.Auth{BearerToken: "bearer"}))
	require.NoError(t, store.User.Set(ctx, models.User{ID: "admin-1", Roles: []string{models.RoleAdmin}}))

	noop := func(string) error { return nil }
	cards := []*views.RefundCard{
		views.NewRefundCard(models.Refund{ID: "r1", Status: models.RefundPending}, noop, noop),
		views.NewRefundCard(models.Refund{ID: "r2", Status: models.RefundRejected}, noop, noop),
	}
	svc := new(ServiceMock)
	svc.On("Cards", mock.Anything, "bearer", "admin-1").Return(cards, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/refunds", nil)
	req = req.WithContext(middlewarectx.WithStore(req.Context(), store))
	w := httptest.NewRecorder()

	New(slog.New(slog.NewTextHandler(io.Discard, nil)), svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var got struct {
		Data []views.RefundCard `json:"data"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	require.Len(t, got.Data, 2)
	assert.Equal(t, views.BadgeWarning, got.Data[0].Badge)
	assert.NotEmpty(t, got.Data[0].Actions)
	assert.Equal(t, views.BadgeDestructive, got.Data[1].Badge)
	assert.Empty(t, got.Data[1].Actions)
	svc.AssertExpectations(t)
}
