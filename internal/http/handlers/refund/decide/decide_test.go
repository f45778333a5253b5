package decide

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/flagship-portal/internal/http/middlewarectx"
	"github.com/magabrotheeeer/flagship-portal/internal/models"
	refundservice "github.com/magabrotheeeer/flagship-portal/internal/services/refund"
	"github.com/magabrotheeeer/flagship-portal/internal/state"
	"github.com/magabrotheeeer/flagship-portal/internal/views"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Decide(ctx context.Context, token, actorID, refundID string, decision models.RefundStatus) (*views.RefundCard, error) {
	args := m.Called(ctx, token, actorID, refundID, decision)
	res, _ := args.Get(0).(*views.RefundCard)
	return res, args.Error(1)
}

func TestDecideHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name        string
		decision    models.RefundStatus
		refundID    string
		setup       func(*ServiceMock)
		wantStatus  int
		wantMessage string
	}{
		{
			name:     "одобрение",
			decision: models.RefundApproved,
			refundID: "r1",
			setup: func(m *ServiceMock) {
				card := views.NewRefundCard(models.Refund{ID: "r1", Status: models.RefundApproved}, nil, nil)
				m.On("Decide", mock.Anything, "bearer", "admin-1", "r1", models.RefundApproved).Return(card, nil)
			},
			wantStatus:  http.StatusOK,
			wantMessage: "Refund approved",
		},
		{
			name:     "уже рассмотрен",
			decision: models.RefundRejected,
			refundID: "r2",
			setup: func(m *ServiceMock) {
				m.On("Decide", mock.Anything, "bearer", "admin-1", "r2", models.RefundRejected).Return(nil, refundservice.ErrNotPending)
			},
			wantStatus:  http.StatusConflict,
			wantMessage: "refund is not pending",
		},
		{
			name:     "не найден",
			decision: models.RefundApproved,
			refundID: "nope",
			setup: func(m *ServiceMock) {
				m.On("Decide", mock.Anything, "bearer", "admin-1", "nope", models.RefundApproved).Return(nil, refundservice.ErrRefundNotFound)
			},
			wantStatus:  http.StatusNotFound,
			wantMessage: "refund not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			tt.setup(svc)

			ctx := context.Background()
			store := state.NewStore("sid", state.NewMemoryPersister())
			require.NoError(t, store.Auth.Set(ctx, state.Auth{BearerToken: "bearer"}))
			require.NoError(t, store.User.Set(ctx, models.User{ID: "admin-1", Roles: []string{models.RoleAdmin}}))

			req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/refunds/"+tt.refundID+"/x", nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.refundID)
			req = req.WithContext(middlewarectx.WithStore(context.WithValue(req.Context(), chi.RouteCtxKey, rctx), store))
			w := httptest.NewRecorder()

			New(slog.New(slog.NewTextHandler(io.Discard, nil)), svc, tt.decision).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			var got map[string]any
			require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
			assert.Equal(t, tt.wantMessage, got["message"])
			svc.AssertExpectations(t)
		})
	}
}
