package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/flagship-portal/internal/models"
	"github.com/magabrotheeeer/flagship-portal/internal/remote"
)

type RemoteMock struct {
	mock.Mock
}

func (m *RemoteMock) Login(ctx context.Context, creds models.Credentials) (*models.AuthResult, error) {
	args := m.Called(ctx, creds)
	res, _ := args.Get(0).(*models.AuthResult)
	return res, args.Error(1)
}

func (m *RemoteMock) FederatedLogin(ctx context.Context, profile models.FederatedProfile) (*models.AuthResult, error) {
	args := m.Called(ctx, profile)
	res, _ := args.Get(0).(*models.AuthResult)
	return res, args.Error(1)
}

func (m *RemoteMock) CreateUser(ctx context.Context, req models.SignupRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*models.User)
	return res, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestAuthService_Authenticate(t *testing.T) {
	creds := models.Credentials{Email: "ali@example.com", Password: "secret123"}

	tests := []struct {
		name      string
		creds     models.Credentials
		setup     func(m *RemoteMock)
		wantToken string
		wantErr   error
	}{
		{
			name:  "success",
			creds: creds,
			setup: func(m *RemoteMock) {
				m.On("Login", mock.Anything, creds).Return(&models.AuthResult{
					Token: "remote-token",
					User:  models.User{ID: "u1"},
				}, nil).Once()
			},
			wantToken: "remote-token",
		},
		{
			name:  "remote rejects",
			creds: creds,
			setup: func(m *RemoteMock) {
				m.On("Login", mock.Anything, creds).
					Return(nil, &remote.Error{StatusCode: http.StatusUnauthorized, Message: "wrong password"}).Once()
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:  "remote unavailable",
			creds: creds,
			setup: func(m *RemoteMock) {
				m.On("Login", mock.Anything, creds).Return(nil, errors.New("dial tcp: refused")).Once()
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:  "empty token",
			creds: creds,
			setup: func(m *RemoteMock) {
				m.On("Login", mock.Anything, creds).Return(&models.AuthResult{}, nil).Once()
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:    "empty password never reaches remote",
			creds:   models.Credentials{Email: "ali@example.com"},
			setup:   func(_ *RemoteMock) {},
			wantErr: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(RemoteMock)
			tt.setup(m)
			svc := NewAuthService(m, newNoopLogger())

			got, err := svc.Authenticate(context.Background(), tt.creds)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, "Invalid email or password", err.Error())
				assert.Empty(t, got.BearerToken)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantToken, got.BearerToken)
				assert.Equal(t, ProviderCredentials, got.Provider)
				assert.Equal(t, "u1", got.User.ID)
			}
			m.AssertExpectations(t)
		})
	}
}

func TestAuthService_ExchangeFederatedIdentity(t *testing.T) {
	profile := models.FederatedProfile{Provider: "google", Subject: "g-123", Name: "Ali Khan", Email: "ali@example.com"}

	tests := []struct {
		name       string
		profile    models.FederatedProfile
		setup      func(m *RemoteMock)
		wantReason string
	}{
		{
			name:    "success",
			profile: profile,
			setup: func(m *RemoteMock) {
				m.On("FederatedLogin", mock.Anything, profile).
					Return(&models.AuthResult{Token: "remote-token", User: models.User{ID: "u1"}}, nil).Once()
			},
		},
		{
			name:       "missing subject",
			profile:    models.FederatedProfile{Provider: "google", Name: "Ali"},
			setup:      func(_ *RemoteMock) {},
			wantReason: "incomplete profile",
		},
		{
			name:       "missing provider",
			profile:    models.FederatedProfile{Subject: "g-1", Name: "Ali"},
			setup:      func(_ *RemoteMock) {},
			wantReason: "provider is required",
		},
		{
			name:    "remote failure",
			profile: profile,
			setup: func(m *RemoteMock) {
				m.On("FederatedLogin", mock.Anything, profile).Return(nil, errors.New("boom")).Once()
			},
			wantReason: "token exchange failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(RemoteMock)
			tt.setup(m)
			svc := NewAuthService(m, newNoopLogger())

			got, err := svc.ExchangeFederatedIdentity(context.Background(), tt.profile)
			if tt.wantReason != "" {
				var authErr *AuthError
				require.ErrorAs(t, err, &authErr)
				assert.Equal(t, tt.wantReason, authErr.Reason)
				assert.Equal(t, http.StatusUnauthorized, authErr.Status())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "remote-token", got.BearerToken)
			assert.Equal(t, "google", got.Provider)
			m.AssertExpectations(t)
		})
	}
}

func TestAuthService_Signup(t *testing.T) {
	req := models.SignupRequest{FullName: "Ali Khan", Email: "ali@example.com", Password: "secret123"}

	t.Run("creates then signs in", func(t *testing.T) {
		m := new(RemoteMock)
		m.On("CreateUser", mock.Anything, req).Return(&models.User{ID: "u1"}, nil).Once()
		m.On("Login", mock.Anything, models.Credentials{Email: req.Email, Password: req.Password}).
			Return(&models.AuthResult{Token: "tok", User: models.User{ID: "u1"}}, nil).Once()

		got, err := NewAuthService(m, newNoopLogger()).Signup(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "tok", got.BearerToken)
		m.AssertExpectations(t)
	})

	t.Run("remote conflict keeps status", func(t *testing.T) {
		m := new(RemoteMock)
		m.On("CreateUser", mock.Anything, req).
			Return(nil, &remote.Error{StatusCode: http.StatusConflict, Message: "email already registered"}).Once()

		_, err := NewAuthService(m, newNoopLogger()).Signup(context.Background(), req)
		require.Error(t, err)
		assert.True(t, remote.IsStatus(err, http.StatusConflict))
		m.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
	})
}
