package remote

import (
	"context"
	"net/http"
	"net/url"

	"github.com/magabrotheeeer/flagship-portal/internal/models"
)

// Login обменивает email и пароль на токен удалённого сервиса.
func (c *Client) Login(ctx context.Context, creds models.Credentials) (*models.AuthResult, error) {
	var res models.AuthResult
	if err := c.call(ctx, "Login", http.MethodPost, "/auth/login", "", nil, creds, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// FederatedLogin обменивает профиль внешнего провайдера на токен удалённого сервиса.
func (c *Client) FederatedLogin(ctx context.Context, profile models.FederatedProfile) (*models.AuthResult, error) {
	var res models.AuthResult
	if err := c.call(ctx, "FederatedLogin", http.MethodPost, "/auth/federated", "", nil, profile, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ListRegistrations возвращает регистрации поездки. Поиск выполняется на стороне сервиса.
func (c *Client) ListRegistrations(ctx context.Context, token, flagshipID, search string) ([]models.Registration, error) {
	q := url.Values{}
	q.Set("flagshipId", flagshipID)
	if search != "" {
		q.Set("search", search)
	}
	var res []models.Registration
	if err := c.call(ctx, "ListRegistrations", http.MethodGet, "/registrations", token, q, nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) ListFlagships(ctx context.Context, token string) ([]models.Flagship, error) {
	var res []models.Flagship
	if err := c.call(ctx, "ListFlagships", http.MethodGet, "/flagships", token, nil, nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) GetFlagship(ctx context.Context, token, id string) (*models.Flagship, error) {
	var res models.Flagship
	if err := c.call(ctx, "GetFlagship", http.MethodGet, "/flagships/"+url.PathEscape(id), token, nil, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) CreateFlagship(ctx context.Context, token string, f models.NewFlagship) (*models.Flagship, error) {
	var res models.Flagship
	if err := c.call(ctx, "CreateFlagship", http.MethodPost, "/flagships", token, nil, f, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) ListUsers(ctx context.Context, token string) ([]models.User, error) {
	var res []models.User
	if err := c.call(ctx, "ListUsers", http.MethodGet, "/users", token, nil, nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) GetUser(ctx context.Context, token, id string) (*models.User, error) {
	var res models.User
	if err := c.call(ctx, "GetUser", http.MethodGet, "/users/"+url.PathEscape(id), token, nil, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetMe возвращает пользователя, которому принадлежит токен.
func (c *Client) GetMe(ctx context.Context, token string) (*models.User, error) {
	var res models.User
	if err := c.call(ctx, "GetMe", http.MethodGet, "/users/me", token, nil, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// CreateUser регистрирует нового пользователя.
func (c *Client) CreateUser(ctx context.Context, req models.SignupRequest) (*models.User, error) {
	var res models.User
	if err := c.call(ctx, "CreateUser", http.MethodPost, "/users", "", nil, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) ListRefunds(ctx context.Context, token string) ([]models.Refund, error) {
	var res []models.Refund
	if err := c.call(ctx, "ListRefunds", http.MethodGet, "/refunds", token, nil, nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) ApproveRefund(ctx context.Context, token, id string) (*models.Refund, error) {
	var res models.Refund
	if err := c.call(ctx, "ApproveRefund", http.MethodPost, "/refunds/"+url.PathEscape(id)+"/approve", token, nil, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) RejectRefund(ctx context.Context, token, id string) (*models.Refund, error) {
	var res models.Refund
	if err := c.call(ctx, "RejectRefund", http.MethodPost, "/refunds/"+url.PathEscape(id)+"/reject", token, nil, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) ListPayments(ctx context.Context, token string) ([]models.Payment, error) {
	var res []models.Payment
	if err := c.call(ctx, "ListPayments", http.MethodGet, "/payments", token, nil, nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}
