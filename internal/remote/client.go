// Package remote — клиент удалённого сервиса бронирования. Сервис отвечает
// в том же конверте {statusCode, message, data, error}, что и портал.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/magabrotheeeer/flagship-portal/internal/metrics"
)

// Error — ответ удалённого сервиса с кодом вне диапазона 2xx.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("remote: %d %s", e.StatusCode, e.Message)
}

// Status возвращает HTTP-код ответа удалённого сервиса.
func (e *Error) Status() int {
	return e.StatusCode
}

// ClientMessage возвращает сообщение удалённого сервиса без технических подробностей.
func (e *Error) ClientMessage() string {
	return e.Message
}

// IsStatus сообщает, вернул ли удалённый сервис указанный код.
func IsStatus(err error, code int) bool {
	var rerr *Error
	return errors.As(err, &rerr) && rerr.StatusCode == code
}

type envelope struct {
	StatusCode int             `json:"statusCode"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Error      json.RawMessage `json:"error"`
}

// Client обращается к удалённому сервису по HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	metrics    *metrics.Remote
}

// New создаёт клиент. metrics может быть nil.
func New(baseURL string, timeout time.Duration, m *metrics.Remote) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		metrics:    m,
	}
}

func (c *Client) newRequest(ctx context.Context, method, path, token string, query url.Values, body any) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
		reader = &buf
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// call выполняет запрос и раскладывает поле data ответа в out.
func (c *Client) call(ctx context.Context, endpoint, method, path, token string, query url.Values, body, out any) error {
	op := "remote." + endpoint
	start := time.Now()

	req, err := c.newRequest(ctx, method, path, token, query, body)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.Observe(endpoint, metrics.OutcomeTransport, time.Since(start))
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	var env envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.metrics.Observe(endpoint, metrics.OutcomeRemoteError, time.Since(start))
		msg := env.Message
		if decodeErr != nil || msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return fmt.Errorf("%s: %w", op, &Error{StatusCode: resp.StatusCode, Message: msg})
	}

	if decodeErr != nil && !errors.Is(decodeErr, io.EOF) {
		c.metrics.Observe(endpoint, metrics.OutcomeTransport, time.Since(start))
		return fmt.Errorf("%s: decode response: %w", op, decodeErr)
	}
	c.metrics.Observe(endpoint, metrics.OutcomeOK, time.Since(start))

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%s: decode data: %w", op, err)
	}
	return nil
}
