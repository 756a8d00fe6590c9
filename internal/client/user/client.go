package userclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/stroy1click/confirmation-service/internal/client"
	"github.com/stroy1click/confirmation-service/internal/config"
	"github.com/stroy1click/confirmation-service/internal/domain"
	"github.com/stroy1click/confirmation-service/pkg/breaker"
	"github.com/stroy1click/confirmation-service/pkg/logger"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// Client calls the user directory service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
}

func NewClient(baseURL string, timeout time.Duration, cfg config.Breaker) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		breaker: breaker.New("userClient", cfg),
	}
}

// GetByEmail resolves a point-in-time snapshot of the user owning email.
// A directory 404 surfaces as domain.ErrUserNotFound.
func (c *Client) GetByEmail(ctx context.Context, email string) (*domain.UserSnapshot, error) {
	const op = "userclient.GetByEmail"

	res, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?email="+url.QueryEscape(email), nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("do request: %w", err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
		case resp.StatusCode == http.StatusNotFound:
			return nil, domain.ErrUserNotFound
		default:
			body, _ := io.ReadAll(resp.Body)
			return nil, fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, string(body))
		}

		var user domain.UserSnapshot
		if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}

		return &user, nil
	})
	if err != nil {
		logger.Error("get user by email failed", zap.Error(err))
		return nil, client.WrapError(op, err)
	}

	return res.(*domain.UserSnapshot), nil
}

type confirmEmailRequest struct {
	Email string `json:"email"`
}

// UpdateEmailConfirmedStatus marks the user's email as confirmed downstream.
func (c *Client) UpdateEmailConfirmedStatus(ctx context.Context, email string) error {
	const op = "userclient.UpdateEmailConfirmedStatus"

	_, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, c.patch(ctx, "/email-status", confirmEmailRequest{Email: email})
	})
	if err != nil {
		logger.Error("update email confirmed status failed", zap.Error(err))
		return client.WrapError(op, err)
	}

	return nil
}

type updatePasswordRequest struct {
	NewPassword string `json:"newPassword"`
	Email       string `json:"email"`
}

// UpdatePassword sets a new password for the user downstream.
func (c *Client) UpdatePassword(ctx context.Context, email string, newPassword string) error {
	const op = "userclient.UpdatePassword"

	_, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, c.patch(ctx, "/password", updatePasswordRequest{NewPassword: newPassword, Email: email})
	})
	if err != nil {
		logger.Error("update password failed", zap.Error(err))
		return client.WrapError(op, err)
	}

	return nil
}

func (c *Client) patch(ctx context.Context, path string, body interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, string(respBody))
	}

	return nil
}
