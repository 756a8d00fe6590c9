package authclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/stroy1click/confirmation-service/internal/client"
	"github.com/stroy1click/confirmation-service/internal/config"
	"github.com/stroy1click/confirmation-service/pkg/breaker"
	"github.com/stroy1click/confirmation-service/pkg/logger"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// Client calls the auth service that owns refresh sessions.
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
		breaker: breaker.New("authClient", cfg),
	}
}

// LogoutOnAllDevices revokes every session of the user, authorized by the
// short-lived service token minted for this call.
func (c *Client) LogoutOnAllDevices(ctx context.Context, userID int64, serviceToken string) error {
	const op = "authclient.LogoutOnAllDevices"

	logger.Info("revoking all sessions", zap.Int64("user_id", userID))

	_, err := c.breaker.Execute(func() (interface{}, error) {
		url := c.baseURL + "/logout-on-all-devices?userId=" + strconv.FormatInt(userID, 10)

		req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+serviceToken)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("do request: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 400 {
			body, _ := io.ReadAll(resp.Body)
			return nil, fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, string(body))
		}

		return nil, nil
	})
	if err != nil {
		logger.Error("logout on all devices failed", zap.Error(err))
		return client.WrapError(op, err)
	}

	return nil
}
