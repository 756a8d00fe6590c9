package emailclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/stroy1click/confirmation-service/internal/client"
	"github.com/stroy1click/confirmation-service/internal/config"
	"github.com/stroy1click/confirmation-service/internal/domain"
	"github.com/stroy1click/confirmation-service/pkg/breaker"
	"github.com/stroy1click/confirmation-service/pkg/logger"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// Client calls the notification (email) service.
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
		breaker: breaker.New("emailClient", cfg),
	}
}

type sendEmailRequest struct {
	Code int                  `json:"code"`
	User *domain.UserSnapshot `json:"user"`
}

// Send dispatches the confirmation code to the user's email synchronously.
// The call is bounded by the client timeout; the caller learns whether the
// downstream service accepted the message.
func (c *Client) Send(ctx context.Context, code int, user *domain.UserSnapshot) error {
	const op = "emailclient.Send"

	logger.Info("sending confirmation code email", zap.Int64("user_id", user.ID))

	_, err := c.breaker.Execute(func() (interface{}, error) {
		payload, err := json.Marshal(sendEmailRequest{Code: code, User: user})
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/send", bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

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
		logger.Error("send email failed", zap.Error(err))
		return client.WrapError(op, err)
	}

	return nil
}
