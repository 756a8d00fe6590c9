// Package client holds plumbing shared by the downstream service clients.
package client

import (
	"errors"
	"fmt"

	"github.com/stroy1click/confirmation-service/internal/domain"
	"github.com/stroy1click/confirmation-service/pkg/breaker"
)

// WrapError translates a failed downstream call into the fixed error
// taxonomy: business outcomes pass through untouched, everything else
// (transport failure, unexpected status, open breaker) surfaces as
// domain.ErrServiceUnavailable.
func WrapError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrUserNotFound):
		return err
	case breaker.IsOpen(err):
		return fmt.Errorf("%s: circuit breaker open: %w", op, domain.ErrServiceUnavailable)
	default:
		return fmt.Errorf("%s: %w: %v", op, domain.ErrServiceUnavailable, err)
	}
}
