package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/stroy1click/confirmation-service/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

// TokenManager mints the short-lived service credential used to authorize
// administrative calls against peer services on behalf of a user.
type TokenManager interface {
	NewServiceToken(userID int64, role string, emailConfirmed bool) (string, error)
}

type Manager struct {
	signingKey      string
	serviceTokenTTL time.Duration
}

func NewManager(cfg config.JWTConfig) (*Manager, error) {
	if cfg.SigningKey == "" {
		return nil, errors.New("empty signing key")
	}

	if cfg.ServiceTokenTTL == 0 {
		return nil, errors.New("empty service token ttl")
	}

	return &Manager{
		signingKey:      cfg.SigningKey,
		serviceTokenTTL: cfg.ServiceTokenTTL,
	}, nil
}

// NewServiceToken signs an HS256 token with subject set to the target user id
// and the role/emailConfirmed claims the auth service expects. The token is
// minted fresh per call and expires after the configured TTL.
func (m *Manager) NewServiceToken(userID int64, role string, emailConfirmed bool) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":            strconv.FormatInt(userID, 10),
		"role":           role,
		"emailConfirmed": emailConfirmed,
		"iat":            jwt.NewNumericDate(now),
		"exp":            jwt.NewNumericDate(now.Add(m.serviceTokenTTL)),
	})

	serviceToken, err := token.SignedString([]byte(m.signingKey))
	if err != nil {
		return "", errors.New("sign service token failed")
	}

	return serviceToken, nil
}
