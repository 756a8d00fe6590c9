package service

import (
	"context"
	"time"

	"github.com/stroy1click/confirmation-service/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type confirmationCodesMock struct {
	mock.Mock
}

func (m *confirmationCodesMock) FindActive(ctx context.Context, purpose domain.Purpose, userID int64) (*domain.ConfirmationCode, error) {
	args := m.Called(ctx, purpose, userID)
	if code := args.Get(0); code != nil {
		return code.(*domain.ConfirmationCode), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *confirmationCodesMock) CountActive(ctx context.Context, purpose domain.Purpose, userID int64) (int, error) {
	args := m.Called(ctx, purpose, userID)
	return args.Int(0), args.Error(1)
}

func (m *confirmationCodesMock) Save(ctx context.Context, code *domain.ConfirmationCode) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *confirmationCodesMock) Replace(ctx context.Context, code *domain.ConfirmationCode) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *confirmationCodesMock) DeleteByScope(ctx context.Context, purpose domain.Purpose, userID int64) error {
	args := m.Called(ctx, purpose, userID)
	return args.Error(0)
}

func (m *confirmationCodesMock) DeleteByCode(ctx context.Context, code int) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *confirmationCodesMock) DeleteByID(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *confirmationCodesMock) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

type userDirectoryMock struct {
	mock.Mock
}

func (m *userDirectoryMock) GetByEmail(ctx context.Context, email string) (*domain.UserSnapshot, error) {
	args := m.Called(ctx, email)
	if user := args.Get(0); user != nil {
		return user.(*domain.UserSnapshot), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *userDirectoryMock) UpdateEmailConfirmedStatus(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *userDirectoryMock) UpdatePassword(ctx context.Context, email string, newPassword string) error {
	args := m.Called(ctx, email, newPassword)
	return args.Error(0)
}

type notificationsMock struct {
	mock.Mock
}

func (m *notificationsMock) Send(ctx context.Context, code int, user *domain.UserSnapshot) error {
	args := m.Called(ctx, code, user)
	return args.Error(0)
}

type sessionsMock struct {
	mock.Mock
}

func (m *sessionsMock) LogoutOnAllDevices(ctx context.Context, userID int64, serviceToken string) error {
	args := m.Called(ctx, userID, serviceToken)
	return args.Error(0)
}

type tokenManagerMock struct {
	mock.Mock
}

func (m *tokenManagerMock) NewServiceToken(userID int64, role string, emailConfirmed bool) (string, error) {
	args := m.Called(userID, role, emailConfirmed)
	return args.String(0), args.Error(1)
}

// fixedGenerator always returns the same code and expiry, so tests can
// assert exact values.
type fixedGenerator struct {
	code      int
	expiresAt time.Time
}

func (g *fixedGenerator) Generate() (int, time.Time) {
	return g.code, g.expiresAt
}
