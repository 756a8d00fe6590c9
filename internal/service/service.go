package service

import (
	"context"

	"github.com/stroy1click/confirmation-service/internal/domain"
	"github.com/stroy1click/confirmation-service/internal/repository"
	"github.com/stroy1click/confirmation-service/pkg/auth"
	"github.com/stroy1click/confirmation-service/pkg/codegen"
)

type Services struct {
	ConfirmationCodes ConfirmationCodes
}

type Deps struct {
	Repos         *repository.Repositories
	TokenManager  auth.TokenManager
	CodeGenerator codegen.Generator
	Users         UserDirectory
	Notifier      Notifications
	Sessions      Sessions
}

func NewServices(deps Deps) *Services {
	return &Services{
		ConfirmationCodes: newConfirmationCodeService(
			deps.Repos.ConfirmationCodes,
			deps.Users,
			deps.Notifier,
			deps.Sessions,
			deps.TokenManager,
			deps.CodeGenerator,
		),
	}
}

type ConfirmationCodes interface {
	Create(ctx context.Context, purpose domain.Purpose, email string) error
	Recreate(ctx context.Context, purpose domain.Purpose, email string) error
	VerifyEmail(ctx context.Context, email string, code int) error
	UpdatePassword(ctx context.Context, input UpdatePasswordInput) error
}

// UserDirectory is the gateway contract to the user service.
type UserDirectory interface {
	GetByEmail(ctx context.Context, email string) (*domain.UserSnapshot, error)
	UpdateEmailConfirmedStatus(ctx context.Context, email string) error
	UpdatePassword(ctx context.Context, email string, newPassword string) error
}

// Notifications is the gateway contract to the email service.
type Notifications interface {
	Send(ctx context.Context, code int, user *domain.UserSnapshot) error
}

// Sessions is the gateway contract to the auth service.
type Sessions interface {
	LogoutOnAllDevices(ctx context.Context, userID int64, serviceToken string) error
}
