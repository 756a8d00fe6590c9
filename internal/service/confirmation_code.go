package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/stroy1click/confirmation-service/internal/domain"
	"github.com/stroy1click/confirmation-service/internal/repository"
	"github.com/stroy1click/confirmation-service/pkg/auth"
	"github.com/stroy1click/confirmation-service/pkg/codegen"

	"github.com/google/uuid"
)

// confirmationCodeService owns the code lifecycle per (purpose, user) scope:
// NONE -> ACTIVE on create, ACTIVE -> NONE -> ACTIVE on recreate (one
// transaction), ACTIVE -> NONE on successful verification or password update.
// Validation failures never transition state.
type confirmationCodeService struct {
	codes     repository.ConfirmationCodes
	users     UserDirectory
	notifier  Notifications
	sessions  Sessions
	tokens    auth.TokenManager
	generator codegen.Generator
}

func newConfirmationCodeService(
	codes repository.ConfirmationCodes,
	users UserDirectory,
	notifier Notifications,
	sessions Sessions,
	tokens auth.TokenManager,
	generator codegen.Generator,
) *confirmationCodeService {
	return &confirmationCodeService{
		codes:     codes,
		users:     users,
		notifier:  notifier,
		sessions:  sessions,
		tokens:    tokens,
		generator: generator,
	}
}

// Create issues a new confirmation code for the user owning email and
// dispatches it. Dispatch is synchronous: when it fails the operation fails
// and the persisted code stays behind, recoverable through Recreate.
func (s *confirmationCodeService) Create(ctx context.Context, purpose domain.Purpose, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	count, err := s.codes.CountActive(ctx, purpose, user.ID)
	if err != nil {
		return fmt.Errorf("count active codes failed: %w", err)
	}
	if count >= 1 {
		return ErrCodeAlreadySent
	}

	if purpose == domain.PurposeEmailVerification && user.EmailConfirmed {
		return ErrEmailAlreadyConfirmed
	}

	code, err := s.newCode(purpose, user.ID)
	if err != nil {
		return err
	}

	if err := s.codes.Save(ctx, code); err != nil {
		if errors.Is(err, domain.ErrDuplicateEntry) {
			// lost the insert race against a concurrent create for this scope
			return ErrCodeAlreadySent
		}
		return fmt.Errorf("save confirmation code failed: %w", err)
	}

	return s.notifier.Send(ctx, code.Code, user)
}

// Recreate replaces the existing code for the scope with a fresh one. The
// swap is a single transaction, so a failure leaves the old code active and
// a success leaves exactly one.
func (s *confirmationCodeService) Recreate(ctx context.Context, purpose domain.Purpose, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	count, err := s.codes.CountActive(ctx, purpose, user.ID)
	if err != nil {
		return fmt.Errorf("count active codes failed: %w", err)
	}
	if count == 0 {
		return ErrRecreateWithoutCode
	}

	if purpose == domain.PurposeEmailVerification && user.EmailConfirmed {
		return ErrEmailAlreadyConfirmed
	}

	code, err := s.newCode(purpose, user.ID)
	if err != nil {
		return err
	}

	if err := s.codes.Replace(ctx, code); err != nil {
		return fmt.Errorf("replace confirmation code failed: %w", err)
	}

	return s.notifier.Send(ctx, code.Code, user)
}

// VerifyEmail checks the submitted code against the active EMAIL code of the
// user and marks the email confirmed downstream. The code record is deleted
// only after the directory call succeeds, so a downstream failure leaves it
// intact and retryable.
func (s *confirmationCodeService) VerifyEmail(ctx context.Context, email string, submitted int) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	code, err := s.codes.FindActive(ctx, domain.PurposeEmailVerification, user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrCodeNotFound
		}
		return fmt.Errorf("find active code failed: %w", err)
	}

	if !code.Valid(submitted, time.Now()) {
		return ErrCodeNotValid
	}

	if err := s.users.UpdateEmailConfirmedStatus(ctx, user.Email); err != nil {
		return err
	}

	if err := s.codes.DeleteByID(ctx, code.ID); err != nil {
		return fmt.Errorf("delete confirmation code failed: %w", err)
	}

	return nil
}

type UpdatePasswordInput struct {
	NewPassword     string
	ConfirmPassword string
	Email           string
	Code            int
}

// UpdatePassword resets the user's password after validating the PASSWORD
// code. Ordering is deliberate: the code is consumed first so it cannot be
// replayed even when a later step fails, then all sessions are revoked, then
// the password is updated. Steps after the delete are not compensated; a
// failed downstream update requires a fresh reset code.
func (s *confirmationCodeService) UpdatePassword(ctx context.Context, input UpdatePasswordInput) error {
	user, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return err
	}

	code, err := s.codes.FindActive(ctx, domain.PurposePasswordReset, user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrCodeNotFound
		}
		return fmt.Errorf("find active code failed: %w", err)
	}

	if !code.Valid(input.Code, time.Now()) {
		return ErrCodeNotValid
	}

	if input.NewPassword != input.ConfirmPassword {
		return ErrPasswordMismatch
	}

	if err := s.codes.DeleteByCode(ctx, code.Code); err != nil {
		return fmt.Errorf("delete confirmation code failed: %w", err)
	}

	serviceToken, err := s.tokens.NewServiceToken(user.ID, user.Role, user.EmailConfirmed)
	if err != nil {
		return fmt.Errorf("mint service token failed: %w", err)
	}

	if err := s.sessions.LogoutOnAllDevices(ctx, user.ID, serviceToken); err != nil {
		return err
	}

	return s.users.UpdatePassword(ctx, user.Email, input.NewPassword)
}

func (s *confirmationCodeService) newCode(purpose domain.Purpose, userID int64) (*domain.ConfirmationCode, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate code id failed: %w", err)
	}

	value, expiresAt := s.generator.Generate()

	return &domain.ConfirmationCode{
		ID:        id,
		Code:      value,
		Purpose:   purpose,
		UserID:    userID,
		ExpiresAt: expiresAt,
	}, nil
}
