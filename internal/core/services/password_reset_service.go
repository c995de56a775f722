package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"loanconv-backoffice/internal/adapters/persistence/models"
	"loanconv-backoffice/internal/adapters/persistence/repositories"
	"loanconv-backoffice/internal/core/domain"
	"loanconv-backoffice/internal/pkg/password"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PasswordResetTokenTTL bounds how long a mailed reset token stays usable.
const PasswordResetTokenTTL = 15 * time.Minute

// PasswordResetService handles the forgot-password flow: mail a single-use
// token, let the client pre-validate it, then exchange it for a new
// password.
type PasswordResetService struct {
	userRepo  repositories.UserRepositoryInterface
	tokenRepo repositories.VerificationTokenRepositoryInterface
	mailer    EmailSender
}

// NewPasswordResetService creates a new password reset service
func NewPasswordResetService(
	userRepo repositories.UserRepositoryInterface,
	tokenRepo repositories.VerificationTokenRepositoryInterface,
	mailer EmailSender,
) *PasswordResetService {
	return &PasswordResetService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		mailer:    mailer,
	}
}

// ResetPasswordInput carries the token exchange request
type ResetPasswordInput struct {
	Email       string `json:"email" validate:"required,email"`
	NewPassword string `json:"new_password" validate:"required"`
	Token       string `json:"token" validate:"required"`
}

// SendResetEmail mails a fresh reset token to the account's address
func (s *PasswordResetService) SendResetEmail(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotExist
		}
		return err
	}

	token := &models.VerificationToken{
		UserID:    user.ID,
		UUID:      uuid.New().String(),
		TokenType: models.VerificationTokenTypePasswordReset,
		ExpiresAt: time.Now().Add(PasswordResetTokenTTL),
	}

	body := fmt.Sprintf("Use this token to reset your password: %s. It expires in %d minutes.",
		token.UUID, int(PasswordResetTokenTTL.Minutes()))
	if err := s.mailer.Send(ctx, user.Email, "Password reset request", body); err != nil {
		log.Printf("⚠️ Failed to email reset token to %s: %v", user.Email, err)
		return err
	}

	return s.tokenRepo.Create(ctx, token)
}

// ValidateResetToken checks a token without consuming it, so clients can
// reject a stale link before asking for a new password.
func (s *PasswordResetService) ValidateResetToken(ctx context.Context, tokenUUID string) error {
	_, err := s.usableToken(ctx, tokenUUID)
	return err
}

// ResetPassword exchanges a valid token for a new password. The token is
// consumed even if it had time left.
func (s *PasswordResetService) ResetPassword(ctx context.Context, input *ResetPasswordInput) error {
	token, err := s.usableToken(ctx, input.Token)
	if err != nil {
		return err
	}

	if !password.Validate(input.NewPassword) {
		return domain.ErrInvalidPassword
	}

	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotExist
		}
		return err
	}
	if user.ID != token.UserID {
		return domain.ErrUnauthorized
	}

	hashed, err := password.Hash(input.NewPassword)
	if err != nil {
		return err
	}
	user.Password = hashed
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	token.Verified = true
	token.ExpiresAt = time.Now()
	return s.tokenRepo.Update(ctx, token)
}

// usableToken loads a token and rejects wrong types, expired tokens and
// tokens that were already redeemed.
func (s *PasswordResetService) usableToken(ctx context.Context, tokenUUID string) (*models.VerificationToken, error) {
	token, err := s.tokenRepo.GetByUUID(ctx, tokenUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrVerificationTokenNotFound
		}
		return nil, err
	}
	if token.TokenType != models.VerificationTokenTypePasswordReset {
		return nil, domain.ErrInvalidVerificationTokenType
	}
	if token.Verified {
		return nil, domain.ErrVerificationTokenAlreadyVerified
	}
	if time.Now().After(token.ExpiresAt) {
		return nil, domain.ErrVerificationTokenExpired
	}
	return token, nil
}
