package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"loanconv-backoffice/internal/adapters/persistence/models"
	"loanconv-backoffice/internal/adapters/persistence/repositories"
	"loanconv-backoffice/internal/config"
	"loanconv-backoffice/internal/core/domain"
	"loanconv-backoffice/internal/pkg/jwt"
	"loanconv-backoffice/internal/pkg/password"

	"gorm.io/gorm"
)

// AuthService handles authentication business logic
type AuthService struct {
	userRepo  repositories.UserRepositoryInterface
	tokenRepo repositories.InvalidatedTokenRepositoryInterface
	cfg       *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	tokenRepo repositories.InvalidatedTokenRepositoryInterface,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		cfg:       cfg,
	}
}

// LoginInput represents login input
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenInput carries a raw token for refresh, logout and introspection
type TokenInput struct {
	Token string `json:"token" validate:"required"`
}

// TokenResponse represents a successful authentication result
type TokenResponse struct {
	Token         string `json:"token"`
	Authenticated bool   `json:"authenticated"`
}

// IntrospectResponse reports whether a presented token is usable
type IntrospectResponse struct {
	Valid bool `json:"valid"`
}

// buildScope flattens a user's role and permissions into the token scope
// claim, e.g. "ROLE_ADMIN APPROVE_LOAN VIEW_REPORTS".
func buildScope(user *models.User) string {
	var parts []string
	if user.Role != nil {
		parts = append(parts, domain.RolePrefix+user.Role.Name)
		for _, p := range user.Role.Permissions {
			parts = append(parts, p.Name)
		}
	}
	return strings.Join(parts, " ")
}

// Login authenticates a user by email and password and issues a token
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotExist
		}
		return nil, err
	}

	if !password.Verify(input.Password, user.Password) {
		return nil, domain.ErrUnauthenticated
	}

	if !user.IsActive() {
		return nil, domain.ErrUserAccountInactive
	}

	token, err := jwt.Generate(user.Email, buildScope(user), s.cfg.JWT.SignerKey, s.cfg.JWT.AccessTokenSeconds)
	if err != nil {
		return nil, err
	}

	return &TokenResponse{Token: token, Authenticated: true}, nil
}

// Refresh exchanges a token that is still inside its refresh window for a
// fresh one. The presented token is revoked, so each token refreshes at
// most once.
func (s *AuthService) Refresh(ctx context.Context, rawToken string) (*TokenResponse, error) {
	claims, err := s.verifyToken(ctx, rawToken, true)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}

	// Revoke the presented token under its original expiry so the purge
	// job can drop the record once the token is dead anyway.
	invalidated := &models.InvalidatedToken{
		ID:             claims.ID,
		ExpirationTime: claims.ExpiresAt.Time,
	}
	if err := s.tokenRepo.Save(ctx, invalidated); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, claims.Subject)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}

	token, err := jwt.Generate(user.Email, buildScope(user), s.cfg.JWT.SignerKey, s.cfg.JWT.AccessTokenSeconds)
	if err != nil {
		return nil, err
	}

	return &TokenResponse{Token: token, Authenticated: true}, nil
}

// Logout revokes the presented token. Tokens that are already expired or
// malformed are ignored so logout never fails for the client.
func (s *AuthService) Logout(ctx context.Context, rawToken string) error {
	claims, err := s.verifyToken(ctx, rawToken, true)
	if err != nil {
		log.Printf("⚠️ Logout with unusable token ignored: %v", err)
		return nil
	}

	invalidated := &models.InvalidatedToken{
		ID:             claims.ID,
		ExpirationTime: claims.ExpiresAt.Time,
	}
	return s.tokenRepo.Save(ctx, invalidated)
}

// Introspect reports whether a token is currently usable for requests
func (s *AuthService) Introspect(ctx context.Context, rawToken string) (*IntrospectResponse, error) {
	_, err := s.verifyToken(ctx, rawToken, false)
	return &IntrospectResponse{Valid: err == nil}, nil
}

// Authenticate validates a bearer token and returns the caller's identity.
// Used by the authentication middleware on every protected request.
func (s *AuthService) Authenticate(ctx context.Context, rawToken string) (*domain.Principal, error) {
	claims, err := s.verifyToken(ctx, rawToken, false)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}
	principal := domain.PrincipalFromScope(claims.Subject, claims.Scope, claims.ID)
	return principal, nil
}

// verifyToken checks signature, expiry (optionally against the refresh
// window) and the revocation list.
func (s *AuthService) verifyToken(ctx context.Context, rawToken string, refreshWindow bool) (*jwt.Claims, error) {
	claims, err := jwt.Verify(rawToken, s.cfg.JWT.SignerKey, refreshWindow, s.cfg.JWT.RefreshSeconds)
	if err != nil {
		return nil, err
	}

	revoked, err := s.tokenRepo.Exists(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, jwt.ErrTokenInvalid
	}
	return claims, nil
}

// PurgeExpiredTokens removes revocation records for tokens that can no
// longer pass verification anyway.
func (s *AuthService) PurgeExpiredTokens(ctx context.Context) (int64, error) {
	cutoff := time.Now().Add(-time.Duration(s.cfg.JWT.RefreshSeconds) * time.Second)
	return s.tokenRepo.DeleteExpired(ctx, cutoff)
}
