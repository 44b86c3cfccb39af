package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/akumarujon/imf-gadget-api/internal/auth"
	apperrors "github.com/akumarujon/imf-gadget-api/internal/errors"
	"github.com/akumarujon/imf-gadget-api/internal/model"
	"github.com/akumarujon/imf-gadget-api/internal/repository"
)

const bcryptCost = 10

// Identity is the verified caller of a protected operation.
type Identity struct {
	Username string `json:"username"`
}

// AuthService handles authentication operations.
type AuthService interface {
	Register(ctx context.Context, username, password string) (*model.User, error)
	Login(ctx context.Context, username, password string) (token string, err error)
	VerifyToken(ctx context.Context, token string) (*Identity, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		tokenStore: tokenStore,
	}
}

// Register creates a new user with a bcrypt-hashed password.
func (s *authService) Register(ctx context.Context, username, password string) (*model.User, error) {
	// Check if the username is taken
	existing, err := s.userRepo.FindByUsername(ctx, username)
	if err == nil && existing != nil {
		return nil, apperrors.ErrDuplicateUsername
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check username: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		PasswordHash: string(hashedPassword),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and issues a bearer token. Unknown-user and
// wrong-password cases return distinct sentinels for telemetry but map to
// the same external message.
func (s *authService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			log.Printf("login failed: unknown user %q", username)
			return "", apperrors.ErrUnknownUser
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Printf("login failed: bad password for %q", username)
		return "", apperrors.ErrInvalidCredentials
	}

	_, token, err := s.jwtService.GenerateToken(user.Username)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	return token, nil
}

// VerifyToken checks signature, expiry and the revocation list, returning
// the caller's identity.
func (s *authService) VerifyToken(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, apperrors.ErrMissingToken
	}
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	if claims.ID != "" {
		revoked, _ := s.tokenStore.IsTokenRevoked(ctx, claims.ID)
		if revoked {
			return nil, apperrors.ErrInvalidToken
		}
	}

	return &Identity{Username: claims.Username()}, nil
}

// Logout revokes the presented token until its natural expiry.
func (s *authService) Logout(ctx context.Context, token string) error {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return apperrors.ErrInvalidToken
	}

	ttl := auth.TokenExpiry
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if ttl <= 0 {
		return nil
	}

	return s.tokenStore.RevokeToken(ctx, claims.ID, ttl)
}
