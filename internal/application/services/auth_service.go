package services

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/parafia-jawornik/parafia-go/internal/infrastructure/observability/logging"
	"github.com/parafia-jawornik/parafia-go/internal/infrastructure/persistence/settings"
	"github.com/parafia-jawornik/parafia-go/internal/infrastructure/security"
)

// ErrInvalidPassword is returned when the admin password does not match
var ErrInvalidPassword = errors.New("invalid password")

const adminPasswordKey = "admin_password_hash"

// AuthService implements the single-admin password login. The password hash
// lives in the settings store; a successful login yields a signed JWT the
// middleware validates on admin routes.
type AuthService struct {
	settings  *settings.Repository
	jwtSecret string
	tokenTTL  time.Duration
	logger    *logging.ChanneledLogger
}

// NewAuthService creates an auth service
func NewAuthService(settingsRepo *settings.Repository, jwtSecret string, tokenTTL time.Duration, logger *logging.ChanneledLogger) *AuthService {
	return &AuthService{
		settings:  settingsRepo,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

// Login verifies the admin password and returns a session token. When no
// password hash exists yet, the first login sets it.
func (s *AuthService) Login(password string) (string, error) {
	hash, ok, err := s.settings.Get(adminPasswordKey)
	if err != nil {
		return "", fmt.Errorf("failed to load admin password: %w", err)
	}

	if !ok {
		generated, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return "", fmt.Errorf("failed to hash password: %w", err)
		}
		if err := s.settings.Set(adminPasswordKey, string(generated)); err != nil {
			return "", fmt.Errorf("failed to store admin password: %w", err)
		}
		hash = string(generated)
		s.logger.Auth().Info("Admin password initialized on first login")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		s.logger.Auth().Warn("Admin login rejected")
		return "", ErrInvalidPassword
	}

	token, err := security.GenerateAdminToken(s.jwtSecret, s.tokenTTL)
	if err != nil {
		return "", fmt.Errorf("failed to sign admin token: %w", err)
	}

	s.logger.Auth().Info("Admin login succeeded")
	return token, nil
}

// ValidateToken reports whether the token is a currently valid admin token
func (s *AuthService) ValidateToken(token string) bool {
	claims, err := security.ValidateJWT(token, s.jwtSecret)
	if err != nil {
		return false
	}
	return claims["type"] == "admin_auth"
}

// ChangePassword replaces the stored admin password hash
func (s *AuthService) ChangePassword(newPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.settings.Set(adminPasswordKey, string(hash)); err != nil {
		return fmt.Errorf("failed to store admin password: %w", err)
	}
	s.logger.Auth().Info("Admin password changed")
	return nil
}
