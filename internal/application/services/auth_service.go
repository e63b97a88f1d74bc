package services

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/observability/logging"
	"github.com/PixelcraftStudio/pixelcraft-go/internal/infrastructure/security"
	"github.com/PixelcraftStudio/pixelcraft-go/pkg/config"
)

// ErrInvalidCredentials is returned for a wrong or missing admin password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService validates the admin password and issues session tokens.
type AuthService struct {
	logger *logging.ChanneledLogger
}

// NewAuthService creates a new auth service.
func NewAuthService(logger *logging.ChanneledLogger) *AuthService {
	return &AuthService{logger: logger}
}

// Login checks the supplied password against the configured admin password
// and returns a signed JWT on success. The stored value may be a bcrypt
// hash or, for dev setups, a plaintext password.
func (s *AuthService) Login(password string) (string, error) {
	stored := config.AdminPassword
	if stored == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	if strings.HasPrefix(stored, "$2") {
		if err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)); err != nil {
			s.logger.Auth().Warn("Admin login failed")
			return "", ErrInvalidCredentials
		}
	} else if stored != password {
		s.logger.Auth().Warn("Admin login failed")
		return "", ErrInvalidCredentials
	}

	token, err := security.GenerateAdminToken("admin", config.JWTSecret)
	if err != nil {
		return "", err
	}

	s.logger.Auth().Info("Admin login succeeded")
	return token, nil
}

// Validate checks a session token and returns its role claim.
func (s *AuthService) Validate(token string) (string, error) {
	claims, err := security.ValidateJWT(token, config.JWTSecret)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	role, _ := claims["role"].(string)
	if role == "" {
		return "", ErrInvalidCredentials
	}
	return role, nil
}
