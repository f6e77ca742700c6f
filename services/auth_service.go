package services

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/opp-dev/polla-api/repositories"
)

const adminTokenTTL = 24 * time.Hour

type AuthService interface {
	// Login сверяет общий админ-секрет и возвращает подписанный токен
	// админ-сессии. Ролей кроме admin нет, это не пер-пользовательская
	// аутентификация.
	Login(ctx context.Context, password string) (string, error)
}

type authService struct {
	settingsRepo repositories.SettingsRepository
	envPassword  string
	jwtSecret    []byte
}

// NewAuthService: envPassword — необязательный override секрета из
// окружения (двухуровневое разрешение: окружение приоритетнее хранимого).
func NewAuthService(settingsRepo repositories.SettingsRepository, envPassword, jwtSecret string) AuthService {
	return &authService{
		settingsRepo: settingsRepo,
		envPassword:  envPassword,
		jwtSecret:    []byte(jwtSecret),
	}
}

func (s *authService) Login(ctx context.Context, password string) (string, error) {
	if password == "" {
		return "", ErrInvalidAdminPassword
	}

	if s.envPassword != "" {
		if subtle.ConstantTimeCompare([]byte(password), []byte(s.envPassword)) != 1 {
			return "", ErrInvalidAdminPassword
		}
		return s.issueToken()
	}

	settings, err := s.settingsRepo.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("load settings: %w", err)
	}
	stored := settings.AdminPassword
	if isBcryptHash(stored) {
		if bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) != nil {
			return "", ErrInvalidAdminPassword
		}
	} else if subtle.ConstantTimeCompare([]byte(password), []byte(stored)) != 1 {
		// Дефолт первого запуска хранится плоским текстом, после ротации
		// через настройки на диске лежит bcrypt-хеш.
		return "", ErrInvalidAdminPassword
	}
	return s.issueToken()
}

func (s *authService) issueToken() (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"role": "admin",
		"jti":  uuid.NewString(),
		"iat":  now.Unix(),
		"exp":  now.Add(adminTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign admin token: %w", err)
	}
	return signed, nil
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}
