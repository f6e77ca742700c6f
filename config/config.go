package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	ServerPort    int
	DataDir       string
	JWTSecretKey  string
	AdminPassword string // необязательный override хранимого секрета
	LockTimeout   time.Duration
}

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	// Загружаем .env файл, если он есть. Ошибку не считаем фатальной.
	_ = godotenv.Load()

	jwtKey := os.Getenv("JWT_SECRET_KEY")
	if jwtKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}

	portStr := os.Getenv("SERVER_PORT")
	if portStr == "" {
		portStr = "8080" // Порт по умолчанию
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}

	lockTimeout := 5 * time.Second
	if lockStr := os.Getenv("LOCK_TIMEOUT_SECONDS"); lockStr != "" {
		seconds, err := strconv.Atoi(lockStr)
		if err != nil || seconds <= 0 {
			return nil, fmt.Errorf("LOCK_TIMEOUT_SECONDS must be a positive integer, got %q", lockStr)
		}
		lockTimeout = time.Duration(seconds) * time.Second
	}

	cfg := &Config{
		ServerPort:    port,
		DataDir:       dataDir,
		JWTSecretKey:  jwtKey,
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		LockTimeout:   lockTimeout,
	}

	return cfg, nil
}
