package services

import "errors"

// Общие ошибки сервисного слоя, мапятся на HTTP-статусы в handlers.
var (
	// Валидация и бизнес-правила
	ErrNameRequired          = errors.New("participant name is required")
	ErrNoFixtures            = errors.New("no fixtures loaded")
	ErrNegativeGoals         = errors.New("goals must be non-negative")
	ErrFixtureColumnsMissing = errors.New("fixtures csv is missing required columns")
	ErrNoResultRows          = errors.New("no result rows submitted")
	ErrUnknownMatch          = errors.New("result references unknown match")
	ErrInvalidPoints         = errors.New("points_exact must be positive and not less than points_outcome")

	// Аутентификация
	ErrInvalidAdminPassword = errors.New("invalid admin password")
)
