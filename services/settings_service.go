package services

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/opp-dev/polla-api/models"
	"github.com/opp-dev/polla-api/repositories"
)

// SettingsView — настройки без админ-секрета, единственная форма, в которой
// настройки покидают сервис.
type SettingsView struct {
	PointsExact   int  `json:"points_exact"`
	PointsOutcome int  `json:"points_outcome"`
	ShowLocalTime bool `json:"show_local_time"`
}

// UpdateSettingsInput — форма настроек админа. Нулевой AdminPassword
// означает "пароль не менять".
type UpdateSettingsInput struct {
	PointsExact   int     `json:"points_exact"`
	PointsOutcome int     `json:"points_outcome"`
	ShowLocalTime bool    `json:"show_local_time"`
	AdminPassword *string `json:"admin_password,omitempty"`
}

type SettingsService interface {
	Get(ctx context.Context) (SettingsView, error)
	Update(ctx context.Context, input UpdateSettingsInput) (SettingsView, error)
}

type settingsService struct {
	settingsRepo repositories.SettingsRepository
}

func NewSettingsService(settingsRepo repositories.SettingsRepository) SettingsService {
	return &settingsService{settingsRepo: settingsRepo}
}

func (s *settingsService) Get(ctx context.Context) (SettingsView, error) {
	settings, err := s.settingsRepo.Load(ctx)
	if err != nil {
		return SettingsView{}, err
	}
	return viewOf(settings), nil
}

// Update валидирует и сохраняет настройки. Новый админ-пароль уходит на
// диск bcrypt-хешем, плоским текстом секрет больше не хранится.
func (s *settingsService) Update(ctx context.Context, input UpdateSettingsInput) (SettingsView, error) {
	if input.PointsExact < 1 || input.PointsOutcome < 0 || input.PointsOutcome > input.PointsExact {
		return SettingsView{}, ErrInvalidPoints
	}

	settings, err := s.settingsRepo.Load(ctx)
	if err != nil {
		return SettingsView{}, err
	}
	settings.PointsExact = input.PointsExact
	settings.PointsOutcome = input.PointsOutcome
	settings.ShowLocalTime = input.ShowLocalTime

	if input.AdminPassword != nil {
		if password := strings.TrimSpace(*input.AdminPassword); password != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
			if err != nil {
				return SettingsView{}, fmt.Errorf("hash admin password: %w", err)
			}
			settings.AdminPassword = string(hash)
		}
	}

	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return SettingsView{}, err
	}
	return viewOf(settings), nil
}

func viewOf(settings models.Settings) SettingsView {
	return SettingsView{
		PointsExact:   settings.PointsExact,
		PointsOutcome: settings.PointsOutcome,
		ShowLocalTime: settings.ShowLocalTime,
	}
}
