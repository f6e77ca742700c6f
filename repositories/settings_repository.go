package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/opp-dev/polla-api/models"
)

type SettingsRepository interface {
	Load(ctx context.Context) (models.Settings, error)
	Save(ctx context.Context, settings models.Settings) error
}

type fileSettingsRepository struct {
	path        string
	lockTimeout time.Duration
}

func NewFileSettingsRepository(dir string, lockTimeout time.Duration) SettingsRepository {
	if lockTimeout <= 0 {
		lockTimeout = DefaultLockTimeout
	}
	return &fileSettingsRepository{
		path:        filepath.Join(dir, "config.json"),
		lockTimeout: lockTimeout,
	}
}

// settingsFile — промежуточная JSON-форма: указатели отличают отсутствующий
// ключ от нулевого значения, чтобы бэкфилить дефолты по полям, а не
// доверять произвольной карте из файла.
type settingsFile struct {
	PointsExact   *int    `json:"points_exact"`
	PointsOutcome *int    `json:"points_outcome"`
	AdminPassword *string `json:"admin_password"`
	ShowLocalTime *bool   `json:"show_local_time"`
}

func (f settingsFile) merge(defaults models.Settings) models.Settings {
	merged := defaults
	if f.PointsExact != nil {
		merged.PointsExact = *f.PointsExact
	}
	if f.PointsOutcome != nil {
		merged.PointsOutcome = *f.PointsOutcome
	}
	if f.AdminPassword != nil {
		merged.AdminPassword = *f.AdminPassword
	}
	if f.ShowLocalTime != nil {
		merged.ShowLocalTime = *f.ShowLocalTime
	}
	return merged
}

// Load читает config.json, накладывая значения поверх DefaultSettings.
// Отсутствующий файл создаётся с дефолтами, нечитаемый — трактуется как
// пустой (работаем на дефолтах, чтение не падает).
func (r *fileSettingsRepository) Load(ctx context.Context) (models.Settings, error) {
	defaults := models.DefaultSettings()

	data, err := os.ReadFile(r.path)
	if err != nil {
		if !os.IsNotExist(err) {
			return defaults, fmt.Errorf("read settings: %w", err)
		}
		if err := r.Save(ctx, defaults); err != nil {
			return defaults, err
		}
		return defaults, nil
	}

	var file settingsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return defaults, nil
	}
	return file.merge(defaults), nil
}

// Save пишет настройки под тем же замком и с той же атомарной подменой,
// что и CSV-таблицы.
func (r *fileSettingsRepository) Save(ctx context.Context, settings models.Settings) error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	unlock, err := acquireLock(ctx, r.path, r.lockTimeout)
	if err != nil {
		return err
	}
	defer unlock()

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	return writeFileAtomic(r.path, func(f *os.File) error {
		_, err := f.Write(data)
		return err
	})
}
