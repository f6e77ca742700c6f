package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/opp-dev/polla-api/models"
	"github.com/opp-dev/polla-api/repositories"
)

// PickInput — прогноз на один матч из текущего набора fixtures.
type PickInput struct {
	MatchID  int `json:"match_id"`
	HomePred int `json:"home_pred"`
	AwayPred int `json:"away_pred"`
}

// MyPick — прогноз участника, обогащённый данными матча для отображения.
type MyPick struct {
	models.Pick
	Stage        string `json:"stage,omitempty"`
	KickoffUTC   string `json:"kickoff_utc,omitempty"`
	KickoffLocal string `json:"kickoff_local,omitempty"`
	Home         string `json:"home,omitempty"`
	Away         string `json:"away,omitempty"`
}

type PickService interface {
	SubmitPicks(ctx context.Context, name string, rows []PickInput) ([]models.Pick, error)
	GetPicksByName(ctx context.Context, name string) ([]MyPick, error)
}

type pickService struct {
	fixtureRepo  repositories.FixtureRepository
	pickRepo     repositories.PickRepository
	settingsRepo repositories.SettingsRepository
}

func NewPickService(
	fixtureRepo repositories.FixtureRepository,
	pickRepo repositories.PickRepository,
	settingsRepo repositories.SettingsRepository,
) PickService {
	return &pickService{
		fixtureRepo:  fixtureRepo,
		pickRepo:     pickRepo,
		settingsRepo: settingsRepo,
	}
}

// SubmitPicks принимает пачку прогнозов участника и вливает её в таблицу
// как upsert. Закрытые и неизвестные match_id молча пропускаются —
// существующие строки по ним не трогаются. Правило merge: из таблицы
// удаляются строки (каноническое имя, match_id из множества отправляемых
// открытых матчей), затем добавляются свежие строки с новой отметкой
// времени. Прогнозы на другие матчи и чужие прогнозы не меняются.
func (s *pickService) SubmitPicks(ctx context.Context, name string, rows []PickInput) ([]models.Pick, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, ErrNameRequired
	}

	fixtures, err := s.fixtureRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load fixtures: %w", err)
	}
	if len(fixtures) == 0 {
		return nil, ErrNoFixtures
	}
	fixtureByID := make(map[int]models.Fixture, len(fixtures))
	for _, f := range fixtures {
		fixtureByID[f.MatchID] = f
	}

	now := time.Now().UTC()
	fresh := make([]models.Pick, 0, len(rows))
	submitted := make(map[int]struct{}, len(rows))
	for _, row := range rows {
		if row.HomePred < 0 || row.AwayPred < 0 {
			return nil, ErrNegativeGoals
		}
		fixture, known := fixtureByID[row.MatchID]
		if !known || fixture.Locked(now) {
			continue
		}
		if _, dup := submitted[row.MatchID]; dup {
			continue
		}
		submitted[row.MatchID] = struct{}{}
		fresh = append(fresh, models.Pick{
			Name:     trimmed,
			MatchID:  row.MatchID,
			HomePred: row.HomePred,
			AwayPred: row.AwayPred,
			TsUTC:    models.FormatPickTimestamp(now),
		})
	}
	if len(fresh) == 0 {
		return []models.Pick{}, nil
	}

	// Store не умеет частичный апдейт: read-modify-write всей таблицы,
	// сериализацию конкурирующих записей даёт файловый замок внутри save.
	current, err := s.pickRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load picks: %w", err)
	}
	canonical := models.CanonicalName(trimmed)
	merged := make([]models.Pick, 0, len(current)+len(fresh))
	for _, p := range current {
		if models.CanonicalName(p.Name) == canonical {
			if _, replaced := submitted[p.MatchID]; replaced {
				continue
			}
		}
		merged = append(merged, p)
	}
	merged = append(merged, fresh...)

	if err := s.pickRepo.ReplaceAll(ctx, merged); err != nil {
		return nil, fmt.Errorf("save picks: %w", err)
	}
	return fresh, nil
}

// GetPicksByName возвращает прогнозы участника (поиск по каноническому
// имени), обогащённые этапом, командами и временем начала матча.
func (s *pickService) GetPicksByName(ctx context.Context, name string) ([]MyPick, error) {
	canonical := models.CanonicalName(name)
	if canonical == "" {
		return nil, ErrNameRequired
	}

	picks, err := s.pickRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load picks: %w", err)
	}
	fixtures, err := s.fixtureRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load fixtures: %w", err)
	}
	settings, err := s.settingsRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	fixtureByID := make(map[int]models.Fixture, len(fixtures))
	for _, f := range fixtures {
		fixtureByID[f.MatchID] = f
	}

	mine := make([]MyPick, 0)
	for _, p := range picks {
		if models.CanonicalName(p.Name) != canonical {
			continue
		}
		entry := MyPick{Pick: p}
		if fixture, ok := fixtureByID[p.MatchID]; ok {
			entry.Stage = fixture.Stage
			entry.KickoffUTC = fixture.KickoffUTC
			entry.Home = fixture.Home
			entry.Away = fixture.Away
			if settings.ShowLocalTime {
				entry.KickoffLocal = localKickoff(fixture.KickoffUTC)
			}
		}
		mine = append(mine, entry)
	}

	sort.Slice(mine, func(i, j int) bool {
		if mine[i].Stage != mine[j].Stage {
			return mine[i].Stage < mine[j].Stage
		}
		return mine[i].MatchID < mine[j].MatchID
	})
	return mine, nil
}
