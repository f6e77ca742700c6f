package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/opp-dev/polla-api/models"
	"github.com/opp-dev/polla-api/repositories"
)

var requiredFixtureColumns = []string{"match_id", "stage", "kickoff_utc", "home", "away"}

// FixtureView — матч с вычисленным статусом для доски.
type FixtureView struct {
	models.Fixture
	Locked       bool   `json:"locked"`
	KickoffLocal string `json:"kickoff_local,omitempty"`
}

type FixtureService interface {
	List(ctx context.Context, stage string) ([]FixtureView, error)
	ReplaceAllFromCSV(ctx context.Context, r io.Reader) (int, error)
	LoadSample(ctx context.Context) (int, error)
	TemplateCSV() []byte
}

type fixtureService struct {
	fixtureRepo  repositories.FixtureRepository
	settingsRepo repositories.SettingsRepository
}

func NewFixtureService(
	fixtureRepo repositories.FixtureRepository,
	settingsRepo repositories.SettingsRepository,
) FixtureService {
	return &fixtureService{
		fixtureRepo:  fixtureRepo,
		settingsRepo: settingsRepo,
	}
}

// List возвращает матчи, отсортированные по времени начала (затем этап и
// match_id), с флагом закрытия и локальным временем, если включено.
// Непустой stage фильтрует по этапу.
func (s *fixtureService) List(ctx context.Context, stage string) ([]FixtureView, error) {
	fixtures, err := s.fixtureRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := s.settingsRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	sortFixtures(fixtures)
	now := time.Now().UTC()

	views := make([]FixtureView, 0, len(fixtures))
	for _, f := range fixtures {
		if stage != "" && f.Stage != stage {
			continue
		}
		view := FixtureView{Fixture: f, Locked: f.Locked(now)}
		if settings.ShowLocalTime {
			view.KickoffLocal = localKickoff(f.KickoffUTC)
		}
		views = append(views, view)
	}
	return views, nil
}

// ReplaceAllFromCSV валидирует заголовок загруженного CSV и полностью
// заменяет таблицу матчей. Требуемые колонки: match_id, stage, kickoff_utc,
// home, away (лишние игнорируются, порядок свободный). Кривой match_id
// коэрсится в 0, а не роняет загрузку. Возвращает число принятых матчей.
func (s *fixtureService) ReplaceAllFromCSV(ctx context.Context, r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return 0, fmt.Errorf("parse fixtures csv: %w", err)
	}
	if len(records) == 0 {
		return 0, fmt.Errorf("%w: empty file", ErrFixtureColumnsMissing)
	}

	columnIndex := make(map[string]int, len(records[0]))
	for i, col := range records[0] {
		columnIndex[strings.TrimSpace(strings.ToLower(col))] = i
	}
	missing := make([]string, 0)
	for _, col := range requiredFixtureColumns {
		if _, ok := columnIndex[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return 0, fmt.Errorf("%w: %s", ErrFixtureColumnsMissing, strings.Join(missing, ", "))
	}

	fixtures := make([]models.Fixture, 0, len(records)-1)
	for _, row := range records[1:] {
		if len(row) < len(records[0]) {
			continue
		}
		fixtures = append(fixtures, models.Fixture{
			MatchID:    atoiCoerced(row[columnIndex["match_id"]]),
			Stage:      strings.TrimSpace(row[columnIndex["stage"]]),
			KickoffUTC: strings.TrimSpace(row[columnIndex["kickoff_utc"]]),
			Home:       strings.TrimSpace(row[columnIndex["home"]]),
			Away:       strings.TrimSpace(row[columnIndex["away"]]),
		})
	}

	if err := s.fixtureRepo.ReplaceAll(ctx, fixtures); err != nil {
		return 0, err
	}
	return len(fixtures), nil
}

// LoadSample заливает встроенный пример набора матчей.
func (s *fixtureService) LoadSample(ctx context.Context) (int, error) {
	sample := []models.Fixture{
		{MatchID: 1, Stage: "Fase de liga - J1", KickoffUTC: "2025-09-16 19:00", Home: "Real Madrid", Away: "Inter"},
		{MatchID: 2, Stage: "Fase de liga - J1", KickoffUTC: "2025-09-16 19:00", Home: "Man City", Away: "Bayern"},
		{MatchID: 3, Stage: "Fase de liga - J1", KickoffUTC: "2025-09-17 19:00", Home: "Barcelona", Away: "PSG"},
		{MatchID: 4, Stage: "Fase de liga - J1", KickoffUTC: "2025-09-17 19:00", Home: "Arsenal", Away: "Juventus"},
		{MatchID: 100, Stage: "Octavos de final", KickoffUTC: "2026-02-17 20:00", Home: "Real Madrid", Away: "Juventus"},
	}
	if err := s.fixtureRepo.ReplaceAll(ctx, sample); err != nil {
		return 0, err
	}
	return len(sample), nil
}

// TemplateCSV возвращает пустой шаблон fixtures.csv с каноническим
// заголовком.
func (s *fixtureService) TemplateCSV() []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(requiredFixtureColumns)
	w.Flush()
	return buf.Bytes()
}

func atoiCoerced(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
