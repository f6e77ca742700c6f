package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/opp-dev/polla-api/models"
	"github.com/opp-dev/polla-api/repositories"
)

type ScoringService interface {
	GetRanking(ctx context.Context) ([]models.RankingEntry, error)
	GetDetail(ctx context.Context) ([]models.ScoreDetail, error)
}

type scoringService struct {
	fixtureRepo  repositories.FixtureRepository
	pickRepo     repositories.PickRepository
	resultRepo   repositories.ResultRepository
	settingsRepo repositories.SettingsRepository
}

func NewScoringService(
	fixtureRepo repositories.FixtureRepository,
	pickRepo repositories.PickRepository,
	resultRepo repositories.ResultRepository,
	settingsRepo repositories.SettingsRepository,
) ScoringService {
	return &scoringService{
		fixtureRepo:  fixtureRepo,
		pickRepo:     pickRepo,
		resultRepo:   resultRepo,
		settingsRepo: settingsRepo,
	}
}

func (s *scoringService) GetRanking(ctx context.Context) ([]models.RankingEntry, error) {
	fixtures, picks, results, settings, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	ranking, _ := ComputeScores(fixtures, picks, results, settings.PointsExact, settings.PointsOutcome)
	return ranking, nil
}

func (s *scoringService) GetDetail(ctx context.Context) ([]models.ScoreDetail, error) {
	fixtures, picks, results, settings, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	_, detail := ComputeScores(fixtures, picks, results, settings.PointsExact, settings.PointsOutcome)
	return detail, nil
}

// loadAll читает четыре независимых хранилища параллельно. Таблицы не
// связаны транзакцией: ranking, посчитанный во время чужой записи, может
// смешать старую и новую таблицы — это принятое поведение, refresh лечит.
func (s *scoringService) loadAll(ctx context.Context) ([]models.Fixture, []models.Pick, []models.Result, models.Settings, error) {
	var (
		fixtures []models.Fixture
		picks    []models.Pick
		results  []models.Result
		settings models.Settings
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		fixtures, err = s.fixtureRepo.Load(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		picks, err = s.pickRepo.Load(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		results, err = s.resultRepo.Load(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		settings, err = s.settingsRepo.Load(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, nil, models.Settings{}, fmt.Errorf("load tables for scoring: %w", err)
	}
	return fixtures, picks, results, settings, nil
}

// ComputeScores джойнит прогнозы с официальными результатами по match_id и
// считает очки. Точный счёт даёт pointsExact, совпадение только исхода —
// pointsOutcome; категории не суммируются, строка получает старшую из двух.
// Прогнозы на матчи вне текущего набора fixtures или без результата не
// приносят очков никому. Пустые picks или results дают пустые выходы.
func ComputeScores(
	fixtures []models.Fixture,
	picks []models.Pick,
	results []models.Result,
	pointsExact, pointsOutcome int,
) ([]models.RankingEntry, []models.ScoreDetail) {
	ranking := make([]models.RankingEntry, 0)
	detail := make([]models.ScoreDetail, 0)
	if len(picks) == 0 || len(results) == 0 {
		return ranking, detail
	}

	fixtureByID := make(map[int]models.Fixture, len(fixtures))
	for _, f := range fixtures {
		fixtureByID[f.MatchID] = f
	}
	resultByID := make(map[int]models.Result, len(results))
	for _, r := range results {
		resultByID[r.MatchID] = r
	}

	// Агрегация по каноническому ключу имени; для отображения сохраняем
	// регистр первой встреченной записи.
	type participantTotal struct {
		display string
		points  int
	}
	totals := make(map[string]*participantTotal)

	for _, p := range picks {
		fixture, inBoard := fixtureByID[p.MatchID]
		if !inBoard {
			continue
		}
		result, resolved := resultByID[p.MatchID]
		if !resolved {
			continue
		}

		points := 0
		switch {
		case p.HomePred == result.HomeGoals && p.AwayPred == result.AwayGoals:
			points = pointsExact
		case models.OutcomeOf(p.HomePred, p.AwayPred) == models.OutcomeOf(result.HomeGoals, result.AwayGoals):
			points = pointsOutcome
		}

		display := strings.TrimSpace(p.Name)
		key := models.CanonicalName(p.Name)
		total, ok := totals[key]
		if !ok {
			total = &participantTotal{display: display}
			totals[key] = total
		}
		total.points += points

		detail = append(detail, models.ScoreDetail{
			Name:      display,
			MatchID:   p.MatchID,
			Home:      fixture.Home,
			Away:      fixture.Away,
			HomePred:  p.HomePred,
			AwayPred:  p.AwayPred,
			HomeGoals: result.HomeGoals,
			AwayGoals: result.AwayGoals,
			Points:    points,
		})
	}

	for _, total := range totals {
		ranking = append(ranking, models.RankingEntry{Name: total.display, Points: total.points})
	}
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Points != ranking[j].Points {
			return ranking[i].Points > ranking[j].Points
		}
		return ranking[i].Name < ranking[j].Name
	})
	sort.Slice(detail, func(i, j int) bool {
		if detail[i].Name != detail[j].Name {
			return detail[i].Name < detail[j].Name
		}
		return detail[i].MatchID < detail[j].MatchID
	})
	return ranking, detail
}
