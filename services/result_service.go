package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/opp-dev/polla-api/models"
	"github.com/opp-dev/polla-api/repositories"
)

// ResultInput — официальный счёт одного матча от админа.
type ResultInput struct {
	MatchID   int `json:"match_id"`
	HomeGoals int `json:"home_goals"`
	AwayGoals int `json:"away_goals"`
}

type ResultService interface {
	List(ctx context.Context) ([]models.Result, error)
	ReplaceForMatches(ctx context.Context, rows []ResultInput) ([]models.Result, error)
}

type resultService struct {
	fixtureRepo repositories.FixtureRepository
	resultRepo  repositories.ResultRepository
}

func NewResultService(
	fixtureRepo repositories.FixtureRepository,
	resultRepo repositories.ResultRepository,
) ResultService {
	return &resultService{
		fixtureRepo: fixtureRepo,
		resultRepo:  resultRepo,
	}
}

func (s *resultService) List(ctx context.Context) ([]models.Result, error) {
	return s.resultRepo.Load(ctx)
}

// ReplaceForMatches заменяет результаты для присланных match_id, не трогая
// остальные: строки таблицы с match_id из пачки выбрасываются, пачка
// дописывается, таблица сохраняется одной записью. Каждый match_id обязан
// существовать в fixtures, счёт неотрицательный.
func (s *resultService) ReplaceForMatches(ctx context.Context, rows []ResultInput) ([]models.Result, error) {
	if len(rows) == 0 {
		return nil, ErrNoResultRows
	}

	fixtures, err := s.fixtureRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load fixtures: %w", err)
	}
	known := make(map[int]struct{}, len(fixtures))
	for _, f := range fixtures {
		known[f.MatchID] = struct{}{}
	}

	incoming := make([]models.Result, 0, len(rows))
	replaced := make(map[int]struct{}, len(rows))
	for _, row := range rows {
		if row.HomeGoals < 0 || row.AwayGoals < 0 {
			return nil, ErrNegativeGoals
		}
		if _, ok := known[row.MatchID]; !ok {
			return nil, fmt.Errorf("%w: match_id %d", ErrUnknownMatch, row.MatchID)
		}
		if _, dup := replaced[row.MatchID]; dup {
			continue
		}
		replaced[row.MatchID] = struct{}{}
		incoming = append(incoming, models.Result{
			MatchID:   row.MatchID,
			HomeGoals: row.HomeGoals,
			AwayGoals: row.AwayGoals,
		})
	}

	current, err := s.resultRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load results: %w", err)
	}
	merged := make([]models.Result, 0, len(current)+len(incoming))
	for _, r := range current {
		if _, ok := replaced[r.MatchID]; ok {
			continue
		}
		merged = append(merged, r)
	}
	merged = append(merged, incoming...)
	sort.Slice(merged, func(i, j int) bool { return merged[i].MatchID < merged[j].MatchID })

	if err := s.resultRepo.ReplaceAll(ctx, merged); err != nil {
		return nil, fmt.Errorf("save results: %w", err)
	}
	return merged, nil
}
