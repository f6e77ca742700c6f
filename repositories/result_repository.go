package repositories

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/opp-dev/polla-api/models"
)

var resultHeader = []string{"match_id", "home_goals", "away_goals"}

type ResultRepository interface {
	Load(ctx context.Context) ([]models.Result, error)
	ReplaceAll(ctx context.Context, results []models.Result) error
}

type fileResultRepository struct {
	table *fileTable
}

func NewFileResultRepository(dir string, lockTimeout time.Duration) ResultRepository {
	return &fileResultRepository{
		table: newFileTable(dir, "results.csv", resultHeader, lockTimeout),
	}
}

func (r *fileResultRepository) Load(ctx context.Context) ([]models.Result, error) {
	rows, err := r.table.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load results: %w", err)
	}
	results := make([]models.Result, 0, len(rows))
	for _, row := range rows {
		results = append(results, models.Result{
			MatchID:   atoiOrZero(row[0]),
			HomeGoals: atoiOrZero(row[1]),
			AwayGoals: atoiOrZero(row[2]),
		})
	}
	return results, nil
}

func (r *fileResultRepository) ReplaceAll(ctx context.Context, results []models.Result) error {
	rows := make([][]string, 0, len(results))
	for _, res := range results {
		rows = append(rows, []string{
			strconv.Itoa(res.MatchID),
			strconv.Itoa(res.HomeGoals),
			strconv.Itoa(res.AwayGoals),
		})
	}
	if err := r.table.save(ctx, rows); err != nil {
		return fmt.Errorf("save results: %w", err)
	}
	return nil
}
