package repositories

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/opp-dev/polla-api/models"
)

var pickHeader = []string{"name", "match_id", "home_pred", "away_pred", "ts_utc"}

// PickRepository хранит прогнозы на гранулярности целой таблицы: частичных
// построчных апдейтов нет, merge выполняет сервисный слой перед ReplaceAll.
type PickRepository interface {
	Load(ctx context.Context) ([]models.Pick, error)
	ReplaceAll(ctx context.Context, picks []models.Pick) error
}

type filePickRepository struct {
	table *fileTable
}

func NewFilePickRepository(dir string, lockTimeout time.Duration) PickRepository {
	return &filePickRepository{
		table: newFileTable(dir, "picks.csv", pickHeader, lockTimeout),
	}
}

func (r *filePickRepository) Load(ctx context.Context) ([]models.Pick, error) {
	rows, err := r.table.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load picks: %w", err)
	}
	picks := make([]models.Pick, 0, len(rows))
	for _, row := range rows {
		picks = append(picks, models.Pick{
			Name:     row[0],
			MatchID:  atoiOrZero(row[1]),
			HomePred: atoiOrZero(row[2]),
			AwayPred: atoiOrZero(row[3]),
			TsUTC:    row[4],
		})
	}
	return picks, nil
}

func (r *filePickRepository) ReplaceAll(ctx context.Context, picks []models.Pick) error {
	rows := make([][]string, 0, len(picks))
	for _, p := range picks {
		rows = append(rows, []string{
			p.Name,
			strconv.Itoa(p.MatchID),
			strconv.Itoa(p.HomePred),
			strconv.Itoa(p.AwayPred),
			p.TsUTC,
		})
	}
	if err := r.table.save(ctx, rows); err != nil {
		return fmt.Errorf("save picks: %w", err)
	}
	return nil
}
