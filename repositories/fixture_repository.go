package repositories

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/opp-dev/polla-api/models"
)

var fixtureHeader = []string{"match_id", "stage", "kickoff_utc", "home", "away"}

type FixtureRepository interface {
	Load(ctx context.Context) ([]models.Fixture, error)
	ReplaceAll(ctx context.Context, fixtures []models.Fixture) error
}

type fileFixtureRepository struct {
	table *fileTable
}

func NewFileFixtureRepository(dir string, lockTimeout time.Duration) FixtureRepository {
	return &fileFixtureRepository{
		table: newFileTable(dir, "fixtures.csv", fixtureHeader, lockTimeout),
	}
}

func (r *fileFixtureRepository) Load(ctx context.Context) ([]models.Fixture, error) {
	rows, err := r.table.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load fixtures: %w", err)
	}
	fixtures := make([]models.Fixture, 0, len(rows))
	for _, row := range rows {
		fixtures = append(fixtures, models.Fixture{
			MatchID:    atoiOrZero(row[0]),
			Stage:      row[1],
			KickoffUTC: row[2],
			Home:       row[3],
			Away:       row[4],
		})
	}
	return fixtures, nil
}

func (r *fileFixtureRepository) ReplaceAll(ctx context.Context, fixtures []models.Fixture) error {
	rows := make([][]string, 0, len(fixtures))
	for _, f := range fixtures {
		rows = append(rows, []string{
			strconv.Itoa(f.MatchID),
			f.Stage,
			f.KickoffUTC,
			f.Home,
			f.Away,
		})
	}
	if err := r.table.save(ctx, rows); err != nil {
		return fmt.Errorf("save fixtures: %w", err)
	}
	return nil
}
