package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opp-dev/polla-api/models"
	"github.com/opp-dev/polla-api/repositories"
)

var scoringFixtures = []models.Fixture{
	{MatchID: 1, Stage: "Fase de liga - J1", KickoffUTC: "2025-09-16 19:00", Home: "Real Madrid", Away: "Inter"},
	{MatchID: 2, Stage: "Fase de liga - J1", KickoffUTC: "2025-09-17 19:00", Home: "Barcelona", Away: "PSG"},
	{MatchID: 3, Stage: "Fase de liga - J1", KickoffUTC: "2025-09-18 19:00", Home: "Arsenal", Away: "Juventus"},
}

func TestComputeScoresPointsPerPick(t *testing.T) {
	results := []models.Result{{MatchID: 1, HomeGoals: 2, AwayGoals: 1}}

	tests := []struct {
		name string
		pick models.Pick
		want int
	}{
		{"exact score", models.Pick{Name: "Ana", MatchID: 1, HomePred: 2, AwayPred: 1}, 3},
		{"same outcome only", models.Pick{Name: "Ana", MatchID: 1, HomePred: 3, AwayPred: 0}, 1},
		{"wrong outcome", models.Pick{Name: "Ana", MatchID: 1, HomePred: 0, AwayPred: 2}, 0},
		{"predicted draw against home win", models.Pick{Name: "Ana", MatchID: 1, HomePred: 1, AwayPred: 1}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ranking, detail := ComputeScores(scoringFixtures, []models.Pick{tt.pick}, results, 3, 1)
			require.Len(t, ranking, 1)
			assert.Equal(t, tt.want, ranking[0].Points)
			require.Len(t, detail, 1)
			assert.Equal(t, tt.want, detail[0].Points)
		})
	}
}

func TestComputeScoresExactNeverStacksWithOutcome(t *testing.T) {
	// Точный счёт даёт только pointsExact, без добавки за исход.
	results := []models.Result{{MatchID: 1, HomeGoals: 2, AwayGoals: 1}}
	picks := []models.Pick{{Name: "Ana", MatchID: 1, HomePred: 2, AwayPred: 1}}

	ranking, _ := ComputeScores(scoringFixtures, picks, results, 3, 1)
	require.Len(t, ranking, 1)
	assert.Equal(t, 3, ranking[0].Points)
}

func TestComputeScoresSkipsUnresolvedMatches(t *testing.T) {
	results := []models.Result{{MatchID: 1, HomeGoals: 1, AwayGoals: 0}}
	picks := []models.Pick{
		{Name: "Ana", MatchID: 1, HomePred: 1, AwayPred: 0},
		{Name: "Ana", MatchID: 2, HomePred: 2, AwayPred: 2}, // результата ещё нет
	}

	ranking, detail := ComputeScores(scoringFixtures, picks, results, 3, 1)
	require.Len(t, ranking, 1)
	assert.Equal(t, 3, ranking[0].Points)
	assert.Len(t, detail, 1)
}

func TestComputeScoresIgnoresPicksOutsideFixtureSet(t *testing.T) {
	// Матч 99 когда-то был на доске, но текущий набор его не содержит:
	// прогноз и результат по нему очков не приносят.
	results := []models.Result{
		{MatchID: 1, HomeGoals: 1, AwayGoals: 0},
		{MatchID: 99, HomeGoals: 4, AwayGoals: 4},
	}
	picks := []models.Pick{
		{Name: "Ana", MatchID: 1, HomePred: 1, AwayPred: 0},
		{Name: "Ana", MatchID: 99, HomePred: 4, AwayPred: 4},
	}

	ranking, detail := ComputeScores(scoringFixtures, picks, results, 3, 1)
	require.Len(t, ranking, 1)
	assert.Equal(t, 3, ranking[0].Points)
	assert.Len(t, detail, 1)
}

func TestComputeScoresAggregatesCaseInsensitively(t *testing.T) {
	results := []models.Result{
		{MatchID: 1, HomeGoals: 2, AwayGoals: 1},
		{MatchID: 2, HomeGoals: 0, AwayGoals: 0},
	}
	picks := []models.Pick{
		{Name: "Maria", MatchID: 1, HomePred: 2, AwayPred: 1},
		{Name: "  MARIA ", MatchID: 2, HomePred: 0, AwayPred: 0},
	}

	ranking, _ := ComputeScores(scoringFixtures, picks, results, 3, 1)
	require.Len(t, ranking, 1)
	assert.Equal(t, "Maria", ranking[0].Name)
	assert.Equal(t, 6, ranking[0].Points)
}

func TestComputeScoresRankingOrder(t *testing.T) {
	results := []models.Result{{MatchID: 1, HomeGoals: 2, AwayGoals: 1}}
	picks := []models.Pick{
		{Name: "Carlos", MatchID: 1, HomePred: 2, AwayPred: 1}, // 3 очка
		{Name: "Beto", MatchID: 1, HomePred: 1, AwayPred: 0},   // 1 очко
		{Name: "Ana", MatchID: 1, HomePred: 3, AwayPred: 0},    // 1 очко
	}

	ranking, _ := ComputeScores(scoringFixtures, picks, results, 3, 1)
	require.Len(t, ranking, 3)
	assert.Equal(t, "Carlos", ranking[0].Name)
	// При равных очках — по имени по возрастанию.
	assert.Equal(t, "Ana", ranking[1].Name)
	assert.Equal(t, "Beto", ranking[2].Name)
}

func TestComputeScoresEmptyInputs(t *testing.T) {
	ranking, detail := ComputeScores(scoringFixtures, nil, []models.Result{{MatchID: 1}}, 3, 1)
	assert.Empty(t, ranking)
	assert.Empty(t, detail)

	ranking, detail = ComputeScores(scoringFixtures, []models.Pick{{Name: "Ana", MatchID: 1}}, nil, 3, 1)
	assert.Empty(t, ranking)
	assert.Empty(t, detail)
}

func TestScoringServiceUsesConfiguredPoints(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	fixtureRepo := repositories.NewFileFixtureRepository(dir, 0)
	pickRepo := repositories.NewFilePickRepository(dir, 0)
	resultRepo := repositories.NewFileResultRepository(dir, 0)
	settingsRepo := repositories.NewFileSettingsRepository(dir, 0)

	require.NoError(t, fixtureRepo.ReplaceAll(ctx, scoringFixtures))
	require.NoError(t, pickRepo.ReplaceAll(ctx, []models.Pick{
		{Name: "Ana", MatchID: 1, HomePred: 2, AwayPred: 1, TsUTC: "2025-09-10 12:00:00"},
		{Name: "Beto", MatchID: 1, HomePred: 1, AwayPred: 0, TsUTC: "2025-09-10 12:00:00"},
	}))
	require.NoError(t, resultRepo.ReplaceAll(ctx, []models.Result{{MatchID: 1, HomeGoals: 2, AwayGoals: 1}}))

	settings := models.DefaultSettings()
	settings.PointsExact = 5
	settings.PointsOutcome = 2
	require.NoError(t, settingsRepo.Save(ctx, settings))

	svc := NewScoringService(fixtureRepo, pickRepo, resultRepo, settingsRepo)
	ranking, err := svc.GetRanking(ctx)
	require.NoError(t, err)
	require.Len(t, ranking, 2)
	assert.Equal(t, models.RankingEntry{Name: "Ana", Points: 5}, ranking[0])
	assert.Equal(t, models.RankingEntry{Name: "Beto", Points: 2}, ranking[1])

	detail, err := svc.GetDetail(ctx)
	require.NoError(t, err)
	require.Len(t, detail, 2)
	assert.Equal(t, "Real Madrid", detail[0].Home)
	assert.Equal(t, "Inter", detail[0].Away)
}
