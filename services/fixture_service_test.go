package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opp-dev/polla-api/models"
	"github.com/opp-dev/polla-api/repositories"
)

func newFixtureServiceForTest(t *testing.T) (FixtureService, repositories.FixtureRepository) {
	t.Helper()
	dir := t.TempDir()
	fixtureRepo := repositories.NewFileFixtureRepository(dir, 0)
	settingsRepo := repositories.NewFileSettingsRepository(dir, 0)
	return NewFixtureService(fixtureRepo, settingsRepo), fixtureRepo
}

func TestReplaceAllFromCSV(t *testing.T) {
	svc, fixtureRepo := newFixtureServiceForTest(t)
	ctx := context.Background()

	csvData := strings.Join([]string{
		"Match_ID, Stage ,kickoff_utc,home,away,extra",
		"1,Fase de liga - J1,2025-09-16 19:00,Real Madrid,Inter,ignored",
		"2,Fase de liga - J1,2025-09-17 19:00,Barcelona,PSG,ignored",
	}, "\n")

	n, err := svc.ReplaceAllFromCSV(ctx, strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	stored, err := fixtureRepo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, models.Fixture{
		MatchID: 1, Stage: "Fase de liga - J1", KickoffUTC: "2025-09-16 19:00",
		Home: "Real Madrid", Away: "Inter",
	}, stored[0])
}

func TestReplaceAllFromCSVMissingColumns(t *testing.T) {
	svc, _ := newFixtureServiceForTest(t)

	_, err := svc.ReplaceAllFromCSV(context.Background(), strings.NewReader("match_id,home,away\n1,A,B\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFixtureColumnsMissing)
	assert.Contains(t, err.Error(), "stage")
	assert.Contains(t, err.Error(), "kickoff_utc")
}

func TestReplaceAllFromCSVCoercesBadMatchID(t *testing.T) {
	svc, fixtureRepo := newFixtureServiceForTest(t)
	ctx := context.Background()

	csvData := "match_id,stage,kickoff_utc,home,away\nabc,Final,nan,A,B\n"
	n, err := svc.ReplaceAllFromCSV(ctx, strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	stored, err := fixtureRepo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, 0, stored[0].MatchID)
}

func TestReplaceAllFromCSVIsFullReplacement(t *testing.T) {
	svc, fixtureRepo := newFixtureServiceForTest(t)
	ctx := context.Background()

	require.NoError(t, fixtureRepo.ReplaceAll(ctx, []models.Fixture{{MatchID: 42, Stage: "Old"}}))

	csvData := "match_id,stage,kickoff_utc,home,away\n1,New,2100-01-01 12:00,A,B\n"
	_, err := svc.ReplaceAllFromCSV(ctx, strings.NewReader(csvData))
	require.NoError(t, err)

	stored, err := fixtureRepo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, 1, stored[0].MatchID)
}

func TestLoadSample(t *testing.T) {
	svc, fixtureRepo := newFixtureServiceForTest(t)
	ctx := context.Background()

	n, err := svc.LoadSample(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	stored, err := fixtureRepo.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 5)
}

func TestTemplateCSV(t *testing.T) {
	svc, _ := newFixtureServiceForTest(t)
	assert.Equal(t, "match_id,stage,kickoff_utc,home,away\n", string(svc.TemplateCSV()))
}

func TestListSortsFiltersAndFlagsLocked(t *testing.T) {
	svc, fixtureRepo := newFixtureServiceForTest(t)
	ctx := context.Background()

	require.NoError(t, fixtureRepo.ReplaceAll(ctx, []models.Fixture{
		{MatchID: 3, Stage: "Octavos de final", KickoffUTC: "nan", Home: "E", Away: "F"},
		{MatchID: 2, Stage: "Fase de liga - J1", KickoffUTC: "2100-01-01 12:00", Home: "C", Away: "D"},
		{MatchID: 1, Stage: "Fase de liga - J1", KickoffUTC: "2000-01-01 12:00", Home: "A", Away: "B"},
	}))

	views, err := svc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, views, 3)

	// По времени начала, нераспарсенные в конце.
	assert.Equal(t, 1, views[0].MatchID)
	assert.True(t, views[0].Locked)
	assert.Equal(t, 2, views[1].MatchID)
	assert.False(t, views[1].Locked)
	assert.Equal(t, 3, views[2].MatchID)
	assert.False(t, views[2].Locked)

	filtered, err := svc.List(ctx, "Octavos de final")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, 3, filtered[0].MatchID)
}
