package services

import (
	"sort"
	"time"

	"github.com/opp-dev/polla-api/models"
)

// localDisplayZone — зона для отображения локального времени рядом с UTC
// (пул исторически играют в Лиме).
const localDisplayZone = "America/Lima"

// localKickoff форматирует время начала матча в локальной зоне отображения.
// Пустая строка — время не распарсилось или зона недоступна.
func localKickoff(kickoffUTC string) string {
	t, ok := models.ParseKickoffUTC(kickoffUTC)
	if !ok {
		return ""
	}
	loc, err := time.LoadLocation(localDisplayZone)
	if err != nil {
		return ""
	}
	return t.In(loc).Format(models.KickoffLayout)
}

// sortFixtures упорядочивает матчи по времени начала (нераспарсенные в
// конец), затем по этапу и match_id — стабильный порядок досок.
func sortFixtures(fixtures []models.Fixture) {
	sort.SliceStable(fixtures, func(i, j int) bool {
		ti, iOK := fixtures[i].Kickoff()
		tj, jOK := fixtures[j].Kickoff()
		switch {
		case iOK && jOK && !ti.Equal(tj):
			return ti.Before(tj)
		case iOK != jOK:
			return iOK
		}
		if fixtures[i].Stage != fixtures[j].Stage {
			return fixtures[i].Stage < fixtures[j].Stage
		}
		return fixtures[i].MatchID < fixtures[j].MatchID
	})
}
