package models

// RankingEntry — строка таблицы позиций. Производная величина,
// пересчитывается на каждое чтение и никогда не сохраняется.
type RankingEntry struct {
	Name   string `json:"name"`
	Points int    `json:"points"`
}

// ScoreDetail — поматчевая атрибуция очков для аудита и отображения.
// Home/Away заполняются из fixtures при обогащении.
type ScoreDetail struct {
	Name      string `json:"name"`
	MatchID   int    `json:"match_id"`
	Home      string `json:"home,omitempty"`
	Away      string `json:"away,omitempty"`
	HomePred  int    `json:"home_pred"`
	AwayPred  int    `json:"away_pred"`
	HomeGoals int    `json:"home_goals"`
	AwayGoals int    `json:"away_goals"`
	Points    int    `json:"points"`
}
