package models

// Result — официальный результат матча. Создаётся и перезаписывается
// только админом.
type Result struct {
	MatchID   int `json:"match_id"`
	HomeGoals int `json:"home_goals"`
	AwayGoals int `json:"away_goals"`
}

// Outcome — трёхзначный исход матча.
type Outcome string

const (
	OutcomeHome Outcome = "H"
	OutcomeAway Outcome = "A"
	OutcomeDraw Outcome = "D"
)

// OutcomeOf классифицирует счёт строгим сравнением голов.
func OutcomeOf(home, away int) Outcome {
	switch {
	case home > away:
		return OutcomeHome
	case home < away:
		return OutcomeAway
	default:
		return OutcomeDraw
	}
}
