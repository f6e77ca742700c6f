package models

import (
	"strings"
	"time"
)

// PickTimestampLayout — формат отметки времени отправки прогноза (UTC).
const PickTimestampLayout = "2006-01-02 15:04:05"

// Pick — прогноз участника на один матч.
// Инвариант: не больше одной живой записи на пару (участник, матч);
// повторная отправка для открытого матча заменяет предыдущую, после
// kickoff запись становится неизменяемой.
type Pick struct {
	Name     string `json:"name"`
	MatchID  int    `json:"match_id"`
	HomePred int    `json:"home_pred"`
	AwayPred int    `json:"away_pred"`
	TsUTC    string `json:"ts_utc"`
}

// CanonicalName приводит имя участника к каноническому ключу идентичности
// (trim + lower-case). Все сравнения имён идут через этот ключ, исходный
// регистр сохраняется только для отображения.
func CanonicalName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func FormatPickTimestamp(t time.Time) string {
	return t.UTC().Format(PickTimestampLayout)
}
