package models

import (
	"strings"
	"time"
)

// KickoffLayout — формат времени начала матча в fixtures.csv (UTC).
const KickoffLayout = "2006-01-02 15:04"

// Fixture представляет матч турнира. Таблица загружается админом целиком,
// для участников read-only.
type Fixture struct {
	MatchID    int    `json:"match_id"`
	Stage      string `json:"stage"`
	KickoffUTC string `json:"kickoff_utc"`
	Home       string `json:"home"`
	Away       string `json:"away"`
}

// ParseKickoffUTC разбирает строку "YYYY-MM-DD HH:MM" как UTC.
// Пустая строка, placeholder "nan" и любой мусор считаются отсутствием
// времени: матч без распарсенного времени никогда не закрывается.
func ParseKickoffUTC(s string) (time.Time, bool) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || trimmed == "nan" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(KickoffLayout, trimmed, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// IsLocked сообщает, закрыт ли матч для прогнозов: время распарсилось
// и now (UTC) уже наступило.
func IsLocked(kickoffUTC string, now time.Time) bool {
	kickoff, ok := ParseKickoffUTC(kickoffUTC)
	if !ok {
		return false
	}
	return !now.UTC().Before(kickoff)
}

func (f Fixture) Kickoff() (time.Time, bool) {
	return ParseKickoffUTC(f.KickoffUTC)
}

func (f Fixture) Locked(now time.Time) bool {
	return IsLocked(f.KickoffUTC, now)
}
