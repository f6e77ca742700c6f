package models

// Settings — единственная запись конфигурации пула (config.json).
// AdminPassword после ротации через форму настроек хранится как bcrypt-хеш,
// дефолт первого запуска остаётся плоским текстом.
type Settings struct {
	PointsExact   int    `json:"points_exact"`
	PointsOutcome int    `json:"points_outcome"`
	AdminPassword string `json:"admin_password"`
	ShowLocalTime bool   `json:"show_local_time"`
}

// DefaultSettings возвращает настройки первого запуска. Отсутствующие в
// файле ключи бэкфилятся из этих значений при каждой загрузке.
func DefaultSettings() Settings {
	return Settings{
		PointsExact:   3,
		PointsOutcome: 1,
		AdminPassword: "admin123",
		ShowLocalTime: true,
	}
}
