package models

// UserSettings представляет настройки пользователя.
// NotificationsEnabled выступает предусловием для планирования напоминаний:
// при выключенных уведомлениях событие сохраняется без дескрипторов.
type UserSettings struct {
	UserId               int64   `json:"-" db:"UserId"`
	BackgroundColor      *string `json:"backgroundColor,omitempty" db:"BackgroundColor"`
	NotificationsEnabled bool    `json:"notificationsEnabled" db:"NotificationsEnabled"`
}
