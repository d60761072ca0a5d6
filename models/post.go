package models

import "time"

// Post представляет публикацию, управляемую из админского раздела приложения.
// Клиентская модель: { id, title, url, imageUri, icon, userId, timestamp }.
type Post struct {
	Id        int64     `json:"id" db:"Id"`
	Title     string    `json:"title" db:"Title"`
	Url       string    `json:"url" db:"Url"`
	ImageUri  *string   `json:"imageUri,omitempty" db:"ImageUri"`
	Icon      *string   `json:"icon,omitempty" db:"Icon"`
	UserId    int64     `json:"user_id" db:"UserId"` // Автор публикации
	CreatedAt time.Time `json:"-" db:"CreatedAt"`
	UpdatedAt time.Time `json:"-" db:"UpdatedAt"`
}
