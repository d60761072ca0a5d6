package models

import "time"

// Note представляет личную заметку пользователя.
// Клиентская модель: { id, title, content, notes, timestamp }.
type Note struct {
	Id      int64  `json:"id" db:"Id"`
	OwnerId int64  `json:"owner_id" db:"OwnerId"`
	Title   string `json:"title" db:"Title"`
	Content *string `json:"content,omitempty" db:"Content"`
	// Notes — дополнительное текстовое поле клиента (краткая пометка к заметке).
	Notes     *string   `json:"notes,omitempty" db:"Notes"`
	CreatedAt time.Time `json:"-" db:"CreatedAt"`
	UpdatedAt time.Time `json:"-" db:"UpdatedAt"`
}
