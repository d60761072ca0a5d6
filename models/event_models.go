package models

// CreateEventRequest представляет данные для создания события календаря.
// Поля title и startDate обязательны; reminders может отсутствовать —
// тогда применяется набор напоминаний по умолчанию.
type CreateEventRequest struct {
	Title          string  `json:"title"`
	Type           string  `json:"type"`
	StartDate      string  `json:"startDate"` // RFC3339
	EndDate        string  `json:"endDate"`   // RFC3339, необязательно
	IsAllDay       bool    `json:"isAllDay"`
	Location       *string `json:"location,omitempty"`
	Description    *string `json:"description,omitempty"`
	Color          *string `json:"color,omitempty"`
	RecurrenceJson *string `json:"recurrence_json,omitempty"`
	Reminders      *[]int  `json:"reminders,omitempty"` // nil = набор по умолчанию, пустой список = без напоминаний
}

// UpdateEventRequest представляет данные для обновления события.
// Семантика полей та же, что и в CreateEventRequest, но reminders без
// значения означает "оставить прежний список".
type UpdateEventRequest struct {
	Title          string  `json:"title"`
	Type           string  `json:"type"`
	StartDate      string  `json:"startDate"`
	EndDate        string  `json:"endDate"`
	IsAllDay       bool    `json:"isAllDay"`
	Location       *string `json:"location,omitempty"`
	Description    *string `json:"description,omitempty"`
	Color          *string `json:"color,omitempty"`
	RecurrenceJson *string `json:"recurrence_json,omitempty"`
	Reminders      *[]int  `json:"reminders,omitempty"`
}
