package models

import (
	"encoding/json"
	"time"
)

// Типы событий календаря. Соответствуют type: 'event' | 'class' из клиентской модели.
const (
	EventTypeEvent = "event"
	EventTypeClass = "class"
)

// CalendarEvent представляет событие календаря пользователя.
type CalendarEvent struct {
	Id          int64     `json:"id" db:"Id"`
	OwnerId     int64     `json:"owner_id" db:"OwnerId"` // Владелец события, назначается при создании и не меняется
	Title       string    `json:"title" db:"Title"`
	Type        string    `json:"type" db:"Type"` // "event" или "class"
	StartDate   time.Time `json:"startDate" db:"StartDate"`
	EndDate     time.Time `json:"endDate" db:"EndDate"` // Используется только для отображения, планировщик его не читает
	IsAllDay    bool      `json:"isAllDay" db:"IsAllDay"`
	Location    *string   `json:"location,omitempty" db:"Location"`
	Description *string   `json:"description,omitempty" db:"Description"`
	Color       *string   `json:"color,omitempty" db:"Color"`
	// RecurrenceJson хранится и передается как есть, сервер его не интерпретирует
	// (клиент присылает {frequency, endDate, daysOfWeek}).
	RecurrenceJson *string `json:"recurrence_json,omitempty" db:"RecurrenceJson"`

	// RemindersJson / NotificationHandlesJson — сериализованные представления
	// полей Reminders и NotificationHandles для хранения в SQLite.
	RemindersJson           string `json:"-" db:"RemindersJson"`
	NotificationHandlesJson string `json:"-" db:"NotificationHandlesJson"`

	CreatedAt time.Time `json:"-" db:"CreatedAt"`
	UpdatedAt time.Time `json:"-" db:"UpdatedAt"`

	// Reminders — набор интервалов в минутах до StartDate, в которые должно
	// сработать напоминание. Интерпретируется всегда относительно StartDate.
	Reminders []int `json:"reminders" db:"-"`
	// NotificationHandles — производное состояние: идентификаторы запланированных
	// уведомлений, по одному на каждое напоминание, которое на момент
	// планирования еще не было в прошлом. Не источник истины: восстанавливается
	// из Reminders + StartDate (см. RecomputeSchedule).
	NotificationHandles []string `json:"notification_handles" db:"-"`
}

// UpdateJsonProperties сериализует Reminders и NotificationHandles в JSON строки.
func (e *CalendarEvent) UpdateJsonProperties() error {
	remBytes, err := json.Marshal(e.Reminders)
	if err != nil {
		return err
	}
	e.RemindersJson = string(remBytes)

	handleBytes, err := json.Marshal(e.NotificationHandles)
	if err != nil {
		return err
	}
	e.NotificationHandlesJson = string(handleBytes)
	return nil
}

// LoadJsonProperties десериализует RemindersJson и NotificationHandlesJson в соответствующие поля.
func (e *CalendarEvent) LoadJsonProperties() error {
	if e.RemindersJson == "" {
		e.RemindersJson = "[]"
	}
	if err := json.Unmarshal([]byte(e.RemindersJson), &e.Reminders); err != nil {
		e.Reminders = []int{}
	}

	if e.NotificationHandlesJson == "" {
		e.NotificationHandlesJson = "[]"
	}
	if err := json.Unmarshal([]byte(e.NotificationHandlesJson), &e.NotificationHandles); err != nil {
		e.NotificationHandles = []string{}
	}
	return nil
}
