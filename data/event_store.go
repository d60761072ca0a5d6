package data

import (
	"context"
	"fmt"
	"time"

	"planner_server_go/models"
)

// SQLiteEventStore адаптирует функции calendar_event_ops под интерфейс
// scheduler.EventStore. SaveEvent объединяет создание и обновление:
// событие с нулевым Id считается новым.
type SQLiteEventStore struct{}

// NewSQLiteEventStore возвращает хранилище событий поверх MainDB.
func NewSQLiteEventStore() *SQLiteEventStore {
	return &SQLiteEventStore{}
}

// SaveEvent создает или обновляет событие и возвращает актуальную запись.
func (s *SQLiteEventStore) SaveEvent(ctx context.Context, event *models.CalendarEvent) (*models.CalendarEvent, error) {
	if event.Id == 0 {
		id, err := CreateCalendarEvent(event)
		if err != nil {
			return nil, err
		}
		event.Id = id
	} else {
		if err := UpdateCalendarEvent(event); err != nil {
			return nil, err
		}
	}

	stored, err := GetCalendarEventByID(event.Id, event.OwnerId)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, fmt.Errorf("SaveEvent: событие ID %d не найдено после сохранения", event.Id)
	}
	return stored, nil
}

// DeleteEvent удаляет событие по ID. Владелец к этому моменту уже проверен
// сервисом, поэтому удаление идет без дополнительного условия по OwnerId.
func (s *SQLiteEventStore) DeleteEvent(ctx context.Context, id int64) error {
	query := `DELETE FROM CalendarEvents WHERE Id = ?`
	if _, err := MainDB.Exec(query, id); err != nil {
		return fmt.Errorf("DeleteEvent: ошибка удаления события ID %d: %w", id, err)
	}
	return nil
}

// QueryEventsByOwnerAndRange извлекает события владельца в интервале дат.
func (s *SQLiteEventStore) QueryEventsByOwnerAndRange(ctx context.Context, ownerID int64, start, end time.Time) ([]models.CalendarEvent, error) {
	return GetCalendarEventsByOwnerAndRange(ownerID, start, end)
}
