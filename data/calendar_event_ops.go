package data

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"planner_server_go/models"
)

// CreateCalendarEvent создает новое событие календаря.
// Поле event.OwnerId должно быть установлено. Возвращает ID созданного события.
func CreateCalendarEvent(event *models.CalendarEvent) (int64, error) {
	if err := event.UpdateJsonProperties(); err != nil {
		return 0, fmt.Errorf("CreateCalendarEvent: ошибка обновления JSON свойств: %w", err)
	}
	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now

	query := `INSERT INTO CalendarEvents (OwnerId, Title, Type, StartDate, EndDate, IsAllDay, Location, Description, Color, RecurrenceJson, RemindersJson, NotificationHandlesJson, CreatedAt, UpdatedAt)
	          VALUES (:OwnerId, :Title, :Type, :StartDate, :EndDate, :IsAllDay, :Location, :Description, :Color, :RecurrenceJson, :RemindersJson, :NotificationHandlesJson, :CreatedAt, :UpdatedAt)`

	result, err := MainDB.NamedExec(query, event)
	if err != nil {
		return 0, fmt.Errorf("CreateCalendarEvent: ошибка вставки события: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("CreateCalendarEvent: ошибка получения LastInsertId: %w", err)
	}
	log.Printf("Создано событие календаря с ID: %d для OwnerId: %d", id, event.OwnerId)
	return id, nil
}

// GetCalendarEventByID извлекает событие по его ID и ID владельца.
// Чужие события не возвращаются: выборка всегда ограничена владельцем.
func GetCalendarEventByID(id int64, ownerID int64) (*models.CalendarEvent, error) {
	event := &models.CalendarEvent{}
	query := `SELECT Id, OwnerId, Title, Type, StartDate, EndDate, IsAllDay, Location, Description, Color, RecurrenceJson, RemindersJson, NotificationHandlesJson, CreatedAt, UpdatedAt
	          FROM CalendarEvents WHERE Id = ? AND OwnerId = ?`
	err := MainDB.Get(event, query, id, ownerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Не найдено
		}
		return nil, fmt.Errorf("GetCalendarEventByID: ошибка получения события ID %d, OwnerId %d: %w", id, ownerID, err)
	}
	if err := event.LoadJsonProperties(); err != nil {
		return nil, fmt.Errorf("GetCalendarEventByID: ошибка загрузки JSON свойств для события ID %d: %w", id, err)
	}
	return event, nil
}

// UpdateCalendarEvent обновляет существующее событие.
// Поля event.Id и event.OwnerId должны быть установлены; OwnerId не меняется.
func UpdateCalendarEvent(event *models.CalendarEvent) error {
	if err := event.UpdateJsonProperties(); err != nil {
		return fmt.Errorf("UpdateCalendarEvent: ошибка обновления JSON свойств для события ID %d: %w", event.Id, err)
	}
	event.UpdatedAt = time.Now()

	query := `UPDATE CalendarEvents SET
	            Title = :Title, Type = :Type, StartDate = :StartDate, EndDate = :EndDate,
	            IsAllDay = :IsAllDay, Location = :Location, Description = :Description, Color = :Color,
	            RecurrenceJson = :RecurrenceJson, RemindersJson = :RemindersJson,
	            NotificationHandlesJson = :NotificationHandlesJson, UpdatedAt = :UpdatedAt
	          WHERE Id = :Id AND OwnerId = :OwnerId`
	result, err := MainDB.NamedExec(query, event)
	if err != nil {
		return fmt.Errorf("UpdateCalendarEvent: ошибка обновления события ID %d, OwnerId %d: %w", event.Id, event.OwnerId, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		log.Printf("UpdateCalendarEvent: событие с ID %d для OwnerId %d не найдено для обновления.", event.Id, event.OwnerId)
		return sql.ErrNoRows
	}
	log.Printf("Обновлено событие календаря с ID: %d для OwnerId: %d", event.Id, event.OwnerId)
	return nil
}

// DeleteCalendarEvent удаляет событие по ID и ID владельца.
func DeleteCalendarEvent(id int64, ownerID int64) error {
	query := `DELETE FROM CalendarEvents WHERE Id = ? AND OwnerId = ?`
	result, err := MainDB.Exec(query, id, ownerID)
	if err != nil {
		return fmt.Errorf("DeleteCalendarEvent: ошибка удаления события ID %d, OwnerId %d: %w", id, ownerID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		log.Printf("DeleteCalendarEvent: событие с ID %d для OwnerId %d не найдено для удаления.", id, ownerID)
		return sql.ErrNoRows
	}
	log.Printf("Удалено событие календаря с ID: %d для OwnerId: %d", id, ownerID)
	return nil
}

// GetCalendarEventsByOwnerAndRange извлекает события владельца, начинающиеся
// в интервале [start, end]. Используется экраном календаря.
func GetCalendarEventsByOwnerAndRange(ownerID int64, start, end time.Time) ([]models.CalendarEvent, error) {
	var events []models.CalendarEvent
	query := `SELECT Id, OwnerId, Title, Type, StartDate, EndDate, IsAllDay, Location, Description, Color, RecurrenceJson, RemindersJson, NotificationHandlesJson, CreatedAt, UpdatedAt
	          FROM CalendarEvents WHERE OwnerId = ? AND StartDate >= ? AND StartDate <= ?
	          ORDER BY StartDate ASC`
	err := MainDB.Select(&events, query, ownerID, start, end)
	if err != nil {
		return nil, fmt.Errorf("GetCalendarEventsByOwnerAndRange: ошибка получения событий для OwnerId %d: %w", ownerID, err)
	}
	for i := range events {
		if err := events[i].LoadJsonProperties(); err != nil {
			log.Printf("GetCalendarEventsByOwnerAndRange: ошибка загрузки JSON свойств для события ID %d: %v. Событие будет возвращено без этих свойств.", events[i].Id, err)
		}
	}
	return events, nil
}
