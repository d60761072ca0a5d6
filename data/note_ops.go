package data

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"planner_server_go/models"
)

// CreateNote создает новую заметку пользователя.
// Поле note.OwnerId должно быть установлено. Возвращает ID созданной заметки.
func CreateNote(note *models.Note) (int64, error) {
	now := time.Now()
	note.CreatedAt = now
	note.UpdatedAt = now

	query := `INSERT INTO Notes (OwnerId, Title, Content, Notes, CreatedAt, UpdatedAt)
	          VALUES (:OwnerId, :Title, :Content, :Notes, :CreatedAt, :UpdatedAt)`

	result, err := MainDB.NamedExec(query, note)
	if err != nil {
		return 0, fmt.Errorf("CreateNote: ошибка вставки заметки: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("CreateNote: ошибка получения LastInsertId: %w", err)
	}
	log.Printf("Создана заметка с ID: %d для OwnerId: %d", id, note.OwnerId)
	return id, nil
}

// GetNoteByID извлекает заметку по ее ID и ID владельца.
func GetNoteByID(id int64, ownerID int64) (*models.Note, error) {
	note := &models.Note{}
	query := `SELECT Id, OwnerId, Title, Content, Notes, CreatedAt, UpdatedAt
	          FROM Notes WHERE Id = ? AND OwnerId = ?`
	err := MainDB.Get(note, query, id, ownerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Не найдено
		}
		return nil, fmt.Errorf("GetNoteByID: ошибка получения заметки ID %d, OwnerId %d: %w", id, ownerID, err)
	}
	return note, nil
}

// GetAllNotesByOwner извлекает все заметки пользователя, свежие первыми.
func GetAllNotesByOwner(ownerID int64) ([]models.Note, error) {
	var notes []models.Note
	query := `SELECT Id, OwnerId, Title, Content, Notes, CreatedAt, UpdatedAt
              FROM Notes WHERE OwnerId = ? ORDER BY UpdatedAt DESC`
	err := MainDB.Select(&notes, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("GetAllNotesByOwner: ошибка получения заметок для OwnerId %d: %w", ownerID, err)
	}
	return notes, nil
}

// UpdateNote обновляет существующую заметку.
// Поля note.Id и note.OwnerId должны быть установлены.
func UpdateNote(note *models.Note) error {
	note.UpdatedAt = time.Now()

	query := `UPDATE Notes SET
	            Title = :Title, Content = :Content, Notes = :Notes, UpdatedAt = :UpdatedAt
	          WHERE Id = :Id AND OwnerId = :OwnerId`
	result, err := MainDB.NamedExec(query, note)
	if err != nil {
		return fmt.Errorf("UpdateNote: ошибка обновления заметки ID %d, OwnerId %d: %w", note.Id, note.OwnerId, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return sql.ErrNoRows // Не найдено для обновления
	}
	log.Printf("Обновлена заметка с ID: %d для OwnerId: %d", note.Id, note.OwnerId)
	return nil
}

// DeleteNote удаляет заметку по ID и ID владельца.
func DeleteNote(id int64, ownerID int64) error {
	query := `DELETE FROM Notes WHERE Id = ? AND OwnerId = ?`
	result, err := MainDB.Exec(query, id, ownerID)
	if err != nil {
		return fmt.Errorf("DeleteNote: ошибка удаления заметки ID %d, OwnerId %d: %w", id, ownerID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return sql.ErrNoRows // Не найдено
	}
	log.Printf("Удалена заметка с ID: %d для OwnerId: %d", id, ownerID)
	return nil
}
