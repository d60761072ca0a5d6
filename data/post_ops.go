package data

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"planner_server_go/models"
)

// CreatePost создает новую публикацию. Поле post.UserId должно быть установлено.
func CreatePost(post *models.Post) (int64, error) {
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now

	query := `INSERT INTO Posts (Title, Url, ImageUri, Icon, UserId, CreatedAt, UpdatedAt)
	          VALUES (:Title, :Url, :ImageUri, :Icon, :UserId, :CreatedAt, :UpdatedAt)`

	result, err := MainDB.NamedExec(query, post)
	if err != nil {
		return 0, fmt.Errorf("CreatePost: ошибка вставки публикации: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("CreatePost: ошибка получения LastInsertId: %w", err)
	}
	log.Printf("Создана публикация с ID: %d автором UserId: %d", id, post.UserId)
	return id, nil
}

// GetPostByID извлекает публикацию по ID.
func GetPostByID(id int64) (*models.Post, error) {
	post := &models.Post{}
	query := `SELECT Id, Title, Url, ImageUri, Icon, UserId, CreatedAt, UpdatedAt
	          FROM Posts WHERE Id = ?`
	err := MainDB.Get(post, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Не найдено
		}
		return nil, fmt.Errorf("GetPostByID: ошибка получения публикации ID %d: %w", id, err)
	}
	return post, nil
}

// GetAllPosts извлекает все публикации, свежие первыми.
// Публикации видны всем пользователям; владение проверяется только на запись.
func GetAllPosts() ([]models.Post, error) {
	var posts []models.Post
	query := `SELECT Id, Title, Url, ImageUri, Icon, UserId, CreatedAt, UpdatedAt
              FROM Posts ORDER BY CreatedAt DESC`
	err := MainDB.Select(&posts, query)
	if err != nil {
		return nil, fmt.Errorf("GetAllPosts: ошибка получения публикаций: %w", err)
	}
	return posts, nil
}

// UpdatePost обновляет существующую публикацию. Поле post.Id должно быть установлено.
func UpdatePost(post *models.Post) error {
	post.UpdatedAt = time.Now()

	query := `UPDATE Posts SET
	            Title = :Title, Url = :Url, ImageUri = :ImageUri, Icon = :Icon, UpdatedAt = :UpdatedAt
	          WHERE Id = :Id`
	result, err := MainDB.NamedExec(query, post)
	if err != nil {
		return fmt.Errorf("UpdatePost: ошибка обновления публикации ID %d: %w", post.Id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return sql.ErrNoRows // Не найдено для обновления
	}
	log.Printf("Обновлена публикация с ID: %d", post.Id)
	return nil
}

// DeletePost удаляет публикацию по ID.
func DeletePost(id int64) error {
	query := `DELETE FROM Posts WHERE Id = ?`
	result, err := MainDB.Exec(query, id)
	if err != nil {
		return fmt.Errorf("DeletePost: ошибка удаления публикации ID %d: %w", id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return sql.ErrNoRows // Не найдено
	}
	log.Printf("Удалена публикация с ID: %d", id)
	return nil
}
