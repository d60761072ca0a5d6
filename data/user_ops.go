package data

import (
	"database/sql"
	"fmt"
	"time"

	"planner_server_go/models"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword генерирует хеш bcrypt для пароля.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash сравнивает пароль с хешем.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// CreateUser создает нового пользователя в базе данных.
func CreateUser(user *models.User) (int64, error) {
	hashedPassword, err := HashPassword(user.PasswordHash) // В модели PasswordHash это исходный пароль
	if err != nil {
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	query := `INSERT INTO Users (Username, Email, DisplayName, PhotoUrl, IsAdmin, PasswordHash, CreatedAt, UpdatedAt)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := AuthDB.Exec(query, user.Username, user.Email, user.DisplayName, user.PhotoUrl, user.IsAdmin, hashedPassword, now, now)
	if err != nil {
		return 0, fmt.Errorf("failed to insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for user: %w", err)
	}
	return id, nil
}

// GetUserByEmail извлекает пользователя по email.
func GetUserByEmail(email string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT Id, Username, Email, DisplayName, PhotoUrl, IsAdmin, PasswordHash, CreatedAt, UpdatedAt
	          FROM Users WHERE Email = ?`
	err := AuthDB.Get(user, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Пользователь не найден
		}
		return nil, fmt.Errorf("failed to get user by email %s: %w", email, err)
	}
	return user, nil
}

// GetUserByID извлекает пользователя по ID.
func GetUserByID(id int64) (*models.User, error) {
	user := &models.User{}
	query := `SELECT Id, Username, Email, DisplayName, PhotoUrl, IsAdmin, PasswordHash, CreatedAt, UpdatedAt
              FROM Users WHERE Id = ?`
	err := AuthDB.Get(user, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Пользователь не найден
		}
		return nil, fmt.Errorf("failed to get user by ID %d: %w", id, err)
	}
	return user, nil
}

// GetAllUsers извлекает всех пользователей для админского раздела.
// Хеши паролей не выбираются.
func GetAllUsers() ([]models.User, error) {
	var users []models.User
	query := `SELECT Id, Username, Email, DisplayName, PhotoUrl, IsAdmin, CreatedAt, UpdatedAt
	          FROM Users ORDER BY CreatedAt DESC`
	err := AuthDB.Select(&users, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get all users: %w", err)
	}
	return users, nil
}

// UpdateUserByAdmin обновляет displayName и признак администратора пользователя.
// Используется только из админского раздела.
func UpdateUserByAdmin(userID int64, displayName string, isAdmin bool) error {
	now := time.Now()
	query := `UPDATE Users SET DisplayName = ?, IsAdmin = ?, UpdatedAt = ?
	          WHERE Id = ?`
	result, err := AuthDB.Exec(query, displayName, isAdmin, now, userID)
	if err != nil {
		return fmt.Errorf("failed to update user %d by admin: %w", userID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return sql.ErrNoRows // Пользователь не найден
	}
	return nil
}

// DeleteUser удаляет учетную запись пользователя по ID.
func DeleteUser(userID int64) error {
	query := `DELETE FROM Users WHERE Id = ?`
	result, err := AuthDB.Exec(query, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user %d: %w", userID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return sql.ErrNoRows // Пользователь не найден
	}
	return nil
}

// UpdateUserProfile обновляет displayName и photoUrl пользователя.
func UpdateUserProfile(userID int64, displayName string, photoUrl string) error {
	now := time.Now()
	query := `UPDATE Users SET DisplayName = ?, PhotoUrl = ?, UpdatedAt = ?
	          WHERE Id = ?`
	result, err := AuthDB.Exec(query, displayName, photoUrl, now, userID)
	if err != nil {
		return fmt.Errorf("failed to update user profile for ID %d: %w", userID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for user profile update ID %d: %w", userID, err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("no user found with ID %d to update profile", userID)
	}

	return nil
}
