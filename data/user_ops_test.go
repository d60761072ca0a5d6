package data

import (
	"database/sql"
	"testing"

	"planner_server_go/models"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestAuthDB подменяет AuthDB на БД в памяти со схемой БД аутентификации.
func setupTestAuthDB(t *testing.T) {
	t.Helper()
	db, err := sqlx.Connect("sqlite3", "file::memory:?_loc=auto")
	require.NoError(t, err)
	_, err = db.Exec(GetAuthSchema())
	require.NoError(t, err)

	prev := AuthDB
	AuthDB = db
	t.Cleanup(func() {
		AuthDB = prev
		db.Close()
	})
}

func sampleUser(email string) *models.User {
	return &models.User{
		Username:     email,
		Email:        email,
		DisplayName:  "Иван Петров",
		PasswordHash: "секретный-пароль", // В CreateUser это исходный пароль
	}
}

// Сквозная проверка создания и чтения: выборка включает колонку Username,
// поэтому все поля модели должны корректно заполняться из строки БД.
func TestCreateAndGetUser(t *testing.T) {
	setupTestAuthDB(t)

	id, err := CreateUser(sampleUser("ivan@example.com"))
	require.NoError(t, err)
	require.NotZero(t, id)

	byEmail, err := GetUserByEmail("ivan@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, id, byEmail.ID)
	assert.Equal(t, "ivan@example.com", byEmail.Username)
	assert.Equal(t, "Иван Петров", byEmail.DisplayName)
	assert.False(t, byEmail.IsAdmin)
	// Пароль хеширован, но проверяется по исходному значению
	assert.True(t, CheckPasswordHash("секретный-пароль", byEmail.PasswordHash))

	byID, err := GetUserByID(id)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, byEmail.Username, byID.Username)
	assert.Equal(t, byEmail.Email, byID.Email)
}

func TestGetUserNotFound(t *testing.T) {
	setupTestAuthDB(t)

	user, err := GetUserByEmail("nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, user)

	user, err = GetUserByID(999)
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestUpdateUserProfile(t *testing.T) {
	setupTestAuthDB(t)

	id, err := CreateUser(sampleUser("ivan@example.com"))
	require.NoError(t, err)

	require.NoError(t, UpdateUserProfile(id, "Иван И.", "/uploads/profile_images/x.png"))

	updated, err := GetUserByID(id)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Иван И.", updated.DisplayName)
	assert.Equal(t, "/uploads/profile_images/x.png", updated.PhotoUrl)

	assert.Error(t, UpdateUserProfile(999, "x", ""))
}

func TestGetAllUsers(t *testing.T) {
	setupTestAuthDB(t)

	_, err := CreateUser(sampleUser("first@example.com"))
	require.NoError(t, err)
	_, err = CreateUser(sampleUser("second@example.com"))
	require.NoError(t, err)

	users, err := GetAllUsers()
	require.NoError(t, err)
	require.Len(t, users, 2)
	for _, u := range users {
		assert.NotZero(t, u.ID)
		assert.NotEmpty(t, u.Email)
		// Хеши паролей в список не попадают
		assert.Empty(t, u.PasswordHash)
	}
}

func TestUpdateUserByAdmin(t *testing.T) {
	setupTestAuthDB(t)

	id, err := CreateUser(sampleUser("ivan@example.com"))
	require.NoError(t, err)

	require.NoError(t, UpdateUserByAdmin(id, "Модератор", true))

	updated, err := GetUserByID(id)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Модератор", updated.DisplayName)
	assert.True(t, updated.IsAdmin)

	assert.ErrorIs(t, UpdateUserByAdmin(999, "x", false), sql.ErrNoRows)
}

func TestDeleteUser(t *testing.T) {
	setupTestAuthDB(t)

	id, err := CreateUser(sampleUser("ivan@example.com"))
	require.NoError(t, err)

	require.NoError(t, DeleteUser(id))

	user, err := GetUserByID(id)
	require.NoError(t, err)
	assert.Nil(t, user)

	assert.ErrorIs(t, DeleteUser(id), sql.ErrNoRows)
}
