package data

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"planner_server_go/models"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestMainDB подменяет MainDB на БД в памяти со схемой основной БД.
func setupTestMainDB(t *testing.T) {
	t.Helper()
	db, err := sqlx.Connect("sqlite3", "file::memory:?_foreign_keys=on")
	require.NoError(t, err)
	_, err = db.Exec(GetMainSchema())
	require.NoError(t, err)

	prev := MainDB
	MainDB = db
	t.Cleanup(func() {
		MainDB = prev
		db.Close()
	})
}

func strPtr(s string) *string { return &s }

func sampleEvent(ownerID int64, start time.Time) *models.CalendarEvent {
	return &models.CalendarEvent{
		OwnerId:             ownerID,
		Title:               "Лекция по физике",
		Type:                models.EventTypeClass,
		StartDate:           start,
		EndDate:             start.Add(90 * time.Minute),
		Location:            strPtr("Аудитория 204"),
		Color:               strPtr("#4287f5"),
		Reminders:           []int{1440, 60, 15, 5},
		NotificationHandles: []string{"h-1", "h-2"},
	}
}

func TestCreateAndGetCalendarEvent(t *testing.T) {
	setupTestMainDB(t)

	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	event := sampleEvent(7, start)

	id, err := CreateCalendarEvent(event)
	require.NoError(t, err)
	require.NotZero(t, id)

	stored, err := GetCalendarEventByID(id, 7)
	require.NoError(t, err)
	require.NotNil(t, stored)

	assert.Equal(t, "Лекция по физике", stored.Title)
	assert.Equal(t, models.EventTypeClass, stored.Type)
	assert.True(t, stored.StartDate.Equal(start))
	// JSON-поля восстанавливаются из колонок
	assert.Equal(t, []int{1440, 60, 15, 5}, stored.Reminders)
	assert.Equal(t, []string{"h-1", "h-2"}, stored.NotificationHandles)
}

func TestGetCalendarEventRejectsForeignOwner(t *testing.T) {
	setupTestMainDB(t)

	id, err := CreateCalendarEvent(sampleEvent(7, time.Now().Add(time.Hour)))
	require.NoError(t, err)

	// Чужие события не выдаются
	stored, err := GetCalendarEventByID(id, 8)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestUpdateCalendarEvent(t *testing.T) {
	setupTestMainDB(t)

	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	event := sampleEvent(7, start)
	id, err := CreateCalendarEvent(event)
	require.NoError(t, err)
	event.Id = id

	event.Title = "Перенесенная лекция"
	event.StartDate = start.Add(24 * time.Hour)
	event.Reminders = []int{15}
	event.NotificationHandles = []string{"h-3"}
	require.NoError(t, UpdateCalendarEvent(event))

	stored, err := GetCalendarEventByID(id, 7)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Перенесенная лекция", stored.Title)
	assert.Equal(t, []int{15}, stored.Reminders)
	assert.Equal(t, []string{"h-3"}, stored.NotificationHandles)
}

func TestUpdateCalendarEventNotFound(t *testing.T) {
	setupTestMainDB(t)

	event := sampleEvent(7, time.Now().Add(time.Hour))
	event.Id = 999
	err := UpdateCalendarEvent(event)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestDeleteCalendarEvent(t *testing.T) {
	setupTestMainDB(t)

	id, err := CreateCalendarEvent(sampleEvent(7, time.Now().Add(time.Hour)))
	require.NoError(t, err)

	require.NoError(t, DeleteCalendarEvent(id, 7))

	stored, err := GetCalendarEventByID(id, 7)
	require.NoError(t, err)
	assert.Nil(t, stored)

	assert.ErrorIs(t, DeleteCalendarEvent(id, 7), sql.ErrNoRows)
}

func TestGetCalendarEventsByOwnerAndRange(t *testing.T) {
	setupTestMainDB(t)

	base := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	// Три события владельца 7 в сентябре и одно вне диапазона, плюс чужое
	for _, day := range []int{1, 10, 20} {
		_, err := CreateCalendarEvent(sampleEvent(7, base.AddDate(0, 0, day)))
		require.NoError(t, err)
	}
	_, err := CreateCalendarEvent(sampleEvent(7, base.AddDate(0, 2, 0)))
	require.NoError(t, err)
	_, err = CreateCalendarEvent(sampleEvent(8, base.AddDate(0, 0, 10)))
	require.NoError(t, err)

	events, err := GetCalendarEventsByOwnerAndRange(7, base, base.AddDate(0, 1, 0))
	require.NoError(t, err)
	require.Len(t, events, 3)

	// Отсортированы по дате начала
	for i := 1; i < len(events); i++ {
		assert.False(t, events[i].StartDate.Before(events[i-1].StartDate))
	}
	for _, e := range events {
		assert.Equal(t, int64(7), e.OwnerId)
	}
}

func TestSQLiteEventStoreSaveCreatesAndUpdates(t *testing.T) {
	setupTestMainDB(t)

	store := NewSQLiteEventStore()
	ctx := context.Background()

	event := sampleEvent(7, time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC))
	created, err := store.SaveEvent(ctx, event)
	require.NoError(t, err)
	require.NotZero(t, created.Id)

	created.Title = "Обновлено"
	created.NotificationHandles = []string{"h-9"}
	updated, err := store.SaveEvent(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, created.Id, updated.Id)
	assert.Equal(t, "Обновлено", updated.Title)
	assert.Equal(t, []string{"h-9"}, updated.NotificationHandles)

	require.NoError(t, store.DeleteEvent(ctx, created.Id))
	stored, err := GetCalendarEventByID(created.Id, 7)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestUserSettingsDefaultsAndUpsert(t *testing.T) {
	setupTestMainDB(t)

	// До первого сохранения - значения по умолчанию
	settings, err := GetUserSettings(7)
	require.NoError(t, err)
	assert.True(t, settings.NotificationsEnabled)

	settings.NotificationsEnabled = false
	settings.BackgroundColor = strPtr("#ffffff")
	require.NoError(t, SaveUserSettings(settings))

	stored, err := GetUserSettings(7)
	require.NoError(t, err)
	assert.False(t, stored.NotificationsEnabled)
	require.NotNil(t, stored.BackgroundColor)
	assert.Equal(t, "#ffffff", *stored.BackgroundColor)

	// Повторное сохранение обновляет, а не дублирует
	stored.NotificationsEnabled = true
	require.NoError(t, SaveUserSettings(stored))
	again, err := GetUserSettings(7)
	require.NoError(t, err)
	assert.True(t, again.NotificationsEnabled)
}
