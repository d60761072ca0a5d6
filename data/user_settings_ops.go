package data

import (
	"database/sql"
	"fmt"

	"planner_server_go/models"
)

// GetUserSettings извлекает настройки пользователя.
// Если настройки еще не сохранялись, возвращаются значения по умолчанию
// (уведомления включены), как делает клиент при отсутствии документа настроек.
func GetUserSettings(userID int64) (*models.UserSettings, error) {
	settings := &models.UserSettings{}
	query := `SELECT UserId, BackgroundColor, NotificationsEnabled
	          FROM UserSettings WHERE UserId = ?`
	err := MainDB.Get(settings, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return &models.UserSettings{UserId: userID, NotificationsEnabled: true}, nil
		}
		return nil, fmt.Errorf("GetUserSettings: ошибка получения настроек для UserId %d: %w", userID, err)
	}
	return settings, nil
}

// SaveUserSettings сохраняет настройки пользователя (вставка или обновление).
func SaveUserSettings(settings *models.UserSettings) error {
	query := `INSERT INTO UserSettings (UserId, BackgroundColor, NotificationsEnabled)
	          VALUES (:UserId, :BackgroundColor, :NotificationsEnabled)
	          ON CONFLICT(UserId) DO UPDATE SET
	            BackgroundColor = excluded.BackgroundColor,
	            NotificationsEnabled = excluded.NotificationsEnabled`
	if _, err := MainDB.NamedExec(query, settings); err != nil {
		return fmt.Errorf("SaveUserSettings: ошибка сохранения настроек для UserId %d: %w", settings.UserId, err)
	}
	return nil
}
