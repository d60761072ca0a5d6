package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"planner_server_go/data"
	"planner_server_go/middleware"
	"planner_server_go/models"
)

// SettingsHandler обрабатывает настройки пользователя.
// GET /api/settings - получить, PUT /api/settings - сохранить.
// Поле notificationsEnabled служит предусловием планирования напоминаний:
// при выключенных уведомлениях события сохраняются без дескрипторов.
func SettingsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Не удалось получить ID пользователя из токена.")
		return
	}

	switch r.Method {
	case http.MethodGet:
		settings, err := data.GetUserSettings(userID)
		if err != nil {
			log.Printf("Ошибка при получении настроек пользователя %d: %v", userID, err)
			respondError(w, http.StatusInternalServerError, "Не удалось получить настройки.")
			return
		}
		respondJSON(w, http.StatusOK, settings)

	case http.MethodPut:
		var settings models.UserSettings
		if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
			respondError(w, http.StatusBadRequest, "Неверный формат запроса: "+err.Error())
			return
		}
		defer r.Body.Close()

		settings.UserId = userID
		if err := data.SaveUserSettings(&settings); err != nil {
			log.Printf("Ошибка при сохранении настроек пользователя %d: %v", userID, err)
			respondError(w, http.StatusInternalServerError, "Не удалось сохранить настройки: "+err.Error())
			return
		}
		respondJSON(w, http.StatusOK, settings)

	default:
		respondError(w, http.StatusMethodNotAllowed, "Метод не разрешен.")
	}
}
