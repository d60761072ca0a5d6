package controllers

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"planner_server_go/data"
	"planner_server_go/models"

	"github.com/gorilla/mux"
)

// UsersCollectionHandler возвращает список всех пользователей (только админ).
// GET /api/users
func UsersCollectionHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	users, err := data.GetAllUsers()
	if err != nil {
		log.Printf("Ошибка при получении списка пользователей: %v", err)
		respondError(w, http.StatusInternalServerError, "Не удалось получить список пользователей.")
		return
	}

	// Наружу отдаются только публичные данные, без хешей паролей
	infos := make([]models.UserPublicInfo, 0, len(users))
	for _, u := range users {
		infos = append(infos, models.UserPublicInfo{
			ID:          u.ID,
			Email:       u.Email,
			DisplayName: u.DisplayName,
			PhotoUrl:    u.PhotoUrl,
			IsAdmin:     u.IsAdmin,
		})
	}
	respondJSON(w, http.StatusOK, infos)
}

// UserItemHandler обрабатывает изменение и удаление пользователя (только админ).
// PUT /api/users/{id} - изменить отображаемое имя и признак администратора,
// DELETE /api/users/{id} - удалить учетную запись.
func UserItemHandler(w http.ResponseWriter, r *http.Request) {
	adminID, ok := requireAdmin(w, r)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Неверный формат ID пользователя.")
		return
	}

	switch r.Method {
	case http.MethodPut:
		var req models.AdminUpdateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "Неверный формат запроса: "+err.Error())
			return
		}
		defer r.Body.Close()

		if err := data.UpdateUserByAdmin(id, req.DisplayName, req.IsAdmin); err != nil {
			if err == sql.ErrNoRows {
				respondError(w, http.StatusNotFound, "Пользователь не найден.")
				return
			}
			log.Printf("Ошибка при изменении пользователя %d администратором %d: %v", id, adminID, err)
			respondError(w, http.StatusInternalServerError, "Не удалось изменить пользователя: "+err.Error())
			return
		}

		updated, err := data.GetUserByID(id)
		if err != nil || updated == nil {
			log.Printf("Ошибка при получении измененного пользователя %d: %v", id, err)
			respondError(w, http.StatusInternalServerError, "Не удалось получить измененного пользователя.")
			return
		}
		respondJSON(w, http.StatusOK, models.UserPublicInfo{
			ID:          updated.ID,
			Email:       updated.Email,
			DisplayName: updated.DisplayName,
			PhotoUrl:    updated.PhotoUrl,
			IsAdmin:     updated.IsAdmin,
		})

	case http.MethodDelete:
		// Администратор не может удалить собственную учетную запись
		if id == adminID {
			respondError(w, http.StatusBadRequest, "Нельзя удалить собственную учетную запись.")
			return
		}
		if err := data.DeleteUser(id); err != nil {
			if err == sql.ErrNoRows {
				respondError(w, http.StatusNotFound, "Пользователь не найден.")
				return
			}
			log.Printf("Ошибка при удалении пользователя %d администратором %d: %v", id, adminID, err)
			respondError(w, http.StatusInternalServerError, "Не удалось удалить пользователя: "+err.Error())
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})

	default:
		respondError(w, http.StatusMethodNotAllowed, "Метод не разрешен.")
	}
}
