package controllers

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"planner_server_go/data"
	"planner_server_go/middleware"
	"planner_server_go/models"

	"github.com/gorilla/mux"
)

// requireAdmin проверяет, что текущий пользователь — администратор.
// Управление публикациями доступно только из админского раздела приложения.
func requireAdmin(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Не удалось получить ID пользователя из токена.")
		return 0, false
	}

	user, err := data.GetUserByID(userID)
	if err != nil || user == nil {
		log.Printf("Ошибка при проверке прав пользователя %d: %v", userID, err)
		respondError(w, http.StatusInternalServerError, "Не удалось проверить права пользователя.")
		return 0, false
	}
	if !user.IsAdmin {
		respondError(w, http.StatusForbidden, "Требуются права администратора.")
		return 0, false
	}
	return userID, true
}

// PostsCollectionHandler обрабатывает запросы к коллекции публикаций.
// GET /api/posts - список для всех пользователей, POST /api/posts - создание (только админ).
func PostsCollectionHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		posts, err := data.GetAllPosts()
		if err != nil {
			log.Printf("Ошибка при получении публикаций: %v", err)
			respondError(w, http.StatusInternalServerError, "Не удалось получить публикации.")
			return
		}
		if posts == nil {
			posts = []models.Post{}
		}
		respondJSON(w, http.StatusOK, posts)

	case http.MethodPost:
		userID, ok := requireAdmin(w, r)
		if !ok {
			return
		}

		var post models.Post
		if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
			respondError(w, http.StatusBadRequest, "Неверный формат запроса: "+err.Error())
			return
		}
		defer r.Body.Close()

		if strings.TrimSpace(post.Title) == "" || strings.TrimSpace(post.Url) == "" {
			respondError(w, http.StatusBadRequest, "Поля title и url обязательны.")
			return
		}

		post.UserId = userID
		id, err := data.CreatePost(&post)
		if err != nil {
			log.Printf("Ошибка при создании публикации пользователем %d: %v", userID, err)
			respondError(w, http.StatusInternalServerError, "Не удалось создать публикацию: "+err.Error())
			return
		}
		post.Id = id
		respondJSON(w, http.StatusCreated, post)

	default:
		respondError(w, http.StatusMethodNotAllowed, "Метод не разрешен.")
	}
}

// PostItemHandler обрабатывает изменение и удаление отдельной публикации (только админ).
// PUT /api/posts/{id}, DELETE /api/posts/{id}
func PostItemHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAdmin(w, r)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Неверный формат ID публикации.")
		return
	}

	switch r.Method {
	case http.MethodPut:
		var post models.Post
		if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
			respondError(w, http.StatusBadRequest, "Неверный формат запроса: "+err.Error())
			return
		}
		defer r.Body.Close()

		post.Id = id
		if err := data.UpdatePost(&post); err != nil {
			if err == sql.ErrNoRows {
				respondError(w, http.StatusNotFound, "Публикация не найдена.")
				return
			}
			log.Printf("Ошибка при обновлении публикации %d пользователем %d: %v", id, userID, err)
			respondError(w, http.StatusInternalServerError, "Не удалось обновить публикацию: "+err.Error())
			return
		}
		respondJSON(w, http.StatusOK, post)

	case http.MethodDelete:
		if err := data.DeletePost(id); err != nil {
			if err == sql.ErrNoRows {
				respondError(w, http.StatusNotFound, "Публикация не найдена.")
				return
			}
			log.Printf("Ошибка при удалении публикации %d пользователем %d: %v", id, userID, err)
			respondError(w, http.StatusInternalServerError, "Не удалось удалить публикацию: "+err.Error())
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})

	default:
		respondError(w, http.StatusMethodNotAllowed, "Метод не разрешен.")
	}
}
