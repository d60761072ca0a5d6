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
)

// NotesCollectionHandler обрабатывает запросы к коллекции заметок.
// GET /api/notes - получить все заметки пользователя, POST /api/notes - создать заметку.
func NotesCollectionHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Не удалось получить ID пользователя из токена.")
		return
	}

	switch r.Method {
	case http.MethodGet:
		notes, err := data.GetAllNotesByOwner(userID)
		if err != nil {
			log.Printf("Ошибка при получении заметок пользователя %d: %v", userID, err)
			respondError(w, http.StatusInternalServerError, "Не удалось получить заметки.")
			return
		}
		if notes == nil {
			notes = []models.Note{}
		}
		respondJSON(w, http.StatusOK, notes)

	case http.MethodPost:
		var note models.Note
		if err := json.NewDecoder(r.Body).Decode(&note); err != nil {
			respondError(w, http.StatusBadRequest, "Неверный формат запроса: "+err.Error())
			return
		}
		defer r.Body.Close()

		if strings.TrimSpace(note.Title) == "" {
			respondError(w, http.StatusBadRequest, "Название заметки не может быть пустым.")
			return
		}

		note.OwnerId = userID
		id, err := data.CreateNote(&note)
		if err != nil {
			log.Printf("Ошибка при создании заметки для пользователя %d: %v", userID, err)
			respondError(w, http.StatusInternalServerError, "Не удалось создать заметку: "+err.Error())
			return
		}
		note.Id = id
		respondJSON(w, http.StatusCreated, note)

	default:
		respondError(w, http.StatusMethodNotAllowed, "Метод не разрешен.")
	}
}

// NoteItemHandler обрабатывает запросы к отдельной заметке.
// GET /api/note?id=X - получить, PUT /api/note?id=X - обновить, DELETE /api/note?id=X - удалить.
func NoteItemHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Не удалось получить ID пользователя из токена.")
		return
	}

	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Неверный формат параметра id.")
		return
	}

	switch r.Method {
	case http.MethodGet:
		note, err := data.GetNoteByID(id, userID)
		if err != nil {
			log.Printf("Ошибка при получении заметки %d пользователя %d: %v", id, userID, err)
			respondError(w, http.StatusInternalServerError, "Не удалось получить заметку.")
			return
		}
		if note == nil {
			respondError(w, http.StatusNotFound, "Заметка не найдена.")
			return
		}
		respondJSON(w, http.StatusOK, note)

	case http.MethodPut:
		var note models.Note
		if err := json.NewDecoder(r.Body).Decode(&note); err != nil {
			respondError(w, http.StatusBadRequest, "Неверный формат запроса: "+err.Error())
			return
		}
		defer r.Body.Close()

		note.Id = id
		note.OwnerId = userID
		if err := data.UpdateNote(&note); err != nil {
			if err == sql.ErrNoRows {
				respondError(w, http.StatusNotFound, "Заметка не найдена.")
				return
			}
			log.Printf("Ошибка при обновлении заметки %d пользователя %d: %v", id, userID, err)
			respondError(w, http.StatusInternalServerError, "Не удалось обновить заметку: "+err.Error())
			return
		}
		respondJSON(w, http.StatusOK, note)

	case http.MethodDelete:
		if err := data.DeleteNote(id, userID); err != nil {
			if err == sql.ErrNoRows {
				respondError(w, http.StatusNotFound, "Заметка не найдена.")
				return
			}
			log.Printf("Ошибка при удалении заметки %d пользователя %d: %v", id, userID, err)
			respondError(w, http.StatusInternalServerError, "Не удалось удалить заметку: "+err.Error())
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})

	default:
		respondError(w, http.StatusMethodNotAllowed, "Метод не разрешен.")
	}
}
