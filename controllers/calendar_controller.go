package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"planner_server_go/data"
	"planner_server_go/middleware"
	"planner_server_go/models"
	"planner_server_go/scheduler"

	"github.com/gorilla/mux"
)

// calendarService устанавливается из main при старте сервера.
var calendarService *scheduler.Service

// InitCalendarService передает контроллеру собранный сервис событий.
func InitCalendarService(service *scheduler.Service) {
	calendarService = service
}

// parseEventDates разбирает startDate/endDate запроса.
// endDate необязателен: при отсутствии используется startDate.
func parseEventDates(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("startDate должен быть в формате RFC3339: " + err.Error())
	}
	end := start
	if endStr != "" {
		end, err = time.Parse(time.RFC3339, endStr)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("endDate должен быть в формате RFC3339: " + err.Error())
		}
	}
	return start, end, nil
}

func normalizeEventType(eventType string) (string, bool) {
	switch eventType {
	case "":
		return models.EventTypeEvent, true
	case models.EventTypeEvent, models.EventTypeClass:
		return eventType, true
	}
	return "", false
}

// CreateEventHandler обрабатывает создание события календаря.
// POST /api/calendar/events
// Если reminders не переданы, применяется набор по умолчанию {1440, 60, 15, 5}.
func CreateEventHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Не удалось получить ID пользователя из токена.")
		return
	}

	var req models.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Неверный формат запроса: "+err.Error())
		return
	}
	defer r.Body.Close()

	if req.Title == "" || req.StartDate == "" {
		respondError(w, http.StatusBadRequest, "Поля title и startDate обязательны.")
		return
	}

	start, end, err := parseEventDates(req.StartDate, req.EndDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	eventType, ok := normalizeEventType(req.Type)
	if !ok {
		respondError(w, http.StatusBadRequest, "Поле type должно быть 'event' или 'class'.")
		return
	}

	reminders := scheduler.DefaultReminders
	if req.Reminders != nil {
		reminders = *req.Reminders
	}

	draft := &models.CalendarEvent{
		Title:          req.Title,
		Type:           eventType,
		StartDate:      start,
		EndDate:        end,
		IsAllDay:       req.IsAllDay,
		Location:       req.Location,
		Description:    req.Description,
		Color:          req.Color,
		RecurrenceJson: req.RecurrenceJson,
		Reminders:      reminders,
	}

	created, err := calendarService.OnEventCreated(r.Context(), userID, draft)
	if err != nil {
		log.Printf("Ошибка при создании события для пользователя %d: %v", userID, err)
		respondError(w, http.StatusInternalServerError, "Не удалось создать событие: "+err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

// GetEventsHandler возвращает события пользователя в интервале дат.
// GET /api/calendar/events?start=...&end=... (RFC3339)
func GetEventsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Не удалось получить ID пользователя из токена.")
		return
	}

	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")
	if startStr == "" || endStr == "" {
		respondError(w, http.StatusBadRequest, "Параметры start и end обязательны (RFC3339).")
		return
	}

	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Параметр start должен быть в формате RFC3339: "+err.Error())
		return
	}
	end, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Параметр end должен быть в формате RFC3339: "+err.Error())
		return
	}

	events, err := data.GetCalendarEventsByOwnerAndRange(userID, start, end)
	if err != nil {
		log.Printf("Ошибка при получении событий для пользователя %d: %v", userID, err)
		respondError(w, http.StatusInternalServerError, "Не удалось получить события.")
		return
	}
	if events == nil {
		events = []models.CalendarEvent{}
	}

	respondJSON(w, http.StatusOK, events)
}

// eventFromPath извлекает событие по {id} из пути, ограничиваясь владельцем.
func eventFromPath(w http.ResponseWriter, r *http.Request, userID int64) *models.CalendarEvent {
	idStr := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Неверный формат ID события.")
		return nil
	}

	event, err := data.GetCalendarEventByID(id, userID)
	if err != nil {
		log.Printf("Ошибка при получении события %d для пользователя %d: %v", id, userID, err)
		respondError(w, http.StatusInternalServerError, "Не удалось получить событие.")
		return nil
	}
	if event == nil {
		respondError(w, http.StatusNotFound, "Событие не найдено.")
		return nil
	}
	return event
}

// UpdateEventHandler обрабатывает обновление события.
// PUT /api/calendar/events/{id}
// Любое изменение полей влечет полное пере-планирование напоминаний:
// старые дескрипторы отменяются до выдачи новых.
func UpdateEventHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Не удалось получить ID пользователя из токена.")
		return
	}

	previous := eventFromPath(w, r, userID)
	if previous == nil {
		return
	}

	var req models.UpdateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Неверный формат запроса: "+err.Error())
		return
	}
	defer r.Body.Close()

	if req.Title == "" || req.StartDate == "" {
		respondError(w, http.StatusBadRequest, "Поля title и startDate обязательны.")
		return
	}

	start, end, err := parseEventDates(req.StartDate, req.EndDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	eventType, ok := normalizeEventType(req.Type)
	if !ok {
		respondError(w, http.StatusBadRequest, "Поле type должно быть 'event' или 'class'.")
		return
	}

	// reminders без значения означает "оставить прежний список"
	reminders := previous.Reminders
	if req.Reminders != nil {
		reminders = *req.Reminders
	}

	draft := &models.CalendarEvent{
		Title:          req.Title,
		Type:           eventType,
		StartDate:      start,
		EndDate:        end,
		IsAllDay:       req.IsAllDay,
		Location:       req.Location,
		Description:    req.Description,
		Color:          req.Color,
		RecurrenceJson: req.RecurrenceJson,
		Reminders:      reminders,
	}

	updated, err := calendarService.OnEventUpdated(r.Context(), userID, draft, previous)
	if err != nil {
		log.Printf("Ошибка при обновлении события %d для пользователя %d: %v", previous.Id, userID, err)
		respondError(w, http.StatusInternalServerError, "Не удалось обновить событие: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

// DeleteEventHandler обрабатывает удаление события.
// DELETE /api/calendar/events/{id}
// Все дескрипторы уведомлений события отменяются до удаления записи.
func DeleteEventHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Не удалось получить ID пользователя из токена.")
		return
	}

	event := eventFromPath(w, r, userID)
	if event == nil {
		return
	}

	if err := calendarService.OnEventDeleted(r.Context(), userID, event); err != nil {
		log.Printf("Ошибка при удалении события %d для пользователя %d: %v", event.Id, userID, err)
		respondError(w, http.StatusInternalServerError, "Не удалось удалить событие: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// RecomputeScheduleHandler восстанавливает уведомления события из его
// Reminders и StartDate. POST /api/calendar/events/{id}/recompute
// Используется клиентом после перезагрузки устройства, когда системные
// будильники потеряны, а запись события еще хранит устаревшие дескрипторы.
func RecomputeScheduleHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Не удалось получить ID пользователя из токена.")
		return
	}

	event := eventFromPath(w, r, userID)
	if event == nil {
		return
	}

	repaired, err := calendarService.RecomputeSchedule(r.Context(), userID, event)
	if err != nil {
		log.Printf("Ошибка при восстановлении расписания события %d для пользователя %d: %v", event.Id, userID, err)
		respondError(w, http.StatusInternalServerError, "Не удалось восстановить расписание уведомлений: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, repaired)
}
