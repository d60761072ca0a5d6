package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"planner_server_go/controllers"
	"planner_server_go/data"
	"planner_server_go/middleware"
	"planner_server_go/notify"
	"planner_server_go/scheduler"

	"github.com/gorilla/mux"
)

func main() {
	// Инициализация баз данных
	if err := data.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Сервис доставки уведомлений: локальные таймеры, срабатывания пока в лог.
	delivery := notify.NewLocalService(nil)
	defer delivery.Close()

	// Планировщик напоминаний и сервис событий календаря.
	// Планирование пропускается, если пользователь выключил уведомления
	// в настройках или доставка не разрешена.
	eventService := scheduler.NewService(data.NewSQLiteEventStore(), scheduler.New(delivery))
	eventService.PermissionGranted = func(ctx context.Context, ownerID int64) bool {
		if !delivery.RequestPermission(ctx) {
			return false
		}
		settings, err := data.GetUserSettings(ownerID)
		if err != nil {
			log.Printf("Не удалось получить настройки пользователя %d, напоминания будут запланированы: %v", ownerID, err)
			return true
		}
		return settings.NotificationsEnabled
	}
	controllers.InitCalendarService(eventService)

	// Создаем новый маршрутизатор gorilla/mux
	router := mux.NewRouter()

	// Маршруты аутентификации (открытые)
	// Клиент ожидает /api/auth/...
	authRouter := router.PathPrefix("/api/auth").Subrouter()
	authRouter.HandleFunc("/register", controllers.RegisterHandler).Methods(http.MethodPost)
	authRouter.HandleFunc("/login", controllers.LoginHandler).Methods(http.MethodPost)

	// Создаем подмаршрутизатор для /api, к которому будет применяться JWTMiddleware
	apiRouter := router.PathPrefix("/api").Subrouter()
	apiRouter.Use(middleware.JWTMiddleware) // Применяем middleware ко всем маршрутам /api

	// Защищенный маршрут для обновления профиля пользователя
	apiRouter.HandleFunc("/auth/profile", controllers.UpdateProfileHandler).Methods(http.MethodPut)

	// Маршруты календаря
	// GET /api/calendar/events?start=...&end=... - события за интервал, POST - создать событие
	calendarRouter := apiRouter.PathPrefix("/calendar").Subrouter()
	calendarRouter.HandleFunc("/events", controllers.GetEventsHandler).Methods(http.MethodGet)
	calendarRouter.HandleFunc("/events", controllers.CreateEventHandler).Methods(http.MethodPost)
	calendarRouter.HandleFunc("/events/{id:[0-9]+}", controllers.UpdateEventHandler).Methods(http.MethodPut)
	calendarRouter.HandleFunc("/events/{id:[0-9]+}", controllers.DeleteEventHandler).Methods(http.MethodDelete)
	// Восстановление уведомлений события после потери системных будильников
	calendarRouter.HandleFunc("/events/{id:[0-9]+}/recompute", controllers.RecomputeScheduleHandler).Methods(http.MethodPost)

	// Маршруты для заметок
	// GET /api/notes - получить все заметки, POST /api/notes - создать заметку
	apiRouter.HandleFunc("/notes", controllers.NotesCollectionHandler).Methods(http.MethodGet, http.MethodPost)
	// GET /api/note?id=X - получить заметку, PUT /api/note?id=X - обновить, DELETE /api/note?id=X - удалить
	apiRouter.HandleFunc("/note", controllers.NoteItemHandler).Methods(http.MethodGet, http.MethodPut, http.MethodDelete)

	// Маршруты для публикаций (список виден всем, изменение - только админам)
	apiRouter.HandleFunc("/posts", controllers.PostsCollectionHandler).Methods(http.MethodGet, http.MethodPost)
	apiRouter.HandleFunc("/posts/{id:[0-9]+}", controllers.PostItemHandler).Methods(http.MethodPut, http.MethodDelete)

	// Управление пользователями из админского раздела
	apiRouter.HandleFunc("/users", controllers.UsersCollectionHandler).Methods(http.MethodGet)
	apiRouter.HandleFunc("/users/{id:[0-9]+}", controllers.UserItemHandler).Methods(http.MethodPut, http.MethodDelete)

	// Настройки пользователя (фон, включение уведомлений)
	apiRouter.HandleFunc("/settings", controllers.SettingsHandler).Methods(http.MethodGet, http.MethodPut)

	// Маршрут для проверки состояния сервера (открытый, без JWT)
	// Клиент ожидает /api/Service/status
	router.HandleFunc("/api/Service/status", controllers.HealthCheck).Methods(http.MethodGet)

	// Маршрут для загрузки файлов (например, фото профиля)
	fileRouter := apiRouter.PathPrefix("/file").Subrouter()
	fileRouter.HandleFunc("/upload", controllers.UploadFileHandler).Methods(http.MethodPost)

	// Отдача статических файлов из директории /uploads.
	// Этот маршрут НЕ защищен JWT, чтобы файлы были доступны по прямой ссылке.
	router.PathPrefix("/uploads/").Handler(http.StripPrefix("/uploads/", http.FileServer(http.Dir("./uploads"))))

	// Базовый обработчик для проверки работы сервера
	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "Привет! Сервер PlannerServerGO запущен. Используется gorilla/mux.")
	}).Methods(http.MethodGet)

	log.Println("Запуск сервера на порту :8080")
	if err := http.ListenAndServe(":8080", router); err != nil {
		log.Fatal(err)
	}
}
