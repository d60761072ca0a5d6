package data

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // Драйвер SQLite, импортируется для побочных эффектов (регистрации драйвера)
)

var MainDB *sqlx.DB // Глобальная переменная для основного пула подключений к БД
var AuthDB *sqlx.DB // Глобальная переменная для пула подключений к БД аутентификации

const defaultMainDbName = "PlannerServer.db"
const defaultAuthDbName = "AuthServer.db"

// getDbPath определяет путь к файлу БД.
// Используем текущую рабочую директорию: это предсказуемо и при запуске
// `go run main.go`, и когда собранный бинарник лежит в корне проекта.
func getDbPath(defaultDbName string) (string, error) {
	currentWorkDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %w", err)
	}
	dataSourceName := filepath.Join(currentWorkDir, defaultDbName)

	log.Printf("Using database file at: %s", dataSourceName)
	return dataSourceName, nil
}

// InitMainDB инициализирует подключение к основной базе данных SQLite (PlannerServer.db).
func InitMainDB() error {
	dataSourceName, err := getDbPath(defaultMainDbName)
	if err != nil {
		return err
	}

	MainDB, err = sqlx.Connect("sqlite3", dataSourceName+"?_foreign_keys=on") // Включаем поддержку внешних ключей
	if err != nil {
		return fmt.Errorf("failed to connect to main database: %w", err)
	}

	if err = MainDB.Ping(); err != nil {
		return fmt.Errorf("failed to ping main database: %w", err)
	}
	log.Println("Successfully connected to the main database (PlannerServer.db).")

	// Создание таблиц основной БД (все, кроме Users)
	schema := GetMainSchema()
	if _, err = MainDB.Exec(schema); err != nil {
		return fmt.Errorf("failed to execute main schema: %w", err)
	}
	log.Println("Main database schema applied successfully.")

	// Обновляем схему для добавления недостающих полей в CalendarEvents
	if err = EnsureCalendarEventsSchemaUpgrade(); err != nil {
		return fmt.Errorf("failed to upgrade calendar events schema: %w", err)
	}

	return nil
}

// InitAuthDB инициализирует подключение к базе данных аутентификации (AuthServer.db).
func InitAuthDB(filePath string) error {
	log.Printf("Using database file at: %s", filePath)
	var err error
	// Добавляем ?_loc=auto для автоматического определения формата времени
	AuthDB, err = sqlx.Connect("sqlite3", filePath+"?_loc=auto")
	if err != nil {
		return fmt.Errorf("failed to connect to auth database: %w", err)
	}

	if err = AuthDB.Ping(); err != nil {
		return fmt.Errorf("failed to ping auth database: %w", err)
	}
	log.Println("Successfully connected to the auth database (AuthServer.db).")

	// Создание таблицы Users для БД аутентификации
	schema := GetAuthSchema()
	if _, err = AuthDB.Exec(schema); err != nil {
		return fmt.Errorf("failed to execute auth schema: %w", err)
	}
	log.Println("Auth database schema (Users table) applied successfully.")

	if err = EnsureUsersSchemaUpgrade(); err != nil {
		return fmt.Errorf("failed to upgrade users schema: %w", err)
	}
	return nil
}

// GetMainDB возвращает текущее подключение к основной базе данных.
func GetMainDB() *sqlx.DB {
	return MainDB
}

// GetAuthDB возвращает текущее подключение к базе данных аутентификации.
func GetAuthDB() *sqlx.DB {
	return AuthDB
}

// InitDB инициализирует обе базы данных.
// Порядок не важен: зависимостей между Auth и Main нет.
func InitDB() error {
	log.Println("Initializing databases...")
	if err := InitAuthDB(defaultAuthDbName); err != nil {
		return fmt.Errorf("failed to initialize AuthDB: %w", err)
	}
	if err := InitMainDB(); err != nil {
		return fmt.Errorf("failed to initialize MainDB: %w", err)
	}
	log.Println("All databases initialized successfully.")
	return nil
}

// EnsureCalendarEventsSchemaUpgrade добавляет недостающие поля в таблицу CalendarEvents.
func EnsureCalendarEventsSchemaUpgrade() error {
	// Проверяем, есть ли поле RecurrenceJson (добавлено позже базовой схемы)
	var recurrenceColumnExists bool
	err := MainDB.Get(&recurrenceColumnExists, `
		SELECT COUNT(*) > 0
		FROM pragma_table_info('CalendarEvents')
		WHERE name = 'RecurrenceJson'
	`)
	if err != nil {
		log.Printf("Ошибка проверки колонки RecurrenceJson: %v", err)
	} else if !recurrenceColumnExists {
		_, err = MainDB.Exec(`ALTER TABLE CalendarEvents ADD COLUMN RecurrenceJson TEXT`)
		if err != nil {
			return fmt.Errorf("failed to add RecurrenceJson column: %w", err)
		}
		log.Printf("Добавлена колонка RecurrenceJson в таблицу CalendarEvents")
	}

	return nil
}

// EnsureUsersSchemaUpgrade добавляет недостающие поля в таблицу Users.
func EnsureUsersSchemaUpgrade() error {
	var isAdminColumnExists bool
	err := AuthDB.Get(&isAdminColumnExists, `
		SELECT COUNT(*) > 0
		FROM pragma_table_info('Users')
		WHERE name = 'IsAdmin'
	`)
	if err != nil {
		log.Printf("Ошибка проверки колонки IsAdmin: %v", err)
	} else if !isAdminColumnExists {
		_, err = AuthDB.Exec(`ALTER TABLE Users ADD COLUMN IsAdmin BOOLEAN DEFAULT 0`)
		if err != nil {
			return fmt.Errorf("failed to add IsAdmin column: %w", err)
		}
		log.Printf("Добавлена колонка IsAdmin в таблицу Users")
	}

	return nil
}
