package data

const usersSchema = `
CREATE TABLE IF NOT EXISTS Users (
    Id INTEGER PRIMARY KEY AUTOINCREMENT,
    Username TEXT NOT NULL UNIQUE,
    Email TEXT NOT NULL UNIQUE,
    DisplayName TEXT NOT NULL,
    PhotoUrl TEXT,
    IsAdmin BOOLEAN DEFAULT 0,
    PasswordHash TEXT NOT NULL,
    CreatedAt DATETIME NOT NULL,
    UpdatedAt DATETIME NOT NULL
);
`

const mainSchema = `
CREATE TABLE IF NOT EXISTS CalendarEvents (
    Id INTEGER PRIMARY KEY AUTOINCREMENT,
    OwnerId INTEGER NOT NULL, -- Ссылается на Users.Id в AuthDB. Прямой FK не ставим между разными файлами БД.
    Title TEXT NOT NULL,
    Type TEXT NOT NULL DEFAULT 'event', -- "event" или "class"
    StartDate DATETIME NOT NULL,
    EndDate DATETIME NOT NULL,
    IsAllDay BOOLEAN DEFAULT 0,
    Location TEXT,
    Description TEXT,
    Color TEXT,
    RecurrenceJson TEXT,
    RemindersJson TEXT DEFAULT '[]',
    NotificationHandlesJson TEXT DEFAULT '[]',
    CreatedAt DATETIME NOT NULL,
    UpdatedAt DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_calendar_events_owner_start ON CalendarEvents (OwnerId, StartDate);

CREATE TABLE IF NOT EXISTS Notes (
    Id INTEGER PRIMARY KEY AUTOINCREMENT,
    OwnerId INTEGER NOT NULL, -- Ссылается на Users.Id в AuthDB
    Title TEXT NOT NULL,
    Content TEXT,
    Notes TEXT,
    CreatedAt DATETIME NOT NULL,
    UpdatedAt DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS Posts (
    Id INTEGER PRIMARY KEY AUTOINCREMENT,
    Title TEXT NOT NULL,
    Url TEXT NOT NULL,
    ImageUri TEXT,
    Icon TEXT,
    UserId INTEGER NOT NULL, -- Автор публикации, ссылается на Users.Id в AuthDB
    CreatedAt DATETIME NOT NULL,
    UpdatedAt DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS UserSettings (
    UserId INTEGER PRIMARY KEY, -- Ссылается на Users.Id в AuthDB
    BackgroundColor TEXT,
    NotificationsEnabled BOOLEAN DEFAULT 1
);
`

// GetMainSchema возвращает схему основной БД (все таблицы, кроме Users).
func GetMainSchema() string {
	return mainSchema
}

// GetAuthSchema возвращает схему БД аутентификации (только Users).
func GetAuthSchema() string {
	return usersSchema
}
