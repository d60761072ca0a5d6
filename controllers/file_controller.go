package controllers

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const maxUploadSize = 5 * 1024 * 1024 // 5 MB
const profileImagesDir = "./uploads/profile_images/"

// UploadFileHandler обрабатывает загрузку файлов (например, фото профиля).
func UploadFileHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "Метод не разрешен. Используйте POST.")
		return
	}

	// Устанавливаем максимальный размер тела запроса
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		if err.Error() == "http: request body too large" {
			respondError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("Размер файла не должен превышать %dMB.", maxUploadSize/1024/1024))
		} else {
			respondError(w, http.StatusBadRequest, "Не удалось обработать multipart form: "+err.Error())
		}
		return
	}

	file, handler, err := r.FormFile("file") // "file" - это имя поля, которое ожидает клиент
	if err != nil {
		respondError(w, http.StatusBadRequest, "Не удалось получить файл из запроса: "+err.Error())
		return
	}
	defer file.Close()

	// Проверка расширения файла
	ext := strings.ToLower(filepath.Ext(handler.Filename))
	allowedExtensions := map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true}
	if !allowedExtensions[ext] {
		respondError(w, http.StatusBadRequest, "Недопустимый тип файла. Разрешены: jpg, jpeg, png, gif.")
		return
	}

	// Создаем директорию, если ее нет
	if err := os.MkdirAll(profileImagesDir, os.ModePerm); err != nil {
		log.Printf("Ошибка при создании директории %s: %v", profileImagesDir, err)
		respondError(w, http.StatusInternalServerError, "Не удалось создать директорию для загрузки.")
		return
	}

	// Генерируем уникальное имя файла
	uniqueFileName := uuid.New().String() + ext
	filePath := filepath.Join(profileImagesDir, uniqueFileName)

	dst, err := os.Create(filePath)
	if err != nil {
		log.Printf("Ошибка при создании файла %s: %v", filePath, err)
		respondError(w, http.StatusInternalServerError, "Не удалось создать файл на сервере.")
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		log.Printf("Ошибка при копировании файла %s: %v", filePath, err)
		respondError(w, http.StatusInternalServerError, "Не удалось сохранить файл на сервере.")
		return
	}

	// Возвращаем относительный путь: FileServer настроен на /uploads/,
	// клиент преобразует его в полный URL.
	fileAccessURL := "/uploads/profile_images/" + uniqueFileName

	log.Printf("Файл успешно загружен: %s, доступен по URL: %s", filePath, fileAccessURL)

	// Клиент ожидает JSON с полем "url"
	response := map[string]string{"url": fileAccessURL}
	respondJSON(w, http.StatusOK, response)
}
