package controllers

import (
	"encoding/json"
	"log"
	"net/http"
)

// respondJSON отправляет ответ в формате JSON с указанным статусом.
func respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("Error encoding JSON response: %v", err)
			// Не отправляем http.Error здесь, так как заголовки уже отправлены
		}
	}
}

// respondError отправляет JSON с описанием ошибки и указанным статусом.
func respondError(w http.ResponseWriter, statusCode int, message string) {
	log.Printf("HTTP Error %d: %s", statusCode, message)
	response := map[string]string{"error": message}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Error encoding error JSON response: %v", err)
	}
}
