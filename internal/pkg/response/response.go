package response

import (
	"encoding/json"
	"io"
	"net/http"
)

// DecodeJSON decodes JSON from request body into the provided struct
func DecodeJSON(body io.ReadCloser, v interface{}) error {
	defer body.Close()
	return json.NewDecoder(body).Decode(v)
}

// Response represents a standard API response
type Response struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Data    interface{}       `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// JSON writes v as-is. List endpoints use it to return bare arrays.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Envelope sends a response wrapped in the standard envelope
func Envelope(w http.ResponseWriter, status int, message string, data interface{}) {
	JSON(w, status, Response{
		Success: status >= 200 && status < 300,
		Message: message,
		Data:    data,
	})
}

// OK sends a 200 OK response
func OK(w http.ResponseWriter, message string, data interface{}) {
	Envelope(w, http.StatusOK, message, data)
}

// Created sends a 201 Created response
func Created(w http.ResponseWriter, message string, data interface{}) {
	Envelope(w, http.StatusCreated, message, data)
}

// Error sends an error response
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Response{Success: false, Message: message})
}

// BadRequest sends a 400 Bad Request response
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, message)
}

// Unauthorized sends a 401 Unauthorized response
func Unauthorized(w http.ResponseWriter) {
	Error(w, http.StatusUnauthorized, "Unauthorized")
}

// NotFound sends a 404 Not Found response
func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, message)
}

// ValidationError sends a 422 Unprocessable Entity response
func ValidationError(w http.ResponseWriter, details map[string]string) {
	JSON(w, http.StatusUnprocessableEntity, Response{
		Success: false,
		Message: "Validation failed",
		Errors:  details,
	})
}

// InternalError sends a 500 Internal Server Error response
func InternalError(w http.ResponseWriter, message string) {
	if message == "" {
		message = "An unexpected error occurred"
	}
	Error(w, http.StatusInternalServerError, message)
}

// TooManyRequests sends a 429 Too Many Requests response
func TooManyRequests(w http.ResponseWriter) {
	Error(w, http.StatusTooManyRequests, "Too many requests, please try again later")
}
