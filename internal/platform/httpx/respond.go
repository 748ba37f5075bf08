// Package httpx provides JSON response utilities for the API surface.
package httpx

import (
	"encoding/json"
	"net/http"
)

// Envelope is the response wrapper every mutating endpoint returns.
type Envelope struct {
	Success bool   `json:"success"`
	UserID  int64  `json:"userId,omitempty"`
	ID      int64  `json:"id,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Success sends a bare success envelope.
func Success(w http.ResponseWriter) {
	JSON(w, http.StatusOK, Envelope{Success: true})
}

// Created sends a success envelope carrying the id of a new row.
func Created(w http.ResponseWriter, id int64) {
	JSON(w, http.StatusOK, Envelope{Success: true, ID: id})
}

// Fail sends a failure envelope with the given status and message.
func Fail(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, Envelope{Success: false, Error: msg})
}

// DecodeJSON decodes a JSON request body into the target struct.
func DecodeJSON(r *http.Request, target any) error {
	return json.NewDecoder(r.Body).Decode(target)
}
