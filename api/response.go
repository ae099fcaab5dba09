package api

import (
	"encoding/json"
	"net/http"
)

type ErrorCode string

const (
	InvalidBody      ErrorCode = "InvalidBody"
	ValidationFailed ErrorCode = "ValidationError"
	AlreadyExists    ErrorCode = "AlreadyExists"
	NotFound         ErrorCode = "NotFound"
	InternalError    ErrorCode = "InternalError"
)

type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, statusCode int, code ErrorCode, message string) {
	writeJSON(w, statusCode, Error{Code: code, Message: message})
}
