// Package res holds the JSON response helpers shared by all HTTP handlers.
package res

import (
	"encoding/json"
	"net/http"
)

// Json writes data as a JSON body with the given status code.
func Json(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// Error writes the error envelope {"error": msg} the clients decode.
func Error(w http.ResponseWriter, msg string, statusCode int) {
	Json(w, map[string]any{"error": msg}, statusCode)
}
