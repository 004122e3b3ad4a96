package utils

import (
	"encoding/json"
	"net/http"
)

// MessageResponse is the body of every error reply.
type MessageResponse struct {
	Message string `json:"message"`
}

// ResponseJSON writes body as JSON with the given status code
func ResponseJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}

// ------------- Success responses -------------

// returns 200 OK
func ResponseSuccess(w http.ResponseWriter, body any) {
	ResponseJSON(w, http.StatusOK, body)
}

// ------------- Error responses -------------

func ResponseMessage(w http.ResponseWriter, code int, message string) {
	ResponseJSON(w, code, MessageResponse{Message: message})
}

// returns 400 Bad Request
func ResponseBadRequest(w http.ResponseWriter, message string) {
	ResponseMessage(w, http.StatusBadRequest, message)
}

// returns 401 Unauthorized
func ResponseUnauthorized(w http.ResponseWriter, message string) {
	ResponseMessage(w, http.StatusUnauthorized, message)
}

// returns 404 Not Found
func ResponseNotFound(w http.ResponseWriter, message string) {
	ResponseMessage(w, http.StatusNotFound, message)
}

// returns 409 Conflict
func ResponseConflict(w http.ResponseWriter, message string) {
	ResponseMessage(w, http.StatusConflict, message)
}

// returns 502 Bad Gateway
func ResponseBadGateway(w http.ResponseWriter, message string) {
	ResponseMessage(w, http.StatusBadGateway, message)
}

// returns 500 Internal Server Error
func ResponseInternalError(w http.ResponseWriter, message string) {
	ResponseMessage(w, http.StatusInternalServerError, message)
}
