package json

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
)

// FailureResponse is the error half of the API envelope. Every rejected
// request carries a short human-readable reason for the requester only;
// nothing is ever broadcast for a failed action.
type FailureResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func WriteFailure(w http.ResponseWriter, status int, msg string) {
	Write(w, status, FailureResponse{Success: false, Error: msg})
}

func WriteValidationFailure(w http.ResponseWriter, err error) {
	WriteFailure(w, http.StatusBadRequest, err.Error())
}

func WriteAuthorizationFailure(w http.ResponseWriter, msg string) {
	WriteFailure(w, http.StatusForbidden, msg)
}

func WriteNotFoundFailure(w http.ResponseWriter, msg string) {
	WriteFailure(w, http.StatusNotFound, msg)
}

func WriteInternalFailure(w http.ResponseWriter, err error) {
	log.Printf("Internal error: %v", err)
	WriteFailure(w, http.StatusInternalServerError, "An unexpected error occurred")
}

// WriteUpstreamFailure reports a failed external-service call. The caller
// gets a generic reason; the detail stays in the server log.
func WriteUpstreamFailure(w http.ResponseWriter, err error) {
	log.Printf("External service error: %v", err)
	WriteFailure(w, http.StatusBadGateway, "Game service is unavailable")
}

func WriteRateLimitError(w http.ResponseWriter, retryAfter int) {
	w.Header().Set("Content-Type", "application/json")
	if retryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	}
	w.WriteHeader(http.StatusTooManyRequests)
	_ = json.NewEncoder(w).Encode(FailureResponse{
		Success: false,
		Error:   "Too many requests. Please try again later.",
	})
}
