package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"gitlab.com/pagetest.net/internal/static/errs"
)

type ErrorMessage struct {
	Success    bool   `json:"success"`
	Message    string `json:"error"`
	StatusCode int    `json:"-"`
}

func WriteError(w http.ResponseWriter, err ErrorMessage) {
	WriteJSON(w, err.StatusCode, err)
}

func WriteSuccess(w http.ResponseWriter, data interface{}) {
	WriteJSON(w, http.StatusOK, data)
}

func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// FromError maps a pipeline error to its HTTP status and a message telling
// apart requests that reached the target from those that never could.
func FromError(err error) ErrorMessage {
	msg := ErrorMessage{Message: err.Error(), StatusCode: http.StatusInternalServerError}
	switch {
	case errors.Is(err, errs.ErrInvalidInput):
		msg.StatusCode = http.StatusBadRequest
	case errors.Is(err, errs.ErrNotFound):
		msg.StatusCode = http.StatusNotFound
	case errs.Attempted(err):
		msg.Message = "attempted and failed: " + msg.Message
	default:
		msg.Message = "could not attempt: " + msg.Message
	}
	return msg
}
