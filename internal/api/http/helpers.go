package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/brightpath/brightpath-lms/internal/assess"
	"github.com/brightpath/brightpath-lms/internal/content"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeErr maps the engine's error taxonomy onto HTTP statuses. Network
// errors report 502 so clients know to retry via resume rather than treat
// the attempt as lost.
func writeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, assess.ErrNoQuestions):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, assess.ErrLimitExceeded):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, assess.ErrLessonLocked):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, assess.ErrSessionActive):
		http.Error(w, "an assessment is already in progress", http.StatusConflict)
	case errors.Is(err, assess.ErrNoSession),
		errors.Is(err, assess.ErrAssessmentNotFound),
		errors.Is(err, content.ErrLessonNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, assess.ErrNotActive),
		errors.Is(err, assess.ErrAlreadyStarted),
		errors.Is(err, assess.ErrUnanswered):
		http.Error(w, err.Error(), http.StatusConflict)
	case assess.IsNetworkError(err):
		http.Error(w, err.Error(), http.StatusBadGateway)
	default:
		http.Error(w, err.Error(), http.StatusBadRequest)
	}
}
