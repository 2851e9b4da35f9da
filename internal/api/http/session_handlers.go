package http

import (
	"encoding/json"
	"net/http"

	"github.com/brightpath/brightpath-lms/internal/assess"
	auth "github.com/brightpath/brightpath-lms/internal/auth/middleware"
	"github.com/brightpath/brightpath-lms/internal/content"
	"github.com/brightpath/brightpath-lms/internal/progress"
	syncx "github.com/brightpath/brightpath-lms/internal/sync"

	"github.com/go-chi/chi/v5"
)

// CreateSessionHandler runs the gating check for lesson-bound assessments,
// then asks the manager to create a session. Creation failures refuse the
// start outright; no partial state is written.
func CreateSessionHandler(mgr *assess.Manager, p assess.Provider, cs content.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assessmentID := chi.URLParam(r, "assessmentID")
		learnerID := auth.SubjectFromContext(r.Context())

		def, err := p.Definition(r.Context(), assessmentID)
		if err != nil {
			writeErr(w, err)
			return
		}
		if def.LessonID != "" {
			sections, err := cs.Sections(r.Context(), def.CourseID)
			if err != nil {
				writeErr(w, err)
				return
			}
			completions, err := cs.Completions(r.Context(), learnerID, def.CourseID)
			if err != nil {
				writeErr(w, err)
				return
			}
			unlocked := progress.ComputeUnlocked(progress.Flatten(sections), completions)
			if !unlocked[def.LessonID] {
				writeErr(w, assess.ErrLessonLocked)
				return
			}
		}
		v, err := mgr.Create(r.Context(), learnerID, assessmentID)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, v)
	}
}

func StartSessionHandler(mgr *assess.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := mgr.Start(r.Context())
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, v)
	}
}

func AnswerHandler(mgr *assess.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			OptionID string `json:"option_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		v, err := mgr.Answer(r.Context(), req.OptionID)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, v)
	}
}

func AdvanceHandler(mgr *assess.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := mgr.Advance(r.Context())
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, v)
	}
}

// GetSessionHandler returns the live session view, resuming from the
// snapshot store when the process has none in memory. A resumed session
// already past its deadline comes back terminal.
func GetSessionHandler(mgr *assess.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := mgr.State(r.Context())
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, v)
	}
}

// GuardEventHandler records a client-reported navigation interception and
// answers with the warning toast to show. Soft deterrent only.
func GuardEventHandler(guard *assess.SoftLockGuard, events assess.EventSink) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			SessionID string `json:"session_id"`
			Kind      string `json:"kind"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		warning, ok := guard.Intercept(req.SessionID, req.Kind)
		if ok && events != nil {
			events.Record(r.Context(), syncx.TypeGuardTripped, req.SessionID,
				map[string]string{"kind": req.Kind})
		}
		writeJSON(w, http.StatusOK, map[string]any{"intercepted": ok, "warning": warning})
	}
}
