package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/brightpath/brightpath-lms/internal/assess"
	auth "github.com/brightpath/brightpath-lms/internal/auth/middleware"
	"github.com/brightpath/brightpath-lms/internal/rbac"

	"github.com/go-chi/chi/v5"
)

// AttemptLister serves the cross-learner listing teachers see.
type AttemptLister interface {
	ListAttempts(ctx context.Context, assessmentID string, limit int) ([]assess.AttemptRecord, error)
}

// AttemptsListHandler returns attempt history for an assessment: the
// caller's own attempts for learners, all attempts for roles holding
// attempt:view-all.
func AttemptsListHandler(p assess.Provider, lister AttemptLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assessmentID := chi.URLParam(r, "assessmentID")
		role := rbac.RoleFromContext(r.Context())

		if rbac.Has(role, "attempt:view-all") {
			limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
			recs, err := lister.ListAttempts(r.Context(), assessmentID, limit)
			if err != nil {
				writeErr(w, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"attempts": recs})
			return
		}

		learnerID := auth.SubjectFromContext(r.Context())
		recs, err := p.AttemptHistory(r.Context(), learnerID, assessmentID)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"attempts": recs})
	}
}
