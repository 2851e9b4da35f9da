package http

import (
	"encoding/json"
	"net/http"

	"github.com/brightpath/brightpath-lms/internal/assess"

	"github.com/go-chi/chi/v5"
)

// UploadAssessmentHandler stores an authored definition. Questions are not
// validated for exactly-one-correct-option; the first flagged option is
// canonical at scoring time.
func UploadAssessmentHandler(p assess.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var def assess.Definition
		if err := json.NewDecoder(r.Body).Decode(&def); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if def.ID == "" {
			http.Error(w, "id required", http.StatusBadRequest)
			return
		}
		if len(def.Questions) == 0 {
			writeErr(w, assess.ErrNoQuestions)
			return
		}
		if err := p.PutDefinition(r.Context(), def); err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"id": def.ID})
	}
}

// GetAssessmentHandler returns the learner-safe view: correct flags are
// stripped before serving.
func GetAssessmentHandler(p assess.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		def, err := p.Definition(r.Context(), chi.URLParam(r, "assessmentID"))
		if err != nil {
			writeErr(w, err)
			return
		}
		for i := range def.Questions {
			for j := range def.Questions[i].Options {
				def.Questions[i].Options[j].Correct = false
			}
		}
		writeJSON(w, http.StatusOK, def)
	}
}
