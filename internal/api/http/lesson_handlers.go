package http

import (
	"encoding/json"
	"net/http"

	auth "github.com/brightpath/brightpath-lms/internal/auth/middleware"
	"github.com/brightpath/brightpath-lms/internal/content"
	"github.com/brightpath/brightpath-lms/internal/progress"

	"github.com/go-chi/chi/v5"
)

type outlineLesson struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Title     string `json:"title,omitempty"`
	Completed bool   `json:"completed"`
	Unlocked  bool   `json:"unlocked"`
}

type outlineSection struct {
	ID      string          `json:"id"`
	Title   string          `json:"title,omitempty"`
	Lessons []outlineLesson `json:"lessons"`
}

// CourseOutlineHandler returns the course sections with per-lesson
// completed/unlocked flags, gating applied server-side.
func CourseOutlineHandler(store content.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		courseID := chi.URLParam(r, "courseID")
		learnerID := auth.SubjectFromContext(r.Context())
		sections, err := store.Sections(r.Context(), courseID)
		if err != nil {
			writeErr(w, err)
			return
		}
		completions, err := store.Completions(r.Context(), learnerID, courseID)
		if err != nil {
			writeErr(w, err)
			return
		}
		unlocked := progress.ComputeUnlocked(progress.Flatten(sections), completions)

		out := make([]outlineSection, 0, len(sections))
		for _, s := range sections {
			os := outlineSection{ID: s.ID, Title: s.Title}
			for _, l := range s.Lessons {
				os.Lessons = append(os.Lessons, outlineLesson{
					ID:        l.ID,
					Type:      l.Type,
					Title:     l.Title,
					Completed: completions[l.ID],
					Unlocked:  unlocked[l.ID],
				})
			}
			out = append(out, os)
		}
		writeJSON(w, http.StatusOK, map[string]any{"course_id": courseID, "sections": out})
	}
}

// CompleteLessonHandler marks a lesson completed for the caller. The body
// may carry {"completed": ...} in any truthy encoding; an empty body means
// completed. Completion is monotonic, so a falsy value never reverts.
func CompleteLessonHandler(store content.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lessonID := chi.URLParam(r, "lessonID")
		learnerID := auth.SubjectFromContext(r.Context())

		completed := true
		var body struct {
			Completed any `json:"completed"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil && body.Completed != nil {
			completed = progress.NormalizeCompleted(body.Completed)
		}
		if completed {
			if err := store.SetLessonCompletion(r.Context(), learnerID, lessonID); err != nil {
				writeErr(w, err)
				return
			}
		}
		current, err := store.LessonCompletion(r.Context(), learnerID, lessonID)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, content.CompletionRecord{
			LearnerID: learnerID, LessonID: lessonID, Completed: current,
		})
	}
}

// UpsertSectionHandler lets authors seed and reorder course content.
func UpsertSectionHandler(store content.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var sec content.Section
		if err := json.NewDecoder(r.Body).Decode(&sec); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if sec.ID == "" || sec.CourseID == "" {
			http.Error(w, "id and course_id required", http.StatusBadRequest)
			return
		}
		for i := range sec.Lessons {
			sec.Lessons[i].SectionID = sec.ID
		}
		if err := store.UpsertSection(r.Context(), sec); err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sec)
	}
}
