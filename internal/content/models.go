package content

// Lesson is immutable once authored; Position within its section defines
// the gating sequence once sections are flattened.
type Lesson struct {
	ID        string `json:"id"`
	SectionID string `json:"section_id"`
	Position  int    `json:"position"`
	Type      string `json:"type"` // video, text, quiz, ...
	Title     string `json:"title,omitempty"`
}

type Section struct {
	ID       string   `json:"id"`
	CourseID string   `json:"course_id"`
	Position int      `json:"position"`
	Title    string   `json:"title,omitempty"`
	Lessons  []Lesson `json:"lessons"`
}

// CompletionRecord is monotonic: created on first interaction and only
// ever moves false -> true.
type CompletionRecord struct {
	LearnerID string `json:"learner_id"`
	LessonID  string `json:"lesson_id"`
	Completed bool   `json:"completed"`
}
