package assess

// Option is one selectable choice on a multiple-choice question.
type Option struct {
	ID      string `json:"id"`
	Text    string `json:"text,omitempty"`
	Correct bool   `json:"is_correct,omitempty"`
}

type Question struct {
	ID      string   `json:"id"`
	Text    string   `json:"text,omitempty"`
	Options []Option `json:"options"`
}

// CorrectOptionID returns the ID of the first option flagged correct.
// Authoring is not validated for exactly-one-correct; the first flagged
// option is canonical, and a question with none can never be answered
// correctly.
func (q Question) CorrectOptionID() string {
	for _, o := range q.Options {
		if o.Correct {
			return o.ID
		}
	}
	return ""
}

// Definition is an authored assessment. TimeLimitSec == 0 means no time
// limit; MaxAttempts == 0 means unlimited attempts. LessonID/CourseID tie
// the assessment into the content sequence for gating; both may be empty
// for a standalone assessment.
type Definition struct {
	ID            string     `json:"id"`
	Title         string     `json:"title,omitempty"`
	CourseID      string     `json:"course_id,omitempty"`
	LessonID      string     `json:"lesson_id,omitempty"`
	Questions     []Question `json:"questions"`
	TimeLimitSec  int        `json:"time_limit_sec"`
	PassThreshold int        `json:"pass_threshold,omitempty"`
	MaxAttempts   int        `json:"max_attempts,omitempty"`
	CreatedAt     int64      `json:"created_at,omitempty"`
}

// DefaultPassThreshold applies when an authored definition leaves the
// threshold unset.
const DefaultPassThreshold = 60

func (d Definition) EffectivePassThreshold() int {
	if d.PassThreshold <= 0 {
		return DefaultPassThreshold
	}
	return d.PassThreshold
}

// Answer is one entry in the immutable answer log. The first answer for a
// question index is final.
type Answer struct {
	QuestionIndex int    `json:"question_index"`
	QuestionID    string `json:"question_id"`
	OptionID      string `json:"option_id"`
	Correct       bool   `json:"correct"`
}

// AttemptRecord is the append-only result of one finished attempt. Its ID
// is the session UUID, which makes SubmitAttempt an idempotent upsert.
type AttemptRecord struct {
	ID           string   `json:"id"`
	AssessmentID string   `json:"assessment_id"`
	LearnerID    string   `json:"learner_id"`
	Percentage   int      `json:"percentage"`
	TimeUsedSec  int      `json:"time_used_seconds"`
	Answers      []Answer `json:"answers"`
	Passed       bool     `json:"passed"`
	Expired      bool     `json:"expired,omitempty"`
	CreatedAt    int64    `json:"created_at"`
}
