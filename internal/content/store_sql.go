package content

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

// SQLStore backs the content collaborator with the sections, lessons, and
// lesson_completions tables. Lessons ride along in a JSON column on their
// section row, matching how assessments carry their questions.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) Sections(ctx context.Context, courseID string) ([]Section, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, course_id, position, title, lessons_json
		 FROM sections WHERE course_id=$1 ORDER BY position ASC`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Section
	for rows.Next() {
		var sec Section
		var ljson string
		if err := rows.Scan(&sec.ID, &sec.CourseID, &sec.Position, &sec.Title, &ljson); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(ljson), &sec.Lessons); err != nil {
			return nil, err
		}
		out = append(out, sec)
	}
	return out, rows.Err()
}

func (s *SQLStore) UpsertSection(ctx context.Context, sec Section) error {
	lj, err := json.Marshal(sec.Lessons)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO sections (id, course_id, position, title, lessons_json)
		 VALUES ($1,$2,$3,$4,$5)
		 ON CONFLICT (id) DO UPDATE SET course_id=EXCLUDED.course_id,
		   position=EXCLUDED.position, title=EXCLUDED.title, lessons_json=EXCLUDED.lessons_json`,
		sec.ID, sec.CourseID, sec.Position, sec.Title, string(lj))
	return err
}

func (s *SQLStore) LessonCompletion(ctx context.Context, learnerID, lessonID string) (bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT completed FROM lesson_completions WHERE learner_id=$1 AND lesson_id=$2`,
		learnerID, lessonID)
	var completed bool
	if err := row.Scan(&completed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// absent completion data is false, never an error
			return false, nil
		}
		return false, err
	}
	return completed, nil
}

func (s *SQLStore) Completions(ctx context.Context, learnerID, courseID string) (map[string]bool, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT lesson_id, completed FROM lesson_completions WHERE learner_id=$1`, learnerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[string]bool{}
	for rows.Next() {
		var id string
		var completed bool
		if err := rows.Scan(&id, &completed); err != nil {
			return nil, err
		}
		if completed {
			out[id] = true
		}
	}
	return out, rows.Err()
}

// SetLessonCompletion is monotonic: completed never reverts to false.
func (s *SQLStore) SetLessonCompletion(ctx context.Context, learnerID, lessonID string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO lesson_completions (learner_id, lesson_id, completed)
		 VALUES ($1,$2,TRUE)
		 ON CONFLICT (learner_id, lesson_id) DO UPDATE SET completed=TRUE`,
		learnerID, lessonID)
	return err
}
