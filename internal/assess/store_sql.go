package assess

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// SQLProvider backs the assessment collaborator with the assessments and
// attempts tables. Questions and answer logs live in JSON columns.
type SQLProvider struct {
	db *sql.DB
}

func NewSQLProvider(db *sql.DB) *SQLProvider { return &SQLProvider{db: db} }

func (s *SQLProvider) Definition(ctx context.Context, id string) (Definition, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, course_id, lesson_id, time_limit_sec, pass_threshold, max_attempts, questions_json
		 FROM assessments WHERE id=$1`, id)
	var d Definition
	var qjson string
	if err := row.Scan(&d.ID, &d.Title, &d.CourseID, &d.LessonID,
		&d.TimeLimitSec, &d.PassThreshold, &d.MaxAttempts, &qjson); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Definition{}, ErrAssessmentNotFound
		}
		return Definition{}, err
	}
	if err := json.Unmarshal([]byte(qjson), &d.Questions); err != nil {
		return Definition{}, err
	}
	return d, nil
}

func (s *SQLProvider) PutDefinition(ctx context.Context, d Definition) error {
	qj, err := json.Marshal(d.Questions)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO assessments (id, title, course_id, lesson_id, time_limit_sec, pass_threshold, max_attempts, questions_json, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		 ON CONFLICT (id) DO UPDATE SET title=EXCLUDED.title, course_id=EXCLUDED.course_id,
		   lesson_id=EXCLUDED.lesson_id, time_limit_sec=EXCLUDED.time_limit_sec,
		   pass_threshold=EXCLUDED.pass_threshold, max_attempts=EXCLUDED.max_attempts,
		   questions_json=EXCLUDED.questions_json`,
		d.ID, d.Title, d.CourseID, d.LessonID, d.TimeLimitSec, d.PassThreshold, d.MaxAttempts,
		string(qj), time.Now().Unix())
	return err
}

func (s *SQLProvider) AttemptHistory(ctx context.Context, learnerID, assessmentID string) ([]AttemptRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, assessment_id, learner_id, percentage, time_used_sec, answers_json, passed, expired, created_at
		 FROM attempts WHERE learner_id=$1 AND assessment_id=$2 ORDER BY created_at ASC`,
		learnerID, assessmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []AttemptRecord
	for rows.Next() {
		var r AttemptRecord
		var ajson string
		if err := rows.Scan(&r.ID, &r.AssessmentID, &r.LearnerID, &r.Percentage,
			&r.TimeUsedSec, &ajson, &r.Passed, &r.Expired, &r.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(ajson), &r.Answers); err != nil {
			r.Answers = nil
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// SubmitAttempt appends one attempt record. The record ID is the session
// UUID; ON CONFLICT DO NOTHING makes the retry-via-resume path exactly-once
// at the store even when the first write succeeded but the ack was lost.
func (s *SQLProvider) SubmitAttempt(ctx context.Context, rec AttemptRecord) error {
	aj, err := json.Marshal(rec.Answers)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO attempts (id, assessment_id, learner_id, percentage, time_used_sec, answers_json, passed, expired, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		 ON CONFLICT (id) DO NOTHING`,
		rec.ID, rec.AssessmentID, rec.LearnerID, rec.Percentage, rec.TimeUsedSec,
		string(aj), rec.Passed, rec.Expired, rec.CreatedAt)
	return err
}

// ListAttempts returns attempts for an assessment across learners, newest
// first, for teacher dashboards.
func (s *SQLProvider) ListAttempts(ctx context.Context, assessmentID string, limit int) ([]AttemptRecord, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, assessment_id, learner_id, percentage, time_used_sec, answers_json, passed, expired, created_at
		 FROM attempts WHERE assessment_id=$1 ORDER BY created_at DESC LIMIT $2`,
		assessmentID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []AttemptRecord
	for rows.Next() {
		var r AttemptRecord
		var ajson string
		if err := rows.Scan(&r.ID, &r.AssessmentID, &r.LearnerID, &r.Percentage,
			&r.TimeUsedSec, &ajson, &r.Passed, &r.Expired, &r.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(ajson), &r.Answers); err != nil {
			r.Answers = nil
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
