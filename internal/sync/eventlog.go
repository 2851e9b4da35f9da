package syncx

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"time"
)

// Event types recorded for the assessment session lifecycle.
const (
	TypeSessionStarted   = "SessionStarted"
	TypeAnswerRecorded   = "AnswerRecorded"
	TypeSessionAdvanced  = "SessionAdvanced"
	TypeSessionCompleted = "SessionCompleted"
	TypeSessionExpired   = "SessionExpired"
	TypeGuardTripped     = "GuardTripped"
)

type Event struct {
	Offset    int64
	Type      string
	Key       string
	DataJSON  string
	CreatedAt int64
}

type EventRepo struct{ db *sql.DB }

func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

func (r *EventRepo) Append(ctx context.Context, e Event) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO event_log (typ, key, data, created_at)
		 VALUES ($1,$2,$3,$4)`,
		e.Type, e.Key, e.DataJSON, time.Now().Unix())
	return err
}

// Record satisfies assess.EventSink. Audit writes are best-effort: a
// failed append is logged and never surfaces to the session.
func (r *EventRepo) Record(ctx context.Context, typ, key string, data any) {
	buf, err := json.Marshal(data)
	if err != nil {
		buf = []byte("{}")
	}
	if err := r.Append(ctx, Event{Type: typ, Key: key, DataJSON: string(buf)}); err != nil {
		log.Printf("eventlog: append %s: %v", typ, err)
	}
}
