package assess

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// defaultSlot names the single snapshot row. One in-flight session exists
// per deployment, so the slot key is fixed.
const defaultSlot = "current"

// SQLSnapshots stores the session snapshot as a JSON column in the
// session_snapshots table.
type SQLSnapshots struct {
	db   *sql.DB
	slot string
}

func NewSQLSnapshots(db *sql.DB) *SQLSnapshots {
	return &SQLSnapshots{db: db, slot: defaultSlot}
}

func (s *SQLSnapshots) Save(sess *Session) error {
	buf, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`INSERT INTO session_snapshots (slot, data, updated_at)
		VALUES ($1,$2,$3)
		ON CONFLICT (slot) DO UPDATE SET data=EXCLUDED.data, updated_at=EXCLUDED.updated_at`,
		s.slot, string(buf), time.Now().Unix())
	return err
}

func (s *SQLSnapshots) Load() (*Session, error) {
	row := s.db.QueryRow(`SELECT data FROM session_snapshots WHERE slot=$1`, s.slot)
	var data string
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *SQLSnapshots) Clear() error {
	_, err := s.db.Exec(`DELETE FROM session_snapshots WHERE slot=$1`, s.slot)
	return err
}
