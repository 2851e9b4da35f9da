package assess

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// FSSnapshots keeps the snapshot as one JSON file under a base directory.
// Same contract as the SQL store; useful offline or in tooling that has no
// database at hand.
type FSSnapshots struct{ path string }

func NewFSSnapshots(base string) (*FSSnapshots, error) {
	if base == "" {
		base = "./data"
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, err
	}
	return &FSSnapshots{path: filepath.Join(base, "session.json")}, nil
}

func (s *FSSnapshots) Save(sess *Session) error {
	buf, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, buf, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *FSSnapshots) Load() (*Session, error) {
	buf, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal(buf, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *FSSnapshots) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
