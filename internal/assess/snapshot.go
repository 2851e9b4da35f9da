package assess

import "sync"

// SnapshotStore persists the one in-flight session so a reload can resume
// without loss. Single slot: Save overwrites, Load returns nil when empty,
// Clear is safe to call on an empty store.
type SnapshotStore interface {
	Save(s *Session) error
	Load() (*Session, error)
	Clear() error
}

type memorySnapshots struct {
	mu   sync.Mutex
	snap *Session
}

// NewMemorySnapshots returns a volatile SnapshotStore for tests and
// ephemeral deployments.
func NewMemorySnapshots() SnapshotStore { return &memorySnapshots{} }

func (m *memorySnapshots) Save(s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	cp.Answers = append([]Answer(nil), s.Answers...)
	m.snap = &cp
	return nil
}

func (m *memorySnapshots) Load() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.snap == nil {
		return nil, nil
	}
	cp := *m.snap
	cp.Answers = append([]Answer(nil), m.snap.Answers...)
	return &cp, nil
}

func (m *memorySnapshots) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap = nil
	return nil
}
