package content

import (
	"context"
	"errors"
	"sort"
	"sync"
)

var ErrLessonNotFound = errors.New("lesson not found")

// Store is the content collaborator: ordered sections and per-learner
// completion flags.
type Store interface {
	Sections(ctx context.Context, courseID string) ([]Section, error)
	UpsertSection(ctx context.Context, s Section) error
	LessonCompletion(ctx context.Context, learnerID, lessonID string) (bool, error)
	// Completions returns the learner's completion map for every lesson in
	// the course. Absent lessons are simply missing from the map.
	Completions(ctx context.Context, learnerID, courseID string) (map[string]bool, error)
	// SetLessonCompletion marks a lesson completed. Monotonic: an already
	// completed lesson stays completed.
	SetLessonCompletion(ctx context.Context, learnerID, lessonID string) error
}

type memoryStore struct {
	mu       sync.RWMutex
	sections map[string][]Section       // courseID -> sections
	done     map[string]map[string]bool // learnerID -> lessonID -> completed
}

// NewMemoryStore returns a volatile Store for tests and demos.
func NewMemoryStore() Store {
	return &memoryStore{
		sections: map[string][]Section{},
		done:     map[string]map[string]bool{},
	}
}

func (m *memoryStore) Sections(_ context.Context, courseID string) ([]Section, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	secs := append([]Section(nil), m.sections[courseID]...)
	sort.SliceStable(secs, func(i, j int) bool { return secs[i].Position < secs[j].Position })
	return secs, nil
}

func (m *memoryStore) UpsertSection(_ context.Context, s Section) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	secs := m.sections[s.CourseID]
	for i := range secs {
		if secs[i].ID == s.ID {
			secs[i] = s
			m.sections[s.CourseID] = secs
			return nil
		}
	}
	m.sections[s.CourseID] = append(secs, s)
	return nil
}

func (m *memoryStore) LessonCompletion(_ context.Context, learnerID, lessonID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.done[learnerID][lessonID], nil
}

func (m *memoryStore) Completions(_ context.Context, learnerID, courseID string) (map[string]bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := map[string]bool{}
	for id, c := range m.done[learnerID] {
		if c {
			out[id] = true
		}
	}
	return out, nil
}

func (m *memoryStore) SetLessonCompletion(_ context.Context, learnerID, lessonID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.done[learnerID] == nil {
		m.done[learnerID] = map[string]bool{}
	}
	m.done[learnerID][lessonID] = true
	return nil
}
