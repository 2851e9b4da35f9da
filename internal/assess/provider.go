package assess

import (
	"context"
	"errors"
	"sync"
)

// ErrAssessmentNotFound is returned by providers for unknown IDs.
var ErrAssessmentNotFound = errors.New("assessment not found")

// Provider is the assessment collaborator: authored definitions in,
// attempt records out.
type Provider interface {
	Definition(ctx context.Context, id string) (Definition, error)
	PutDefinition(ctx context.Context, d Definition) error
	AttemptHistory(ctx context.Context, learnerID, assessmentID string) ([]AttemptRecord, error)
	// SubmitAttempt is an upsert keyed on the record ID, so a retried
	// finalize never duplicates an attempt.
	SubmitAttempt(ctx context.Context, rec AttemptRecord) error
}

type memoryProvider struct {
	mu       sync.RWMutex
	defs     map[string]Definition
	attempts map[string][]AttemptRecord // learnerID|assessmentID
}

// NewMemoryProvider returns a volatile Provider for tests and demos.
func NewMemoryProvider() Provider {
	return &memoryProvider{
		defs:     map[string]Definition{},
		attempts: map[string][]AttemptRecord{},
	}
}

func attemptsKey(learnerID, assessmentID string) string { return learnerID + "|" + assessmentID }

func (m *memoryProvider) Definition(_ context.Context, id string) (Definition, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.defs[id]
	if !ok {
		return Definition{}, ErrAssessmentNotFound
	}
	return d, nil
}

func (m *memoryProvider) PutDefinition(_ context.Context, d Definition) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defs[d.ID] = d
	return nil
}

func (m *memoryProvider) AttemptHistory(_ context.Context, learnerID, assessmentID string) ([]AttemptRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	recs := m.attempts[attemptsKey(learnerID, assessmentID)]
	return append([]AttemptRecord(nil), recs...), nil
}

// ListAttempts mirrors SQLProvider's teacher-facing listing.
func (m *memoryProvider) ListAttempts(_ context.Context, assessmentID string, limit int) ([]AttemptRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []AttemptRecord
	for _, recs := range m.attempts {
		for _, r := range recs {
			if r.AssessmentID == assessmentID {
				out = append(out, r)
			}
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memoryProvider) SubmitAttempt(_ context.Context, rec AttemptRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := attemptsKey(rec.LearnerID, rec.AssessmentID)
	for _, r := range m.attempts[k] {
		if r.ID == rec.ID {
			return nil
		}
	}
	m.attempts[k] = append(m.attempts[k], rec)
	return nil
}
