package assess

import "testing"

func snapshotStores(t *testing.T) map[string]SnapshotStore {
	t.Helper()
	fs, err := NewFSSnapshots(t.TempDir())
	if err != nil {
		t.Fatalf("fs store: %v", err)
	}
	return map[string]SnapshotStore{
		"memory": NewMemorySnapshots(),
		"fs":     fs,
	}
}

func TestSnapshotSingleSlot(t *testing.T) {
	for name, store := range snapshotStores(t) {
		t.Run(name, func(t *testing.T) {
			if snap, err := store.Load(); err != nil || snap != nil {
				t.Fatalf("empty load: %v %v", snap, err)
			}
			// clear on an empty store is safe
			if err := store.Clear(); err != nil {
				t.Fatalf("clear empty: %v", err)
			}

			first := &Session{ID: "s1", AssessmentID: "quiz-1", State: StateActive,
				Answers: []Answer{{QuestionID: "q1", OptionID: "o1", Correct: true}}}
			if err := store.Save(first); err != nil {
				t.Fatalf("save: %v", err)
			}
			second := &Session{ID: "s1", AssessmentID: "quiz-1", State: StateActive, QuestionIndex: 1,
				Answers: []Answer{{QuestionID: "q1", OptionID: "o1", Correct: true}}}
			if err := store.Save(second); err != nil {
				t.Fatalf("overwrite: %v", err)
			}

			snap, err := store.Load()
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if snap.QuestionIndex != 1 || len(snap.Answers) != 1 || !snap.Answers[0].Correct {
				t.Fatalf("loaded snapshot: %+v", snap)
			}

			if err := store.Clear(); err != nil {
				t.Fatalf("clear: %v", err)
			}
			if snap, _ := store.Load(); snap != nil {
				t.Fatalf("load after clear: %+v", snap)
			}
			if err := store.Clear(); err != nil {
				t.Fatalf("second clear: %v", err)
			}
		})
	}
}

func TestMemorySnapshotsCopyOnSave(t *testing.T) {
	store := NewMemorySnapshots()
	sess := &Session{ID: "s1", Answers: []Answer{{QuestionID: "q1"}}}
	if err := store.Save(sess); err != nil {
		t.Fatalf("save: %v", err)
	}
	sess.Answers[0].QuestionID = "mutated"
	snap, _ := store.Load()
	if snap.Answers[0].QuestionID != "q1" {
		t.Fatalf("store aliased the caller's answer slice")
	}
}
