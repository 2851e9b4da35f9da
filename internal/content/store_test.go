package content

import (
	"context"
	"testing"
)

func TestCompletionIsMonotonic(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	done, err := s.LessonCompletion(ctx, "u1", "l1")
	if err != nil || done {
		t.Fatalf("unseen lesson: done=%v err=%v", done, err)
	}
	if err := s.SetLessonCompletion(ctx, "u1", "l1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	// setting again never reverts
	if err := s.SetLessonCompletion(ctx, "u1", "l1"); err != nil {
		t.Fatalf("second set: %v", err)
	}
	done, _ = s.LessonCompletion(ctx, "u1", "l1")
	if !done {
		t.Fatalf("lesson should stay completed")
	}

	m, err := s.Completions(ctx, "u1", "c1")
	if err != nil || !m["l1"] {
		t.Fatalf("completions map: %v err=%v", m, err)
	}
	if other, _ := s.Completions(ctx, "u2", "c1"); len(other) != 0 {
		t.Fatalf("completions leaked across learners: %v", other)
	}
}

func TestSectionsOrderedByPosition(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	_ = s.UpsertSection(ctx, Section{ID: "s2", CourseID: "c1", Position: 1})
	_ = s.UpsertSection(ctx, Section{ID: "s1", CourseID: "c1", Position: 0})

	secs, err := s.Sections(ctx, "c1")
	if err != nil {
		t.Fatalf("sections: %v", err)
	}
	if len(secs) != 2 || secs[0].ID != "s1" || secs[1].ID != "s2" {
		t.Fatalf("order: %+v", secs)
	}
}
