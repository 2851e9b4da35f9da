package progress_test

import (
	"fmt"
	"testing"

	"github.com/brightpath/brightpath-lms/internal/content"
	"github.com/brightpath/brightpath-lms/internal/progress"
)

func lessons(n int) []content.Lesson {
	out := make([]content.Lesson, n)
	for i := range out {
		out[i] = content.Lesson{ID: fmt.Sprintf("l%d", i), SectionID: "s1", Position: i}
	}
	return out
}

func TestFirstLessonAlwaysUnlocked(t *testing.T) {
	ls := lessons(3)
	for _, completions := range []map[string]bool{nil, {}, {"l1": true}, {"l0": false}} {
		unlocked := progress.ComputeUnlocked(ls, completions)
		if !unlocked["l0"] {
			t.Fatalf("first lesson locked for completions %v", completions)
		}
	}
}

func TestUnlockFollowsCompletion(t *testing.T) {
	ls := lessons(4)
	unlocked := progress.ComputeUnlocked(ls, map[string]bool{"l0": true, "l1": true})
	for i, want := range []bool{true, true, true, false} {
		id := fmt.Sprintf("l%d", i)
		if unlocked[id] != want {
			t.Fatalf("lesson %s unlocked=%v, want %v", id, unlocked[id], want)
		}
	}
}

func TestCompletionGapBlocksRest(t *testing.T) {
	// l1 completed but l0 not: nothing past l0 unlocks
	unlocked := progress.ComputeUnlocked(lessons(3), map[string]bool{"l1": true})
	if unlocked["l1"] || unlocked["l2"] {
		t.Fatalf("gap in completions must block later lessons: %v", unlocked)
	}
}

func TestGatingMonotonicity(t *testing.T) {
	ls := lessons(6)
	completions := map[string]bool{}
	for i := 0; i < len(ls); i++ {
		unlocked := progress.ComputeUnlocked(ls, completions)
		if !unlocked[ls[i].ID] {
			t.Fatalf("lesson %d should be unlocked after completing predecessors", i)
		}
		// completing an unlocked lesson must unlock the next
		completions[ls[i].ID] = true
		next := progress.ComputeUnlocked(ls, completions)
		if i+1 < len(ls) && !next[ls[i+1].ID] {
			t.Fatalf("completing lesson %d did not unlock lesson %d", i, i+1)
		}
	}
}

func TestFlattenOrdersAcrossSections(t *testing.T) {
	secs := []content.Section{
		{ID: "s1", Position: 0, Lessons: []content.Lesson{{ID: "a"}, {ID: "b"}}},
		{ID: "s2", Position: 1, Lessons: []content.Lesson{{ID: "c"}}},
	}
	flat := progress.Flatten(secs)
	if len(flat) != 3 || flat[0].ID != "a" || flat[2].ID != "c" {
		t.Fatalf("unexpected flatten order: %+v", flat)
	}
}

func TestNormalizeCompleted(t *testing.T) {
	cases := []struct {
		in   any
		want bool
	}{
		{true, true},
		{false, false},
		{1, true},
		{0, false},
		{int64(1), true},
		{float64(1), true},
		{float64(0), false},
		{"true", true},
		{"TRUE", true},
		{"yes", true},
		{"completed", true},
		{"1", true},
		{"0", false},
		{"false", false},
		{"", false},
		{nil, false},
		{[]string{"x"}, false},
	}
	for _, c := range cases {
		if got := progress.NormalizeCompleted(c.in); got != c.want {
			t.Fatalf("NormalizeCompleted(%#v) = %v, want %v", c.in, got, c.want)
		}
	}
}
