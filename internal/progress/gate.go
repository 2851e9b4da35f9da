// Package progress decides which lessons a learner may open: lesson i+1
// unlocks only once lesson i is completed.
package progress

import (
	"strconv"
	"strings"

	"github.com/brightpath/brightpath-lms/internal/content"
)

// Flatten orders lessons across sections into the single gating sequence:
// sections by position, lessons by position within their section.
func Flatten(sections []content.Section) []content.Lesson {
	out := make([]content.Lesson, 0, 8)
	for _, s := range sections {
		out = append(out, s.Lessons...)
	}
	return out
}

// ComputeUnlocked walks the flattened sequence and returns the set of
// accessible lesson IDs. The first lesson is always unlocked; each further
// lesson unlocks only when its predecessor is unlocked and completed.
// Missing completion entries count as not completed. O(n), pure.
func ComputeUnlocked(lessons []content.Lesson, completions map[string]bool) map[string]bool {
	unlocked := make(map[string]bool, len(lessons))
	for i, l := range lessons {
		if i == 0 {
			unlocked[l.ID] = true
			continue
		}
		prev := lessons[i-1]
		if unlocked[prev.ID] && completions[prev.ID] {
			unlocked[l.ID] = true
		}
	}
	return unlocked
}

// NormalizeCompleted folds the loose encodings of "completed" seen at the
// boundary (bool, 0/1, string forms) into a plain bool, so the gating
// algorithm itself only ever sees booleans.
func NormalizeCompleted(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case int:
		return t != 0
	case int64:
		return t != 0
	case float64:
		return t != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "yes", "y", "completed", "done":
			return true
		}
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			return n != 0
		}
		return false
	case nil:
		return false
	default:
		return false
	}
}
