package assess

import (
	"errors"
	"testing"
)

func TestRemainingNeverNegative(t *testing.T) {
	for maxAttempts := 0; maxAttempts <= 5; maxAttempts++ {
		for count := 0; count <= 10; count++ {
			got := Remaining(maxAttempts, count)
			if maxAttempts == 0 {
				if got != UnlimitedAttempts {
					t.Fatalf("Remaining(0, %d) = %d, want unlimited", count, got)
				}
				continue
			}
			if got < 0 {
				t.Fatalf("Remaining(%d, %d) = %d, negative", maxAttempts, count, got)
			}
			if want := maxAttempts - count; want >= 0 && got != want {
				t.Fatalf("Remaining(%d, %d) = %d, want %d", maxAttempts, count, got, want)
			}
		}
	}
}

func TestAssertCanStart(t *testing.T) {
	if err := AssertCanStart(2, 1); err != nil {
		t.Fatalf("one attempt left: %v", err)
	}
	if err := AssertCanStart(0, 1000); err != nil {
		t.Fatalf("unlimited attempts: %v", err)
	}
	if err := AssertCanStart(2, 2); !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("exhausted attempts: got %v, want ErrLimitExceeded", err)
	}
	if err := AssertCanStart(2, 5); !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("over-exhausted attempts: got %v, want ErrLimitExceeded", err)
	}
}
