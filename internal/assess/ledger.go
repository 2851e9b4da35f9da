package assess

import "context"

// UnlimitedAttempts is returned by Remaining when the definition places no
// cap on attempts.
const UnlimitedAttempts = -1

// Remaining derives how many attempts are left. The result is clamped at
// zero and never negative; UnlimitedAttempts when maxAttempts == 0.
func Remaining(maxAttempts, count int) int {
	if maxAttempts == 0 {
		return UnlimitedAttempts
	}
	if count >= maxAttempts {
		return 0
	}
	return maxAttempts - count
}

// AssertCanStart fails with ErrLimitExceeded when the remaining count is
// finite and exhausted. It runs strictly before a session is constructed
// and is never re-evaluated mid-session.
func AssertCanStart(maxAttempts, count int) error {
	if Remaining(maxAttempts, count) == 0 {
		return ErrLimitExceeded
	}
	return nil
}

// Ledger counts prior attempts through the provider.
type Ledger struct {
	provider Provider
}

func NewLedger(p Provider) *Ledger { return &Ledger{provider: p} }

func (l *Ledger) Count(ctx context.Context, learnerID, assessmentID string) (int, error) {
	hist, err := l.provider.AttemptHistory(ctx, learnerID, assessmentID)
	if err != nil {
		return 0, netErr("count attempts", err)
	}
	return len(hist), nil
}
