package assess

import (
	"testing"
	"time"
)

func TestRemainingSeconds(t *testing.T) {
	start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	cases := []struct {
		elapsed time.Duration
		limit   int
		want    int
	}{
		{0, 600, 600},
		{599 * time.Second, 600, 1},
		{600 * time.Second, 600, 0},
		{601 * time.Second, 600, 0}, // past deadline clamps, never negative
		{time.Hour, 600, 0},
		{time.Minute, 0, UnlimitedTime},
	}
	for _, c := range cases {
		got := RemainingSeconds(start.Unix(), c.limit, start.Add(c.elapsed))
		if got != c.want {
			t.Fatalf("RemainingSeconds(limit=%d, elapsed=%s) = %d, want %d",
				c.limit, c.elapsed, got, c.want)
		}
	}
}

func TestRemainingRecomputedNotDecremented(t *testing.T) {
	// a long suspension between observations must not drift the deadline
	start := time.Now()
	mid := RemainingSeconds(start.Unix(), 600, start.Add(10*time.Second))
	late := RemainingSeconds(start.Unix(), 600, start.Add(590*time.Second))
	if mid != 590 || late != 10 {
		t.Fatalf("remaining derived from absolute instants: got %d then %d", mid, late)
	}
}

func TestCountdownStartStopIdempotent(t *testing.T) {
	var c Countdown
	ticks := make(chan time.Time, 8)
	c.Start(5*time.Millisecond, func(now time.Time) { ticks <- now })
	c.Start(5*time.Millisecond, func(now time.Time) { t.Error("second Start must be a no-op") })

	select {
	case <-ticks:
	case <-time.After(time.Second):
		t.Fatalf("no tick observed")
	}
	c.Stop()
	c.Stop() // safe to repeat
}
