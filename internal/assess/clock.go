package assess

import (
	"sync"
	"time"
)

// RemainingSeconds recomputes time left from the absolute start instant.
// It is never derived by decrementing a counter, so a suspended process or
// a missed tick cannot drift the deadline. limitSec <= 0 means unlimited
// and reports UnlimitedTime.
func RemainingSeconds(startUnix int64, limitSec int, now time.Time) int {
	if limitSec <= 0 {
		return UnlimitedTime
	}
	left := int64(limitSec) - (now.Unix() - startUnix)
	if left < 0 {
		return 0
	}
	return int(left)
}

// UnlimitedTime is reported for assessments with no time limit.
const UnlimitedTime = -1

// Countdown drives 1 Hz ticks while a timed session is active. Start and
// Stop are idempotent; Stop may be called from inside the tick callback.
type Countdown struct {
	mu   sync.Mutex
	stop chan struct{}
}

func (c *Countdown) Start(interval time.Duration, fn func(now time.Time)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stop != nil {
		return
	}
	stop := make(chan struct{})
	c.stop = stop
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-stop:
				return
			case now := <-t.C:
				fn(now)
			}
		}
	}()
}

func (c *Countdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stop == nil {
		return
	}
	close(c.stop)
	c.stop = nil
}
