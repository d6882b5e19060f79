package quiz

import (
	"sync"
	"time"
)

// countdown calls tick once per interval until tick returns false or Stop
// is called. Stop never waits for the goroutine, so it is safe to call while
// holding the session lock that tick itself acquires.
type countdown struct {
	stop     chan struct{}
	stopOnce sync.Once
	exited   chan struct{}
}

func startCountdown(interval time.Duration, tick func() bool) *countdown {
	c := &countdown{
		stop:   make(chan struct{}),
		exited: make(chan struct{}),
	}

	go func() {
		defer close(c.exited)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-c.stop:
				return
			case <-ticker.C:
				if !tick() {
					return
				}
			}
		}
	}()
	return c
}

func (c *countdown) Stop() {
	c.stopOnce.Do(func() { close(c.stop) })
}
