package scheduler

import (
	"context"
	"sync"
	"time"

	"SEOAutomation/internal/ports"
)

// TickerScheduler fires the job every interval, on boundaries counted from local midnight.
// A daily interval fires at 00:00, twice daily at 00:00 and 12:00, hourly on the hour.
type TickerScheduler struct {
	interval   time.Duration
	location   *time.Location
	runOnStart bool

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

var _ ports.Scheduler = (*TickerScheduler)(nil)

// NewTickerScheduler builds a scheduler for the given interval in loc (UTC when nil). When
// runOnStart is set the job also runs once right after Start.
func NewTickerScheduler(interval time.Duration, loc *time.Location, runOnStart bool) *TickerScheduler {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	if loc == nil {
		loc = time.UTC
	}
	return &TickerScheduler{interval: interval, location: loc, runOnStart: runOnStart}
}

// NextTick returns the first boundary strictly after now. Boundaries are local midnight plus
// whole multiples of interval.
func NextTick(now time.Time, interval time.Duration, loc *time.Location) time.Time {
	local := now.In(loc)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	steps := local.Sub(midnight)/interval + 1
	next := midnight.Add(steps * interval)

	// Past the last boundary of the day the next one is the following midnight.
	tomorrow := time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, loc)
	if next.After(tomorrow) {
		next = tomorrow
	}
	return next
}

// Start begins ticking. Calling it again while running is a no-op.
func (c *TickerScheduler) Start(ctx context.Context, job func(time.Time)) error {
	if job == nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stop != nil {
		return nil
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	c.stop, c.done = stop, done

	go func() {
		defer close(done)
		if c.runOnStart {
			job(time.Now())
		}

		timer := time.NewTimer(time.Until(NextTick(time.Now(), c.interval, c.location)))
		defer timer.Stop()
		for {
			select {
			case t := <-timer.C:
				job(t)
				timer.Reset(time.Until(NextTick(time.Now(), c.interval, c.location)))
			case <-ctx.Done():
				return
			case <-stop:
				return
			}
		}
	}()

	return nil
}

// Stop halts the timer goroutine and waits for an in-flight job to return or ctx to expire.
func (c *TickerScheduler) Stop(ctx context.Context) error {
	c.mu.Lock()
	stop, done := c.stop, c.done
	c.stop, c.done = nil, nil
	c.mu.Unlock()

	if stop == nil {
		return nil
	}
	close(stop)

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
