package http

import "time"

// inboundFramesPerMinute bounds how many frames a single observer
// connection may send before it is closed.
const inboundFramesPerMinute = 120

// frameLimiter is a per-connection counter reset once a minute. It is only
// touched from the connection's read loop, so no locking is needed.
type frameLimiter struct {
	limit   int
	counter int
	reset   *time.Ticker
}

func newFrameLimiter(limit int) *frameLimiter {
	if limit <= 0 {
		return &frameLimiter{limit: 0}
	}
	return &frameLimiter{
		limit: limit,
		reset: time.NewTicker(time.Minute),
	}
}

func (f *frameLimiter) allow() bool {
	if f.limit <= 0 {
		return true
	}
	if f.reset != nil {
		select {
		case <-f.reset.C:
			f.counter = 0
		default:
		}
	}
	f.counter++
	return f.counter <= f.limit
}

func (f *frameLimiter) stop() {
	if f.reset != nil {
		f.reset.Stop()
	}
}
