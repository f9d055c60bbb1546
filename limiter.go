package securechat

import (
	"sync"

	"golang.org/x/time/rate"
)

// Send limits per user: one message per second sustained, with a burst
// for quick exchanges.
const (
	sendRate  = rate.Limit(1)
	sendBurst = 10
)

type sendLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func newSendLimiter() *sendLimiter {
	return &sendLimiter{limiters: make(map[string]*rate.Limiter)}
}

func (l *sendLimiter) allow(uid string) bool {
	l.mu.Lock()
	lim, ok := l.limiters[uid]
	if !ok {
		lim = rate.NewLimiter(sendRate, sendBurst)
		l.limiters[uid] = lim
	}
	l.mu.Unlock()
	return lim.Allow()
}
