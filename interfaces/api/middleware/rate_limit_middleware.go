package middleware

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"study-tracker/pkg/logger"
	"study-tracker/pkg/metrics"
	"study-tracker/pkg/utils"
)

const msgTooManyLogins = "Too many login attempts, try again later"

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LoginRateLimiter keeps one token bucket per client IP
type LoginRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	recorder metrics.Recorder
	now      func() time.Time
}

// NewLoginRateLimiter allows perMinute attempts per IP with the given burst
func NewLoginRateLimiter(perMinute, burst int, recorder metrics.Recorder) *LoginRateLimiter {
	if perMinute <= 0 {
		perMinute = 10
	}
	if burst <= 0 {
		burst = 1
	}
	if recorder == nil {
		recorder = metrics.Noop{}
	}
	return &LoginRateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    burst,
		recorder: recorder,
		now:      time.Now,
	}
}

func (l *LoginRateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// Evict ลบ IP ที่ไม่ได้เข้ามานานกว่า idle (เรียกจาก scheduler)
func (l *LoginRateLimiter) Evict(idle time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-idle)
	removed := 0
	for ip, v := range l.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(l.visitors, ip)
			removed++
		}
	}
	return removed
}

func (l *LoginRateLimiter) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.visitors)
}

func (l *LoginRateLimiter) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !l.Allow(c.IP()) {
			l.recorder.RecordLoginRateLimited()
			logger.WarnContext(c.UserContext(), "Login rate limited", "ip", c.IP())
			return utils.TooManyRequestsResponse(c, msgTooManyLogins)
		}
		return c.Next()
	}
}
