package middlewarectx

import (
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/flagship-portal/internal/http/response"
)

// limiterIdle — через сколько без запросов ограничитель адреса удаляется.
const limiterIdle = 10 * time.Minute

type visitor struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// limiters выдаёт отдельный ограничитель на каждый адрес клиента.
// Адреса, простаивающие дольше idle, удаляются при очередном обращении,
// но не чаще раза за idle.
type limiters struct {
	mu        sync.Mutex
	rps       rate.Limit
	burst     int
	idle      time.Duration
	now       func() time.Time
	lastSweep time.Time
	byIP      map[string]*visitor
}

func newLimiters(rps float64, burst int, idle time.Duration) *limiters {
	return &limiters{
		rps:   rate.Limit(rps),
		burst: burst,
		idle:  idle,
		now:   time.Now,
		byIP:  make(map[string]*visitor),
	}
}

func (l *limiters) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= l.idle {
		l.sweep(now)
	}

	v, ok := l.byIP[ip]
	if !ok {
		v = &visitor{lim: rate.NewLimiter(l.rps, l.burst)}
		l.byIP[ip] = v
	}
	v.lastSeen = now
	return v.lim
}

func (l *limiters) sweep(now time.Time) {
	for ip, v := range l.byIP {
		if now.Sub(v.lastSeen) > l.idle {
			delete(l.byIP, ip)
		}
	}
	l.lastSweep = now
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimitMiddleware ограничивает частоту запросов с одного адреса: rps в секунду
// с запасом burst.
func RateLimitMiddleware(log *slog.Logger, rps float64, burst int) func(http.Handler) http.Handler {
	l := newLimiters(rps, burst, limiterIdle)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			if !l.get(ip).Allow() {
				log.Warn("too many requests", slog.String("ip", ip), slog.String("path", r.URL.Path))
				response.Fail(w, r, response.NewError(http.StatusTooManyRequests, "too many requests"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
