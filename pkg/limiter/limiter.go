package limiter

import (
	"net/http"
	"sync"
	"time"

	"github.com/stroy1click/confirmation-service/pkg/i18nx"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type clientLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	rps     rate.Limit
	burst   int
	ttl     time.Duration
}

func newClientLimiter(rps int, burst int, ttl time.Duration) *clientLimiter {
	l := &clientLimiter{
		clients: make(map[string]*client),
		rps:     rate.Limit(rps),
		burst:   burst,
		ttl:     ttl,
	}
	go l.cleanup()

	return l
}

func (l *clientLimiter) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if c, ok := l.clients[ip]; ok {
		c.lastSeen = time.Now()
		return c.limiter
	}

	c := &client{limiter: rate.NewLimiter(l.rps, l.burst), lastSeen: time.Now()}
	l.clients[ip] = c

	return c.limiter
}

// cleanup evicts buckets not seen within ttl.
func (l *clientLimiter) cleanup() {
	for {
		time.Sleep(l.ttl)

		l.mu.Lock()
		for ip, c := range l.clients {
			if time.Since(c.lastSeen) > l.ttl {
				delete(l.clients, ip)
			}
		}
		l.mu.Unlock()
	}
}

// Limit returns a middleware enforcing one shared per-client token-bucket
// admission policy across every route it is attached to. Rejected requests
// get the same 429 problem payload regardless of the endpoint, localized
// from Accept-Language.
func Limit(rps int, burst int, ttl time.Duration, translator *i18nx.Translator) gin.HandlerFunc {
	l := newClientLimiter(rps, burst, ttl)

	return func(c *gin.Context) {
		if !l.get(c.ClientIP()).Allow() {
			lang := c.GetHeader("Accept-Language")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"title":  translator.Message(lang, "error.title.too_many_requests"),
				"detail": translator.Message(lang, "error.details.too_many_requests"),
				"status": http.StatusTooManyRequests,
			})
			return
		}

		c.Next()
	}
}
