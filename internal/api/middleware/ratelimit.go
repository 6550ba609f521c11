package middleware

import (
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/dom/members-api/internal/api/respond"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// LoginLimiter caps attempts per client address in a fixed window kept in
// Redis. When Redis is unreachable requests are let through.
type LoginLimiter struct {
	client redis.Cmdable
	limit  int
	window time.Duration
	log    logrus.FieldLogger
}

func NewLoginLimiter(client redis.Cmdable, limit int, window time.Duration, log logrus.FieldLogger) *LoginLimiter {
	return &LoginLimiter{
		client: client,
		limit:  limit,
		window: window,
		log:    log.WithField("op", "middleware.LoginLimiter"),
	}
}

func (l *LoginLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		key := fmt.Sprintf("rate_limit:login:%s", clientIP(r))

		count, err := l.client.Incr(ctx, key).Result()
		if err != nil {
			l.log.WithError(err).Warn("rate limit store unavailable")
			next.ServeHTTP(w, r)
			return
		}

		if count == 1 {
			if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
				// A counter without a TTL would never reset.
				l.log.WithError(err).Warn("failed to start rate limit window")
				l.client.Del(ctx, key)
				next.ServeHTTP(w, r)
				return
			}
		}

		if count > int64(l.limit) {
			ttl, err := l.client.TTL(ctx, key).Result()
			if err != nil || ttl < 0 {
				ttl = l.window
			}
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(ttl.Seconds()))))
			respond.Error(w, http.StatusTooManyRequests, "too many login attempts, try again later")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientIP expects RealIP to have run first.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
