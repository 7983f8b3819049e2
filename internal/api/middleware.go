package api

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aura-storefront/server/internal/shop/model"
	logx "github.com/aura-storefront/server/pkg/logger"
	"github.com/aura-storefront/server/pkg/ratelimit"
)

const (
	HeaderCartSession = "X-Cart-Session"

	ctxCartSession = "aura.cart_session"
	ctxUser        = "aura.user"
)

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		ev := logx.Info()
		if status >= http.StatusInternalServerError {
			ev = logx.Error()
		}
		ev.Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("request")
	}
}

func recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logx.Error().Interface("panic", recovered).Str("path", c.Request.URL.Path).Msg("handler panicked")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	})
}

// rateLimit rejects clients that exceed their token bucket for the matched
// route and tells them when to retry.
func rateLimit(l *ratelimit.Limiter, m *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		d := l.Take(route, c.ClientIP(), time.Now())
		if !d.Allowed {
			m.rateLimited.WithLabelValues(route).Inc()
			c.Header("Retry-After", strconv.Itoa(retrySeconds(d.RetryAfter)))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests, slow down"})
			return
		}
		c.Next()
	}
}

func retrySeconds(d time.Duration) int {
	secs := int(math.Ceil(d.Seconds()))
	if secs < 1 {
		return 1
	}
	return secs
}

// cartSession reuses a well-formed X-Cart-Session header or issues a new id,
// echoing it back either way.
func cartSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(HeaderCartSession))
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(ctxCartSession, id)
		c.Header(HeaderCartSession, id)
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	return c.GetString(ctxCartSession)
}

func bearerToken(c *gin.Context) string {
	h := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(h) < 7 || !strings.EqualFold(h[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(h[7:])
}

func (h *handler) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := h.svc.Account.Current(c.Request.Context(), bearerToken(c))
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.Set(ctxUser, u)
		c.Next()
	}
}

// optionalAuth attaches the member when a valid token is sent and lets
// guests through otherwise.
func (h *handler) optionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if u, err := h.svc.Account.Current(c.Request.Context(), token); err == nil {
				c.Set(ctxUser, u)
			} else {
				logx.Debug().Err(err).Msg("ignoring invalid bearer token")
			}
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) (model.User, bool) {
	v, ok := c.Get(ctxUser)
	if !ok {
		return model.User{}, false
	}
	u, ok := v.(model.User)
	return u, ok
}
