package handlers

import (
	"log"
	"net/http"
	"time"

	"treasurehunt/internal/security"
)

// Middleware holds dependencies for middleware functions
type Middleware struct {
	limiter *security.RateLimiter
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(limiter *security.RateLimiter) *Middleware {
	return &Middleware{limiter: limiter}
}

// RateLimit throttles per-client access to routes that cost a judge call
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !m.limiter.Allow(security.ClientIP(r)) {
			respondWithError(w, http.StatusTooManyRequests, "Too many requests, slow down", "", nil)
			return
		}
		next(w, r)
	}
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}
