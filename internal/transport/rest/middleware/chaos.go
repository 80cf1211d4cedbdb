package middleware

import (
	"math/rand"
	"net/http"
	"time"
)

// ChaosConfig controls artificial latency and failure injection. The demo
// front end is built against a flaky network, so the API can simulate one.
type ChaosConfig struct {
	// FailRate is the probability [0,1] that a write request returns 500.
	FailRate float64
	// MinDelay and MaxDelay bound the artificial latency added per request.
	MinDelay time.Duration
	MaxDelay time.Duration
}

// Enabled reports whether the middleware would do anything at all
func (c ChaosConfig) Enabled() bool {
	return c.FailRate > 0 || c.MaxDelay > 0
}

// Chaos injects latency on every request and random failures on writes.
// With a zero config it is a no-op passthrough.
func Chaos(cfg ChaosConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !cfg.Enabled() {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.MaxDelay > 0 {
				delay := cfg.MinDelay
				if span := cfg.MaxDelay - cfg.MinDelay; span > 0 {
					delay += time.Duration(rand.Int63n(int64(span)))
				}
				time.Sleep(delay)
			}

			if cfg.FailRate > 0 && isWrite(r.Method) && rand.Float64() < cfg.FailRate {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"error":"injected failure"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func isWrite(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}
