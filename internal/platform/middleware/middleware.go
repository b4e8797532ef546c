// Copyright (c) 2026 FishEye. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package middleware provides the HTTP processing chain of the FishEye API.

Standard Stack:

  - Trace: RequestID generation for log correlation.
  - Log: One structured line per request, tagged with the photographer and
    media the route addressed.
  - Guard: Per-IP rate limiting (likes draw from a stricter bucket) and CORS.
  - Safe: Panic recovery.

Errors are written through the respond package so clients always receive the
standard error envelope.
*/
package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net"
	"net/http"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/taibuivan/fisheye/internal/platform/apperr"
	"github.com/taibuivan/fisheye/internal/platform/constants"
	"github.com/taibuivan/fisheye/internal/platform/ctxutil"
	"github.com/taibuivan/fisheye/internal/platform/respond"
)

// # Request Tracing

// RequestID reuses the client's X-Request-ID or mints a UUIDv7.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			requestID := request.Header.Get(constants.HeaderXRequestID)
			if requestID == "" {
				requestID = newRequestID()
			}

			writer.Header().Set(constants.HeaderXRequestID, requestID)
			next.ServeHTTP(writer, request.WithContext(ctxutil.WithRequestID(request.Context(), requestID)))
		})
	}
}

func newRequestID() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.New().String()
}

// # Activity Logging

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (recorder *statusRecorder) WriteHeader(code int) {
	recorder.status = code
	recorder.ResponseWriter.WriteHeader(code)
}

// routeParams maps chi URL parameters to log attribute names.
var routeParams = map[string]string{
	"id":      "photographer_id",
	"mediaID": "media_id",
}

// StructuredLogger injects a request-scoped logger and writes one
// "http_request_finished" line per request.
//
// The final line carries the matched route pattern and, when the route
// addressed them, the photographer and media ids. chi fills the route context
// while routing, so they are read after the handler returns.
func StructuredLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			started := time.Now()

			requestLogger := logger.With(
				slog.String("request_id", ctxutil.GetRequestID(request.Context())),
				slog.String("method", request.Method),
				slog.String("path", request.URL.Path),
				slog.String("ip", RealIP(request)),
			)

			ctx := ctxutil.WithLogger(request.Context(), requestLogger)
			recorder := &statusRecorder{ResponseWriter: writer, status: http.StatusOK}
			next.ServeHTTP(recorder, request.WithContext(ctx))

			attrs := []any{
				slog.Int("status", recorder.status),
				slog.Int64("latency_ms", time.Since(started).Milliseconds()),
			}
			attrs = append(attrs, routeAttrs(ctx)...)

			requestLogger.Log(ctx, levelFor(recorder.status), "http_request_finished", attrs...)
		})
	}
}

func routeAttrs(ctx context.Context) []any {
	routeContext := chi.RouteContext(ctx)
	if routeContext == nil {
		return nil
	}

	var attrs []any
	if pattern := routeContext.RoutePattern(); pattern != "" {
		attrs = append(attrs, slog.String("route", pattern))
	}
	for i, key := range routeContext.URLParams.Keys {
		if name, ok := routeParams[key]; ok {
			attrs = append(attrs, slog.String(name, routeContext.URLParams.Values[i]))
		}
	}
	return attrs
}

func levelFor(status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// # Rate Limiting

// visitor holds the token buckets of one client IP.
type visitor struct {
	browse   *rate.Limiter
	like     *rate.Limiter
	lastSeen time.Time
}

// visitors tracks rate limit state per IP.
type visitors struct {
	mu   sync.Mutex
	byIP map[string]*visitor
}

func (set *visitors) limiterFor(ip string, mutating bool) *rate.Limiter {
	set.mu.Lock()
	defer set.mu.Unlock()

	current, found := set.byIP[ip]
	if !found {
		current = &visitor{
			browse: rate.NewLimiter(rate.Limit(constants.DefaultRateLimitRPS), constants.DefaultRateLimitBurst),
			like:   rate.NewLimiter(rate.Limit(constants.LikeRateLimitRPS), constants.LikeRateLimitBurst),
		}
		set.byIP[ip] = current
	}
	current.lastSeen = time.Now()

	if mutating {
		return current.like
	}
	return current.browse
}

func (set *visitors) evictIdle(ttl time.Duration) {
	set.mu.Lock()
	defer set.mu.Unlock()

	for ip, current := range set.byIP {
		if time.Since(current.lastSeen) > ttl {
			delete(set.byIP, ip)
		}
	}
}

// RateLimit limits requests per IP with token buckets. Reads share a generous
// bucket; POST requests (likes) use a separate, stricter one so that browsing
// never starves and like spamming is capped.
//
// Idle IPs are evicted in the background until ctx is cancelled.
func RateLimit(ctx context.Context) func(http.Handler) http.Handler {
	state := &visitors{byIP: make(map[string]*visitor)}

	go func() {
		ticker := time.NewTicker(constants.RateLimitCleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				state.evictIdle(constants.RateLimitClientTTL)
			case <-ctx.Done():
				return
			}
		}
	}()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			mutating := request.Method == http.MethodPost
			limiter := state.limiterFor(RealIP(request), mutating)

			if !limiter.Allow() {
				respond.Error(writer, request, apperr.RateLimited(retryAfter(limiter)))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// retryAfter is the whole number of seconds until the bucket refills one token.
func retryAfter(limiter *rate.Limiter) int {
	perSecond := float64(limiter.Limit())
	if perSecond <= 0 {
		return 1
	}
	return int(math.Max(1, math.Ceil(1/perSecond)))
}

// # Reliability & Safety

// PanicRecovery turns a panic into an INTERNAL_ERROR response and logs the stack.
func PanicRecovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}

				stack := make([]byte, 2048)
				stack = stack[:runtime.Stack(stack, false)]

				ctxutil.GetLoggerOr(request.Context(), logger).ErrorContext(request.Context(), "panic_recovered",
					slog.Any("error", recovered),
					slog.String("stack", string(stack)),
				)

				respond.Error(writer, request, apperr.Internal(fmt.Errorf("panic: %v", recovered)))
			}()

			next.ServeHTTP(writer, request)
		})
	}
}

// # Cross-Origin Resource Sharing

// AppConfig defines the behavior needed by the CORS middleware.
type AppConfig interface {
	IsDevelopment() bool
	AllowedOrigins() []string
}

// CORS lets the gallery front-end call the API. Every origin is accepted in
// development; elsewhere the origin must end with one of the allowed suffixes.
// Pre-flight requests are answered without reaching the router.
func CORS(cfg AppConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			origin := request.Header.Get(constants.HeaderOrigin)
			if origin == "" {
				next.ServeHTTP(writer, request)
				return
			}

			if originAllowed(cfg, origin) {
				header := writer.Header()
				header.Set("Access-Control-Allow-Origin", origin)
				header.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				header.Set("Access-Control-Allow-Headers", "Accept, Content-Type, X-Request-ID")
				header.Set("Access-Control-Expose-Headers", "X-Request-ID")
				header.Set("Access-Control-Max-Age", "300")
				header.Add("Vary", constants.HeaderOrigin)
			}

			if request.Method == http.MethodOptions {
				writer.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

func originAllowed(cfg AppConfig, origin string) bool {
	if cfg.IsDevelopment() {
		return true
	}
	for _, suffix := range cfg.AllowedOrigins() {
		if strings.HasSuffix(origin, suffix) {
			return true
		}
	}
	return false
}

// # Middleware Helpers

// RealIP extracts the client IP, preferring X-Real-IP, then the first
// X-Forwarded-For hop, then the socket address.
func RealIP(request *http.Request) string {
	if ip := request.Header.Get(constants.HeaderXRealIP); ip != "" {
		return ip
	}

	if forwarded := request.Header.Get(constants.HeaderXForwardedFor); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}

	host, _, err := net.SplitHostPort(request.RemoteAddr)
	if err != nil {
		return request.RemoteAddr
	}
	return host
}
