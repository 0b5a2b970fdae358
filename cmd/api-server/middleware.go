package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/protomem/bizcard-pass/internal/ctxstore"
	"github.com/protomem/bizcard-pass/internal/response"
	"github.com/rs/cors"

	"github.com/tomasen/realip"
)

const _traceIDHeader = "X-Trace-Id"

func (app *application) traceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tid := genTraceID()
		w.Header().Set(_traceIDHeader, tid)
		ctx := ctxstore.With(r.Context(), ctxstore.TraceIDKey, tid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			err := recover()
			if err != nil {
				w.Header().Set("Connection", "close")
				app.serverError(w, r, fmt.Errorf("%s", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func (app *application) logAccess(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		mw := response.NewMetricsResponseWriter(w)
		next.ServeHTTP(mw, r)

		elapsed := time.Since(start)

		var (
			ip     = realip.FromRequest(r)
			method = r.Method
			url    = r.URL.String()
			proto  = r.Proto
			tid    = ctxstore.FromOr(r.Context(), ctxstore.TraceIDKey, "")
		)

		app.metrics.ObserveRequest(method, routePattern(r), mw.StatusCode, elapsed)

		userAttrs := slog.Group("user", "ip", ip)
		requestAttrs := slog.Group("request", "method", method, "url", url, "proto", proto, ctxstore.TraceIDKey.String(), tid)
		responseAttrs := slog.Group("response", "status", mw.StatusCode, "size", mw.BytesCount, "duration", elapsed)

		app.serverLogger().Info("access", userAttrs, requestAttrs, responseAttrs)
	})
}

// CORS allows every origin unless CORS_ALLOWED_ORIGINS narrows it down.
func (app *application) CORS() func(http.Handler) http.Handler {
	if len(app.config.CORS.AllowedOrigins) == 0 {
		return cors.AllowAll().Handler
	}

	return cors.New(cors.Options{
		AllowedOrigins:   app.config.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Content-Disposition", _traceIDHeader},
		AllowCredentials: true,
	}).Handler
}

// routePattern keeps the metric label set bounded.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}

func genTraceID() string {
	id, _ := uuid.NewRandom()
	return id.String()
}
