package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"mannequin/internal/i18n"
	"mannequin/internal/infra"
)

const (
	RequestIDHeader = "X-Request-ID"
	LocaleHeader    = "X-Locale"
	localeCookie    = "mannequin_lang"
)

type ctxKey int

const localizerKey ctxKey = iota

// RequestID reuses an incoming X-Request-ID or mints a new one, echoes it on
// the response and attaches a request-scoped logger to the context.
func RequestID(logger *infra.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, id)

			reqLogger := logger.With().Str("request_id", id).Logger()
			next.ServeHTTP(w, r.WithContext(reqLogger.WithContext(r.Context())))
		})
	}
}

// AccessLog writes one line per request once the handler returns.
func AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		event := zerolog.Ctx(r.Context()).Info()
		if status >= http.StatusInternalServerError {
			event = zerolog.Ctx(r.Context()).Error()
		}
		event.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("remote_addr", r.RemoteAddr).
			Int("status", status).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}

// Locale picks the UI language from ?lang=, X-Locale, the language cookie
// and Accept-Language, in that order. An explicit ?lang= is remembered.
func Locale(defaultLocale string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			query := r.URL.Query().Get("lang")
			var remembered string
			if c, err := r.Cookie(localeCookie); err == nil {
				remembered = c.Value
			}

			tag := i18n.Match(defaultLocale, query, r.Header.Get(LocaleHeader), remembered, r.Header.Get("Accept-Language"))
			localizer := i18n.New(tag)
			if query != "" {
				http.SetCookie(w, &http.Cookie{Name: localeCookie, Value: localizer.Lang(), Path: "/", SameSite: http.SameSiteLaxMode})
			}
			w.Header().Set("Content-Language", localizer.Lang())

			ctx := context.WithValue(r.Context(), localizerKey, localizer)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func LocalizerFrom(ctx context.Context) *i18n.Localizer {
	if l, ok := ctx.Value(localizerKey).(*i18n.Localizer); ok {
		return l
	}
	return i18n.New(i18n.English)
}
