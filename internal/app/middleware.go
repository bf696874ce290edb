package app

import (
	"log/slog"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"

	"github.com/sinobridge-erp/sinobridge-erp/internal/shared"
)

// MiddlewareConfig aggregates dependencies shared by the middleware stack.
type MiddlewareConfig struct {
	Logger         *slog.Logger
	Config         *Config
	SessionManager *shared.SessionManager
}

// MiddlewareStack returns the ordered middleware chain applied to every route.
func MiddlewareStack(cfg MiddlewareConfig) []func(http.Handler) http.Handler {
	secureMW := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		IsDevelopment:      cfg.Config != nil && !cfg.Config.IsProduction(),
	})

	stack := []func(http.Handler) http.Handler{
		chimw.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		secureMW.Handler,
		httprate.LimitByIP(300, time.Minute),
		requestLogger(cfg.Logger),
	}

	if cfg.Config != nil && cfg.Config.AppRequestTimeout > 0 {
		stack = append(stack, chimw.Timeout(cfg.Config.AppRequestTimeout))
	}

	if cfg.SessionManager != nil {
		stack = append(stack, sessionLoader(cfg.SessionManager, cfg.Logger))
	}

	return stack
}

// requestLogger emits one structured line per request.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if logger == nil {
				next.ServeHTTP(w, r)
				return
			}
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Info("http request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", chimw.GetReqID(r.Context())),
			)
		})
	}
}

// sessionLoader resolves the request session and stores it on the context.
// Resolution failures are logged and treated as anonymous requests.
func sessionLoader(sm *shared.SessionManager, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := sm.Load(r.Context(), r)
			if err != nil {
				if logger != nil {
					logger.Warn("session load", slog.Any("error", err))
				}
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(shared.WithSession(r.Context(), sess)))
		})
	}
}
