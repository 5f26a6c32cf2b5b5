// Package httptransport assembles the public HTTP surface.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"consentintel/pkg/platform/middleware/metadata"
	"consentintel/pkg/platform/middleware/request"
	"consentintel/pkg/platform/middleware/requesttime"
)

// BannerText is served on GET / so operators can see the process is up.
const BannerText = "Consent Intelligence API is running."

// RouteRegistrar mounts a feature's routes.
type RouteRegistrar interface {
	Register(r chi.Router)
}

type RouterConfig struct {
	Logger         *slog.Logger
	Metrics        *request.Metrics
	Metadata       *metadata.Config
	AllowedOrigins []string
	RequestTimeout time.Duration
	MaxBodyBytes   int64

	// Health is mounted at the root.
	Health RouteRegistrar
	// API handlers are mounted under /api behind body limits and timeouts.
	API []RouteRegistrar
	// Streaming handlers are mounted under /api without the timeout wrapper,
	// which would break connection hijacking.
	Streaming []RouteRegistrar
}

// NewRouter wires all public endpoints with middleware.
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()

	r.Use(request.Recovery(logger))
	r.Use(request.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(metadata.NewMiddleware(cfg.Metadata).Handler)
	r.Use(request.Logger(logger))
	r.Use(request.CORS(cfg.AllowedOrigins))
	r.Use(request.LatencyMiddleware(cfg.Metrics, routePattern))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(BannerText))
	})

	if cfg.Health != nil {
		cfg.Health.Register(r)
	}

	r.Route("/api", func(api chi.Router) {
		api.Group(func(g chi.Router) {
			if cfg.MaxBodyBytes > 0 {
				g.Use(request.BodyLimit(cfg.MaxBodyBytes))
			}
			g.Use(request.ContentTypeJSON)
			if cfg.RequestTimeout > 0 {
				g.Use(request.Timeout(cfg.RequestTimeout))
			}
			for _, h := range cfg.API {
				h.Register(g)
			}
		})
		for _, h := range cfg.Streaming {
			h.Register(api)
		}
	})

	return r
}

func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return ""
	}
	return rctx.RoutePattern()
}
