package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Raymond9734/customer-manager/internal/queue"
	"github.com/Raymond9734/customer-manager/internal/service"
	"github.com/Raymond9734/customer-manager/internal/tracing"
)

// RouterConfig carries everything the HTTP surface depends on
type RouterConfig struct {
	CustomerService service.CustomerService
	DB              DatabaseChecker
	Queue           queue.Client
	Tracer          tracing.Tracer
	AllowedOrigins  []string
	Logger          *slog.Logger
}

// NewRouter builds the application router
func NewRouter(cfg RouterConfig) http.Handler {
	customerHandler := NewCustomerHandler(cfg.CustomerService, cfg.Logger)
	healthHandler := NewHealthHandler(cfg.DB, cfg.Queue, cfg.Logger)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(LoggingMiddleware(cfg.Logger))
	r.Use(RecoveryMiddleware(cfg.Logger))
	r.Use(CORSMiddleware(cfg.AllowedOrigins))
	if cfg.Tracer != nil {
		r.Use(tracing.NewTracingMiddleware(cfg.Tracer))
	}

	r.Get("/health", healthHandler.Health)
	r.Route(CustomersBasePath, customerHandler.Routes)

	ui := UIHandler()
	r.Get("/", ui.ServeHTTP)
	r.Get("/static/*", ui.ServeHTTP)

	return r
}
