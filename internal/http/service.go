package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"

	"github.com/tuanvumaihuynh/pos-backoffice/internal/config"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/http/apierr"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/http/metric"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/http/middleware"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/http/swagger"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/model"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/service"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/storage/db"
	"github.com/tuanvumaihuynh/pos-backoffice/pkg/validator"
)

var tracer = otel.Tracer("internal/http")

// Services groups the application services exposed over HTTP.
type Services struct {
	User      service.UserService
	Category  service.CategoryService
	Product   service.ProductService
	Inventory service.InventoryService
	Order     service.OrderService
	Report    service.ReportService
}

// Service represents the HTTP service.
type Service struct {
	cfg       config.HTTP
	logger    *slog.Logger
	metrics   *metric.Metrics
	validator validator.Validator
	health    db.HealthChecker
	svcs      Services
}

type CleanupFunc func(ctx context.Context) error

func New(
	cfg config.HTTP,
	log *slog.Logger,
	v validator.Validator,
	health db.HealthChecker,
	svcs Services,
) *Service {
	return &Service{
		cfg:       cfg,
		logger:    log.With(slog.String("service", "http")),
		metrics:   metric.New(),
		validator: v,
		health:    health,
		svcs:      svcs,
	}
}

func (s *Service) Run(ctx context.Context) (CleanupFunc, error) {
	return s.RunWithServer(ctx, s.Handler())
}

// Handler builds the router with every middleware and route registered.
func (s *Service) Handler() http.Handler {
	r := chi.NewRouter()
	s.RegisterMiddlewares(r)

	if s.cfg.Swagger {
		swagger.Register(r)
	}

	s.RegisterHandlers(r)

	return r
}

func (s *Service) RunWithServer(ctx context.Context, handler http.Handler) (CleanupFunc, error) {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.cfg.Port))
	if err != nil {
		return nil, fmt.Errorf("listen on port %d: %w", s.cfg.Port, err)
	}

	srv := &http.Server{
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 16, // 64 KB
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.ErrorContext(ctx, "http server stopped", slog.Any("error", err))
		}
	}()

	s.logger.InfoContext(ctx, "http server listening", slog.String("addr", ln.Addr().String()))

	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}, nil
}

func (s *Service) RegisterMiddlewares(r chi.Router) {
	r.Use(
		middleware.Recoverer(s.logger),
		middleware.Trace(tracer),
		middleware.Metrics(s.metrics),
		middleware.CorrelationID(),
		middleware.Cors(s.cfg.CorsOrigins),
		middleware.Logging(s.logger),
	)
}

func (s *Service) RegisterHandlers(r chi.Router) {
	var (
		healthH    = newHealthHandler(s.logger, s.health)
		authH      = newAuthHandler(s.svcs.User, s.validator)
		categoryH  = newCategoryHandler(s.svcs.Category, s.validator)
		productH   = newProductHandler(s.svcs.Product, s.validator)
		inventoryH = newInventoryHandler(s.svcs.Inventory, s.validator)
		orderH     = newOrderHandler(s.svcs.Order, s.validator)
		reportH    = newReportHandler(s.svcs.Report)
	)

	adminOnly := middleware.RequireRole(model.RoleAdmin)
	staff := middleware.RequireRole(model.RoleAdmin, model.RoleCashier)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handle(healthH.Health))
		r.Post("/auth/login", s.handle(authH.Login))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(s.svcs.User))

			r.Get("/auth/me", s.handle(authH.Me))
			r.With(adminOnly).Post("/users", s.handle(authH.CreateUser))

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", s.handle(categoryH.ListCategories))
				r.With(adminOnly).Post("/", s.handle(categoryH.CreateCategory))
				r.Get("/{categoryID}", s.handle(categoryH.GetCategory))
				r.With(adminOnly).Patch("/{categoryID}", s.handle(categoryH.UpdateCategory))
				r.With(adminOnly).Delete("/{categoryID}", s.handle(categoryH.DeleteCategory))
			})

			r.Route("/products", func(r chi.Router) {
				r.Get("/", s.handle(productH.ListProducts))
				r.With(adminOnly).Post("/", s.handle(productH.CreateProduct))
				r.Get("/{productID}", s.handle(productH.GetProduct))
				r.With(adminOnly).Patch("/{productID}", s.handle(productH.UpdateProduct))
				r.With(adminOnly).Delete("/{productID}", s.handle(productH.DeleteProduct))
			})

			r.Route("/inventory", func(r chi.Router) {
				r.Use(adminOnly)
				r.Get("/", s.handle(inventoryH.ListInventory))
				r.Get("/{productID}", s.handle(inventoryH.GetInventory))
				r.Patch("/{productID}", s.handle(inventoryH.UpdateInventory))
			})

			r.Route("/orders", func(r chi.Router) {
				r.With(staff).Post("/", s.handle(orderH.CreateOrder))
				r.With(staff).Get("/", s.handle(orderH.ListOrders))
				r.With(staff).Get("/{orderID}", s.handle(orderH.GetOrder))
				r.With(adminOnly).Delete("/{orderID}", s.handle(orderH.DeleteOrder))
			})

			r.With(adminOnly).Get("/reports/daily", s.handle(reportH.DailyReport))
		})
	})

	r.Handle(middleware.MetricsPath, promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{
		ErrorLog: log.Default(),
	}))
}

func (s *Service) handleResponseError(w http.ResponseWriter, r *http.Request, err error) {
	res := apierr.New(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(res.StatusCode)

	logLevel := slog.LevelInfo
	if res.StatusCode >= 500 {
		logLevel = slog.LevelError
	} else if res.StatusCode >= 400 {
		logLevel = slog.LevelWarn
	}
	s.logger.Log(r.Context(), logLevel, "http response error", slog.Any("error", err))

	if err := json.NewEncoder(w).Encode(res); err != nil {
		s.logger.ErrorContext(r.Context(), "error encoding error response",
			slog.Any("error", err))
	}
}
