package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/otel/trace"

	_ "orderdesk/docs"
	"orderdesk/pkg/config"
	"orderdesk/pkg/logger"
	"orderdesk/pkg/otel"
	"orderdesk/pkg/shop"
	"orderdesk/pkg/shop/cache"
	"orderdesk/pkg/shop/postgres"
)

var (
	repo   shop.Repository
	log    *logger.Logger
	tracer trace.Tracer
	now    = time.Now
)

// @title Orderdesk API
// @version 1.0
// @description Minimal order-management service: customers, items, orders.
// @BasePath /
func main() {
	log = logger.New(os.Stdout, logger.LevelInfo, "orderdesk", otel.GetTraceID)
	if err := run(); err != nil {
		log.Error(context.Background(), "startup", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if cfg.Otel.Host != "" {
		tp, shutdown, err := otel.InitTracing(log, otel.Config{
			ServiceName: cfg.Service.Name,
			Host:        cfg.Otel.Host,
			Probability: cfg.Otel.Probability,
		})
		if err != nil {
			return err
		}
		defer shutdown(ctx)
		tracer = tp.Tracer(cfg.Service.Name)
	}

	db, err := postgres.Open(ctx, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer db.Close()

	store := postgres.New(db)
	if err := store.EnsureSchema(ctx); err != nil {
		return err
	}
	repo = store

	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		repo = cache.New(repo, rdb, cfg.Redis.TTL)
		log.Info(ctx, "redis cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.TTL)
	}

	addr := cfg.Service.Host + ":" + cfg.Service.Port
	log.Info(ctx, "listening", "addr", addr)
	return http.ListenAndServe(addr, newRouter())
}

// newRouter wires every endpoint. Tests build the same router over the
// in-memory repository.
func newRouter() *mux.Router {
	r := mux.NewRouter()
	r.Use(traceMiddleware, logMiddleware)

	r.HandleFunc("/", redirectToDocsHandler).Methods(http.MethodGet)

	r.HandleFunc("/items", createItemHandler).Methods(http.MethodPost)
	r.HandleFunc("/items/{id}", getItemHandler).Methods(http.MethodGet)
	r.HandleFunc("/items/{id}", updateItemHandler).Methods(http.MethodPut)
	r.HandleFunc("/items/{id}", deleteItemHandler).Methods(http.MethodDelete)

	// The create path is singular while the rest are plural; existing
	// clients depend on both shapes.
	r.HandleFunc("/customer", createCustomerHandler).Methods(http.MethodPost)
	r.HandleFunc("/customers/{id}", getCustomerHandler).Methods(http.MethodGet)
	r.HandleFunc("/customers/{id}", updateCustomerHandler).Methods(http.MethodPut)
	r.HandleFunc("/customers/{id}", deleteCustomerHandler).Methods(http.MethodDelete)

	// POST carries a path id for compatibility; the server assigns the
	// real id and ignores the one in the path.
	r.HandleFunc("/orders/{id}", createOrderHandler).Methods(http.MethodPost)
	r.HandleFunc("/orders/{id}", getOrderHandler).Methods(http.MethodGet)
	r.HandleFunc("/orders/{id}", updateOrderHandler).Methods(http.MethodPut)
	r.HandleFunc("/orders/{id}", deleteOrderHandler).Methods(http.MethodDelete)

	r.HandleFunc("/orders/{id}/items", addOrderItemHandler).Methods(http.MethodPost)
	r.HandleFunc("/orders/{id}/items", listOrderItemsHandler).Methods(http.MethodGet)
	r.HandleFunc("/orders/{id}/items/{itemID}", removeOrderItemHandler).Methods(http.MethodDelete)

	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)
	return r
}

// redirectToDocsHandler sends the root to the interactive API docs.
// @Summary API documentation
// @Success 307
// @Router / [get]
func redirectToDocsHandler(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/swagger/index.html", http.StatusTemporaryRedirect)
}

func traceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.InjectTracing(r.Context(), tracer)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// logMiddleware assigns each request an id and records the outcome.
func logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		log.Info(r.Context(), "request",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
