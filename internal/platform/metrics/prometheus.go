package metrics

import (
	"net/http"

	"github.com/SubhamSahu809/ProRental/internal/platform/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Manager holds the service's Prometheus metrics.
type Manager struct {
	Registry *prometheus.Registry

	ListingsCreatedTotal prometheus.Counter
	ListingUpdatesTotal  prometheus.Counter
	ListingDeletesTotal  prometheus.Counter
	ReviewsCreatedTotal  prometheus.Counter
	UsersRegisteredTotal prometheus.Counter
	APIErrorsTotal       *prometheus.CounterVec
	RequestLatency       *prometheus.HistogramVec
}

// NewManager initializes and registers the metrics on a dedicated
// registry.
func NewManager(serviceName string) *Manager {
	registry := prometheus.NewRegistry()

	listingsCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "listings_created_total",
		Help:      "Total number of listings created.",
	})
	listingUpdates := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "listing_updates_total",
		Help:      "Total number of listings updated.",
	})
	listingDeletes := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "listing_deletes_total",
		Help:      "Total number of listings deleted.",
	})
	reviewsCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "reviews_created_total",
		Help:      "Total number of reviews created.",
	})
	usersRegistered := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "users_registered_total",
		Help:      "Total number of users registered.",
	})
	apiErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "api_errors_total",
		Help:      "Total number of API errors by status code.",
	}, []string{"status"})
	requestLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: serviceName,
		Name:      "http_request_duration_seconds",
		Help:      "Latency of HTTP requests by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	registry.MustRegister(
		listingsCreated,
		listingUpdates,
		listingDeletes,
		reviewsCreated,
		usersRegistered,
		apiErrors,
		requestLatency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Manager{
		Registry:             registry,
		ListingsCreatedTotal: listingsCreated,
		ListingUpdatesTotal:  listingUpdates,
		ListingDeletesTotal:  listingDeletes,
		ReviewsCreatedTotal:  reviewsCreated,
		UsersRegisteredTotal: usersRegistered,
		APIErrorsTotal:       apiErrors,
		RequestLatency:       requestLatency,
	}
}

// StartServer exposes /metrics on a side listener. Blocks; run in a
// goroutine.
func StartServer(port string, appLogger *logger.Logger, registry *prometheus.Registry) error {
	if port == "" {
		appLogger.Info("Metrics server port not configured, server will not start")
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	appLogger.Info("Metrics server starting", zap.String("port", port), zap.String("path", "/metrics"))
	server := &http.Server{Addr: ":" + port, Handler: mux}
	return server.ListenAndServe()
}
