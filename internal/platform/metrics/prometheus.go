package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Manager holds the custom Prometheus metrics for the service.
type Manager struct {
	Registry          *prometheus.Registry
	CartsCreatedTotal prometheus.Counter
	CartUpdatesTotal  prometheus.Counter
	CartRemovalsTotal prometheus.Counter
	HTTPErrorsTotal   *prometheus.CounterVec
	HTTPLatency       *prometheus.HistogramVec
}

func NewManager(serviceName string) *Manager {
	registry := prometheus.NewRegistry()

	cartsCreatedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "carts_created_total",
		Help:      "Total number of carts created.",
	})
	cartUpdatesTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "cart_updates_total",
		Help:      "Total number of cart mutations (add item, update quantity, remove item).",
	})
	cartRemovalsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "cart_removals_total",
		Help:      "Total number of carts removed.",
	})
	httpErrorsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "http_errors_total",
		Help:      "Total number of HTTP error responses by route and status.",
	}, []string{"route", "status"})
	httpLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: serviceName,
		Name:      "http_request_latency_seconds",
		Help:      "Latency of HTTP requests by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	registry.MustRegister(
		cartsCreatedTotal,
		cartUpdatesTotal,
		cartRemovalsTotal,
		httpErrorsTotal,
		httpLatency,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)

	return &Manager{
		Registry:          registry,
		CartsCreatedTotal: cartsCreatedTotal,
		CartUpdatesTotal:  cartUpdatesTotal,
		CartRemovalsTotal: cartRemovalsTotal,
		HTTPErrorsTotal:   httpErrorsTotal,
		HTTPLatency:       httpLatency,
	}
}

// StartMetricsServer exposes the registry on its own listener. A blank port
// disables the server.
func StartMetricsServer(port string, logger *zap.Logger, registry *prometheus.Registry) error {
	if port == "" {
		logger.Info("Prometheus metrics server port not configured, server will not start.")
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	logger.Info("Prometheus metrics server starting", zap.String("port", port), zap.String("path", "/metrics"))

	server := &http.Server{
		Addr:    ":" + port,
		Handler: mux,
	}

	return server.ListenAndServe()
}
