package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"service", "method", "path", "status"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "path", "status"},
	)
)

// HTTPMetrics recolector de métricas HTTP por servicio.
type HTTPMetrics struct {
	ServiceName string
}

// NewHTTPMetrics registra los colectores y devuelve el recolector.
func NewHTTPMetrics(serviceName string) *HTTPMetrics {
	prometheus.MustRegister(requestCounter, requestDuration)
	return &HTTPMetrics{ServiceName: serviceName}
}

// Middleware registra contador y duración por (method, ruta, status).
// Usa la ruta registrada en el router, no el path crudo, para acotar la
// cardinalidad de labels.
func (m *HTTPMetrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		path := c.Route().Path
		method := c.Method()
		status := strconv.Itoa(c.Response().StatusCode())

		requestCounter.WithLabelValues(m.ServiceName, method, path, status).Inc()
		requestDuration.WithLabelValues(m.ServiceName, method, path, status).
			Observe(time.Since(start).Seconds())

		return err
	}
}

// Handler devuelve el handler estándar de Prometheus para /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
