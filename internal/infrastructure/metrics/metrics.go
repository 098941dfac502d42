// Package metrics expone las métricas Prometheus del servicio: negocio (pedidos,
// estatus) y HTTP (peticiones y latencia).
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jhoicas/sigep-gc/internal/application/pedidos"
)

var _ pedidos.Recorder = (*Metrics)(nil)

// Metrics agrupa los collectors registrados en un registerer.
type Metrics struct {
	pedidosCreados      prometheus.Counter
	estatusActualizados *prometheus.CounterVec
	pedidosEliminados   prometheus.Counter

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// New registra los collectors en reg (prometheus.DefaultRegisterer en producción).
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		pedidosCreados: f.NewCounter(prometheus.CounterOpts{
			Name: "sigep_pedidos_creados_total",
			Help: "Pedidos creados",
		}),
		estatusActualizados: f.NewCounterVec(prometheus.CounterOpts{
			Name: "sigep_estatus_actualizados_total",
			Help: "Cambios de estatus por área y estatus resultante",
		}, []string{"area", "estatus"}),
		pedidosEliminados: f.NewCounter(prometheus.CounterOpts{
			Name: "sigep_pedidos_eliminados_total",
			Help: "Pedidos eliminados (individuales y completados en lote)",
		}),
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "sigep_http_requests_total",
			Help: "Peticiones HTTP por método, ruta y código",
		}, []string{"method", "route", "status"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sigep_http_request_duration_seconds",
			Help:    "Latencia de las peticiones HTTP",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

func (m *Metrics) PedidoCreado() { m.pedidosCreados.Inc() }

func (m *Metrics) EstatusActualizado(area, estatus string) {
	m.estatusActualizados.WithLabelValues(area, estatus).Inc()
}

func (m *Metrics) PedidosEliminados(n int) { m.pedidosEliminados.Add(float64(n)) }

// ObserveHTTP registra una petición. route es el patrón (/api/pedidos/:id), no la URL real.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
