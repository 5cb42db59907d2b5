package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry registro propio de la aplicación; se expone en GET /metrics.
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

var movementsTotal = promauto.With(Registry).NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "metrologia",
		Subsystem: "inventory",
		Name:      "movements_total",
		Help:      "Movimientos procesados por tipo y resultado.",
	},
	[]string{"type", "result"},
)

var movementRetries = promauto.With(Registry).NewCounter(
	prometheus.CounterOpts{
		Namespace: "metrologia",
		Subsystem: "inventory",
		Name:      "movement_retries_total",
		Help:      "Reintentos de commit por conflicto de escritura concurrente.",
	},
)

// MovementProcessed registra el desenlace de un movimiento.
// result: committed | insufficient_stock | not_found | conflict | error.
func MovementProcessed(movementType, result string) {
	movementsTotal.WithLabelValues(movementType, result).Inc()
}

// MovementRetried registra un reintento por conflicto detectado.
func MovementRetried() {
	movementRetries.Inc()
}
