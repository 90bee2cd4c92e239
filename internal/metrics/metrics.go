package metrics

import "github.com/prometheus/client_golang/prometheus"

// Prometheus metrics del consumidor de eventos
var (
	OrderEventsProcessedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_events_processed_total",
			Help: "Total de eventos de pedido procesados por tipo",
		},
		[]string{"event_type"},
	)

	OrderEventsSkippedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "order_events_skipped_total",
			Help: "Total de eventos con detail-type no reconocido",
		},
	)

	OrderEventsFailedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "order_events_failed_total",
			Help: "Total de eventos que fallaron al procesarse",
		},
	)
)

// Register registra todas las métricas en el registry por defecto
func Register() {
	prometheus.MustRegister(OrderEventsProcessedTotal)
	prometheus.MustRegister(OrderEventsSkippedTotal)
	prometheus.MustRegister(OrderEventsFailedTotal)
}
