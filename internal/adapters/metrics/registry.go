package metrics

import (
	"VendingBus/internal/core/domain"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"
)

// Registry owns the process metrics without touching the global
// prometheus registry.
type Registry struct {
	registry *prometheus.Registry

	eventsTotal     *prometheus.CounterVec
	handlerFailures *prometheus.CounterVec
	stockLevel      *prometheus.GaugeVec
	lowStock        *prometheus.GaugeVec
}

// NewRegistry creates a registry with all metrics initialized.
func NewRegistry() *Registry {
	registry := prometheus.NewRegistry()

	r := &Registry{
		registry: registry,

		eventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vending_events_total",
				Help: "Events dispatched by the bus",
			},
			[]string{"topic"},
		),

		handlerFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vending_handler_failures_total",
				Help: "Drains aborted by a failing subscriber",
			},
			[]string{"subscriber"},
		),

		stockLevel: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "vending_stock_level",
				Help: "Current stock level per machine",
			},
			[]string{"machine"},
		),

		lowStock: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "vending_low_stock",
				Help: "1 if the machine is flagged as low on stock",
			},
			[]string{"machine"},
		),
	}

	registry.MustRegister(
		r.eventsTotal,
		r.handlerFailures,
		r.stockLevel,
		r.lowStock,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Pre-create the topic series so they show up as 0.
	for _, topic := range domain.Topics() {
		r.eventsTotal.WithLabelValues(topic.String())
	}

	return r
}

// Handler returns the /metrics HTTP handler.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// RecordEvent counts one dispatched event.
func (r *Registry) RecordEvent(topic domain.Topic) {
	r.eventsTotal.WithLabelValues(topic.String()).Inc()
}

// EventTotal returns how many events of one topic were dispatched so far.
func (r *Registry) EventTotal(topic domain.Topic) float64 {
	var m dto.Metric
	if err := r.eventsTotal.WithLabelValues(topic.String()).Write(&m); err != nil {
		return 0
	}
	return m.GetCounter().GetValue()
}

// RecordHandlerFailure counts one aborted drain.
func (r *Registry) RecordHandlerFailure(subscriber string) {
	r.handlerFailures.WithLabelValues(subscriber).Inc()
}

// SetMachine publishes the stock state of a machine.
func (r *Registry) SetMachine(m domain.Machine) {
	r.stockLevel.WithLabelValues(m.ID).Set(float64(m.StockLevel))
	low := 0.0
	if m.LowStock {
		low = 1
	}
	r.lowStock.WithLabelValues(m.ID).Set(low)
}
