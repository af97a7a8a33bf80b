package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HistorySizer reports how many entries a history ledger holds.
type HistorySizer interface {
	Len() int
	Cap() int
}

// NewRegistry returns a Prometheus registry with the Go runtime and process
// collectors plus gauges reading the history ledger on every scrape.
func NewRegistry(history HistorySizer) *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	if history != nil {
		reg.MustRegister(
			prometheus.NewGaugeFunc(prometheus.GaugeOpts{
				Namespace: "nlcalc",
				Name:      "history_entries",
				Help:      "Number of entries currently held in the calculation history.",
			}, func() float64 { return float64(history.Len()) }),
			prometheus.NewGaugeFunc(prometheus.GaugeOpts{
				Namespace: "nlcalc",
				Name:      "history_capacity",
				Help:      "Maximum number of entries the calculation history retains.",
			}, func() float64 { return float64(history.Cap()) }),
		)
	}

	return reg
}

func PrometheusHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}
