package analytics

import (
	"github.com/prometheus/client_golang/prometheus"

	"wcag-audit/internal/model"
)

// Metrics exports analytics activity to Prometheus. A nil *Metrics is a
// valid no-op.
type Metrics struct {
	records *prometheus.CounterVec
	alerts  *prometheus.CounterVec
	history prometheus.Gauge
}

// NewMetrics registers the analytics collectors on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		records: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wcag_audit",
			Name:      "errors_logged_total",
			Help:      "Records logged into error analytics by type and severity.",
		}, []string{"type", "severity"}),
		alerts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wcag_audit",
			Name:      "trend_alerts_total",
			Help:      "Trend alerts raised, by trend key.",
		}, []string{"trend"}),
		history: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "wcag_audit",
			Name:      "error_history_size",
			Help:      "Records currently retained in the error history.",
		}),
	}
	for _, c := range []prometheus.Collector{m.records, m.alerts, m.history} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observeRecord(r model.ErrorRecord) {
	if m == nil {
		return
	}
	m.records.WithLabelValues(r.Type, string(r.Severity)).Inc()
}

func (m *Metrics) observeAlert(a model.Alert) {
	if m == nil {
		return
	}
	m.alerts.WithLabelValues(a.Trend).Inc()
}

func (m *Metrics) observeHistory(n int) {
	if m == nil {
		return
	}
	m.history.Set(float64(n))
}
