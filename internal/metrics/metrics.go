package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics - метрики ядра безопасности. Все методы безопасны для nil-получателя.
type Metrics struct {
	ReportsIngested    prometheus.Counter
	AlertsRaised       *prometheus.CounterVec
	AlertsSuppressed   *prometheus.CounterVec
	AlertTransitions   *prometheus.CounterVec
	EmergenciesCreated *prometheus.CounterVec
	AnomalyFailures    prometheus.Counter
	EvaluateLatency    prometheus.Histogram
	ZonesLoaded        prometheus.Gauge
}

// New создает и регистрирует метрики в reg
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ReportsIngested: f.NewCounter(prometheus.CounterOpts{
			Name: "tourist_safety_location_reports_total",
			Help: "Total number of location reports accepted by the pipeline",
		}),
		AlertsRaised: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tourist_safety_alerts_raised_total",
			Help: "Alerts created by cause and severity",
		}, []string{"cause", "severity"}),
		AlertsSuppressed: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tourist_safety_alerts_suppressed_total",
			Help: "Alert requests declined by deduplication or cooldown",
		}, []string{"cause"}),
		AlertTransitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tourist_safety_status_transitions_total",
			Help: "Alert and emergency status transitions",
		}, []string{"entity", "status"}),
		EmergenciesCreated: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tourist_safety_emergencies_total",
			Help: "Emergencies created by kind",
		}, []string{"kind"}),
		AnomalyFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "tourist_safety_anomaly_failures_total",
			Help: "Best-effort anomaly evaluations that failed",
		}),
		EvaluateLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "tourist_safety_evaluate_duration_seconds",
			Help:    "Duration of a single location evaluation",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		ZonesLoaded: f.NewGauge(prometheus.GaugeOpts{
			Name: "tourist_safety_zones",
			Help: "Number of zones in the in-memory index",
		}),
	}
}

func (m *Metrics) IncReports() {
	if m != nil {
		m.ReportsIngested.Inc()
	}
}

func (m *Metrics) IncAlertRaised(cause, severity string) {
	if m != nil {
		m.AlertsRaised.WithLabelValues(cause, severity).Inc()
	}
}

func (m *Metrics) IncAlertSuppressed(cause string) {
	if m != nil {
		m.AlertsSuppressed.WithLabelValues(cause).Inc()
	}
}

func (m *Metrics) IncTransition(entity, status string) {
	if m != nil {
		m.AlertTransitions.WithLabelValues(entity, status).Inc()
	}
}

func (m *Metrics) IncEmergency(kind string) {
	if m != nil {
		m.EmergenciesCreated.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) IncAnomalyFailure() {
	if m != nil {
		m.AnomalyFailures.Inc()
	}
}

func (m *Metrics) ObserveEvaluate(d time.Duration) {
	if m != nil {
		m.EvaluateLatency.Observe(d.Seconds())
	}
}

func (m *Metrics) SetZones(n int) {
	if m != nil {
		m.ZonesLoaded.Set(float64(n))
	}
}
