package metrics

import "github.com/prometheus/client_golang/prometheus"

// CoreMetrics exposes counters for the appointment core: notification
// delivery attempts, reminder scan cycles, and raised alerts.
type CoreMetrics struct {
	notificationsTotal *prometheus.CounterVec
	scanCyclesTotal    *prometheus.CounterVec
	alertsTotal        prometheus.Counter
}

func NewCoreMetrics(reg prometheus.Registerer) *CoreMetrics {
	m := &CoreMetrics{
		notificationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinicsched",
			Subsystem: "notify",
			Name:      "deliveries_total",
			Help:      "Total doctor notification attempts",
		}, []string{"status"}),
		scanCyclesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinicsched",
			Subsystem: "reminder",
			Name:      "scan_cycles_total",
			Help:      "Total reminder scan cycles",
		}, []string{"status"}),
		alertsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "clinicsched",
			Subsystem: "reminder",
			Name:      "alerts_total",
			Help:      "Total reminder alerts raised",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.notificationsTotal, m.scanCyclesTotal, m.alertsTotal)
	return m
}

func (m *CoreMetrics) ObserveNotification(delivered bool) {
	if m == nil {
		return
	}
	status := "delivered"
	if !delivered {
		status = "failed"
	}
	m.notificationsTotal.WithLabelValues(status).Inc()
}

func (m *CoreMetrics) ObserveScanCycle(ok bool) {
	if m == nil {
		return
	}
	status := "ok"
	if !ok {
		status = "failed"
	}
	m.scanCyclesTotal.WithLabelValues(status).Inc()
}

func (m *CoreMetrics) ObserveAlert() {
	if m == nil {
		return
	}
	m.alertsTotal.Inc()
}
