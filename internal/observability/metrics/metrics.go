package metrics

import "github.com/prometheus/client_golang/prometheus"

// SchedulingMetrics exposes counters/histograms for slot generation and
// conflict checking.
type SchedulingMetrics struct {
	slotsGenerated    *prometheus.CounterVec
	generationSeconds prometheus.Histogram
	conflictChecks    *prometheus.CounterVec
	publishPartial    prometheus.Counter
}

func NewSchedulingMetrics(reg prometheus.Registerer) *SchedulingMetrics {
	m := &SchedulingMetrics{
		slotsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "slotforge",
			Subsystem: "scheduling",
			Name:      "slots_generated_total",
			Help:      "Total candidate slots emitted per service",
		}, []string{"service"}),
		generationSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "slotforge",
			Subsystem: "scheduling",
			Name:      "generation_seconds",
			Help:      "Latency of slot generation runs",
			Buckets:   prometheus.DefBuckets,
		}),
		conflictChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "slotforge",
			Subsystem: "scheduling",
			Name:      "conflict_checks_total",
			Help:      "Total overlap queries by outcome",
		}, []string{"outcome"}),
		publishPartial: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "slotforge",
			Subsystem: "scheduling",
			Name:      "publish_partial_total",
			Help:      "Bulk publishes that persisted fewer slots than requested",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.slotsGenerated, m.generationSeconds, m.conflictChecks, m.publishPartial)
	return m
}

func (m *SchedulingMetrics) ObserveGeneration(service string, slots int, seconds float64) {
	if m == nil {
		return
	}
	m.slotsGenerated.WithLabelValues(service).Add(float64(slots))
	m.generationSeconds.Observe(seconds)
}

func (m *SchedulingMetrics) ObserveConflictCheck(conflicts int) {
	if m == nil {
		return
	}
	outcome := "clear"
	if conflicts > 0 {
		outcome = "conflict"
	}
	m.conflictChecks.WithLabelValues(outcome).Inc()
}

func (m *SchedulingMetrics) ObservePartialPublish() {
	if m == nil {
		return
	}
	m.publishPartial.Inc()
}
