package mediainfo

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds Prometheus collectors for native session activity.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	NativeCalls       *prometheus.CounterVec
	BuffersAllocated  prometheus.Counter
	BuffersFreed      prometheus.Counter
	OpenFailures      prometheus.Counter
	Negotiations      *prometheus.CounterVec
	SessionsLive      prometheus.Gauge
	FinalizerReleases prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg when it is
// not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		NativeCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mediainfo",
			Name:      "native_calls_total",
			Help:      "Calls into libmediainfo by operation and entry point variant.",
		}, []string{"op", "variant"}),
		BuffersAllocated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mediainfo",
			Name:      "param_buffers_allocated_total",
			Help:      "Native buffers allocated for outbound string parameters.",
		}),
		BuffersFreed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mediainfo",
			Name:      "param_buffers_freed_total",
			Help:      "Native buffers freed after the consuming call returned.",
		}),
		OpenFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mediainfo",
			Name:      "open_failures_total",
			Help:      "MediaInfo_Open calls that returned the failure status.",
		}),
		Negotiations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mediainfo",
			Name:      "negotiations_total",
			Help:      "Encoding negotiations by resulting mode.",
		}, []string{"mode"}),
		SessionsLive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "mediainfo",
			Name:      "sessions_live",
			Help:      "Native handles currently held.",
		}),
		FinalizerReleases: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mediainfo",
			Name:      "finalizer_releases_total",
			Help:      "Sessions released by the finalizer because Close was never called.",
		}),
	}
	if reg != nil {
		reg.MustRegister(
			m.NativeCalls,
			m.BuffersAllocated,
			m.BuffersFreed,
			m.OpenFailures,
			m.Negotiations,
			m.SessionsLive,
			m.FinalizerReleases,
		)
	}
	return m
}

func (m *Metrics) nativeCall(op, variant string) {
	if m != nil {
		m.NativeCalls.WithLabelValues(op, variant).Inc()
	}
}

func (m *Metrics) bufferAllocated() {
	if m != nil {
		m.BuffersAllocated.Inc()
	}
}

func (m *Metrics) bufferFreed() {
	if m != nil {
		m.BuffersFreed.Inc()
	}
}

func (m *Metrics) openFailed() {
	if m != nil {
		m.OpenFailures.Inc()
	}
}

func (m *Metrics) negotiated(mode string) {
	if m != nil {
		m.Negotiations.WithLabelValues(mode).Inc()
	}
}

func (m *Metrics) sessionOpened() {
	if m != nil {
		m.SessionsLive.Inc()
	}
}

func (m *Metrics) sessionReleased(byFinalizer bool) {
	if m == nil {
		return
	}
	m.SessionsLive.Dec()
	if byFinalizer {
		m.FinalizerReleases.Inc()
	}
}
