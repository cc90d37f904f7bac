package metrics

import (
	"errors"
	"net/http"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hamed0406/infrawatch/internal/domain"
)

// Package-level Prometheus collectors, registered via Register. They expose
// only the current poll state; no history is kept.
var (
	regOK atomic.Bool

	targetUp = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "infrawatch",
			Subsystem: "target",
			Name:      "up",
			Help:      "1 when the last probe of the target succeeded, 0 otherwise.",
		}, []string{"name", "kind"},
	)
	probeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "infrawatch",
			Subsystem: "probe",
			Name:      "duration_seconds",
			Help:      "Observed probe latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind"},
	)
	transitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "infrawatch",
			Name:      "transitions_total",
			Help:      "Status transitions, labelled by the status entered.",
		}, []string{"name", "kind", "to"},
	)
	notifyFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "infrawatch",
			Name:      "notify_failures_total",
			Help:      "Alert deliveries that returned an error.",
		},
	)
)

// Register adds all collectors to the default registry. Safe to call once;
// repeated calls return an error.
func Register() error {
	if !regOK.CompareAndSwap(false, true) {
		return errors.New("metrics already registered")
	}
	for _, c := range []prometheus.Collector{targetUp, probeDuration, transitions, notifyFailures} {
		if err := prometheus.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveProbe records one probe outcome for a target.
func ObserveProbe(t domain.Target, r domain.ProbeResult) {
	v := 0.0
	if r.Up {
		v = 1.0
	}
	targetUp.WithLabelValues(t.Name, string(t.Kind)).Set(v)
	if r.Latency > 0 {
		probeDuration.WithLabelValues(string(t.Kind)).Observe(r.Latency.Seconds())
	}
}

// ObserveTransition counts a status flip.
func ObserveTransition(tr domain.Transition) {
	transitions.WithLabelValues(tr.Target.Name, string(tr.Target.Kind), string(tr.To)).Inc()
}

// ObserveNotifyFailure counts a failed alert delivery.
func ObserveNotifyFailure() {
	notifyFailures.Inc()
}
