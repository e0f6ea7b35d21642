package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	searchSteps = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:      "extreme_search_steps",
			Subsystem: "tides",
			Help:      "Newton/bisection steps taken per extreme.",
			Buckets:   []float64{0, 1, 2, 3, 4, 5, 6, 8, 10, 15, 20},
		},
	)

	searchError = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:      "extreme_error_seconds",
			Subsystem: "tides",
			Help:      "Size of the last search step of reported extremes in seconds, zero when converged.",
			Buckets:   []float64{0, 0.001, 0.01, 0.1, 1, 10, 60, 600},
		},
	)

	extremesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:      "extremes_total",
			Subsystem: "tides",
			Help:      "Extremes reported, by kind.",
		},
		[]string{"kind"},
	)

	predictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:      "predictions_total",
			Subsystem: "tides",
			Help:      "Prediction requests served, by constituent source.",
		},
		[]string{"source"},
	)
)

func init() {
	prometheus.MustRegister(
		searchSteps,
		searchError,
		extremesTotal,
		predictionsTotal,
	)
}

// ObserveExtreme records the search statistics of one reported extreme. The sign
// of searchErr is ignored.
func ObserveExtreme(kind string, steps int, searchErr time.Duration) {
	searchSteps.Observe(float64(steps))
	searchError.Observe(searchErr.Abs().Seconds())
	extremesTotal.With(prometheus.Labels{"kind": kind}).Inc()
}

// ObservePrediction counts a served prediction. Source is "location" or "raw".
func ObservePrediction(source string) {
	predictionsTotal.With(prometheus.Labels{"source": source}).Inc()
}
