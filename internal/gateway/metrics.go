package gateway

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	sourceExcel  = "excel"
	sourceGitHub = "github"

	outcomeOK      = "ok"
	outcomeInvalid = "invalid"
	outcomeFailed  = "failed"
)

type metrics struct {
	imports   *prometheus.CounterVec
	questions *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		imports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sheettracker",
			Name:      "imports_total",
			Help:      "Import requests by source and outcome.",
		}, []string{"source", "outcome"}),
		questions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sheettracker",
			Name:      "questions_parsed_total",
			Help:      "Questions returned by successful imports.",
		}, []string{"source"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "sheettracker",
			Name:      "import_duration_seconds",
			Help:      "Time spent handling import requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"source"}),
	}
	reg.MustRegister(m.imports, m.questions, m.duration)
	return m
}

func (m *metrics) observe(source, outcome string, questions int, started time.Time) {
	m.imports.WithLabelValues(source, outcome).Inc()
	if outcome == outcomeOK {
		m.questions.WithLabelValues(source).Add(float64(questions))
	}
	m.duration.WithLabelValues(source).Observe(time.Since(started).Seconds())
}
