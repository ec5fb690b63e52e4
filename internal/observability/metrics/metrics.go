package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics счётчики API записи и форм
type Metrics struct {
	submissions     *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	emails          *prometheus.CounterVec
	rateLimited     prometheus.Counter
}

// New регистрирует метрики в reg (по умолчанию DefaultRegisterer)
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "consultations",
			Subsystem: "api",
			Name:      "submissions_total",
			Help:      "Form submissions by form and outcome",
		}, []string{"form", "outcome"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "consultations",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "Latency of form handlers",
			Buckets:   prometheus.DefBuckets,
		}, []string{"form"}),
		emails: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "consultations",
			Subsystem: "notify",
			Name:      "emails_total",
			Help:      "Notification emails by status",
		}, []string{"status"}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "consultations",
			Subsystem: "api",
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the per-IP limiter",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissions, m.requestDuration, m.emails, m.rateLimited)
	return m
}

// ObserveSubmission outcome: ok, invalid, duplicate, error
func (m *Metrics) ObserveSubmission(form, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(form, outcome).Inc()
	m.requestDuration.WithLabelValues(form).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveEmail(err error) {
	if m == nil {
		return
	}
	status := "sent"
	if err != nil {
		status = "failed"
	}
	m.emails.WithLabelValues(status).Inc()
}

func (m *Metrics) ObserveRateLimited() {
	if m == nil {
		return
	}
	m.rateLimited.Inc()
}
