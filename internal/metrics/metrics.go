package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the application collectors.
type Metrics struct {
	HTTPRequestsTotal          *prometheus.CounterVec
	HTTPRequestDurationSeconds *prometheus.HistogramVec
	SnippetsSweptTotal         *prometheus.CounterVec
	SweepFailuresTotal         *prometheus.CounterVec
	SnippetSavesTotal          *prometheus.CounterVec
	OTPIssuedTotal             *prometheus.CounterVec
	OTPVerificationsTotal      *prometheus.CounterVec
	AuthRegistrationsTotal     *prometheus.CounterVec
	AuthLoginsTotal            *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDurationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		SnippetsSweptTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "snippets_swept_total",
				Help: "Total number of snippets deleted by the retention sweeper.",
			},
			[]string{"policy"},
		),
		SweepFailuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "snippet_sweep_failures_total",
				Help: "Total number of failed retention sweep deletions.",
			},
			[]string{"policy"},
		),
		SnippetSavesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "snippet_saves_total",
				Help: "Total number of snippet autosaves.",
			},
			[]string{"owner", "result"},
		),
		OTPIssuedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "otp_issued_total",
				Help: "Total number of verification code issuance attempts.",
			},
			[]string{"result"},
		),
		OTPVerificationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "otp_verifications_total",
				Help: "Total number of verification code checks.",
			},
			[]string{"result"},
		),
		AuthRegistrationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_registrations_total",
				Help: "Total number of registration attempts.",
			},
			[]string{"method", "result"},
		),
		AuthLoginsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_logins_total",
				Help: "Total number of login attempts.",
			},
			[]string{"method", "result"},
		),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDurationSeconds,
		m.SnippetsSweptTotal,
		m.SweepFailuresTotal,
		m.SnippetSavesTotal,
		m.OTPIssuedTotal,
		m.OTPVerificationsTotal,
		m.AuthRegistrationsTotal,
		m.AuthLoginsTotal,
	)

	return m
}

// NewNoop creates collectors registered with a private registry.
func NewNoop() *Metrics {
	return New(prometheus.NewRegistry())
}

// Result maps an error to a metric label.
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
