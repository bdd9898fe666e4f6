package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marinefit_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "marinefit_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	TrainingsRequestedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "marinefit_trainings_requested_total",
			Help: "Total number of training requests accepted",
		},
	)

	TrainingDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marinefit_training_decisions_total",
			Help: "Total number of confirmed or declined trainings",
		},
		[]string{"status"},
	)

	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marinefit_notifications_total",
			Help: "Total number of Telegram notifications by outcome",
		},
		[]string{"result"},
	)

	BotUpdatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marinefit_bot_updates_total",
			Help: "Total number of Telegram updates handled",
		},
		[]string{"command"},
	)

	BotPollErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "marinefit_bot_poll_errors_total",
			Help: "Total number of failed getUpdates calls",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordTrainingRequested() {
	TrainingsRequestedTotal.Inc()
}

func RecordTrainingDecision(status string) {
	TrainingDecisionsTotal.WithLabelValues(status).Inc()
}

func RecordNotification(result string) {
	NotificationsTotal.WithLabelValues(result).Inc()
}

func RecordBotUpdate(command string) {
	BotUpdatesTotal.WithLabelValues(command).Inc()
}

func RecordBotPollError() {
	BotPollErrorsTotal.Inc()
}
