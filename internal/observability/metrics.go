package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce          sync.Once
	httpRequestsTotal     *prometheus.CounterVec
	httpLatencySeconds    *prometheus.HistogramVec
	httpErrorsTotal       *prometheus.CounterVec
	submissionsTotal      *prometheus.CounterVec
	feedbackTotal         *prometheus.CounterVec
	notificationsTotal    *prometheus.CounterVec
	notificationStreams   *prometheus.GaugeVec
	attachmentUploadTotal *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors exported by the tracker.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tracker_http_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tracker_http_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		httpErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tracker_http_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		submissionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tracker_submissions_total",
			Help: "Submissions handed in, split into first submissions and resubmissions.",
		}, []string{"kind"})

		feedbackTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tracker_feedback_total",
			Help: "Feedback verdicts recorded by reviewers.",
		}, []string{"verdict"})

		notificationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tracker_notifications_emitted_total",
			Help: "Notifications created for students.",
		}, []string{"type"})

		notificationStreams = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "tracker_notification_streams_active",
			Help: "Active notification stream subscribers.",
		}, []string{"transport"})

		attachmentUploadTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tracker_attachment_uploads_total",
			Help: "Image attachments pushed to the external uploader.",
		}, []string{"result"})

		prometheus.MustRegister(
			httpRequestsTotal,
			httpLatencySeconds,
			httpErrorsTotal,
			submissionsTotal,
			feedbackTotal,
			notificationsTotal,
			notificationStreams,
			attachmentUploadTotal,
		)
	})
}

// HTTPRequests exposes the request counter.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the request latency histogram.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// HTTPErrors exposes the counter for error responses.
func HTTPErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return httpErrorsTotal
}

// Submissions exposes the submission counter.
func Submissions() *prometheus.CounterVec {
	RegisterMetrics()
	return submissionsTotal
}

// Feedback exposes the feedback verdict counter.
func Feedback() *prometheus.CounterVec {
	RegisterMetrics()
	return feedbackTotal
}

// NotificationsEmitted exposes the notification counter.
func NotificationsEmitted() *prometheus.CounterVec {
	RegisterMetrics()
	return notificationsTotal
}

// NotificationStreams exposes the gauge of connected stream subscribers.
func NotificationStreams() *prometheus.GaugeVec {
	RegisterMetrics()
	return notificationStreams
}

// AttachmentUploads exposes the uploader outcome counter.
func AttachmentUploads() *prometheus.CounterVec {
	RegisterMetrics()
	return attachmentUploadTotal
}
