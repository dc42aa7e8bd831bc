package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the application: counters
// for notifier activity and bot traffic, plus histograms for database
// queries and report generation.
type Metrics struct {
	NotifierCycles      prometheus.Counter       // Counter for completed notifier poll cycles
	NotificationsQueued *prometheus.CounterVec   // Counter for queued notifications by class
	CommandReceived     *prometheus.CounterVec   // Counter for received bot commands
	SentMessages        *prometheus.CounterVec   // Counter for sent bot messages
	DBQueryDuration     *prometheus.HistogramVec // Histogram for database query durations
	ReportGeneration    *prometheus.HistogramVec // Histogram for report generation durations
}

// NewMetrics creates a new Metrics instance registered with the
// provided Prometheus Registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		NotifierCycles: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "instruments_notifier_cycles_total",
			Help: "Total number of completed deadline notifier cycles.",
		}),
		NotificationsQueued: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "instruments_notifications_queued_total",
			Help: "Total number of queued notifications by class.",
		}, []string{"class"}), // class: critical, overdue, upcoming
		CommandReceived: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "instruments_bot_commands_received_total",
			Help: "Total number of used bot commands.",
		}, []string{"command"}),
		SentMessages: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "instruments_bot_messages_sent_total",
			Help: "Output bot activity.",
		}, []string{"type"}), // type: text, document, error
		DBQueryDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "instruments_db_query_duration_seconds",
			Help:    "Duration of database queries.",
			Buckets: prometheus.DefBuckets,
		}, []string{"query_type"}),
		ReportGeneration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name: "instruments_report_generation_duration_seconds",
			Help: "Duration of Excel report generation.",
		}, []string{"kind"}), // kind: active_issues
	}
}
