// Package metrics registers the application's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// NotificationJobs counts notification jobs accepted by the dispatcher.
	NotificationJobs = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "notification_jobs_total",
			Help: "Total notification jobs enqueued by the admin dispatcher",
		},
	)

	// EmailsSent counts emails successfully handed to the mailer.
	EmailsSent = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "notification_emails_sent_total",
			Help: "Total notification emails sent by background workers",
		},
	)

	// EmailsFailed counts emails the mailer failed to deliver.
	EmailsFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "notification_emails_failed_total",
			Help: "Total notification emails that failed to send",
		},
	)
)

func init() {
	prometheus.MustRegister(NotificationJobs)
	prometheus.MustRegister(EmailsSent)
	prometheus.MustRegister(EmailsFailed)
}
