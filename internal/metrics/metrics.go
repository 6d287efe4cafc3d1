// Package metrics exposes Prometheus collectors for dispatch and reconciliation.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "whatsapp_marketing"

var (
	MessagesSent = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_sent_total",
		Help:      "Messages accepted by the provider.",
	})

	MessagesFailed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_failed_total",
		Help:      "Contacts whose dispatch attempt failed.",
	})

	LanguageFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "language_fallbacks_total",
		Help:      "Sends that succeeded on a fallback language.",
	}, []string{"language"})

	CampaignsFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "campaigns_finished_total",
		Help:      "Campaigns that reached a terminal status from a worker.",
	}, []string{"status"})

	WebhookEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "webhook_events_total",
		Help:      "Delivery status events applied.",
	}, []string{"status"})

	WebhookDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "webhook_dropped_total",
		Help:      "Webhook payloads or events discarded.",
	}, []string{"reason"})

	PanicsRecovered = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_panics_recovered_total",
		Help:      "Handler panics turned into 500 responses.",
	})

	ProviderSendDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "provider_send_duration_seconds",
		Help:      "Latency of Graph API message sends.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"outcome"})
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
