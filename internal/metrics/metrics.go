// Package metrics registers the service's Prometheus collectors.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coachify_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "coachify_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	voiceSocketsOpen = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "coachify_voice_sockets_open",
			Help: "Open voice WebSocket connections",
		},
		[]string{"endpoint"},
	)

	conversationTurns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coachify_conversation_turns_total",
			Help: "Processed voice turns",
		},
		[]string{"endpoint"},
	)

	llmFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coachify_llm_fallbacks_total",
			Help: "LLM calls answered with a canned fallback line",
		},
		[]string{"agent"},
	)

	bargeIns = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "coachify_voice_barge_ins_total",
			Help: "Utterances that interrupted synthesized speech",
		},
	)

	facebookPosts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coachify_facebook_posts_total",
			Help: "Facebook feed post attempts",
		},
		[]string{"success"},
	)
)

func SocketOpened(endpoint string) { voiceSocketsOpen.WithLabelValues(endpoint).Inc() }
func SocketClosed(endpoint string) { voiceSocketsOpen.WithLabelValues(endpoint).Dec() }

func TurnProcessed(endpoint string) { conversationTurns.WithLabelValues(endpoint).Inc() }

func LLMFallback(agent string) { llmFallbacks.WithLabelValues(agent).Inc() }

func BargeIn() { bargeIns.Inc() }

func FacebookPost(success bool) {
	facebookPosts.WithLabelValues(strconv.FormatBool(success)).Inc()
}
