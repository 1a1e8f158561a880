package observability

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chitchat_http_requests_total",
			Help: "Total number of HTTP requests processed by the backend.",
		},
		[]string{"method", "route", "status"},
	)
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chitchat_http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)
	messagesSentTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chitchat_messages_sent_total",
			Help: "Total number of messages persisted.",
		},
	)
	friendRequestEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chitchat_friend_request_events_total",
			Help: "Friend request lifecycle events by outcome.",
		},
		[]string{"event"},
	)
	amqpPublishErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chitchat_amqp_publish_errors_total",
			Help: "Total number of AMQP publish errors.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		httpRequestsTotal,
		httpRequestDuration,
		messagesSentTotal,
		friendRequestEventsTotal,
		amqpPublishErrorsTotal,
	)
}

// HTTPMetricsMiddleware records request counts and latencies per route.
func HTTPMetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		status := c.Writer.Status()

		httpRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
		httpRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

// IncMessageSent counts a persisted message.
func IncMessageSent() {
	messagesSentTotal.Inc()
}

// IncFriendRequestEvent counts a friend request lifecycle event
// (sent, accepted, rejected).
func IncFriendRequestEvent(event string) {
	friendRequestEventsTotal.WithLabelValues(event).Inc()
}

// IncAMQPPublishError counts a failed event publish.
func IncAMQPPublishError() {
	amqpPublishErrorsTotal.Inc()
}
