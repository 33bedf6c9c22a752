package helpers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Tracks the number of HTTP requests.",
	})

	requestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Tracks the latencies for HTTP requests.",
		Buckets: prometheus.DefBuckets,
	})

	postsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "posts_created_total",
		Help: "Tracks the number of posts committed to the feed.",
	})

	moderationRejections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "moderation_rejections_total",
		Help: "Tracks the number of submissions refused by the safety gate.",
	})

	imagesShielded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "images_shielded_total",
		Help: "Tracks the number of images that got protection baked in.",
	})

	remoteSyncFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "remote_sync_failures_total",
		Help: "Tracks failed best-effort calls to the remote post API.",
	})

	feedPosts = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "feed_posts",
		Help: "Number of posts currently held in the feed.",
	})
)

func GetRegistery() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		requestsTotal,
		requestDuration,
		postsCreated,
		moderationRejections,
		imagesShielded,
		remoteSyncFailures,
		feedPosts,
	)

	return registry
}

func IncrementRequests() {
	requestsTotal.Inc()
}

func ObserveRequestDuration(time float64) {
	requestDuration.Observe(time)
}

func IncrementPostsCreated() {
	postsCreated.Inc()
}

func IncrementRejections() {
	moderationRejections.Inc()
}

func IncrementShields() {
	imagesShielded.Inc()
}

func IncrementRemoteFailures() {
	remoteSyncFailures.Inc()
}

func SetFeedSize(size int) {
	feedPosts.Set(float64(size))
}
