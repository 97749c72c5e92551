package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aihub_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// LikeToggles counts like toggles by target type and outcome (liked/unliked/error).
	LikeToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aihub_like_toggles_total",
		Help: "Total number of like toggles by target type and outcome",
	}, []string{"target_type", "outcome"})

	// Uploads counts upload attempts by content type and result.
	Uploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aihub_uploads_total",
		Help: "Total number of uploads by content type and result",
	}, []string{"type", "result"})

	// UploadedBytes counts bytes written to the upload store.
	UploadedBytes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aihub_uploaded_bytes_total",
		Help: "Total bytes written to the upload store",
	}, []string{"type"})

	// ListCacheRequests counts list cache lookups by resource and result (hit/miss/bypass).
	ListCacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aihub_list_cache_requests_total",
		Help: "List cache lookups by resource and result",
	}, []string{"resource", "result"})
)
