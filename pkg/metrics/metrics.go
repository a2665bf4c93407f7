package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "schedopt"

// 排课调整结果标签
const (
	ResultSuccess  = "success"
	ResultConflict = "conflict"
	ResultNotFound = "not_found"
	ResultInvalid  = "invalid"
	ResultError    = "error"
)

var (
	// HTTPRequests 按路由统计请求数
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP 请求总数",
	}, []string{"method", "route", "status"})

	// HTTPDuration 请求耗时分布
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP 请求耗时（秒）",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	// AssignmentUpdates 排课调整结果计数
	AssignmentUpdates = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "assignment_updates_total",
		Help:      "排课调整次数（按结果）",
	}, []string{"result"})

	// AssignmentConflicts 最近一次巡检发现的重复占用数
	AssignmentConflicts = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "assignment_conflicts",
		Help:      "最近一次巡检发现的教室重复占用数",
	})
)
