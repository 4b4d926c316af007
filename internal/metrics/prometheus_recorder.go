package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	operationDuration *prom.HistogramVec
	operationResults  *prom.CounterVec
	postsScanned      prom.Counter
	renderedBytes     prom.Histogram
}

// NewPrometheusRecorder constructs the metrics and registers them with reg.
// A nil reg gets a fresh private registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		operationDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "postbuilder",
			Name:      "operation_duration_seconds",
			Help:      "Duration of post operations (list, summaries, render, export)",
			Buckets:   prom.DefBuckets,
		}, []string{"operation"}),
		operationResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "postbuilder",
			Name:      "operation_results_total",
			Help:      "Post operation results by outcome",
		}, []string{"operation", "result"}),
		postsScanned: prom.NewCounter(prom.CounterOpts{
			Namespace: "postbuilder",
			Name:      "posts_scanned_total",
			Help:      "Post source files read by the metadata aggregator",
		}),
		renderedBytes: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "postbuilder",
			Name:      "rendered_html_bytes",
			Help:      "Size of rendered post HTML",
			Buckets:   prom.ExponentialBuckets(256, 4, 8),
		}),
	}
	reg.MustRegister(pr.operationDuration, pr.operationResults, pr.postsScanned, pr.renderedBytes)
	return pr
}

func (p *PrometheusRecorder) ObserveOperationDuration(operation string, d time.Duration) {
	if p == nil {
		return
	}
	p.operationDuration.WithLabelValues(operation).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncOperationResult(operation string, result ResultLabel) {
	if p == nil {
		return
	}
	p.operationResults.WithLabelValues(operation, string(result)).Inc()
}

func (p *PrometheusRecorder) AddPostsScanned(n int) {
	if p == nil || n <= 0 {
		return
	}
	p.postsScanned.Add(float64(n))
}

func (p *PrometheusRecorder) ObserveRenderedBytes(n int) {
	if p == nil {
		return
	}
	p.renderedBytes.Observe(float64(n))
}
