package metrics

import "time"

// ResultLabel enumerates operation result categories for counters.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultFailed   ResultLabel = "failed"
	ResultCanceled ResultLabel = "canceled"
)

// Operation names used as the "operation" label.
const (
	OperationList      = "list"
	OperationSummaries = "summaries"
	OperationRender    = "render"
	OperationExport    = "export"
)

// Recorder defines observability hooks for post operations. Implementations
// may forward to Prometheus; NoopRecorder is the default.
type Recorder interface {
	ObserveOperationDuration(operation string, d time.Duration)
	IncOperationResult(operation string, result ResultLabel)
	AddPostsScanned(n int)
	ObserveRenderedBytes(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveOperationDuration(string, time.Duration) {}
func (NoopRecorder) IncOperationResult(string, ResultLabel)         {}
func (NoopRecorder) AddPostsScanned(int)                            {}
func (NoopRecorder) ObserveRenderedBytes(int)                       {}

// ResultFromError maps an operation error to a ResultLabel.
func ResultFromError(err error, canceled bool) ResultLabel {
	switch {
	case err == nil:
		return ResultSuccess
	case canceled:
		return ResultCanceled
	default:
		return ResultFailed
	}
}
