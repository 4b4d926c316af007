package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder_CountsResults(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)

	pr.IncOperationResult(OperationRender, ResultSuccess)
	pr.IncOperationResult(OperationRender, ResultSuccess)
	pr.IncOperationResult(OperationRender, ResultFailed)
	pr.AddPostsScanned(2)
	pr.AddPostsScanned(0)
	pr.ObserveOperationDuration(OperationSummaries, 150*time.Millisecond)
	pr.ObserveRenderedBytes(1024)

	require.InDelta(t, 2, testutil.ToFloat64(pr.operationResults.WithLabelValues(OperationRender, string(ResultSuccess))), 0)
	require.InDelta(t, 1, testutil.ToFloat64(pr.operationResults.WithLabelValues(OperationRender, string(ResultFailed))), 0)
	require.InDelta(t, 2, testutil.ToFloat64(pr.postsScanned), 0)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, mfs, 4)
}

func TestPrometheusRecorder_NilReceiverIsSafe(t *testing.T) {
	var pr *PrometheusRecorder
	pr.IncOperationResult(OperationRender, ResultSuccess)
	pr.ObserveOperationDuration(OperationRender, time.Second)
	pr.AddPostsScanned(1)
	pr.ObserveRenderedBytes(1)
}

func TestWriteTextfile(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.IncOperationResult(OperationExport, ResultSuccess)

	path := filepath.Join(t.TempDir(), "postbuilder.prom")
	require.NoError(t, WriteTextfile(path, reg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(data), `postbuilder_operation_results_total{operation="export",result="success"} 1`))
}
