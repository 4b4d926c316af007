// Package metrics provides observability hooks for post loading, rendering and export.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so no nil checks are needed at call sites:
//
//	store := posts.NewStore(root, posts.WithRecorder(metrics.NoopRecorder{}))
//
// To collect metrics, pass a PrometheusRecorder backed by a registry and, for
// one-shot CLI runs, dump the registry with WriteTextfile so a node_exporter
// textfile collector can pick it up.
package metrics
