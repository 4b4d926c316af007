package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyPostID     = "post_id"
	KeyPath       = "path"
	KeyRoot       = "root"
	KeyCount      = "count"
	KeyBytes      = "bytes"
	KeyOutput     = "output"
	KeyWorkers    = "workers"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func PostID(id string) slog.Attr   { return slog.String(KeyPostID, id) }
func Path(p string) slog.Attr      { return slog.String(KeyPath, p) }
func Root(r string) slog.Attr      { return slog.String(KeyRoot, r) }
func Count(n int) slog.Attr        { return slog.Int(KeyCount, n) }
func Bytes(n int) slog.Attr        { return slog.Int(KeyBytes, n) }
func Output(dir string) slog.Attr  { return slog.String(KeyOutput, dir) }
func Workers(n int) slog.Attr      { return slog.Int(KeyWorkers, n) }
func Stage(name string) slog.Attr  { return slog.String(KeyStage, name) }
func Duration(d time.Duration) slog.Attr {
	return slog.Float64(KeyDurationMS, float64(d.Microseconds())/1000)
}
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
