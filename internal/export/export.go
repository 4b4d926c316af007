// Package export writes the post index, route ids and rendered posts of a
// posts.Store as JSON files.
package export

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/postbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/postbuilder/internal/logfields"
	"git.home.luguber.info/inful/postbuilder/internal/metrics"
	"git.home.luguber.info/inful/postbuilder/internal/observability"
	"git.home.luguber.info/inful/postbuilder/internal/posts"
)

const (
	// IndexFile holds the sorted post summaries.
	IndexFile = "posts.json"
	// PathsFile holds the route identifiers.
	PathsFile = "paths.json"
	// PostsDir holds one <id>.json file per rendered post.
	PostsDir = "posts"

	// DefaultWorkers is the number of concurrent renders.
	DefaultWorkers = 4
)

// Source is the read side of a posts.Store used by the exporter.
type Source interface {
	SortedSummaries(ctx context.Context) ([]posts.Summary, error)
	IDs(ctx context.Context) ([]posts.Identifier, error)
	Render(ctx context.Context, id string) (*posts.RenderedPost, error)
}

// Report summarizes one export run.
type Report struct {
	BuildID   string        `json:"build_id"`
	OutputDir string        `json:"output_dir"`
	Posts     int           `json:"posts"`
	Duration  time.Duration `json:"duration"`
}

// Exporter renders every post of a Source into an output directory.
type Exporter struct {
	source   Source
	workers  int
	recorder metrics.Recorder
	logger   *slog.Logger
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithWorkers sets the number of concurrent renders. Values below 1 are ignored.
func WithWorkers(n int) Option {
	return func(e *Exporter) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(e *Exporter) {
		if r != nil {
			e.recorder = r
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Exporter) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an Exporter reading from source.
func New(source Source, opts ...Option) *Exporter {
	e := &Exporter{
		source:   source,
		workers:  DefaultWorkers,
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Export writes posts.json, paths.json and posts/<id>.json under outDir.
// The first failing render cancels the remaining ones.
func (e *Exporter) Export(ctx context.Context, outDir string) (report *Report, err error) {
	start := time.Now()
	buildID := uuid.NewString()
	ctx = observability.WithBuildID(ctx, buildID)
	defer func() {
		e.recorder.ObserveOperationDuration(metrics.OperationExport, time.Since(start))
		e.recorder.IncOperationResult(metrics.OperationExport, metrics.ResultFromError(err, ctx.Err() != nil))
	}()

	e.logger.InfoContext(ctx, "Starting export", logfields.Output(outDir), logfields.Workers(e.workers))

	postsDir := filepath.Join(outDir, PostsDir)
	if err := os.MkdirAll(postsDir, 0o750); err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to create output directory").
			WithContext("path", postsDir).
			Build()
	}

	summaries, err := e.source.SortedSummaries(observability.WithStage(ctx, "summaries"))
	if err != nil {
		return nil, err
	}
	if err := writeJSON(filepath.Join(outDir, IndexFile), summaries); err != nil {
		return nil, err
	}

	ids, err := e.source.IDs(observability.WithStage(ctx, "ids"))
	if err != nil {
		return nil, err
	}
	if err := writeJSON(filepath.Join(outDir, PathsFile), ids); err != nil {
		return nil, err
	}

	if err := e.renderAll(observability.WithStage(ctx, "render"), postsDir, ids); err != nil {
		return nil, err
	}

	report = &Report{
		BuildID:   buildID,
		OutputDir: outDir,
		Posts:     len(ids),
		Duration:  time.Since(start),
	}
	e.logger.InfoContext(ctx, "Export completed",
		logfields.Count(report.Posts),
		logfields.Duration(report.Duration))
	return report, nil
}

func (e *Exporter) renderAll(ctx context.Context, postsDir string, ids []posts.Identifier) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for _, ident := range ids {
		id := ident.Params.ID
		g.Go(func() error {
			post, err := e.source.Render(gctx, id)
			if err != nil {
				return err
			}
			return writeJSON(filepath.Join(postsDir, id+".json"), post)
		})
	}

	return g.Wait()
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to encode JSON").
			WithContext("path", path).
			Build()
	}
	data = append(data, '\n')

	// #nosec G306 -- exported files are meant to be served.
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write file").
			WithContext("path", path).
			Build()
	}
	return nil
}
