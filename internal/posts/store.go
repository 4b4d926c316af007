package posts

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"git.home.luguber.info/inful/postbuilder/internal/docmodel"
	"git.home.luguber.info/inful/postbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/postbuilder/internal/logfields"
	"git.home.luguber.info/inful/postbuilder/internal/markdown"
	"git.home.luguber.info/inful/postbuilder/internal/metrics"
)

// DefaultExtension is the post source extension used when none is configured.
const DefaultExtension = ".md"

// Renderer converts markdown to HTML.
type Renderer interface {
	Render(ctx context.Context, src []byte) (string, error)
}

// Store provides read access to the posts kept under one root directory.
type Store struct {
	root       string
	extensions []string
	renderer   Renderer
	recorder   metrics.Recorder
	logger     *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithExtensions sets the recognised post extensions, primary first.
// An empty list keeps the default.
func WithExtensions(exts ...string) Option {
	return func(s *Store) {
		if len(exts) > 0 {
			s.extensions = slices.Clone(exts)
		}
	}
}

// WithRenderer sets the markdown renderer.
func WithRenderer(r Renderer) Option {
	return func(s *Store) {
		if r != nil {
			s.renderer = r
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(s *Store) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewStore creates a Store rooted at root.
func NewStore(root string, opts ...Option) *Store {
	s := &Store{
		root:       root,
		extensions: []string{DefaultExtension},
		renderer:   markdown.NewRenderer(markdown.Options{}),
		recorder:   metrics.NoopRecorder{},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Root returns the posts directory.
func (s *Store) Root() string {
	return s.root
}

// Extensions returns the recognised post extensions, primary first.
func (s *Store) Extensions() []string {
	return slices.Clone(s.extensions)
}

// ListFiles returns the names of the files directly under the posts root in
// directory order. Subdirectories are skipped.
func (s *Store) ListFiles(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read posts directory").
			WithContext("path", s.root).
			Build()
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

// Summaries loads the metadata of every post in directory order.
// Any unreadable or invalid post aborts the whole call.
func (s *Store) Summaries(ctx context.Context) (summaries []Summary, err error) {
	start := time.Now()
	defer func() {
		s.observe(ctx, metrics.OperationSummaries, start, err)
	}()

	names, err := s.ListFiles(ctx)
	if err != nil {
		return nil, err
	}

	summaries = make([]Summary, 0, len(names))
	seen := make(map[string]string, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		id := s.ID(name)
		if prev, dup := seen[id]; dup {
			return nil, errors.ValidationError("duplicate post id").
				WithContext("id", id).
				WithContext("path", filepath.Join(s.root, name)).
				WithContext("other", filepath.Join(s.root, prev)).
				Build()
		}
		seen[id] = name

		_, meta, err := s.load(filepath.Join(s.root, name))
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, meta.summary(id))
	}

	s.recorder.AddPostsScanned(len(summaries))
	s.logger.DebugContext(ctx, "Loaded post summaries", logfields.Root(s.root), logfields.Count(len(summaries)))
	return summaries, nil
}

// SortedSummaries returns Summaries ordered newest first.
func (s *Store) SortedSummaries(ctx context.Context) ([]Summary, error) {
	summaries, err := s.Summaries(ctx)
	if err != nil {
		return nil, err
	}
	return SortByRecency(summaries), nil
}

// IDs returns one Identifier per post file in directory order.
func (s *Store) IDs(ctx context.Context) (ids []Identifier, err error) {
	start := time.Now()
	defer func() {
		s.observe(ctx, metrics.OperationList, start, err)
	}()

	names, err := s.ListFiles(ctx)
	if err != nil {
		return nil, err
	}

	ids = make([]Identifier, 0, len(names))
	for _, name := range names {
		ids = append(ids, NewIdentifier(s.ID(name)))
	}
	return ids, nil
}

// ID strips the first matching post extension from a filename. A name with
// no recognised extension is its own id.
func (s *Store) ID(filename string) string {
	for _, ext := range s.extensions {
		if id, ok := strings.CutSuffix(filename, ext); ok && id != "" {
			return id
		}
	}
	return filename
}

// load reads and validates one post source.
func (s *Store) load(path string) (*docmodel.ParsedDoc, Meta, error) {
	doc, err := docmodel.ParseFile(path)
	if err != nil {
		return nil, Meta{}, err
	}

	if !doc.HadFrontmatter() {
		return nil, Meta{}, errors.ValidationError("post has no front matter").
			WithContext("path", doc.Path()).
			Build()
	}

	meta, err := DecodeMeta(doc.Fields())
	if err != nil {
		return nil, Meta{}, errors.WrapError(err, errors.CategoryValidation, "invalid post metadata").
			WithContext("path", doc.Path()).
			Build()
	}
	return doc, meta, nil
}

func (s *Store) observe(ctx context.Context, operation string, start time.Time, err error) {
	s.recorder.ObserveOperationDuration(operation, time.Since(start))
	s.recorder.IncOperationResult(operation, metrics.ResultFromError(err, ctx.Err() != nil))
}

