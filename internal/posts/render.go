package posts

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"git.home.luguber.info/inful/postbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/postbuilder/internal/logfields"
	"git.home.luguber.info/inful/postbuilder/internal/metrics"
	"git.home.luguber.info/inful/postbuilder/internal/observability"
)

// Render loads the post with the given id and renders its content to HTML.
func (s *Store) Render(ctx context.Context, id string) (post *RenderedPost, err error) {
	start := time.Now()
	defer func() {
		s.observe(ctx, metrics.OperationRender, start, err)
	}()
	ctx = observability.WithPostID(ctx, id)

	if err := ValidateID(id); err != nil {
		return nil, err
	}

	path := s.resolve(id)
	doc, meta, err := s.load(path)
	if err != nil {
		return nil, err
	}

	html, err := s.renderer.Render(ctx, doc.Body())
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryBuild, "failed to render post").
			WithContext("id", id).
			Build()
	}

	fingerprint, err := Fingerprint(doc.Fields(), doc.Body())
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryBuild, "failed to fingerprint post").
			WithContext("id", id).
			Build()
	}

	s.recorder.ObserveRenderedBytes(len(html))
	s.logger.DebugContext(ctx, "Rendered post", logfields.Path(path), logfields.Bytes(len(html)))

	return &RenderedPost{
		Summary:     meta.summary(id),
		ContentHTML: html,
		Fingerprint: fingerprint,
	}, nil
}

// RenderAsync runs Render on its own goroutine. The returned channel yields
// exactly one result and is then closed.
func (s *Store) RenderAsync(ctx context.Context, id string) <-chan RenderResult {
	ch := make(chan RenderResult, 1)
	go func() {
		defer close(ch)
		post, err := s.Render(ctx, id)
		ch <- RenderResult{Post: post, Err: err}
	}()
	return ch
}

// ValidateID rejects ids that would escape the posts root. Dots inside an id
// (e.g. "release-1..2") are allowed.
func ValidateID(id string) error {
	switch {
	case strings.TrimSpace(id) == "":
		return errors.ValidationError("post id is empty").Build()
	case id == ".", id == "..", strings.ContainsAny(id, `/\`+"\x00"), !filepath.IsLocal(id):
		return errors.ValidationError("invalid post id").WithContext("id", id).Build()
	}
	return nil
}

// resolve returns the source path for id, trying each extension in order.
// When no candidate exists the primary extension is used so the caller gets
// a not-exist error.
func (s *Store) resolve(id string) string {
	for _, ext := range s.extensions {
		candidate := filepath.Join(s.root, id+ext)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return filepath.Join(s.root, id+s.extensions[0])
}
