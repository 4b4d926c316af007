package posts

import (
	"context"
	"encoding/json"
	"io/fs"
	"testing"

	"git.home.luguber.info/inful/postbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/postbuilder/internal/markdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Scenario(t *testing.T) {
	post, err := NewStore(scenarioDir(t)).Render(context.Background(), "2021-06-15-b")
	require.NoError(t, err)

	assert.Equal(t, "2021-06-15-b", post.ID)
	assert.Equal(t, "2021-06-15", post.Date)
	assert.Equal(t, "B", post.Title)
	assert.Contains(t, post.ContentHTML, "<h1>Hi</h1>")
	assert.NotEmpty(t, post.Fingerprint)
}

func TestRender_FingerprintIsStable(t *testing.T) {
	store := NewStore(scenarioDir(t))

	first, err := store.Render(context.Background(), "2020-01-01-a")
	require.NoError(t, err)
	second, err := store.Render(context.Background(), "2020-01-01-a")
	require.NoError(t, err)
	other, err := store.Render(context.Background(), "2021-06-15-b")
	require.NoError(t, err)

	assert.Equal(t, first.Fingerprint, second.Fingerprint)
	assert.NotEqual(t, first.Fingerprint, other.Fingerprint)
}

func TestRender_MissingPost_ReturnsFilesystemError(t *testing.T) {
	post, err := NewStore(scenarioDir(t)).Render(context.Background(), "nope")
	require.Error(t, err)
	assert.Nil(t, post)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.True(t, errors.HasCategory(err, errors.CategoryFileSystem))
}

func TestRender_RejectsPathTraversal(t *testing.T) {
	store := NewStore(scenarioDir(t))
	for _, id := range []string{"", "../secret", "a/b", `a\b`, "..", "."} {
		_, err := store.Render(context.Background(), id)
		require.Error(t, err, id)
		assert.True(t, errors.HasCategory(err, errors.CategoryValidation), id)
	}
}

func TestRender_AcceptsEveryListedID(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "release-1..2.md", "---\ndate: 2020-01-01\ntitle: Dots\n---\nbody\n")
	writePost(t, dir, "..hidden.md", "---\ndate: 2020-01-02\ntitle: Leading\n---\nbody\n")
	store := NewStore(dir)

	ids, err := store.IDs(context.Background())
	require.NoError(t, err)
	require.Len(t, ids, 2)

	for _, ident := range ids {
		post, err := store.Render(context.Background(), ident.Params.ID)
		require.NoError(t, err, ident.Params.ID)
		assert.Equal(t, ident.Params.ID, post.ID)
	}
}

func TestRender_UnquotedDateScenario(t *testing.T) {
	post, err := NewStore(scenarioDir(t)).Render(context.Background(), "2020-01-01-a")
	require.NoError(t, err)
	assert.Equal(t, "2020-01-01", post.Date)
	assert.Equal(t, "A", post.Title)
}

func TestRender_UsesSecondaryExtension(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "legacy.markdown", "---\ndate: 2019-05-05\ntitle: Legacy\n---\nOld *post*\n")

	post, err := NewStore(dir, WithExtensions(".md", ".markdown")).Render(context.Background(), "legacy")
	require.NoError(t, err)
	assert.Contains(t, post.ContentHTML, "<em>post</em>")
}

func TestRender_HonoursRendererOptions(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "t.md", "---\ndate: 2020-01-01\ntitle: T\n---\n~~gone~~\n")

	store := NewStore(dir, WithRenderer(markdown.NewRenderer(markdown.Options{Extensions: []string{"strikethrough"}})))
	post, err := store.Render(context.Background(), "t")
	require.NoError(t, err)
	assert.Contains(t, post.ContentHTML, "<del>gone</del>")
}

func TestRender_CanceledContext_ReturnsBuildError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewStore(scenarioDir(t)).Render(ctx, "2021-06-15-b")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, errors.HasCategory(err, errors.CategoryBuild))
}

func TestRenderAsync_DeliversExactlyOneResult(t *testing.T) {
	store := NewStore(scenarioDir(t))

	ch := store.RenderAsync(context.Background(), "2021-06-15-b")
	res, ok := <-ch
	require.True(t, ok)
	require.NoError(t, res.Err)
	assert.Contains(t, res.Post.ContentHTML, "<h1>Hi</h1>")

	_, ok = <-ch
	assert.False(t, ok)
}

func TestRenderAsync_DeliversFailure(t *testing.T) {
	res := <-NewStore(scenarioDir(t)).RenderAsync(context.Background(), "missing")
	require.Error(t, res.Err)
	assert.Nil(t, res.Post)
}

func TestRenderedPost_JSONShape(t *testing.T) {
	data, err := json.Marshal(RenderedPost{
		Summary:     Summary{ID: "x", Date: "2020-01-01", Title: "X"},
		ContentHTML: "<p>x</p>",
		Fingerprint: "fp",
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"x","date":"2020-01-01","title":"X","contentHtml":"<p>x</p>","fingerprint":"fp"}`, string(data))

	data, err = json.Marshal(NewIdentifier("x"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"params":{"id":"x"}}`, string(data))
}
