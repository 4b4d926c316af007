package posts

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"git.home.luguber.info/inful/postbuilder/internal/foundation/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListFiles_DirectoryOrderSkipsSubdirectories(t *testing.T) {
	dir := scenarioDir(t)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "drafts"), 0o750))
	writePost(t, dir, "notes.txt", "---\ndate: 2019-01-01\ntitle: N\n---\n")

	names, err := NewStore(dir).ListFiles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"2020-01-01-a.md", "2021-06-15-b.md", "notes.txt"}, names)
}

func TestListFiles_EmptyDirectory(t *testing.T) {
	names, err := NewStore(t.TempDir()).ListFiles(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestListFiles_MissingRoot_ReturnsFilesystemError(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nope")

	_, err := NewStore(root).ListFiles(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.True(t, errors.HasCategory(err, errors.CategoryFileSystem))

	classified, ok := errors.AsClassified(err)
	require.True(t, ok)
	path, _ := classified.Context().GetString("path")
	assert.Equal(t, root, path)
}

func TestSummaries_OnePerFileWithIDMatchingFilename(t *testing.T) {
	dir := scenarioDir(t)
	store := NewStore(dir)

	names, err := store.ListFiles(context.Background())
	require.NoError(t, err)

	summaries, err := store.Summaries(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, len(names))
	for i, s := range summaries {
		assert.Equal(t, names[i], s.ID+".md")
	}
}

func TestSummaries_ExtraKeysGoToParams(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "p.md", "---\ndate: 2022-02-02\ntitle: P\ntags: [go, blog]\ndraft: true\n---\n")

	summaries, err := NewStore(dir).Summaries(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "p", summaries[0].ID)
	assert.Equal(t, "2022-02-02", summaries[0].Date)
	assert.Equal(t, true, summaries[0].Params["draft"])
	assert.Equal(t, []any{"go", "blog"}, summaries[0].Params["tags"])
}

func TestSummaries_DatesKeepSourceText(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "a-unquoted.md", "---\ndate: 2020-01-01\ntitle: Unquoted\n---\n")
	writePost(t, dir, "b-quoted.md", "---\ndate: \"2021-06-15\"\ntitle: Quoted\n---\n")
	writePost(t, dir, "c-rfc3339.md", "---\ndate: 2022-03-04T05:06:07+02:00\ntitle: Zoned\n---\n")
	writePost(t, dir, "d-spaced.md", "---\ndate: 2023-01-02 08:09:10\ntitle: Spaced\n---\n")

	summaries, err := NewStore(dir).Summaries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Summary{
		{ID: "a-unquoted", Date: "2020-01-01", Title: "Unquoted"},
		{ID: "b-quoted", Date: "2021-06-15", Title: "Quoted"},
		{ID: "c-rfc3339", Date: "2022-03-04T05:06:07+02:00", Title: "Zoned"},
		{ID: "d-spaced", Date: "2023-01-02 08:09:10", Title: "Spaced"},
	}, summaries)
}

func TestSummaries_MissingTitle_ReturnsValidationError(t *testing.T) {
	dir := scenarioDir(t)
	writePost(t, dir, "2022-01-01-c.md", "---\ndate: 2022-01-01\n---\nbody\n")

	summaries, err := NewStore(dir).Summaries(context.Background())
	require.Error(t, err)
	assert.Nil(t, summaries)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
	assert.Contains(t, err.Error(), "title")

	classified, _ := errors.AsClassified(err)
	path, _ := classified.Context().GetString("path")
	assert.Equal(t, filepath.Join(dir, "2022-01-01-c.md"), path)
}

func TestSummaries_NoFrontmatter_ReturnsValidationError(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "plain.md", "# Just markdown\n")

	_, err := NewStore(dir).Summaries(context.Background())
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
	assert.Contains(t, err.Error(), "post has no front matter")
}

func TestSummaries_MalformedFrontmatter_ReturnsValidationError(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "broken.md", "---\ndate: 2020-01-01\ntitle: X\n")

	_, err := NewStore(dir).Summaries(context.Background())
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
}

func TestSummaries_DuplicateIDAcrossExtensions(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "a.markdown", "---\ndate: 2020-01-01\ntitle: A\n---\n")
	writePost(t, dir, "a.md", "---\ndate: 2020-01-01\ntitle: A\n---\n")

	_, err := NewStore(dir, WithExtensions(".md", ".markdown")).Summaries(context.Background())
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
	assert.Contains(t, err.Error(), "duplicate post id")
}

func TestSummaries_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewStore(scenarioDir(t)).Summaries(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestSortedSummaries_Scenario(t *testing.T) {
	summaries, err := NewStore(scenarioDir(t)).SortedSummaries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Summary{
		{ID: "2021-06-15-b", Date: "2021-06-15", Title: "B"},
		{ID: "2020-01-01-a", Date: "2020-01-01", Title: "A"},
	}, summaries)
}

func TestIDs_MatchListFilesWithoutExtension(t *testing.T) {
	dir := scenarioDir(t)
	store := NewStore(dir)

	names, err := store.ListFiles(context.Background())
	require.NoError(t, err)
	ids, err := store.IDs(context.Background())
	require.NoError(t, err)

	require.Len(t, ids, len(names))
	for i, id := range ids {
		assert.Equal(t, strings.TrimSuffix(names[i], ".md"), id.Params.ID)
	}
	assert.Equal(t, []Identifier{NewIdentifier("2020-01-01-a"), NewIdentifier("2021-06-15-b")}, ids)
}

func TestID_StripsFirstMatchingExtension(t *testing.T) {
	store := NewStore("posts", WithExtensions(".md", ".markdown"))

	assert.Equal(t, "hello", store.ID("hello.md"))
	assert.Equal(t, "hello", store.ID("hello.markdown"))
	assert.Equal(t, "notes.txt", store.ID("notes.txt"))
	assert.Equal(t, ".md", store.ID(".md"))
}

func TestNewStore_Defaults(t *testing.T) {
	store := NewStore("posts", WithExtensions())
	assert.Equal(t, "posts", store.Root())
	assert.Equal(t, []string{DefaultExtension}, store.Extensions())
}
