package docmodel

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"git.home.luguber.info/inful/postbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/postbuilder/internal/frontmatter"
	"github.com/stretchr/testify/require"
)

func TestParse_NoFrontmatter(t *testing.T) {
	content := []byte("# Hello\n\nBody\n")

	doc, err := Parse(content)
	require.NoError(t, err)
	require.False(t, doc.HadFrontmatter())
	require.Nil(t, doc.FrontmatterRaw())
	require.Empty(t, doc.Fields())
	require.Equal(t, content, doc.Body())
}

func TestParse_WithFrontmatter(t *testing.T) {
	doc, err := Parse([]byte("---\ntitle: A\ndate: 2020-01-01\n---\n# Hi\n"))
	require.NoError(t, err)
	require.True(t, doc.HadFrontmatter())
	require.Equal(t, "A", doc.Fields()["title"])
	require.Equal(t, []byte("title: A\ndate: 2020-01-01\n"), doc.FrontmatterRaw())
	require.Equal(t, []byte("# Hi\n"), doc.Body())
}

func TestParse_MissingClosingDelimiter_ReturnsValidationError(t *testing.T) {
	_, err := Parse([]byte("---\nkey: value\n# body\n"))
	require.Error(t, err)
	require.ErrorIs(t, err, frontmatter.ErrMissingClosingDelimiter)
	require.True(t, errors.HasCategory(err, errors.CategoryValidation))
}

func TestParseFile_RecordsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("---\ntitle: T\n---\nbody\n"), 0o600))

	doc, err := ParseFile(path)
	require.NoError(t, err)
	require.Equal(t, path, doc.Path())
	require.Equal(t, []byte("body\n"), doc.Body())
}

func TestParseFile_MissingFile_ReturnsFilesystemError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.md")

	_, err := ParseFile(path)
	require.Error(t, err)
	require.ErrorIs(t, err, fs.ErrNotExist)
	require.True(t, errors.HasCategory(err, errors.CategoryFileSystem))

	classified, ok := errors.AsClassified(err)
	require.True(t, ok)
	got, _ := classified.Context().GetString("path")
	require.Equal(t, path, got)
}

func TestParseFile_BadYAML_CarriesPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.md")
	require.NoError(t, os.WriteFile(path, []byte("---\ntitle: [oops\n---\n"), 0o600))

	_, err := ParseFile(path)
	require.True(t, errors.HasCategory(err, errors.CategoryValidation))
	classified, _ := errors.AsClassified(err)
	got, _ := classified.Context().GetString("path")
	require.Equal(t, path, got)
}

func TestParsedDoc_DoesNotExposeMutableBytes(t *testing.T) {
	doc, err := Parse([]byte("---\na: 1\n---\n# Hello\n"))
	require.NoError(t, err)

	body := doc.Body()
	body[0] = 'X'
	require.Equal(t, byte('#'), doc.Body()[0])

	raw := doc.FrontmatterRaw()
	raw[0] = 'X'
	require.Equal(t, byte('a'), doc.FrontmatterRaw()[0])
}
