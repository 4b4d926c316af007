package posts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writePost(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

// scenarioDir creates the two-post fixture used across tests.
func scenarioDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writePost(t, dir, "2020-01-01-a.md", "---\ndate: 2020-01-01\ntitle: A\n---\nFirst post\n")
	writePost(t, dir, "2021-06-15-b.md", "---\ndate: 2021-06-15\ntitle: B\n---\n# Hi\n")
	return dir
}
