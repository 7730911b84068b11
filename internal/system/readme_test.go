package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeshelf/codeshelf/internal/filesystem"
)

func TestReadReadme(t *testing.T) {
	t.Run("reads README.md", func(t *testing.T) {
		fs := filesystem.NewMockFileSystem()
		fs.AddFile("/repo/README.md", []byte("# Shelf\n\nHello.\n"))

		body, err := ReadReadme(fs, "/repo")
		require.NoError(t, err)
		assert.Contains(t, body, "# Shelf")
	})

	t.Run("strips yaml frontmatter", func(t *testing.T) {
		fs := filesystem.NewMockFileSystem()
		fs.AddFile("/repo/README.md", []byte("---\ntitle: Shelf\n---\n# Shelf\n"))

		body, err := ReadReadme(fs, "/repo")
		require.NoError(t, err)
		assert.NotContains(t, body, "title: Shelf")
		assert.Contains(t, body, "# Shelf")
	})

	t.Run("prefers README.md over alternates", func(t *testing.T) {
		fs := filesystem.NewMockFileSystem()
		fs.AddFile("/repo/README", []byte("plain"))
		fs.AddFile("/repo/README.md", []byte("markdown"))

		body, err := ReadReadme(fs, "/repo")
		require.NoError(t, err)
		assert.Equal(t, "markdown", body)
	})

	t.Run("falls back to plain README", func(t *testing.T) {
		fs := filesystem.NewMockFileSystem()
		fs.AddFile("/repo/README", []byte("plain text"))

		body, err := ReadReadme(fs, "/repo")
		require.NoError(t, err)
		assert.Equal(t, "plain text", body)
	})

	t.Run("no readme is an error", func(t *testing.T) {
		fs := filesystem.NewMockFileSystem()
		fs.AddDir("/repo")

		_, err := ReadReadme(fs, "/repo")
		require.Error(t, err)
	})
}
