package system

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/adrg/frontmatter"

	"github.com/codeshelf/codeshelf/internal/filesystem"
)

// readmeCandidates in lookup order.
var readmeCandidates = []string{
	"README.md",
	"README.markdown",
	"readme.md",
	"README.txt",
	"README",
}

// ReadReadme locates the project README and returns its markdown body
// with any YAML frontmatter stripped.
func ReadReadme(fsys filesystem.FileSystem, projectPath string) (string, error) {
	for _, candidate := range readmeCandidates {
		path := filepath.Join(projectPath, candidate)
		if !fsys.Exists(path) {
			continue
		}

		data, err := fsys.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", candidate, err)
		}

		var meta map[string]interface{}
		body, err := frontmatter.Parse(bytes.NewReader(data), &meta)
		if err != nil {
			// not valid frontmatter, serve the file as-is
			return string(data), nil
		}

		return string(body), nil
	}

	return "", fmt.Errorf("no README found in %s", projectPath)
}
