// Package labels maps tech-stack label names to display badges and
// infers labels from the manifests found in a project directory.
package labels

import (
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"gopkg.in/yaml.v3"

	"github.com/codeshelf/codeshelf/internal/filesystem"
)

// Badge is how a label renders: a short abbreviation and a terminal
// color (lipgloss-compatible hex or ANSI value).
type Badge struct {
	Abbrev string `yaml:"abbrev"`
	Color  string `yaml:"color"`
}

// neutralColor is used for labels without a known mapping.
const neutralColor = "245"

// builtin is the default badge table, keyed by canonical label name.
var builtin = map[string]Badge{
	"go":         {Abbrev: "Go", Color: "#00ADD8"},
	"rust":       {Abbrev: "Rs", Color: "#DEA584"},
	"typescript": {Abbrev: "TS", Color: "#3178C6"},
	"javascript": {Abbrev: "JS", Color: "#F7DF1E"},
	"node":       {Abbrev: "Nd", Color: "#339933"},
	"python":     {Abbrev: "Py", Color: "#3776AB"},
	"java":       {Abbrev: "Jv", Color: "#007396"},
	"kotlin":     {Abbrev: "Kt", Color: "#7F52FF"},
	"swift":      {Abbrev: "Sw", Color: "#F05138"},
	"ruby":       {Abbrev: "Rb", Color: "#CC342D"},
	"c":          {Abbrev: "C", Color: "#A8B9CC"},
	"cpp":        {Abbrev: "C+", Color: "#00599C"},
	"csharp":     {Abbrev: "C#", Color: "#239120"},
	"php":        {Abbrev: "Ph", Color: "#777BB4"},
	"elixir":     {Abbrev: "Ex", Color: "#4B275F"},
	"zig":        {Abbrev: "Zg", Color: "#F7A41D"},
	"docker":     {Abbrev: "Dk", Color: "#2496ED"},
	"terraform":  {Abbrev: "Tf", Color: "#7B42BC"},
}

// Mapping resolves label names to badges with a deterministic fallback
// for unknown names.
type Mapping struct {
	badges map[string]Badge
}

// NewMapping creates a Mapping with the builtin badge table.
func NewMapping() *Mapping {
	badges := make(map[string]Badge, len(builtin))
	for name, badge := range builtin {
		badges[name] = badge
	}
	return &Mapping{badges: badges}
}

// LoadOverrides merges user-defined badges from a YAML file of the form
// `name: {abbrev: Xx, color: "#rrggbb"}`. Missing file is not an error.
func (m *Mapping) LoadOverrides(fsys filesystem.FileSystem, path string) error {
	if !fsys.Exists(path) {
		return nil
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read label overrides: %w", err)
	}

	overrides := make(map[string]Badge)
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return fmt.Errorf("failed to parse label overrides: %w", err)
	}

	for name, badge := range overrides {
		m.badges[strings.ToLower(name)] = badge
	}
	return nil
}

// Badge returns the badge for a label name. Unknown names fall back to
// the first two characters and a neutral color.
func (m *Mapping) Badge(name string) Badge {
	if badge, ok := m.badges[strings.ToLower(name)]; ok {
		return badge
	}

	abbrev := name
	if runes := []rune(abbrev); len(runes) > 2 {
		abbrev = string(runes[:2])
	}
	return Badge{Abbrev: abbrev, Color: neutralColor}
}

// manifest maps a marker file to the label it implies.
var manifests = []struct {
	file  string
	label string
}{
	{"go.mod", "go"},
	{"Cargo.toml", "rust"},
	{"package.json", "node"},
	{"tsconfig.json", "typescript"},
	{"pyproject.toml", "python"},
	{"requirements.txt", "python"},
	{"pom.xml", "java"},
	{"build.gradle", "java"},
	{"build.gradle.kts", "kotlin"},
	{"Gemfile", "ruby"},
	{"mix.exs", "elixir"},
	{"composer.json", "php"},
	{"build.zig", "zig"},
	{"Dockerfile", "docker"},
	{"main.tf", "terraform"},
}

// Detect infers tech-stack labels from the manifests present at the
// project root. A go.mod is additionally validated as parseable before
// the "go" label is applied.
func Detect(fsys filesystem.FileSystem, path string) []string {
	var detected []string
	seen := make(map[string]struct{})

	for _, m := range manifests {
		manifestPath := filepath.Join(path, m.file)
		if !fsys.Exists(manifestPath) {
			continue
		}
		if _, ok := seen[m.label]; ok {
			continue
		}

		if m.file == "go.mod" {
			data, err := fsys.ReadFile(manifestPath)
			if err != nil {
				continue
			}
			if _, err := modfile.Parse(manifestPath, data, nil); err != nil {
				continue
			}
		}

		seen[m.label] = struct{}{}
		detected = append(detected, m.label)
	}

	return detected
}
