package system

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeshelf/codeshelf/internal/models"
)

func TestOpener_OpenInEditor(t *testing.T) {
	ctx := context.Background()

	t.Run("uses the given editor", func(t *testing.T) {
		runner := NewMockRunner()
		opener := NewOpener(runner)

		require.NoError(t, opener.OpenInEditor(ctx, "/repos/shelf", "nvim"))
		require.Equal(t, []string{"nvim /repos/shelf"}, runner.Calls)
	})

	t.Run("falls back to code", func(t *testing.T) {
		runner := NewMockRunner()
		opener := NewOpener(runner)

		require.NoError(t, opener.OpenInEditor(ctx, "/repos/shelf", ""))
		require.Equal(t, []string{"code /repos/shelf"}, runner.Calls)
	})

	t.Run("rejects empty path", func(t *testing.T) {
		opener := NewOpener(NewMockRunner())

		err := opener.OpenInEditor(ctx, "  ", "code")
		require.ErrorIs(t, err, models.ErrValidation)
	})

	t.Run("runner failure surfaces", func(t *testing.T) {
		runner := NewMockRunner()
		runner.StartError = assert.AnError
		opener := NewOpener(runner)

		require.Error(t, opener.OpenInEditor(ctx, "/repos/shelf", "code"))
	})
}

func TestOpener_OpenInTerminal(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name         string
		goos         string
		terminalType string
		customPath   string
		expected     string
	}{
		{"darwin default", "darwin", "", "", "open -a Terminal /repos/shelf"},
		{"darwin iterm2", "darwin", "iterm2", "", "open -a iTerm /repos/shelf"},
		{"darwin warp", "darwin", "warp", "", "open -a Warp /repos/shelf"},
		{"windows terminal", "windows", "wt", "", "wt -d /repos/shelf"},
		{"linux default", "linux", "", "", "x-terminal-emulator --working-directory=/repos/shelf"},
		{"linux custom type", "linux", "alacritty", "", "alacritty --working-directory=/repos/shelf"},
		{"custom path overrides", "linux", "ignored", "/usr/bin/kitty", "/usr/bin/kitty /repos/shelf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := NewMockRunner()
			opener := NewOpener(runner).WithGOOS(tt.goos)

			require.NoError(t, opener.OpenInTerminal(ctx, "/repos/shelf", tt.terminalType, tt.customPath))
			require.Equal(t, []string{tt.expected}, runner.Calls)
		})
	}
}

func TestOpener_OpenInExplorer(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		goos     string
		expected string
	}{
		{"darwin", "open /repos/shelf"},
		{"windows", "explorer /repos/shelf"},
		{"linux", "xdg-open /repos/shelf"},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			runner := NewMockRunner()
			opener := NewOpener(runner).WithGOOS(tt.goos)

			require.NoError(t, opener.OpenInExplorer(ctx, "/repos/shelf"))
			require.Equal(t, []string{tt.expected}, runner.Calls)
		})
	}
}

func TestOpener_OpenURL(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects non-http schemes", func(t *testing.T) {
		opener := NewOpener(NewMockRunner())

		err := opener.OpenURL(ctx, "file:///etc/passwd")
		require.ErrorIs(t, err, models.ErrValidation)
	})

	t.Run("opens https urls", func(t *testing.T) {
		runner := NewMockRunner()
		opener := NewOpener(runner).WithGOOS("linux")

		require.NoError(t, opener.OpenURL(ctx, "https://example.com/releases"))
		assert.Equal(t, []string{"xdg-open https://example.com/releases"}, runner.Calls)
	})
}
