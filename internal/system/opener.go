// Package system launches external tools (editor, terminal, file
// explorer, browser) and provides clipboard and README access.
package system

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/codeshelf/codeshelf/internal/models"
)

// CommandRunner starts external processes; swapped for a recorder in
// tests.
type CommandRunner interface {
	Start(ctx context.Context, name string, args ...string) error
}

// ExecRunner runs commands detached through os/exec.
type ExecRunner struct{}

// NewExecRunner creates an ExecRunner
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Start launches the command without waiting for it to exit; launched
// tools outlive the CLI invocation.
func (r *ExecRunner) Start(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", name, err)
	}
	// Reap in the background so the child never zombies while we run.
	go func() { _ = cmd.Wait() }()
	return nil
}

// Opener dispatches open-in-X requests to the host OS.
type Opener struct {
	runner CommandRunner
	goos   string
}

// NewOpener creates an Opener for the current platform.
func NewOpener(runner CommandRunner) *Opener {
	return &Opener{runner: runner, goos: runtime.GOOS}
}

// WithGOOS overrides platform detection, for tests.
func (o *Opener) WithGOOS(goos string) *Opener {
	return &Opener{runner: o.runner, goos: goos}
}

// OpenInEditor opens path in the given editor binary, falling back to
// VS Code's `code` launcher.
func (o *Opener) OpenInEditor(ctx context.Context, path, editor string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("%w: path is required", models.ErrValidation)
	}
	if editor == "" {
		editor = "code"
	}
	return o.runner.Start(ctx, editor, path)
}

// OpenInTerminal opens a terminal emulator at path. terminalType picks
// a well-known terminal; customPath overrides the binary entirely.
func (o *Opener) OpenInTerminal(ctx context.Context, path, terminalType, customPath string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("%w: path is required", models.ErrValidation)
	}

	if customPath != "" {
		return o.runner.Start(ctx, customPath, path)
	}

	switch o.goos {
	case "darwin":
		app := "Terminal"
		switch terminalType {
		case "iterm2":
			app = "iTerm"
		case "warp":
			app = "Warp"
		}
		return o.runner.Start(ctx, "open", "-a", app, path)
	case "windows":
		if terminalType == "wt" {
			return o.runner.Start(ctx, "wt", "-d", path)
		}
		return o.runner.Start(ctx, "cmd", "/C", "start", "cmd", "/K", "cd", "/D", path)
	default:
		term := terminalType
		if term == "" {
			term = "x-terminal-emulator"
		}
		return o.runner.Start(ctx, term, "--working-directory="+path)
	}
}

// OpenInExplorer reveals path in the platform file manager.
func (o *Opener) OpenInExplorer(ctx context.Context, path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("%w: path is required", models.ErrValidation)
	}

	switch o.goos {
	case "darwin":
		return o.runner.Start(ctx, "open", path)
	case "windows":
		return o.runner.Start(ctx, "explorer", path)
	default:
		return o.runner.Start(ctx, "xdg-open", path)
	}
}

// OpenURL opens url in the default browser.
func (o *Opener) OpenURL(ctx context.Context, url string) error {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return fmt.Errorf("%w: url must start with http:// or https://", models.ErrValidation)
	}

	switch o.goos {
	case "darwin":
		return o.runner.Start(ctx, "open", url)
	case "windows":
		return o.runner.Start(ctx, "rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return o.runner.Start(ctx, "xdg-open", url)
	}
}

// CopyToClipboard places text on the system clipboard.
func (o *Opener) CopyToClipboard(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("failed to write clipboard: %w", err)
	}
	return nil
}

// MockRunner records started commands instead of launching them.
type MockRunner struct {
	// Calls holds "name arg1 arg2..." per Start invocation
	Calls []string

	// StartError fails every Start when set
	StartError error
}

// NewMockRunner creates a MockRunner
func NewMockRunner() *MockRunner {
	return &MockRunner{}
}

func (r *MockRunner) Start(_ context.Context, name string, args ...string) error {
	if r.StartError != nil {
		return r.StartError
	}
	r.Calls = append(r.Calls, strings.Join(append([]string{name}, args...), " "))
	return nil
}
