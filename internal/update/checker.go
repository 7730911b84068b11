// Package update checks GitHub releases for a newer codeshelf build.
package update

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/google/go-github/v57/github"
	"golang.org/x/mod/semver"
	"golang.org/x/oauth2"
)

const (
	repoOwner = "codeshelf"
	repoName  = "codeshelf"
)

// Release describes the latest published build.
type Release struct {
	Version     string
	PublishedAt time.Time
	Notes       string
	AssetURL    string
	PageURL     string
}

// Checker queries the release feed.
type Checker struct {
	client *github.Client
	owner  string
	repo   string
}

// NewChecker creates a Checker, authenticating with GH_TOKEN or
// GITHUB_TOKEN when present (unauthenticated requests are rate-limited
// but fine for occasional checks).
func NewChecker() *Checker {
	token := os.Getenv("GH_TOKEN")
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}

	var client *github.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		client = github.NewClient(oauth2.NewClient(context.Background(), ts))
	} else {
		client = github.NewClient(nil)
	}

	return &Checker{client: client, owner: repoOwner, repo: repoName}
}

// NewCheckerWithClient creates a Checker over an explicit API client,
// for tests pointing at a local server.
func NewCheckerWithClient(client *github.Client, owner, repo string) *Checker {
	return &Checker{client: client, owner: owner, repo: repo}
}

// Latest returns the newest published release with the download asset
// for the current platform, if one exists.
func (c *Checker) Latest(ctx context.Context) (*Release, error) {
	release, _, err := c.client.Repositories.GetLatestRelease(ctx, c.owner, c.repo)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest release: %w", err)
	}

	out := &Release{
		Version: release.GetTagName(),
		Notes:   release.GetBody(),
		PageURL: release.GetHTMLURL(),
	}
	if release.PublishedAt != nil {
		out.PublishedAt = release.PublishedAt.Time
	}

	// archives follow name_version_os_arch
	want := fmt.Sprintf("%s_%s", runtime.GOOS, runtime.GOARCH)
	for _, asset := range release.Assets {
		if strings.Contains(asset.GetName(), want) {
			out.AssetURL = asset.GetBrowserDownloadURL()
			break
		}
	}

	return out, nil
}

// IsNewer reports whether candidate is a strictly newer semantic
// version than current. The "v" prefix is optional; anything invalid
// compares as not newer.
func IsNewer(current, candidate string) bool {
	cur := canonicalVersion(current)
	cand := canonicalVersion(candidate)
	if !semver.IsValid(cur) || !semver.IsValid(cand) {
		return false
	}
	return semver.Compare(cand, cur) > 0
}

func canonicalVersion(v string) string {
	v = strings.TrimSpace(v)
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}
