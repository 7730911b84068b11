package update

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"runtime"
	"testing"

	"github.com/google/go-github/v57/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsNewer(t *testing.T) {
	tests := []struct {
		current   string
		candidate string
		expected  bool
	}{
		{"0.1.0", "0.2.0", true},
		{"v0.1.0", "v0.1.1", true},
		{"1.0.0", "2.0.0", true},
		{"0.2.0", "0.1.9", false},
		{"1.0.0", "1.0.0", false},
		{"v1.2", "v1.2.1", true},
		{"1.0.0", "1.0.0-rc1", false},
		{"1.0.0-rc1", "1.0.0", true},
		{"garbage", "1.0.0", false},
		{"1.0.0", "garbage", false},
		{"1.2.3.4", "2.0.0", false},
	}

	for _, tt := range tests {
		t.Run(tt.current+" vs "+tt.candidate, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsNewer(tt.current, tt.candidate))
		})
	}
}

func TestChecker_Latest(t *testing.T) {
	assetName := fmt.Sprintf("codeshelf_0.2.0_%s_%s.tar.gz", runtime.GOOS, runtime.GOARCH)

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/codeshelf/codeshelf/releases/latest", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{
			"tag_name": "v0.2.0",
			"body": "Bug fixes",
			"html_url": "https://example.com/releases/v0.2.0",
			"published_at": "2025-06-01T12:00:00Z",
			"assets": [
				{"name": "codeshelf_0.2.0_other_arch.tar.gz", "browser_download_url": "https://example.com/other"},
				{"name": %q, "browser_download_url": "https://example.com/mine"}
			]
		}`, assetName)
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := github.NewClient(nil)
	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	client.BaseURL = base

	checker := NewCheckerWithClient(client, "codeshelf", "codeshelf")
	release, err := checker.Latest(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "v0.2.0", release.Version)
	assert.Equal(t, "Bug fixes", release.Notes)
	assert.Equal(t, "https://example.com/releases/v0.2.0", release.PageURL)
	assert.Equal(t, "https://example.com/mine", release.AssetURL)
	assert.Equal(t, 2025, release.PublishedAt.Year())
}

func TestChecker_Latest_APIFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusForbidden)
	}))
	defer srv.Close()

	client := github.NewClient(nil)
	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	client.BaseURL = base

	checker := NewCheckerWithClient(client, "codeshelf", "codeshelf")
	_, err = checker.Latest(context.Background())
	require.Error(t, err)
}

func TestCanonicalVersion(t *testing.T) {
	assert.Equal(t, "v1.2.3", canonicalVersion("1.2.3"))
	assert.Equal(t, "v1.2.3", canonicalVersion(" v1.2.3 "))
}
