package ingestion

import (
	"context"
	"fmt"
	"net/http"
	"time"

	vcsurl "github.com/gitsight/go-vcsurl"
	"github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"
)

func NewGitHubClient(token string) *github.Client {
	if token == "" {
		return github.NewClient(&http.Client{Timeout: 30 * time.Second})
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(context.Background(), ts)
	tc.Timeout = 30 * time.Second
	return github.NewClient(tc)
}

// RepoInfo holds resolved metadata for a GitHub-hosted source.
type RepoInfo struct {
	Owner         string
	Name          string
	DefaultBranch string
	HTMLURL       string
}

// ResolveRepo parses a repository URL and, for GitHub hosts, enriches it with
// metadata from the API. Non-GitHub hosts return only what the URL carries.
func ResolveRepo(ctx context.Context, client *github.Client, rawURL string) (*RepoInfo, error) {
	info, err := vcsurl.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse repository url %q: %w", rawURL, err)
	}
	resolved := &RepoInfo{Owner: info.Username, Name: info.Name}
	if info.Host != vcsurl.GitHub || client == nil {
		return resolved, nil
	}

	repo, _, err := client.Repositories.Get(ctx, info.Username, info.Name)
	if err != nil {
		// API metadata is best effort; the clone URL still works without it.
		return resolved, nil
	}
	resolved.DefaultBranch = repo.GetDefaultBranch()
	resolved.HTMLURL = repo.GetHTMLURL()
	return resolved, nil
}

// BlobURL returns a browser link for path at rev, or "" when the source has
// no resolved web URL.
func (r *RepoInfo) BlobURL(rev, path string) string {
	if r == nil || r.HTMLURL == "" {
		return ""
	}
	return r.HTMLURL + "/blob/" + rev + "/" + path
}
