// Package github provides a client for querying the GitHub API, used to
// flag branches that still back an open pull request.
package github

import (
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"github.com/cli/go-gh/v2/pkg/api"
)

// Client wraps GitHub API access.
type Client struct {
	rest  *api.RESTClient
	token string
}

// NewClient creates a GitHub client. It attempts to use authentication from
// the gh CLI config, falling back to the provided token, falling back to
// unauthenticated access.
func NewClient(token string) *Client {
	c := &Client{token: token}

	// Try default gh CLI authentication first.
	rest, err := api.DefaultRESTClient()
	if err == nil {
		slog.Debug("using gh CLI authentication")
		c.rest = rest
		return c
	}
	slog.Debug("gh CLI auth not available", "error", err)

	// Fall back to explicit token.
	if token != "" {
		rest, err = api.NewRESTClient(api.ClientOptions{
			AuthToken: token,
		})
		if err == nil {
			slog.Debug("using explicit token authentication")
			c.rest = rest
			return c
		}
		slog.Debug("token auth failed", "error", err)
	}

	// Unauthenticated -- will hit rate limits quickly.
	slog.Debug("using unauthenticated access (rate limits apply)")
	rest, err = api.NewRESTClient(api.ClientOptions{})
	if err != nil {
		slog.Warn("could not create REST client", "error", err)
		return c
	}
	c.rest = rest
	return c
}

// NewClientWithOptions creates a client from explicit go-gh options.
func NewClientWithOptions(opts api.ClientOptions) (*Client, error) {
	rest, err := api.NewRESTClient(opts)
	if err != nil {
		return nil, fmt.Errorf("creating REST client: %w", err)
	}
	return &Client{rest: rest, token: opts.AuthToken}, nil
}

// PullRequest is the subset of a GitHub pull request we report.
type PullRequest struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	URL    string `json:"html_url"`
}

// OpenPR returns the most recently updated open pull request whose head
// is the given branch of owner/repo. ok is false when there is none.
func (c *Client) OpenPR(owner, repo, branch string) (pr PullRequest, ok bool, err error) {
	if c.rest == nil {
		return PullRequest{}, false, fmt.Errorf("no GitHub API client available")
	}

	var prs []PullRequest
	err = c.rest.Get(
		fmt.Sprintf("repos/%s/%s/pulls?head=%s&state=open&per_page=1&sort=updated&direction=desc",
			owner, repo, url.QueryEscape(owner+":"+branch)),
		&prs,
	)
	if err != nil {
		return PullRequest{}, false, fmt.Errorf("querying PRs for %s/%s branch %s: %w", owner, repo, branch, err)
	}
	if len(prs) == 0 {
		return PullRequest{}, false, nil
	}
	return prs[0], true, nil
}

// sshRemoteRe matches SSH-style GitHub remote URLs:
//
//	git@github.com:owner/repo.git
var sshRemoteRe = regexp.MustCompile(`^git@github\.com:([^/]+)/([^/]+?)(?:\.git)?$`)

// ParseGitHubRemote extracts owner and repo from a GitHub remote URL.
// Supports SSH (git@github.com:owner/repo.git), ssh:// and HTTPS
// (https://github.com/owner/repo.git) formats.
func ParseGitHubRemote(remote string) (owner, repo string, ok bool) {
	if m := sshRemoteRe.FindStringSubmatch(remote); m != nil {
		return m[1], m[2], true
	}

	remote = strings.TrimSuffix(remote, ".git")
	for _, prefix := range []string{"https://github.com/", "http://github.com/", "ssh://git@github.com/"} {
		if strings.HasPrefix(remote, prefix) {
			rest := strings.TrimPrefix(remote, prefix)
			parts := strings.SplitN(rest, "/", 3)
			if len(parts) >= 2 && parts[0] != "" && parts[1] != "" {
				return parts[0], parts[1], true
			}
		}
	}

	return "", "", false
}
