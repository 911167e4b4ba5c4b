// Package githubpr opens pull requests on GitHub with a generated title and
// body. Only used behind `caa pr --create`.
package githubpr

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gitsight/go-vcsurl"
	"github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"
)

// NewGitHubClient returns an API client, authenticated when a token is given.
func NewGitHubClient(token string) *github.Client {
	if token == "" {
		return github.NewClient(&http.Client{Timeout: 30 * time.Second})
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(context.Background(), ts)
	tc.Timeout = 30 * time.Second
	return github.NewClient(tc)
}

// ResolveRepo parses a git remote URL (ssh or https) into owner and name.
func ResolveRepo(remoteURL string) (owner, name string, err error) {
	info, err := vcsurl.Parse(remoteURL)
	if err != nil {
		return "", "", fmt.Errorf("parse remote url %q: %w", remoteURL, err)
	}
	if info.Username == "" || info.Name == "" {
		return "", "", fmt.Errorf("remote url %q does not name an owner and repository", remoteURL)
	}
	return info.Username, info.Name, nil
}

// NewPR describes the pull request to open.
type NewPR struct {
	Title string
	Body  string
	Base  string
	Head  string
}

type Publisher struct {
	client *github.Client
}

func NewPublisher(client *github.Client) *Publisher {
	return &Publisher{client: client}
}

// Create opens the pull request and returns its HTML URL.
func (p *Publisher) Create(ctx context.Context, owner, repo string, pr NewPR) (string, error) {
	created, _, err := p.client.PullRequests.Create(ctx, owner, repo, &github.NewPullRequest{
		Title: github.String(pr.Title),
		Body:  github.String(pr.Body),
		Base:  github.String(pr.Base),
		Head:  github.String(pr.Head),
	})
	if err != nil {
		return "", fmt.Errorf("create pull request: %w", err)
	}
	return created.GetHTMLURL(), nil
}
