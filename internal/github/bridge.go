// Package github is the auth bridge: it exchanges a GitHub OAuth
// access token for the organization's private repository list and
// verifies org membership. The OAuth login/callback dance itself lives
// in an external edge handler; this package only consumes its token.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v53/github"
	"golang.org/x/oauth2"

	"github.com/MrSnakeDoc/orgcat/internal/domain"
)

// ErrNotAuthorized means the token was rejected or its user is not an
// active member of the organization.
var ErrNotAuthorized = errors.New("not authorized for this organization")

const reposPerPage = 100

// Bridge wraps an authenticated GitHub client for one session token.
type Bridge struct {
	client *gh.Client
}

// NewBridge creates a bridge over the given access token.
func NewBridge(token string) *Bridge {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(context.Background(), ts)
	return &Bridge{client: gh.NewClient(tc)}
}

// NewBridgeWithClient creates a bridge over a prebuilt client.
// Used in tests to point at a fake API server.
func NewBridgeWithClient(client *gh.Client) *Bridge {
	return &Bridge{client: client}
}

// VerifyMembership checks that the token's user is an active member of
// org. Any rejection maps to ErrNotAuthorized.
func (b *Bridge) VerifyMembership(ctx context.Context, org string) error {
	membership, _, err := b.client.Organizations.GetOrgMembership(ctx, "", org)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotAuthorized, err)
	}
	if membership.GetState() != "active" {
		return ErrNotAuthorized
	}
	return nil
}

// ListPrivateRepos drains every page of the organization's private
// repositories. A failure on any page discards the partial result: the
// private list is loaded fully or not at all.
func (b *Bridge) ListPrivateRepos(ctx context.Context, org string) ([]*domain.Repository, error) {
	opts := &gh.RepositoryListByOrgOptions{
		Type:        "private",
		Sort:        "pushed",
		ListOptions: gh.ListOptions{PerPage: reposPerPage},
	}

	var repos []*domain.Repository

	for {
		page, resp, err := b.client.Repositories.ListByOrg(ctx, org, opts)
		if err != nil {
			return nil, fmt.Errorf("%w: listing private repositories failed: %v", ErrNotAuthorized, err)
		}

		for _, r := range page {
			repo := mapRepo(r)
			if repo == nil {
				continue
			}
			repos = append(repos, repo)
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return repos, nil
}

// mapRepo converts a GitHub API repository into the canonical domain
// record, applying the same defaulting rules as the catalog mapper.
func mapRepo(r *gh.Repository) *domain.Repository {
	name := strings.TrimSpace(r.GetName())
	if name == "" {
		return nil
	}

	updatedAt := r.GetPushedAt().Time
	if updatedAt.IsZero() {
		updatedAt = r.GetUpdatedAt().Time
	}

	return &domain.Repository{
		Name:        name,
		FullName:    r.GetFullName(),
		URL:         r.GetHTMLURL(),
		Description: strings.TrimSpace(r.GetDescription()),
		Topics:      r.Topics,
		Language:    r.GetLanguage(),
		UpdatedAt:   updatedAt,
		Archived:    r.GetArchived(),
		Private:     r.GetPrivate(),
		Stars:       r.GetStargazersCount(),
	}
}

// LoginURL builds the edge handler login URL for the client popup.
// Returns "" when no auth base URL is configured.
func LoginURL(authBaseURL, returnTo string) string {
	base := strings.TrimRight(strings.TrimSpace(authBaseURL), "/")
	if base == "" {
		return ""
	}

	u, err := url.Parse(base + "/login")
	if err != nil {
		return ""
	}

	q := u.Query()
	q.Set("returnTo", returnTo)
	u.RawQuery = q.Encode()
	return u.String()
}
