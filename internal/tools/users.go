package tools

import (
	"context"
	"net/url"
	"strconv"

	"github.com/crunchtools/gitlab-mcp/internal/gitlab"
	"github.com/crunchtools/gitlab-mcp/internal/validate"
)

// GetCurrentUser fetches the user that owns the API token.
func GetCurrentUser(ctx context.Context, c *gitlab.Client) (*gitlab.Result, error) {
	return c.Get(ctx, "/user", nil)
}

// GetUser fetches a user by numeric ID.
func GetUser(ctx context.Context, c *gitlab.Client, userID int) (*gitlab.Result, error) {
	return c.Get(ctx, "/users/"+strconv.Itoa(userID), nil)
}

// ListUsersParams filters the instance's users.
type ListUsersParams struct {
	Search   string
	Username string
	Active   bool
	PageParams
}

// ListUsers lists users, optionally narrowed by search or exact username.
func ListUsers(ctx context.Context, c *gitlab.Client, p ListUsersParams) (*gitlab.Result, error) {
	if err := validate.OptionalField("search", p.Search); err != nil {
		return nil, err
	}

	q := url.Values{}
	setIfPresent(q, "search", p.Search)
	setIfPresent(q, "username", p.Username)
	setBool(q, "active", p.Active)
	p.apply(q)

	return c.Get(ctx, "/users", q)
}
