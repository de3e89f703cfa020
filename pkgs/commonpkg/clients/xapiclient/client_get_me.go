package xapiclient

import (
	"context"
	"strings"

	"github.com/pkg/errors"
)

// GetMe retrieves the authenticated user. Extra user.fields, such as
// USER_FIELD_PUBLIC_METRICS, may be requested.
func (c *Client) GetMe(ctx context.Context, userFields ...string) (*User, error) {
	req := c.restyClient.R().SetContext(ctx)
	if len(userFields) > 0 {
		req.SetQueryParam(QUERY_USER_FIELDS, strings.Join(userFields, ","))
	}

	resp, err := req.Get(c.url(API_USERS_ME))
	if err != nil {
		return nil, errors.Wrap(err, "failed to get authenticated user")
	}

	user, err := parseUserResp(API_USERS_ME, resp.Body())
	if err != nil {
		return nil, err
	}
	c.setSelfId(user.Id)
	return user, nil
}

// resolveSelfId returns the cached id of the authenticated user, fetching it
// on first use
func (c *Client) resolveSelfId(ctx context.Context) (string, error) {
	if id := c.SelfId(); id != "" {
		return id, nil
	}
	user, err := c.GetMe(ctx)
	if err != nil {
		return "", err
	}
	return user.Id, nil
}
