package xapiclient

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

// GetUserByUsername retrieves a user by their handle, with or without the
// leading @
func (c *Client) GetUserByUsername(ctx context.Context, username string, userFields ...string) (*User, error) {
	username = strings.TrimPrefix(username, "@")

	req := c.restyClient.R().SetContext(ctx)
	if len(userFields) > 0 {
		req.SetQueryParam(QUERY_USER_FIELDS, strings.Join(userFields, ","))
	}

	path := fmt.Sprintf(API_USER_BY_USERNAME, url.PathEscape(username))
	resp, err := req.Get(c.url(path))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get user [%s]", username)
	}

	return parseUserResp(API_USER_BY_USERNAME, resp.Body())
}
