package xapiclient

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/pkg/errors"
)

// GetUserMentions lists the most recent tweets mentioning the user
func (c *Client) GetUserMentions(ctx context.Context, userId string, maxResults int) (*TweetPage, error) {
	req := c.restyClient.R().SetContext(ctx)
	if maxResults > 0 {
		req.SetQueryParam(QUERY_MAX_RESULTS, strconv.Itoa(maxResults))
	}

	path := fmt.Sprintf(API_USER_MENTIONS, url.PathEscape(userId))
	resp, err := req.Get(c.url(path))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get mentions of user [%s]", userId)
	}

	return parseTweetPageResp(API_USER_MENTIONS, resp.Body())
}
