package xapiclient

import (
	"context"

	"github.com/pkg/errors"
)

// CreateTweet posts a new tweet, optionally as a reply to or a quote of an
// existing one.
func (c *Client) CreateTweet(ctx context.Context, params CreateTweetParams) (*Tweet, error) {
	resp, err := c.restyClient.R().
		SetContext(ctx).
		SetBody(newCreateTweetReq(params)).
		Post(c.url(API_TWEETS))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create tweet")
	}

	return parseTweetResp(API_TWEETS, resp.Body())
}
