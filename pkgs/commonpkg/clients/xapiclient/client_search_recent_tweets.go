package xapiclient

import (
	"context"
	"strconv"

	"github.com/pkg/errors"
)

// SearchRecentTweets searches tweets from the last seven days. maxResults is
// passed through when positive.
func (c *Client) SearchRecentTweets(ctx context.Context, query string, maxResults int) (*TweetPage, error) {
	req := c.restyClient.R().
		SetContext(ctx).
		SetQueryParam(QUERY_QUERY, query)
	if maxResults > 0 {
		req.SetQueryParam(QUERY_MAX_RESULTS, strconv.Itoa(maxResults))
	}

	resp, err := req.Get(c.url(API_TWEETS_SEARCH_RECENT))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to search tweets [%s]", query)
	}

	return parseTweetPageResp(API_TWEETS_SEARCH_RECENT, resp.Body())
}
