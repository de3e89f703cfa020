package xapiclient

import (
	"context"
	"fmt"
	"net/url"

	"github.com/pkg/errors"
)

// LikeTweet likes a tweet on behalf of the authenticated user
func (c *Client) LikeTweet(ctx context.Context, tweetId string) (*LikeResult, error) {
	userId, err := c.resolveSelfId(ctx)
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf(API_USER_LIKES, url.PathEscape(userId))
	resp, err := c.restyClient.R().
		SetContext(ctx).
		SetBody(&likeTweetReq{TweetId: tweetId}).
		Post(c.url(path))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to like tweet [%s]", tweetId)
	}

	return parseLikeResp(API_USER_LIKES, resp.Body())
}
