package xapiclient

import (
	"fmt"
)

// User is the subset of an X user object the smoke run reads
type User struct {
	Id            string         // User's unique identifier
	Name          string         // Display name
	Username      string         // Handle, without the leading @
	PublicMetrics *PublicMetrics // Present only when requested via user.fields
	Raw           string         // The "data" payload as returned
}

// Title returns a formatted string with the user's handle and display name
func (user *User) Title() string {
	return fmt.Sprintf("@%s (%s)", user.Username, user.Name)
}

// PublicMetrics are the aggregate counters of a user profile
type PublicMetrics struct {
	FollowersCount int64
	FollowingCount int64
	TweetCount     int64
	ListedCount    int64
	LikeCount      int64
	Raw            string
}

// Tweet is a post as returned by the v2 endpoints
type Tweet struct {
	Id       string
	Text     string
	AuthorId string
}

// TweetPage is one page of a search or timeline response
type TweetPage struct {
	Tweets      []*Tweet
	ResultCount int
	NewestId    string
	OldestId    string
	NextToken   string
}

// LikeResult is the outcome of a like request
type LikeResult struct {
	Liked bool
}

// CreateTweetParams describes a new post. At most one of InReplyToTweetId and
// QuoteTweetId is expected to be set.
type CreateTweetParams struct {
	Text             string
	InReplyToTweetId string
	QuoteTweetId     string
}

////////////////////////////////////////////////////////////////////////////////

type createTweetReq struct {
	Text         string          `json:"text"`
	Reply        *createTweetRef `json:"reply,omitempty"`
	QuoteTweetId string          `json:"quote_tweet_id,omitempty"`
}

type createTweetRef struct {
	InReplyToTweetId string `json:"in_reply_to_tweet_id"`
}

func newCreateTweetReq(params CreateTweetParams) *createTweetReq {
	req := &createTweetReq{
		Text:         params.Text,
		QuoteTweetId: params.QuoteTweetId,
	}
	if params.InReplyToTweetId != "" {
		req.Reply = &createTweetRef{InReplyToTweetId: params.InReplyToTweetId}
	}
	return req
}

type likeTweetReq struct {
	TweetId string `json:"tweet_id"`
}
