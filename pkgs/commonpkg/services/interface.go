package services

import (
	"context"

	"github.com/WangWilly/xSmoke/pkgs/commonpkg/clients/xapiclient"
)

// XClient is the part of the X API the smoke run drives
type XClient interface {
	GetMe(ctx context.Context, userFields ...string) (*xapiclient.User, error)
	CreateTweet(ctx context.Context, params xapiclient.CreateTweetParams) (*xapiclient.Tweet, error)
	LikeTweet(ctx context.Context, tweetId string) (*xapiclient.LikeResult, error)
	SearchRecentTweets(ctx context.Context, query string, maxResults int) (*xapiclient.TweetPage, error)
	GetUserMentions(ctx context.Context, userId string, maxResults int) (*xapiclient.TweetPage, error)
	GetUserByUsername(ctx context.Context, username string, userFields ...string) (*xapiclient.User, error)
}

// TokenSource yields the access credential of the run
type TokenSource func() (string, error)

// ClientFactory builds the API client once the credential is known
type ClientFactory func(token string) XClient

// Reporter receives the human-readable progress of a run
type Reporter interface {
	TokenLoaded(masked string)
	StepOK(step Step, line string)
	StepItem(step Step, index int, line string)
	StepFailed(step Step, kind ErrorKind, err error)
	Completed()
	Aborted(err error, trace string)
}
