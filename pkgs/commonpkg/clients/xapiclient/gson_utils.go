package xapiclient

import (
	"github.com/WangWilly/xSmoke/pkgs/commonpkg/respnorm"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

////////////////////////////////////////////////////////////////////////////////

// dataOf normalises a response body to its "data" payload
func dataOf(body []byte) (gjson.Result, gjson.Result) {
	doc := gjson.ParseBytes(body)
	return doc, respnorm.DataJSON(doc)
}

////////////////////////////////////////////////////////////////////////////////

// parseUserResp parses a single-user response
func parseUserResp(endpoint string, body []byte) (*User, error) {
	_, data := dataOf(body)
	return parseUserJson(endpoint, body, &data)
}

// parseUserJson parses a v2 user object
func parseUserJson(endpoint string, body []byte, userJson *gjson.Result) (*User, error) {
	id := userJson.Get("id")
	if !userJson.IsObject() || !id.Exists() {
		return nil, errors.WithStack(newMalformedResponseError(endpoint, "data.id", body))
	}

	usr := User{
		Id:       id.String(),
		Name:     userJson.Get("name").String(),
		Username: userJson.Get("username").String(),
		Raw:      userJson.Raw,
	}
	if pm := userJson.Get(USER_FIELD_PUBLIC_METRICS); pm.IsObject() {
		usr.PublicMetrics = parsePublicMetricsJson(&pm)
	}
	return &usr, nil
}

func parsePublicMetricsJson(pm *gjson.Result) *PublicMetrics {
	return &PublicMetrics{
		FollowersCount: pm.Get("followers_count").Int(),
		FollowingCount: pm.Get("following_count").Int(),
		TweetCount:     pm.Get("tweet_count").Int(),
		ListedCount:    pm.Get("listed_count").Int(),
		LikeCount:      pm.Get("like_count").Int(),
		Raw:            pm.Raw,
	}
}

////////////////////////////////////////////////////////////////////////////////

// parseTweetResp parses a single-tweet response
func parseTweetResp(endpoint string, body []byte) (*Tweet, error) {
	_, data := dataOf(body)
	tweet := parseTweetJson(&data)
	if tweet == nil {
		return nil, errors.WithStack(newMalformedResponseError(endpoint, "data.id", body))
	}
	return tweet, nil
}

// parseTweetJson parses a v2 tweet object; nil when it carries no id
func parseTweetJson(tweetJson *gjson.Result) *Tweet {
	id := tweetJson.Get("id")
	if !tweetJson.IsObject() || !id.Exists() {
		return nil
	}
	return &Tweet{
		Id:       id.String(),
		Text:     tweetJson.Get("text").String(),
		AuthorId: tweetJson.Get("author_id").String(),
	}
}

// parseTweetPageResp parses a list response. A response without "data" is an
// empty page.
func parseTweetPageResp(endpoint string, body []byte) (*TweetPage, error) {
	doc, data := dataOf(body)

	page := TweetPage{
		Tweets:    make([]*Tweet, 0),
		NewestId:  doc.Get(PATH_META_NEWEST_ID).String(),
		OldestId:  doc.Get(PATH_META_OLDEST_ID).String(),
		NextToken: doc.Get(PATH_META_NEXT_TOKEN).String(),
	}

	switch {
	case data.IsArray():
		for _, item := range data.Array() {
			if tw := parseTweetJson(&item); tw != nil {
				page.Tweets = append(page.Tweets, tw)
			}
		}
	case data.Raw != doc.Raw:
		return nil, errors.WithStack(newMalformedResponseError(endpoint, "data[]", body))
	}

	if count := doc.Get(PATH_META_RESULT_COUNT); count.Exists() {
		page.ResultCount = int(count.Int())
	} else {
		page.ResultCount = len(page.Tweets)
	}
	return &page, nil
}

////////////////////////////////////////////////////////////////////////////////

// parseLikeResp parses the response of a like request
func parseLikeResp(endpoint string, body []byte) (*LikeResult, error) {
	_, data := dataOf(body)
	liked := data.Get("liked")
	if !liked.Exists() {
		return nil, errors.WithStack(newMalformedResponseError(endpoint, "data.liked", body))
	}
	return &LikeResult{Liked: liked.Bool()}, nil
}
