package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/WangWilly/xSmoke/pkgs/clipkg/config"
	"github.com/WangWilly/xSmoke/pkgs/commonpkg/clients/xapiclient"
	"github.com/WangWilly/xSmoke/pkgs/commonpkg/utils"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

////////////////////////////////////////////////////////////////////////////////

type mockXClient struct {
	mock.Mock
}

func (m *mockXClient) GetMe(ctx context.Context, userFields ...string) (*xapiclient.User, error) {
	args := m.Called(ctx, userFields)
	user, _ := args.Get(0).(*xapiclient.User)
	return user, args.Error(1)
}

func (m *mockXClient) CreateTweet(ctx context.Context, params xapiclient.CreateTweetParams) (*xapiclient.Tweet, error) {
	args := m.Called(ctx, params)
	tweet, _ := args.Get(0).(*xapiclient.Tweet)
	return tweet, args.Error(1)
}

func (m *mockXClient) LikeTweet(ctx context.Context, tweetId string) (*xapiclient.LikeResult, error) {
	args := m.Called(ctx, tweetId)
	res, _ := args.Get(0).(*xapiclient.LikeResult)
	return res, args.Error(1)
}

func (m *mockXClient) SearchRecentTweets(ctx context.Context, query string, maxResults int) (*xapiclient.TweetPage, error) {
	args := m.Called(ctx, query, maxResults)
	page, _ := args.Get(0).(*xapiclient.TweetPage)
	return page, args.Error(1)
}

func (m *mockXClient) GetUserMentions(ctx context.Context, userId string, maxResults int) (*xapiclient.TweetPage, error) {
	args := m.Called(ctx, userId, maxResults)
	page, _ := args.Get(0).(*xapiclient.TweetPage)
	return page, args.Error(1)
}

func (m *mockXClient) GetUserByUsername(ctx context.Context, username string, userFields ...string) (*xapiclient.User, error) {
	args := m.Called(ctx, username, userFields)
	user, _ := args.Get(0).(*xapiclient.User)
	return user, args.Error(1)
}

////////////////////////////////////////////////////////////////////////////////

type reportedItem struct {
	step  Step
	index int
	line  string
}

type reportedFailure struct {
	step Step
	kind ErrorKind
	err  error
}

type recordingReporter struct {
	masked    string
	oks       map[Step][]string
	items     []reportedItem
	failures  []reportedFailure
	completed bool
	aborted   error
	trace     string
}

func newRecordingReporter() *recordingReporter {
	return &recordingReporter{oks: make(map[Step][]string)}
}

func (r *recordingReporter) TokenLoaded(masked string) { r.masked = masked }
func (r *recordingReporter) StepOK(step Step, line string) {
	r.oks[step] = append(r.oks[step], line)
}
func (r *recordingReporter) StepItem(step Step, index int, line string) {
	r.items = append(r.items, reportedItem{step, index, line})
}
func (r *recordingReporter) StepFailed(step Step, kind ErrorKind, err error) {
	r.failures = append(r.failures, reportedFailure{step, kind, err})
}
func (r *recordingReporter) Completed() { r.completed = true }
func (r *recordingReporter) Aborted(err error, trace string) {
	r.aborted = err
	r.trace = trace
}

func (r *recordingReporter) itemsOf(step Step) []reportedItem {
	res := make([]reportedItem, 0)
	for _, item := range r.items {
		if item.step == step {
			res = append(res, item)
		}
	}
	return res
}

////////////////////////////////////////////////////////////////////////////////

const testToken = "test-access-token-0123456789"

func testOptions() Options {
	return Options{
		TweetText:          config.DEFAULT_TWEET_TEXT,
		ReplyText:          config.DEFAULT_REPLY_TEXT,
		QuoteText:          config.DEFAULT_QUOTE_TEXT,
		SearchQuery:        config.DEFAULT_SEARCH_QUERY,
		SearchMaxResults:   config.DEFAULT_SEARCH_MAX_RESULTS,
		SearchDisplayCap:   config.DEFAULT_SEARCH_DISPLAY_CAP,
		MentionsMaxResults: config.DEFAULT_MENTIONS_MAX_RESULTS,
		MentionsDisplayCap: config.DEFAULT_MENTIONS_DISPLAY_CAP,
		LookupUsername:     config.DEFAULT_LOOKUP_USERNAME,
	}
}

func staticToken(token string) TokenSource {
	return func() (string, error) { return token, nil }
}

func factoryOf(client XClient) ClientFactory {
	return func(string) XClient { return client }
}

func tweetsOf(prefix string, n int) []*xapiclient.Tweet {
	res := make([]*xapiclient.Tweet, 0, n)
	for i := 0; i < n; i++ {
		res = append(res, &xapiclient.Tweet{Id: fmt.Sprintf("%s%d", prefix, i)})
	}
	return res
}

var me = &xapiclient.User{Id: "42", Name: "Smoke", Username: "smoke", Raw: `{"id":"42"}`}

// expectHappyPath registers every call of a successful run on client
func expectHappyPath(client *mockXClient, opts Options, searchHits, mentionHits int) {
	client.On("GetMe", mock.Anything, []string(nil)).Return(me, nil).Once()
	client.On("CreateTweet", mock.Anything, xapiclient.CreateTweetParams{Text: opts.TweetText}).
		Return(&xapiclient.Tweet{Id: "100"}, nil).Once()
	client.On("LikeTweet", mock.Anything, "100").Return(&xapiclient.LikeResult{Liked: true}, nil).Once()
	client.On("CreateTweet", mock.Anything, xapiclient.CreateTweetParams{Text: opts.ReplyText, InReplyToTweetId: "100"}).
		Return(&xapiclient.Tweet{Id: "101"}, nil).Once()
	client.On("CreateTweet", mock.Anything, xapiclient.CreateTweetParams{Text: opts.QuoteText, QuoteTweetId: "100"}).
		Return(&xapiclient.Tweet{Id: "102"}, nil).Once()
	client.On("SearchRecentTweets", mock.Anything, opts.SearchQuery, opts.SearchMaxResults).
		Return(&xapiclient.TweetPage{Tweets: tweetsOf("s", searchHits)}, nil).Once()
	client.On("GetUserMentions", mock.Anything, me.Id, opts.MentionsMaxResults).
		Return(&xapiclient.TweetPage{Tweets: tweetsOf("m", mentionHits)}, nil).Once()
	client.On("GetMe", mock.Anything, []string{xapiclient.USER_FIELD_PUBLIC_METRICS}).
		Return(&xapiclient.User{Id: me.Id, PublicMetrics: &xapiclient.PublicMetrics{Raw: `{"tweet_count":7}`}}, nil).Once()
	client.On("GetUserByUsername", mock.Anything, opts.LookupUsername, []string(nil)).
		Return(&xapiclient.User{Id: "7", Username: opts.LookupUsername, Raw: `{"id":"7"}`}, nil).Once()
}

////////////////////////////////////////////////////////////////////////////////

func TestRun_HappyPath(t *testing.T) {
	client := &mockXClient{}
	opts := testOptions()
	expectHappyPath(client, opts, 2, 1)
	reporter := newRecordingReporter()

	report, err := NewSmokeService(staticToken(testToken), factoryOf(client), reporter, opts).Run(context.Background())

	require.NoError(t, err)
	client.AssertExpectations(t)
	assert.True(t, report.Completed)
	assert.False(t, report.Aborted)
	assert.Empty(t, report.Failed())
	for _, step := range AllSteps {
		assert.Equal(t, StatusOK, report.Status(step), step.String())
	}

	assert.True(t, reporter.completed)
	assert.Nil(t, reporter.aborted)
	assert.Equal(t, utils.MaskSecret(testToken), reporter.masked)
	assert.NotContains(t, reporter.masked, testToken)
	assert.Equal(t, []string{"Logged in as: @smoke (Smoke)"}, reporter.oks[StepIdentify])
	assert.Equal(t, []string{"Tweet posted: https://x.com/i/web/status/100"}, reporter.oks[StepPost])
	assert.Equal(t, []string{"Replied: https://x.com/i/web/status/101"}, reporter.oks[StepReply])
	assert.Equal(t, []string{"Quoted: https://x.com/i/web/status/102"}, reporter.oks[StepQuote])
	assert.Equal(t, []string{`My metrics: {"tweet_count":7}`}, reporter.oks[StepMetrics])
	assert.Equal(t, []string{`Lookup @GAME_Virtuals: {"id":"7"}`}, reporter.oks[StepLookup])
	assert.Equal(t, []string{"Found 2 tweets for #GameByVirtuals:"}, reporter.oks[StepSearch])
	assert.Equal(t, []string{"You have 1 recent mentions:"}, reporter.oks[StepMentions])
}

func TestRun_MissingCredentialBuildsNoClient(t *testing.T) {
	client := &mockXClient{}
	reporter := newRecordingReporter()
	factoryCalls := 0
	factory := func(string) XClient {
		factoryCalls++
		return client
	}
	missing := func() (string, error) { return "", config.ErrMissingAccessToken }

	report, err := NewSmokeService(missing, factory, reporter, testOptions()).Run(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrMissingAccessToken)
	assert.Equal(t, 0, factoryCalls)
	assert.Empty(t, client.Calls)
	assert.Equal(t, StatusFailed, report.Status(StepLoadToken))
	assert.Equal(t, KindConfig, report.Outcomes[StepLoadToken].Kind)
	assert.Equal(t, StatusSkipped, report.Status(StepIdentify))
	assert.False(t, report.Completed)
	assert.False(t, reporter.completed)
	assert.Empty(t, reporter.masked)
}

func TestRun_LikeFailureDoesNotStopReply(t *testing.T) {
	client := &mockXClient{}
	opts := testOptions()
	client.On("GetMe", mock.Anything, []string(nil)).Return(me, nil).Once()
	client.On("CreateTweet", mock.Anything, xapiclient.CreateTweetParams{Text: opts.TweetText}).
		Return(&xapiclient.Tweet{Id: "100"}, nil).Once()
	client.On("LikeTweet", mock.Anything, "100").
		Return(nil, errors.WithStack(&utils.HttpStatusError{Code: 403, Status: "403 Forbidden"})).Once()
	client.On("CreateTweet", mock.Anything, xapiclient.CreateTweetParams{Text: opts.ReplyText, InReplyToTweetId: "100"}).
		Return(&xapiclient.Tweet{Id: "101"}, nil).Once()
	client.On("CreateTweet", mock.Anything, xapiclient.CreateTweetParams{Text: opts.QuoteText, QuoteTweetId: "100"}).
		Return(&xapiclient.Tweet{Id: "102"}, nil).Once()
	client.On("SearchRecentTweets", mock.Anything, opts.SearchQuery, opts.SearchMaxResults).
		Return(&xapiclient.TweetPage{}, nil).Once()
	client.On("GetUserMentions", mock.Anything, me.Id, opts.MentionsMaxResults).
		Return(&xapiclient.TweetPage{}, nil).Once()
	client.On("GetMe", mock.Anything, []string{xapiclient.USER_FIELD_PUBLIC_METRICS}).
		Return(&xapiclient.User{Id: me.Id, PublicMetrics: &xapiclient.PublicMetrics{Raw: "{}"}}, nil).Once()
	client.On("GetUserByUsername", mock.Anything, opts.LookupUsername, []string(nil)).
		Return(&xapiclient.User{Id: "7", Raw: "{}"}, nil).Once()
	reporter := newRecordingReporter()

	report, err := NewSmokeService(staticToken(testToken), factoryOf(client), reporter, opts).Run(context.Background())

	require.NoError(t, err)
	client.AssertExpectations(t)
	client.AssertNumberOfCalls(t, "CreateTweet", 3)

	methods := make([]string, 0, len(client.Calls))
	for _, call := range client.Calls {
		methods = append(methods, call.Method)
	}
	assert.Equal(t, []string{
		"GetMe", "CreateTweet", "LikeTweet", "CreateTweet", "CreateTweet",
		"SearchRecentTweets", "GetUserMentions", "GetMe", "GetUserByUsername",
	}, methods)

	assert.Equal(t, []Step{StepLike}, report.Failed())
	assert.Equal(t, KindAPIRejection, report.Outcomes[StepLike].Kind)
	assert.Equal(t, StatusOK, report.Status(StepReply))
	assert.True(t, report.Completed)
	require.Len(t, reporter.failures, 1)
	assert.Equal(t, StepLike, reporter.failures[0].step)
	assert.Equal(t, KindAPIRejection, reporter.failures[0].kind)
	assert.True(t, reporter.completed)
}

func TestRun_LikeNotAppliedIsRejection(t *testing.T) {
	client := &mockXClient{}
	opts := testOptions()
	expectHappyPath(client, opts, 0, 0)
	client.ExpectedCalls[2].ReturnArguments = mock.Arguments{&xapiclient.LikeResult{Liked: false}, nil}
	reporter := newRecordingReporter()

	report, err := NewSmokeService(staticToken(testToken), factoryOf(client), reporter, opts).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []Step{StepLike}, report.Failed())
	assert.Equal(t, KindAPIRejection, report.Outcomes[StepLike].Kind)
	assert.Empty(t, reporter.oks[StepLike])
}

func TestRun_DisplayCaps(t *testing.T) {
	client := &mockXClient{}
	opts := testOptions()
	expectHappyPath(client, opts, 10, 8)
	reporter := newRecordingReporter()

	_, err := NewSmokeService(staticToken(testToken), factoryOf(client), reporter, opts).Run(context.Background())
	require.NoError(t, err)

	search := reporter.itemsOf(StepSearch)
	require.Len(t, search, 3)
	for i, item := range search {
		assert.Equal(t, i+1, item.index)
		assert.Equal(t, Permalink(fmt.Sprintf("s%d", i)), item.line)
	}
	assert.Equal(t, []string{"Found 10 tweets for #GameByVirtuals:"}, reporter.oks[StepSearch])

	mentions := reporter.itemsOf(StepMentions)
	require.Len(t, mentions, 5)
	assert.Equal(t, Permalink("m4"), mentions[4].line)
	assert.Equal(t, []string{"You have 8 recent mentions:"}, reporter.oks[StepMentions])
}

func TestRun_FewerHitsThanCap(t *testing.T) {
	client := &mockXClient{}
	opts := testOptions()
	expectHappyPath(client, opts, 1, 0)
	reporter := newRecordingReporter()

	_, err := NewSmokeService(staticToken(testToken), factoryOf(client), reporter, opts).Run(context.Background())
	require.NoError(t, err)

	assert.Len(t, reporter.itemsOf(StepSearch), 1)
	assert.Empty(t, reporter.itemsOf(StepMentions))
	assert.Equal(t, []string{"You have 0 recent mentions:"}, reporter.oks[StepMentions])
}

func TestRun_IdentifyFailureAborts(t *testing.T) {
	client := &mockXClient{}
	client.On("GetMe", mock.Anything, []string(nil)).
		Return(nil, errors.WithStack(&utils.HttpStatusError{Code: 401, Status: "401 Unauthorized"})).Once()
	reporter := newRecordingReporter()

	report, err := NewSmokeService(staticToken(testToken), factoryOf(client), reporter, testOptions()).Run(context.Background())

	require.NoError(t, err)
	client.AssertExpectations(t)
	client.AssertNotCalled(t, "CreateTweet", mock.Anything, mock.Anything)
	assert.True(t, report.Aborted)
	assert.False(t, report.Completed)
	assert.Equal(t, StatusFailed, report.Status(StepIdentify))
	assert.Equal(t, KindAPIRejection, report.Outcomes[StepIdentify].Kind)
	for _, step := range AllSteps[2:] {
		assert.Equal(t, StatusSkipped, report.Status(step), step.String())
	}
	require.Error(t, reporter.aborted)
	assert.Contains(t, reporter.trace, "401 Unauthorized")
	assert.False(t, reporter.completed)
}

func TestRun_PostFailureAborts(t *testing.T) {
	client := &mockXClient{}
	opts := testOptions()
	client.On("GetMe", mock.Anything, []string(nil)).Return(me, nil).Once()
	client.On("CreateTweet", mock.Anything, xapiclient.CreateTweetParams{Text: opts.TweetText}).
		Return(nil, errors.New("connection reset")).Once()
	reporter := newRecordingReporter()

	report, err := NewSmokeService(staticToken(testToken), factoryOf(client), reporter, opts).Run(context.Background())

	require.NoError(t, err)
	client.AssertNumberOfCalls(t, "CreateTweet", 1)
	client.AssertNotCalled(t, "LikeTweet", mock.Anything, mock.Anything)
	assert.True(t, report.Aborted)
	assert.Equal(t, KindTransport, report.Outcomes[StepPost].Kind)
	assert.Equal(t, StatusSkipped, report.Status(StepLike))
}

func TestRun_MissingMetricsIsMalformed(t *testing.T) {
	client := &mockXClient{}
	opts := testOptions()
	expectHappyPath(client, opts, 0, 0)
	client.ExpectedCalls[7].ReturnArguments = mock.Arguments{&xapiclient.User{Id: me.Id, Raw: `{"id":"42"}`}, nil}
	reporter := newRecordingReporter()

	report, err := NewSmokeService(staticToken(testToken), factoryOf(client), reporter, opts).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []Step{StepMetrics}, report.Failed())
	assert.Equal(t, KindMalformedResponse, report.Outcomes[StepMetrics].Kind)
	assert.Equal(t, StatusOK, report.Status(StepLookup))
	assert.True(t, reporter.completed)
}

func TestRun_PanicInLaterStepIsIsolated(t *testing.T) {
	client := &mockXClient{}
	opts := testOptions()
	expectHappyPath(client, opts, 1, 1)
	client.ExpectedCalls[3].ReturnArguments = mock.Arguments{nil, nil}
	reporter := newRecordingReporter()

	report, err := NewSmokeService(staticToken(testToken), factoryOf(client), reporter, opts).Run(context.Background())

	require.NoError(t, err)
	client.AssertExpectations(t)
	assert.False(t, report.Aborted)
	assert.True(t, report.Completed)
	assert.Equal(t, []Step{StepReply}, report.Failed())
	assert.Equal(t, StatusFailed, report.Status(StepReply))
	for _, step := range []Step{StepQuote, StepSearch, StepMentions, StepMetrics, StepLookup} {
		assert.Equal(t, StatusOK, report.Status(step), step.String())
	}

	require.Len(t, reporter.failures, 1)
	assert.Equal(t, StepReply, reporter.failures[0].step)
	assert.Contains(t, reporter.failures[0].err.Error(), "panic")
	assert.Nil(t, reporter.aborted)
	assert.True(t, reporter.completed)
}

func TestRun_PanicAbortsWithTrace(t *testing.T) {
	client := &mockXClient{}
	opts := testOptions()
	client.On("GetMe", mock.Anything, []string(nil)).Return(me, nil).Once()
	client.On("CreateTweet", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		panic("boom")
	}).Return(nil, nil)
	reporter := newRecordingReporter()

	report, err := NewSmokeService(staticToken(testToken), factoryOf(client), reporter, opts).Run(context.Background())

	require.NoError(t, err)
	assert.True(t, report.Aborted)
	assert.False(t, report.Completed)
	require.Error(t, reporter.aborted)
	assert.Contains(t, reporter.aborted.Error(), "boom")
	assert.True(t, strings.Contains(reporter.trace, "goroutine"))
}
