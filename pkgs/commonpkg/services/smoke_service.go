package services

import (
	"context"
	"fmt"

	"github.com/WangWilly/xSmoke/pkgs/commonpkg/clients/xapiclient"
	"github.com/WangWilly/xSmoke/pkgs/commonpkg/utils"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

////////////////////////////////////////////////////////////////////////////////

// Options are the literals and caps of a smoke run
type Options struct {
	TweetText          string
	ReplyText          string
	QuoteText          string
	SearchQuery        string
	SearchMaxResults   int
	SearchDisplayCap   int
	MentionsMaxResults int
	MentionsDisplayCap int
	LookupUsername     string
}

// SmokeService runs the fixed sequence of API actions against one account
type SmokeService struct {
	tokenSource TokenSource
	newClient   ClientFactory
	reporter    Reporter
	opts        Options

	runId  string
	logger *log.Entry
}

// NewSmokeService creates a new smoke service
func NewSmokeService(
	tokenSource TokenSource,
	newClient ClientFactory,
	reporter Reporter,
	opts Options,
) *SmokeService {
	runId := uuid.NewString()
	return &SmokeService{
		tokenSource: tokenSource,
		newClient:   newClient,
		reporter:    reporter,
		opts:        opts,
		runId:       runId,
		logger: log.WithFields(log.Fields{
			"service": "smoke_service",
			"run_id":  runId,
		}),
	}
}

// RunId identifies this run in the logs
func (s *SmokeService) RunId() string {
	return s.runId
}

////////////////////////////////////////////////////////////////////////////////

// Run executes every step in order. The only error it returns is the failure
// to load the credential, in which case no client is built. Any other failure
// is reported through the Reporter and reflected in the RunReport.
func (s *SmokeService) Run(ctx context.Context) (report *RunReport, err error) {
	report = newRunReport(s.runId)

	token, err := s.tokenSource()
	if err != nil {
		report.fail(StepLoadToken, err)
		s.logger.WithField("kind", Classify(err).String()).Errorln("failed to load access token:", err)
		return report, err
	}
	report.ok(StepLoadToken)
	s.reporter.TokenLoaded(utils.MaskSecret(token))

	client := s.newClient(token)

	defer func() {
		if r := recover(); r != nil {
			perr, trace := utils.RecoverToError(r)
			s.abort(report, perr, trace)
		}
	}()

	if err := s.runSteps(ctx, client, report); err != nil {
		s.abort(report, err, fmt.Sprintf("%+v", err))
		return report, nil
	}

	report.Completed = true
	s.logger.WithField("failed", len(report.Failed())).Infoln("smoke run completed")
	s.reporter.Completed()
	return report, nil
}

func (s *SmokeService) abort(report *RunReport, err error, trace string) {
	report.Aborted = true
	s.logger.
		WithField("kind", Classify(err).String()).
		Errorln("error during twitter actions:", err)
	s.logger.Debugln(trace)
	s.reporter.Aborted(err, trace)
}

////////////////////////////////////////////////////////////////////////////////

// runSteps runs identify and post unguarded; their failure ends the run.
// Every later step is guarded on its own.
func (s *SmokeService) runSteps(ctx context.Context, client XClient, report *RunReport) error {
	me, err := client.GetMe(ctx)
	if err != nil {
		report.fail(StepIdentify, err)
		return errors.WithMessage(err, "identify")
	}
	report.ok(StepIdentify)
	s.logger.WithField("user_id", me.Id).Debugln("authenticated")
	s.reporter.StepOK(StepIdentify, fmt.Sprintf("Logged in as: %s", me.Title()))

	tweet, err := client.CreateTweet(ctx, xapiclient.CreateTweetParams{Text: s.opts.TweetText})
	if err != nil {
		report.fail(StepPost, err)
		return errors.WithMessage(err, "post")
	}
	report.ok(StepPost)
	s.logger.WithField("tweet_id", tweet.Id).Debugln("tweet posted")
	s.reporter.StepOK(StepPost, fmt.Sprintf("Tweet posted: %s", Permalink(tweet.Id)))

	s.guard(report, StepLike, func() error {
		return s.like(ctx, client, tweet.Id)
	})
	s.guard(report, StepReply, func() error {
		return s.reply(ctx, client, tweet.Id)
	})
	s.guard(report, StepQuote, func() error {
		return s.quote(ctx, client, tweet.Id)
	})
	s.guard(report, StepSearch, func() error {
		return s.search(ctx, client)
	})
	s.guard(report, StepMentions, func() error {
		return s.mentions(ctx, client, me.Id)
	})
	s.guard(report, StepMetrics, func() error {
		return s.metrics(ctx, client)
	})
	s.guard(report, StepLookup, func() error {
		return s.lookup(ctx, client)
	})
	return nil
}

// guard runs one isolated step: a failure is logged and reported, and the run
// goes on
func (s *SmokeService) guard(report *RunReport, step Step, fn func() error) {
	err := s.recoverStep(step, fn)
	if err == nil {
		report.ok(step)
		return
	}

	kind := report.fail(step, err)
	logger := s.logger.WithFields(log.Fields{
		"step": step.String(),
		"kind": kind.String(),
	})
	switch kind {
	case KindConfig:
		logger.Warnln("step rejected by configuration:", err)
	case KindTransport:
		logger.Warnln("request did not complete:", err)
	case KindAPIRejection:
		logger.Warnln("api rejected request:", err)
	case KindMalformedResponse:
		logger.Warnln("unexpected response shape:", err)
	default:
		logger.Warnln("step failed:", err)
	}
	s.reporter.StepFailed(step, kind, err)
}

// recoverStep turns a panic inside fn into its error
func (s *SmokeService) recoverStep(step Step, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			var trace string
			err, trace = utils.RecoverToError(r)
			s.logger.WithField("step", step.String()).Debugln(trace)
		}
	}()
	return fn()
}

////////////////////////////////////////////////////////////////////////////////
// Steps
////////////////////////////////////////////////////////////////////////////////

func (s *SmokeService) like(ctx context.Context, client XClient, tweetId string) error {
	res, err := client.LikeTweet(ctx, tweetId)
	if err != nil {
		return err
	}
	if !res.Liked {
		return xapiclient.NewXApiError("Like not applied", fmt.Sprintf("tweet %s is not liked", tweetId), "", "")
	}
	s.reporter.StepOK(StepLike, "Tweet liked!")
	return nil
}

func (s *SmokeService) reply(ctx context.Context, client XClient, tweetId string) error {
	reply, err := client.CreateTweet(ctx, xapiclient.CreateTweetParams{
		Text:             s.opts.ReplyText,
		InReplyToTweetId: tweetId,
	})
	if err != nil {
		return err
	}
	s.reporter.StepOK(StepReply, fmt.Sprintf("Replied: %s", Permalink(reply.Id)))
	return nil
}

func (s *SmokeService) quote(ctx context.Context, client XClient, tweetId string) error {
	quote, err := client.CreateTweet(ctx, xapiclient.CreateTweetParams{
		Text:         s.opts.QuoteText,
		QuoteTweetId: tweetId,
	})
	if err != nil {
		return err
	}
	s.reporter.StepOK(StepQuote, fmt.Sprintf("Quoted: %s", Permalink(quote.Id)))
	return nil
}

func (s *SmokeService) search(ctx context.Context, client XClient) error {
	page, err := client.SearchRecentTweets(ctx, s.opts.SearchQuery, s.opts.SearchMaxResults)
	if err != nil {
		return err
	}
	s.reporter.StepOK(StepSearch, fmt.Sprintf("Found %d tweets for %s:", len(page.Tweets), s.opts.SearchQuery))
	s.reportTweets(StepSearch, page.Tweets, s.opts.SearchDisplayCap)
	return nil
}

func (s *SmokeService) mentions(ctx context.Context, client XClient, userId string) error {
	page, err := client.GetUserMentions(ctx, userId, s.opts.MentionsMaxResults)
	if err != nil {
		return err
	}
	s.reporter.StepOK(StepMentions, fmt.Sprintf("You have %d recent mentions:", len(page.Tweets)))
	s.reportTweets(StepMentions, page.Tweets, s.opts.MentionsDisplayCap)
	return nil
}

func (s *SmokeService) metrics(ctx context.Context, client XClient) error {
	me, err := client.GetMe(ctx, xapiclient.USER_FIELD_PUBLIC_METRICS)
	if err != nil {
		return err
	}
	if me.PublicMetrics == nil {
		return errors.WithStack(&xapiclient.MalformedResponseError{
			Endpoint: xapiclient.API_USERS_ME,
			Field:    "data." + xapiclient.USER_FIELD_PUBLIC_METRICS,
			Body:     me.Raw,
		})
	}
	s.reporter.StepOK(StepMetrics, fmt.Sprintf("My metrics: %s", me.PublicMetrics.Raw))
	return nil
}

func (s *SmokeService) lookup(ctx context.Context, client XClient) error {
	other, err := client.GetUserByUsername(ctx, s.opts.LookupUsername)
	if err != nil {
		return err
	}
	s.reporter.StepOK(StepLookup, fmt.Sprintf("Lookup @%s: %s", s.opts.LookupUsername, other.Raw))
	return nil
}

// reportTweets reports at most limit permalinks, numbered from 1
func (s *SmokeService) reportTweets(step Step, tweets []*xapiclient.Tweet, limit int) {
	for i, tw := range tweets[:max(0, min(limit, len(tweets)))] {
		s.reporter.StepItem(step, i+1, Permalink(tw.Id))
	}
}
