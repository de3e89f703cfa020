package xapiclient

import (
	"context"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/WangWilly/xSmoke/pkgs/commonpkg/utils"
	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

////////////////////////////////////////////////////////////////////////////////
// Rate Limiting Structures and Logic
////////////////////////////////////////////////////////////////////////////////

// endpointLimit is the rate-limit window the API reported for one endpoint
type endpointLimit struct {
	ResetTime time.Time
	Remaining int
	Limit     int
	Ready     bool
	Path      string
	Mtx       sync.Mutex
}

// exhausted reports whether the window is spent (internal, not thread-safe)
func (el *endpointLimit) exhausted() bool {
	threshold := max(2*el.Limit/100, 1)
	return el.Remaining <= threshold && time.Now().Before(el.ResetTime)
}

// safeExhausted is exhausted guarded by the limit's mutex
func (el *endpointLimit) safeExhausted() bool {
	el.Mtx.Lock()
	defer el.Mtx.Unlock()
	return el.exhausted()
}

// safePreRequest spends one request of the window or refuses with ErrWouldBlock
func (el *endpointLimit) safePreRequest(ctx context.Context) error {
	el.Mtx.Lock()
	defer el.Mtx.Unlock()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if time.Now().After(el.ResetTime) {
		log.
			WithFields(log.Fields{"path": el.Path}).
			Debugf("[RateLimiter] rate limit is expired")
		// the next response refreshes the window
		el.Ready = false
		return nil
	}

	if !el.exhausted() {
		el.Remaining--
		return nil
	}

	log.
		WithFields(log.Fields{
			"path":      el.Path,
			"remaining": el.Remaining,
			"until":     el.ResetTime,
		}).
		Warnln("[RateLimiter] window exhausted, refusing request")
	return errors.Wrapf(ErrWouldBlock, "rate limit for %s resets at %s", el.Path, el.ResetTime.Format(time.RFC3339))
}

// makeEndpointLimit builds a ready limit from response headers; nil means the
// endpoint reported no limit
func makeEndpointLimit(resp *resty.Response) *endpointLimit {
	header := resp.Header()
	limit := header.Get(HEADER_RATE_LIMIT_LIMIT)
	remaining := header.Get(HEADER_RATE_LIMIT_REMAINING)
	resetTime := header.Get(HEADER_RATE_LIMIT_RESET)
	if limit == "" || remaining == "" || resetTime == "" {
		return nil
	}

	resetTimeNum, err := strconv.ParseInt(resetTime, 10, 64)
	if err != nil {
		return nil
	}
	remainingNum, err := strconv.Atoi(remaining)
	if err != nil {
		return nil
	}
	limitNum, err := strconv.Atoi(limit)
	if err != nil {
		return nil
	}

	var path string
	if resp.Request != nil && resp.Request.RawRequest != nil {
		path = resp.Request.RawRequest.URL.Path
	}

	return &endpointLimit{
		ResetTime: time.Unix(resetTimeNum, 0),
		Remaining: remainingNum,
		Limit:     limitNum,
		Ready:     true,
		Path:      path,
	}
}

////////////////////////////////////////////////////////////////////////////////

// rateLimiter tracks one window per endpoint path of a single API host. It
// never sleeps: a spent window fails the request with ErrWouldBlock.
type rateLimiter struct {
	host   string
	limits *utils.SyncMap[string, *endpointLimit]
	conds  *utils.SyncMap[string, *sync.Cond]
}

func newRateLimiter(host string) *rateLimiter {
	return &rateLimiter{
		host:   host,
		limits: utils.NewSyncMap[string, *endpointLimit](),
		conds:  utils.NewSyncMap[string, *sync.Cond](),
	}
}

// check lets a request through unless its endpoint window is spent
func (rl *rateLimiter) check(ctx context.Context, u *url.URL) error {
	if !rl.shouldWork(u) {
		return nil
	}

	path := u.Path
	cond, _ := rl.conds.LoadOrStore(path, sync.NewCond(&sync.Mutex{}))
	cond.L.Lock()
	defer cond.L.Unlock()

	limit, loaded := rl.limits.LoadOrStore(path, &endpointLimit{Path: path})
	if !loaded {
		// first request on this path initialises the window
		return nil
	}

	// only one request may pass while the window is not ready; the response
	// hooks must make it ready, clear it or delete it
	for limit != nil && !limit.Ready {
		cond.Wait()
		limit, loaded = rl.limits.LoadOrStore(path, &endpointLimit{Path: path})
		if !loaded {
			return nil
		}
	}

	// a nil limit means the endpoint is not rate limited
	if limit != nil {
		return limit.safePreRequest(ctx)
	}
	return nil
}

// reset installs the window reported by resp for a not-ready endpoint
func (rl *rateLimiter) reset(u *url.URL, resp *resty.Response) {
	if !rl.shouldWork(u) {
		return
	}

	path := u.Path
	cond, ok := rl.conds.Load(path)
	if !ok {
		return
	}
	cond.L.Lock()
	defer cond.L.Unlock()

	limit, ok := rl.limits.Load(path)
	if !ok || limit == nil || limit.Ready {
		return
	}

	if resp == nil || resp.RawResponse == nil {
		// back to the state before the first request
		rl.limits.Delete(path)
		cond.Signal()
		return
	}

	rl.limits.Store(path, makeEndpointLimit(resp))
	cond.Broadcast()
}

// shouldWork limits only requests aimed at the configured API host
func (rl *rateLimiter) shouldWork(u *url.URL) bool {
	return u != nil && u.Host == rl.host
}

// wouldBlock reports whether the next request on path would be refused
func (rl *rateLimiter) wouldBlock(path string) bool {
	if limit, ok := rl.limits.Load(path); ok {
		return limit != nil && limit.safeExhausted()
	}
	return false
}
