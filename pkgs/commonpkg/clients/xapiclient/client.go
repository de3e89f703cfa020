package xapiclient

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/WangWilly/xSmoke/pkgs/commonpkg/utils"
	"github.com/go-resty/resty/v2"
	log "github.com/sirupsen/logrus"
)

////////////////////////////////////////////////////////////////////////////////

const (
	DEFAULT_TIMEOUT = 30 * time.Second
)

// Config carries everything needed to build a Client.
type Config struct {
	AccessToken string
	ApiBase     string // defaults to GAME_API_HOST
	AuthScheme  string // AUTH_SCHEME_API_KEY or AUTH_SCHEME_BEARER
	Timeout     time.Duration
}

////////////////////////////////////////////////////////////////////////////////

// Client is a thin X API v2 client. It never retries a request.
type Client struct {
	restyClient *resty.Client
	apiBase     string
	selfId      string
	rateLimiter *rateLimiter
	apiCounts   *utils.SyncMap[string, *atomic.Int32]
	mutex       sync.RWMutex
}

func New(cfg Config) *Client {
	if cfg.ApiBase == "" {
		cfg.ApiBase = GAME_API_HOST
	}
	if cfg.AuthScheme == "" {
		cfg.AuthScheme = AUTH_SCHEME_API_KEY
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DEFAULT_TIMEOUT
	}

	c := &Client{
		restyClient: resty.New(),
		apiBase:     strings.TrimRight(cfg.ApiBase, "/"),
	}
	c.setIdentity(cfg)
	c.setRateLimit()
	return c
}

////////////////////////////////////////////////////////////////////////////////

func (c *Client) SetLogger(logger *log.Logger) {
	c.restyClient.SetLogger(logger)
}

// ApiBase returns the host every endpoint is resolved against.
func (c *Client) ApiBase() string {
	return c.apiBase
}

// SelfId returns the id of the authenticated user once GetMe has succeeded.
func (c *Client) SelfId() string {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.selfId
}

func (c *Client) setSelfId(id string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.selfId = id
}

func (c *Client) url(path string) string {
	return c.apiBase + path
}
