package xapiclient

import (
	"net"
	"net/http"
	"time"

	"github.com/WangWilly/xSmoke/pkgs/commonpkg/utils"
	"github.com/go-resty/resty/v2"
)

////////////////////////////////////////////////////////////////////////////////

func (c *Client) setIdentity(cfg Config) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.setClientAuth(cfg.AuthScheme, cfg.AccessToken)
	c.configureErrorHandling()
	c.configureRetryLogic()
	c.configureTransport(cfg.Timeout)
}

// setClientAuth configures authentication for the X API client
func (c *Client) setClientAuth(scheme string, token string) {
	c.restyClient.SetHeader(HEADER_USER_AGENT, USER_AGENT)
	switch scheme {
	case AUTH_SCHEME_BEARER:
		c.restyClient.SetAuthToken(token)
	default:
		c.restyClient.SetHeader(HEADER_API_KEY, token)
	}
}

// configureErrorHandling turns API and HTTP failures into errors
func (c *Client) configureErrorHandling() {
	c.restyClient.OnAfterResponse(func(client *resty.Client, r *resty.Response) error {
		if err := CheckApiResp(r.Body()); err != nil {
			return err
		}
		return utils.CheckRespStatus(r)
	})
}

// configureRetryLogic makes every failure surface on the first attempt
func (c *Client) configureRetryLogic() {
	c.restyClient.SetRetryCount(0)
}

// configureTransport sets up HTTP transport configuration
func (c *Client) configureTransport(timeout time.Duration) {
	c.restyClient.SetTimeout(timeout)
	c.restyClient.SetTransport(&http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          0,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       5 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ResponseHeaderTimeout: timeout,
		Proxy:                 http.ProxyFromEnvironment,
	})
}
