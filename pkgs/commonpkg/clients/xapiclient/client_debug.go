package xapiclient

import (
	"net/url"
	"sort"
	"sync/atomic"

	"github.com/WangWilly/xSmoke/pkgs/commonpkg/utils"
	"github.com/go-resty/resty/v2"
	log "github.com/sirupsen/logrus"
)

// EnableRequestCounting counts outgoing requests per endpoint path.
func (c *Client) EnableRequestCounting() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.apiCounts != nil {
		return
	}

	counts := utils.NewSyncMap[string, *atomic.Int32]()
	c.apiCounts = counts
	c.restyClient.OnBeforeRequest(func(client *resty.Client, req *resty.Request) error {
		u, err := url.Parse(req.URL)
		if err != nil {
			return err
		}

		v, _ := counts.LoadOrStore(u.Path, &atomic.Int32{})
		v.Add(1)
		return nil
	})
}

// RequestCounts returns a snapshot of the per-path request counters.
func (c *Client) RequestCounts() map[string]int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	res := map[string]int{}
	if c.apiCounts == nil {
		return res
	}
	for _, kv := range c.apiCounts.Range() {
		res[kv.Key] = int(kv.Value.Load())
	}
	return res
}

// ReportRequestCount logs the per-path request counters at debug level.
func (c *Client) ReportRequestCount() {
	counts := c.RequestCounts()
	paths := make([]string, 0, len(counts))
	for path := range counts {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		log.Debugf("* %s request count: %d", path, counts[path])
	}
}
