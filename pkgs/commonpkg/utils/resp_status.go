package utils

import (
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
)

////////////////////////////////////////////////////////////////////////////////

// HttpStatusError is returned for any response outside the 2xx range.
type HttpStatusError struct {
	Code   int
	Status string
	Url    string
	Body   string
}

func (err *HttpStatusError) Error() string {
	if err.Body == "" {
		return fmt.Sprintf("%s %s", err.Status, err.Url)
	}
	return fmt.Sprintf("%s %s: %s", err.Status, err.Url, err.Body)
}

// IsRateLimited reports whether the server answered 429.
func (err *HttpStatusError) IsRateLimited() bool {
	return err.Code == http.StatusTooManyRequests
}

////////////////////////////////////////////////////////////////////////////////

// CheckRespStatus turns a non-2xx resty response into *HttpStatusError.
func CheckRespStatus(resp *resty.Response) error {
	if resp == nil || resp.RawResponse == nil {
		return nil
	}
	code := resp.StatusCode()
	if code >= 200 && code < 300 {
		return nil
	}

	status := resp.Status()
	if status == "" {
		status = fmt.Sprintf("%d %s", code, http.StatusText(code))
	}

	var reqUrl string
	if resp.Request != nil {
		reqUrl = resp.Request.URL
	}
	return &HttpStatusError{
		Code:   code,
		Status: status,
		Url:    reqUrl,
		Body:   truncate(string(resp.Body()), 512),
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
