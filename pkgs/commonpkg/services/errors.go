package services

import (
	"github.com/WangWilly/xSmoke/pkgs/clipkg/config"
	"github.com/WangWilly/xSmoke/pkgs/commonpkg/clients/xapiclient"
	"github.com/WangWilly/xSmoke/pkgs/commonpkg/utils"
	"github.com/pkg/errors"
)

// ErrorKind is the closed set of failure classes a step can end with
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindConfig
	KindTransport
	KindAPIRejection
	KindMalformedResponse
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindConfig:
		return "config"
	case KindTransport:
		return "transport"
	case KindAPIRejection:
		return "api_rejection"
	case KindMalformedResponse:
		return "malformed_response"
	}
	return "unknown"
}

// Classify maps any error returned by a step onto an ErrorKind. Errors that
// are not recognised are transport failures.
func Classify(err error) ErrorKind {
	if err == nil {
		return KindNone
	}

	var (
		httpErr      *utils.HttpStatusError
		apiErr       *xapiclient.XApiError
		malformedErr *xapiclient.MalformedResponseError
	)
	switch {
	case errors.Is(err, config.ErrMissingAccessToken):
		return KindConfig
	case errors.As(err, &malformedErr):
		return KindMalformedResponse
	case errors.As(err, &httpErr),
		errors.As(err, &apiErr),
		errors.Is(err, xapiclient.ErrWouldBlock):
		return KindAPIRejection
	}
	return KindTransport
}
