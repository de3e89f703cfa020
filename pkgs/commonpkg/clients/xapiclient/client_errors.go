package xapiclient

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// Error definitions
var (
	ErrWouldBlock = fmt.Errorf("EWOULDBLOCK")
)

////////////////////////////////////////////////////////////////////////////////

// XApiError is an API-level rejection reported in the "errors" array of a
// response that carries no "data".
type XApiError struct {
	Title  string
	Detail string
	Type   string
	raw    string
}

func (err *XApiError) Error() string {
	switch {
	case err.Title != "" && err.Detail != "":
		return fmt.Sprintf("%s: %s", err.Title, err.Detail)
	case err.Detail != "":
		return err.Detail
	case err.Title != "":
		return err.Title
	}
	return err.raw
}

// Raw returns the response body the error was built from.
func (err *XApiError) Raw() string {
	return err.raw
}

func NewXApiError(title, detail, typ, raw string) *XApiError {
	return &XApiError{Title: title, Detail: detail, Type: typ, raw: raw}
}

// CheckApiResp reports an *XApiError when the body only carries errors.
// Partial results, where both "data" and "errors" are present, pass.
func CheckApiResp(body []byte) error {
	if !gjson.ValidBytes(body) {
		return nil
	}
	errs := gjson.GetBytes(body, PATH_ERRORS)
	if !errs.Exists() || gjson.GetBytes(body, "data").Exists() {
		return nil
	}

	first := errs.Get("0")
	title := first.Get("title").String()
	detail := first.Get("detail").String()
	if detail == "" {
		detail = first.Get("message").String()
	}
	return NewXApiError(title, detail, first.Get("type").String(), string(body))
}

////////////////////////////////////////////////////////////////////////////////

// MalformedResponseError means the API answered successfully but the payload
// lacked a field the caller needs.
type MalformedResponseError struct {
	Endpoint string
	Field    string
	Body     string
}

func (err *MalformedResponseError) Error() string {
	body := err.Body
	if len(body) > 256 {
		body = body[:256] + "..."
	}
	body = strings.TrimSpace(body)
	return fmt.Sprintf("malformed response from %s: missing %q in %s", err.Endpoint, err.Field, body)
}

func newMalformedResponseError(endpoint, field string, body []byte) *MalformedResponseError {
	return &MalformedResponseError{Endpoint: endpoint, Field: field, Body: string(body)}
}
