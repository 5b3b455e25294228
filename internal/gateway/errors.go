package gateway

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies why a call to the remote API failed.
type Kind string

const (
	// KindTransport: the request never produced an HTTP response.
	KindTransport Kind = "transport"
	// KindTimeout: the per-call deadline expired.
	KindTimeout Kind = "timeout"
	// KindAPI: the API answered with an error status or isSuccess=false.
	KindAPI Kind = "api"
	// KindUnauthorized: the API rejected the bearer token.
	KindUnauthorized Kind = "unauthorized"
	// KindDecode: the response body was not the expected JSON.
	KindDecode Kind = "decode"
)

// Error is returned by every Client method.
type Error struct {
	Op      string
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "gateway %s: %s", e.Op, e.Kind)
	if e.Status != 0 {
		fmt.Fprintf(&b, " (status %d)", e.Status)
	}
	if e.Message != "" {
		fmt.Fprintf(&b, ": %s", e.Message)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of a gateway error, or "" for any other error.
func KindOf(err error) Kind {
	var gerr *Error
	if errors.As(err, &gerr) {
		return gerr.Kind
	}
	return ""
}

func IsKind(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}

// Rejected reports whether the API itself turned the request down, as opposed
// to failing to answer it.
func Rejected(err error) bool {
	var gerr *Error
	if !errors.As(err, &gerr) {
		return false
	}
	switch gerr.Kind {
	case KindUnauthorized:
		return true
	case KindAPI:
		return gerr.Status < 500
	default:
		return false
	}
}

// UserMessage picks the text shown to the user: the API's own message when
// it rejected the call, fallback for everything else.
func UserMessage(err error, fallback string) string {
	var gerr *Error
	if !errors.As(err, &gerr) || strings.TrimSpace(gerr.Message) == "" {
		return fallback
	}
	if gerr.Kind == KindAPI || gerr.Kind == KindUnauthorized {
		return gerr.Message
	}
	return fallback
}

// retryable reports whether a read may be attempted again after err.
func retryable(err error) bool {
	var gerr *Error
	if !errors.As(err, &gerr) {
		return false
	}
	switch gerr.Kind {
	case KindTransport, KindTimeout:
		return true
	case KindAPI:
		return gerr.Status == http.StatusTooManyRequests || gerr.Status >= 500
	default:
		return false
	}
}
