package fetch

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
)

// Kind tells apart the ways a single request can fail.
type Kind int

const (
	KindTransport Kind = iota
	KindTimeout
	KindConnection
	KindHTTPStatus
)

func (k Kind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindConnection:
		return "connection error"
	case KindHTTPStatus:
		return "http error"
	default:
		return "transport error"
	}
}

// Error is returned by every failed request of a Fetcher.
type Error struct {
	Kind       Kind
	URL        string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.Kind == KindHTTPStatus {
		return fmt.Sprintf("%s fetching %s: %v - status code: %d", e.Kind, e.URL, e.Err, e.StatusCode)
	}

	return fmt.Sprintf("%s fetching %s: %v", e.Kind, e.URL, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a fetch error of the given kind.
func IsKind(err error, kind Kind) bool {
	var fe *Error
	return errors.As(err, &fe) && fe.Kind == kind
}

func statusError(url string, code int, status string) error {
	if status == "" {
		status = fmt.Sprintf("%d", code)
	}

	return &Error{
		Kind:       KindHTTPStatus,
		URL:        url,
		StatusCode: code,
		Err:        errors.New(status),
	}
}

func classify(url string, err error) error {
	var fe *Error
	if errors.As(err, &fe) {
		return err
	}

	return &Error{
		Kind: kindOf(err),
		URL:  url,
		Err:  err,
	}
}

func kindOf(err error) Kind {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}

	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EHOSTUNREACH) || errors.Is(err, syscall.ENETUNREACH) {
		return KindConnection
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return KindConnection
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return KindConnection
	}

	return KindTransport
}
