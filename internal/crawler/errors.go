package crawler

import (
	"errors"
	"io/fs"

	"github.com/dbytex91/tvcrawl/internal/channel"
	"github.com/dbytex91/tvcrawl/internal/fetch"
)

// ErrorKind names a failure for diagnostics.
type ErrorKind string

const (
	KindTimeout        ErrorKind = "Timeout"
	KindConnection     ErrorKind = "ConnectionError"
	KindHTTPStatus     ErrorKind = "HttpStatusError"
	KindOtherTransport ErrorKind = "OtherTransportError"
	KindFilesystem     ErrorKind = "FilesystemError"
	KindMalformedURL   ErrorKind = "MalformedUrlError"
	KindUnknown        ErrorKind = "Error"
)

// Classify maps err onto the crawler's error kinds.
func Classify(err error) ErrorKind {
	var fetchErr *fetch.Error
	var pathErr *fs.PathError

	switch {
	case errors.As(err, &fetchErr):
		switch fetchErr.Kind {
		case fetch.KindTimeout:
			return KindTimeout
		case fetch.KindConnection:
			return KindConnection
		case fetch.KindHTTPStatus:
			return KindHTTPStatus
		default:
			return KindOtherTransport
		}
	case errors.Is(err, channel.ErrMalformedURL):
		return KindMalformedURL
	case errors.As(err, &pathErr):
		return KindFilesystem
	default:
		return KindUnknown
	}
}
