package request

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/ontrail/internal/common"
)

// TransportError means no response was received.
type TransportError struct {
	Method Method
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() []error { return []error{common.ErrTransport, e.Err} }

// StatusError is a received response whose status is not 2xx.
type StatusError struct {
	Method     Method
	URL        string
	StatusCode int
	Header     http.Header
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.URL, e.StatusCode)
}

func (e *StatusError) Unwrap() error { return common.ErrStatus }

// StatusCodeOf returns the HTTP status carried by a *StatusError in err's chain.
func StatusCodeOf(err error) (int, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode, true
	}
	return 0, false
}
