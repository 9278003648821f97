package inventory

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/newtron-network/reinv/pkg/util"
)

// Per-status transport errors. Each also matches util.ErrTransport.
var (
	ErrBadRequest         = errors.New("HTTP 400 Bad Request (make sure the requested APs exist)")
	ErrUnauthorized       = errors.New("HTTP 401 Unauthorized")
	ErrForbidden          = errors.New("HTTP 403 Forbidden")
	ErrNotFound           = errors.New("HTTP 404 Not Found")
	ErrNotAcceptable      = errors.New("HTTP 406 Not Acceptable")
	ErrUnsupportedMedia   = errors.New("HTTP 415 Unsupported Media Type")
	ErrInternalServer     = errors.New("HTTP 500 Internal Server Error")
	ErrBadGateway         = errors.New("HTTP 502 Bad Gateway")
	ErrServiceUnavailable = errors.New("HTTP 503 Service Unavailable")
)

var statusErrors = map[int]error{
	http.StatusBadRequest:           ErrBadRequest,
	http.StatusUnauthorized:         ErrUnauthorized,
	http.StatusForbidden:            ErrForbidden,
	http.StatusNotFound:             ErrNotFound,
	http.StatusNotAcceptable:        ErrNotAcceptable,
	http.StatusUnsupportedMediaType: ErrUnsupportedMedia,
	http.StatusInternalServerError:  ErrInternalServer,
	http.StatusBadGateway:           ErrBadGateway,
	http.StatusServiceUnavailable:   ErrServiceUnavailable,
}

// TransportError is a failed request to the inventory service.
// StatusCode is 0 when no response was received.
type TransportError struct {
	StatusCode int
	URL        string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("inventory request %s failed: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("inventory request %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() []error {
	return []error{util.ErrTransport, e.Err}
}

// StatusError builds the TransportError for a non-2xx response.
func StatusError(code int, url string) *TransportError {
	if err, ok := statusErrors[code]; ok {
		return &TransportError{StatusCode: code, URL: url, Err: err}
	}
	return &TransportError{
		StatusCode: code,
		URL:        url,
		Err:        fmt.Errorf("HTTP %d %s", code, http.StatusText(code)),
	}
}
