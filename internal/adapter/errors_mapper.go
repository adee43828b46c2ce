package adapter

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

var statusErrors = map[int]error{
	http.StatusUnauthorized:    ErrUnauthorized,
	http.StatusForbidden:       ErrForbidden,
	http.StatusTooManyRequests: ErrRateLimited,
}

// userInfoError classifies a user-info answer. 2xx is nil; every 5xx is
// ErrProviderUnavailable.
func userInfoError(resp *resty.Response) error {
	code := resp.StatusCode()
	if code >= http.StatusOK && code < http.StatusMultipleChoices {
		return nil
	}

	detail := strings.TrimSpace(string(resp.Body()))
	if detail == "" {
		detail = http.StatusText(code)
	}

	target, ok := statusErrors[code]
	switch {
	case ok:
	case code >= http.StatusInternalServerError:
		target = ErrProviderUnavailable
	default:
		target = ErrUnexpectedStatusCode
	}
	return fmt.Errorf("%w (%d): %s", target, code, detail)
}
