package adapter

import "errors"

// Errors returned for non-2xx user-info answers. They wrap the trimmed body.
var (
	ErrUnauthorized         = errors.New("access token rejected")
	ErrForbidden            = errors.New("user info scope not granted")
	ErrRateLimited          = errors.New("rate limited by provider")
	ErrProviderUnavailable  = errors.New("provider unavailable")
	ErrUnexpectedStatusCode = errors.New("unexpected user info status")

	ErrMissingEmail     = errors.New("provider did not disclose an email address")
	ErrDecodingUserInfo = errors.New("error decoding user info")
	ErrInvalidURL       = errors.New("invalid user info url")
)
