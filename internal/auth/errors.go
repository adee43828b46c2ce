package auth

import "errors"

var (
	// ErrHTTP wraps transport and status failures talking to a provider.
	ErrHTTP = errors.New("auth: http error")
	// ErrOAuth2 wraps authorization code exchange failures.
	ErrOAuth2 = errors.New("auth: oauth2 error")
	// ErrMissingEmail is returned when a provider did not disclose an email
	// address for the user.
	ErrMissingEmail = errors.New("auth: provider did not return an email address")
	// ErrUnknownProvider is returned for a provider name that is not
	// configured.
	ErrUnknownProvider = errors.New("auth: unknown oauth provider")
	// ErrStaleSession is returned by GetUser when the session names a user
	// that no longer exists.
	ErrStaleSession = errors.New("auth: session refers to a missing user")
	// ErrUserExists is returned by Register when the username or email is
	// taken.
	ErrUserExists = errors.New("auth: a user with the same username or email already exists")
)
