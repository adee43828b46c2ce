package lowboy

import "errors"

var (
	// ErrAlreadyServing is returned by a second call to Instance.Serve.
	ErrAlreadyServing = errors.New("lowboy: instance is already serving")
)
