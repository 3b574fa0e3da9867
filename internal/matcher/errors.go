package matcher

import "errors"

// ErrNotReady is returned by Query before any snapshot has been loaded.
var ErrNotReady = errors.New("matcher: not ready, no snapshot loaded")
