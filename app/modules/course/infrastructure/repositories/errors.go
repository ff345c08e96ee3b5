package coursedb

import "errors"

// ErrNotFound indicates the requested course does not exist in the roster.
var ErrNotFound = errors.New("course not found")
