package playerdb

import "errors"

// ErrNotFound indicates the player has no row yet, i.e. no verified score.
var ErrNotFound = errors.New("player not found")
