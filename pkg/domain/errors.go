package domain

import "errors"

// ErrInvalid is wrapped by every record validation failure.
var ErrInvalid = errors.New("invalid record")
