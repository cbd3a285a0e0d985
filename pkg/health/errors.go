package health

import "errors"

var (
	ErrNoCheckers     = errors.New("no dependency checkers configured")
	ErrUnknownPrimary = errors.New("primary dependency has no checker")
)
