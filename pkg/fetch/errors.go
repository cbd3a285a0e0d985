package fetch

import "errors"

var (
	ErrBaseURLRequired = errors.New("data source base URL is required")
	ErrUnknownEndpoint = errors.New("unknown endpoint")
	errUpstreamStatus  = errors.New("upstream returned non-success status")
	errSourceOffline   = errors.New("data source is offline")
)
