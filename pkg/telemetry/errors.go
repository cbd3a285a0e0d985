package telemetry

import "errors"

var (
	ErrNoChannels         = errors.New("no channels configured")
	ErrEmptyChannelID     = errors.New("channel id is empty")
	ErrDuplicateChannel   = errors.New("duplicate channel id")
	ErrInvertedBoundaries = errors.New("warning boundary must be below critical boundary")
	ErrUnknownChannel     = errors.New("unknown channel")
)
