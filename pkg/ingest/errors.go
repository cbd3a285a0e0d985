package ingest

import "errors"

var (
	ErrBrokerURLRequired = errors.New("MQTT broker URL is required")
	ErrUnknownTopic      = errors.New("message topic matches no known family")
	ErrMalformedPayload  = errors.New("malformed telemetry payload")
	ErrMissingSensorID   = errors.New("payload carries no sensor id")
)
