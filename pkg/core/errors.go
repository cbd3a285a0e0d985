package core

import "errors"

var (
	ErrListenAddrRequired = errors.New("listen address is required")
	ErrSourceRequired     = errors.New("data source base URL is required")
	ErrBrokerURLRequired  = errors.New("MQTT broker URL is required when MQTT is configured")
)
