package poller

import "errors"

var ErrMissingDependency = errors.New("poller requires a source, aggregator, health service, and sink")
