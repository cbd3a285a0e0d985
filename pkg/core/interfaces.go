// Package core pkg/core/interfaces.go
package core

import "net/http"

// RouterProvider exposes the HTTP API of a wired server.
type RouterProvider interface {
	Router() http.Handler
}
