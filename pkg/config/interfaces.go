// Package config pkg/config/interfaces.go
package config

// Validator is implemented by configurations that need validation
// before use. Validation runs once at load time.
type Validator interface {
	Validate() error
}
