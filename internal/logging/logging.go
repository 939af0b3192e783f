// Package logging configures the structured logger shared by the CLI and
// the library's loaders.
package logging

import "go.uber.org/zap"

// New builds a zap.Logger. verbose selects development-mode output
// (human-readable, debug level); otherwise a production JSON logger at
// info level is used.
func New(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// Nop returns a logger that discards everything, the default for callers
// that never configured one.
func Nop() *zap.Logger {
	return zap.NewNop()
}
