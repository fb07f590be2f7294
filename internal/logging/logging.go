// Package logging constructs the process-wide zap logger.
package logging

import (
	"go.uber.org/zap"
)

// New returns a configured *zap.Logger. Production mode emits JSON,
// development mode emits console output with colored levels.
func New(production bool) (*zap.Logger, error) {
	if production {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
