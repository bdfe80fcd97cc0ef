package testhelpers

import (
	"github.com/hirepipe/hirepipe/internal/logger"
)

// NewTestLogger returns a logger that discards all output.
func NewTestLogger() logger.Logger {
	return logger.NewNopLogger()
}
