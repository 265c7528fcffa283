package analyzer

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the analyzer package's logger, a no-op logger until SetLogger
// is called. Analyze logs each placed region at debug level.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the analyzer package's logger.
// This must be called before any layout is analyzed.
func SetLogger(l *zap.Logger) {
	logger = l
}
