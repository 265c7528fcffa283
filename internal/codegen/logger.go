package codegen

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the codegen package's logger, a no-op logger until SetLogger
// is called. The generator logs each emitted type at debug level; bitgen
// logs written and skipped files through it.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the codegen package's logger.
// This must be called before any code is generated.
func SetLogger(l *zap.Logger) {
	logger = l
}
