package elf

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the elf package's logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the elf package's logger.
// This must be called before any decoding.
func SetLogger(l *zap.Logger) {
	logger = l
}

func zapHex(key string, v uint64) zap.Field {
	return zap.String(key, fmt.Sprintf("%#x", v))
}

func zapClass(c Class) zap.Field {
	return zap.Stringer("class", c)
}

func zapMachine(m Machine) zap.Field {
	return zap.Stringer("machine", m)
}
