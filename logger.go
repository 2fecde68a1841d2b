package ibmi

import (
	"log"
	"os"
)

// Logger is the injectable logging sink a Session reports handshake and
// call-engine activity through (spec §9: "keep logging behind an
// injectable sink"). Never required for correctness — purely
// observational. No wire content (password, password proof bytes) is
// ever passed to it.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// defaultLogger wraps the standard library's log.Logger, writing to
// stderr with UTC timestamps, mirroring the teacher's default leveled
// logger.
type defaultLogger struct {
	logger *log.Logger
}

func newDefaultLogger() *defaultLogger {
	return &defaultLogger{logger: log.New(os.Stderr, "", log.LstdFlags|log.LUTC)}
}

func (l *defaultLogger) Debugf(format string, args ...interface{}) {
	l.logger.Printf("[DEBUG] "+format, args...)
}

func (l *defaultLogger) Infof(format string, args ...interface{}) {
	l.logger.Printf("[INFO] "+format, args...)
}

func (l *defaultLogger) Warnf(format string, args ...interface{}) {
	l.logger.Printf("[WARN] "+format, args...)
}

func (l *defaultLogger) Errorf(format string, args ...interface{}) {
	l.logger.Printf("[ERROR] "+format, args...)
}

// noopLogger discards everything; used when a caller explicitly opts
// out of logging.
type noopLogger struct{}

func (noopLogger) Debugf(string, ...interface{}) {}
func (noopLogger) Infof(string, ...interface{})  {}
func (noopLogger) Warnf(string, ...interface{})  {}
func (noopLogger) Errorf(string, ...interface{}) {}
