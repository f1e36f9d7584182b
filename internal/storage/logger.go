package storage

import "github.com/apex/log"

// badgerLogger adapts apex/log to badger.Logger.
type badgerLogger struct {
	entry *log.Entry
}

func newBadgerLogger() *badgerLogger {
	return &badgerLogger{entry: log.WithField("component", "badger")}
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.entry.Errorf(format, args...)
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.entry.Warnf(format, args...)
}

// Infof logs at debug level; badger reports every compaction at info.
func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.entry.Debugf(format, args...)
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.entry.Debugf(format, args...)
}
