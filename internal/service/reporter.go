package service

import (
	log "github.com/sirupsen/logrus"
)

// ErrorReporter receives read-path failures. The listing itself degrades to an
// empty page; whoever owns telemetry decides what to do with the error.
type ErrorReporter interface {
	ReportError(op string, err error)
}

type logReporter struct{}

// NewLogReporter returns the default reporter, which just logs.
func NewLogReporter() ErrorReporter {
	return logReporter{}
}

func (logReporter) ReportError(op string, err error) {
	log.Errorf("❌ %s: %v", op, err)
}
