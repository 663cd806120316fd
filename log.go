package emfield

import "github.com/sirupsen/logrus"

// engineLogger returns log if non-nil, otherwise a logger configured
// to discard everything, so the engine orchestrator can always call
// WithFields/Debugf without a nil check at every call site. The
// FieldLogger-typed field itself mirrors eioserve/eieio's Server.Log
// habit of exposing a logrus.FieldLogger rather than a concrete type.
func engineLogger(log logrus.FieldLogger) logrus.FieldLogger {
	if log != nil {
		return log
	}
	discard := logrus.New()
	discard.SetOutput(discardWriter{})
	return discard
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
