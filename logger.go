package promreg

// logger receives registry diagnostics: advisory configuration divergence at
// debug level, invariant violations at warn level. Satisfied by logrus out of
// the box; see WithLogrusLogger.
type logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// discardLogger is the default sink when no logger option is supplied.
var discardLogger logger = nopLogger{}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}
func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Warnf(string, ...interface{})  {}
func (nopLogger) Errorf(string, ...interface{}) {}
