// Package logging provides the named, per-component loggers used across
// lito, mirroring the package/component logger split the rest of the
// codebase this was grounded on sets up once per file with
// log.NamedLogger(pkg, component).
package logging

import "github.com/sirupsen/logrus"

var root = logrus.New()

func init() {
	root.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}

// SetLevel adjusts the verbosity of every logger returned by Named.
func SetLevel(level logrus.Level) {
	root.SetLevel(level)
}

// Named returns a logger tagged with pkg/component fields, the same
// pairing convention used to scope every log line to the subsystem
// that emitted it.
func Named(pkg, component string) *logrus.Entry {
	return root.WithFields(logrus.Fields{
		"pkg":       pkg,
		"component": component,
	})
}
