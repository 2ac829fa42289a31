package oci

import (
	"sync"

	"github.com/google/go-containerregistry/pkg/logs"
	"github.com/sirupsen/logrus"
)

//nolint:gochecknoglobals // go-containerregistry loggers are package globals themselves.
var loggingOnce sync.Once

// ConfigureLogging routes go-containerregistry warnings and progress lines to the logger.
// Only the first call has an effect, since the library loggers are process-wide.
func ConfigureLogging(logger *logrus.Logger) {
	loggingOnce.Do(func() {
		logs.Warn.SetFlags(0)
		logs.Warn.SetOutput(logger.WriterLevel(logrus.WarnLevel))
		logs.Progress.SetFlags(0)
		logs.Progress.SetOutput(logger.WriterLevel(logrus.DebugLevel))
	})
}
