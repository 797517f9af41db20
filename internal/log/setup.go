package log

import (
	"strings"

	nested "github.com/antonfisher/nested-logrus-formatter"
	"github.com/sirupsen/logrus"
)

// Setup returns the process logger. Unknown levels fall back to debug.
func Setup(lvl string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&nested.Formatter{
		HideKeys:        true,
		FieldsOrder:     []string{"proto", "method", "component", "uri", "status_code", "bytes"},
		NoFieldsColors:  true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	switch strings.ToLower(lvl) {
	case "debug":
		logger.SetLevel(logrus.DebugLevel)
	case "info":
		logger.SetLevel(logrus.InfoLevel)
	case "warn":
		logger.SetLevel(logrus.WarnLevel)
	case "error":
		logger.SetLevel(logrus.ErrorLevel)
	default:
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}
