package log

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// WithError attaches err to the request log line, if the request is logged
func WithError(r *http.Request, err error) {
	if le := getLogEntry(r); le != nil {
		le.WithError(err)
	}
}

func WithErrorf(r *http.Request, format string, a ...interface{}) error {
	err := fmt.Errorf(format, a...)
	if le := getLogEntry(r); le != nil {
		le.WithError(err)
	}
	return err
}

type logEntry struct {
	log logrus.FieldLogger
	err []error
}

func (le *logEntry) Write(status, bytes int, _ http.Header, elapsed time.Duration, _ interface{}) {
	l := le.log.WithFields(logrus.Fields{
		"status_code": status,
		"bytes":       bytes,
	})

	var printf func(format string, args ...interface{})
	switch {
	case status < 400:
		if len(le.err) > 0 {
			printf = l.Warnf
		} else {
			printf = l.Infof
		}
	case status < 500:
		printf = l.Warnf
	default:
		printf = l.Errorf
	}

	elapsed = elapsed.Round(time.Millisecond)
	text := http.StatusText(status)
	if len(le.err) > 0 {
		msg := make([]string, 0, len(le.err))
		for i := len(le.err) - 1; i >= 0; i-- {
			msg = append(msg, le.err[i].Error())
		}
		printf("%03d (%s) in %s - %s", status, text, elapsed, strings.Join(msg, " | "))
	} else {
		printf("%03d (%s) in %s", status, text, elapsed)
	}
}

func (le *logEntry) Panic(v interface{}, stack []byte) {
	le.log.WithField("stack", string(stack)).Errorf("panic: %v", v)
}

func (le *logEntry) WithError(err error) *logEntry {
	if err != nil {
		le.err = append(le.err, err)
	}
	return le
}

func getLogEntry(r *http.Request) *logEntry {
	if r == nil {
		return nil
	}
	le, _ := middleware.GetLogEntry(r).(*logEntry)
	return le
}

type formatter struct {
	component string
	logger    logrus.FieldLogger
}

func (f formatter) NewLogEntry(r *http.Request) middleware.LogEntry {
	remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remoteIP = r.RemoteAddr
	}
	fields := logrus.Fields{
		"component": f.component,
		"remote_ip": remoteIP,
		"proto":     r.Proto,
		"method":    r.Method,
		"uri":       fmt.Sprintf("%s%s", r.Host, r.RequestURI),
	}
	if reqID := middleware.GetReqID(r.Context()); reqID != "" {
		fields["request_id"] = reqID
	}
	return &logEntry{log: f.logger.WithFields(fields)}
}

// RequestLogger returns a request logging middleware. Errors handed to
// WithError/WithErrorf during the request end up on the same log line.
func RequestLogger(component string, logger logrus.FieldLogger) func(h http.Handler) http.Handler {
	return middleware.RequestLogger(formatter{component: component, logger: logger})
}
