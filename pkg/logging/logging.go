package logging

import (
	"context"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

type loggerKey struct{}

// ConsoleLogger returns a text logger writing to stderr, leaving stdout free for command output.
func ConsoleLogger(level logrus.Level) *logrus.Logger {
	return New(os.Stderr, level)
}

func New(w io.Writer, level logrus.Level) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return logger
}

func WithLogger(ctx context.Context, entry *logrus.Entry) context.Context {
	return context.WithValue(ctx, loggerKey{}, entry)
}

// FromContext never returns nil; without an attached logger it falls back to the logrus standard logger.
func FromContext(ctx context.Context) *logrus.Entry {
	if ctx != nil {
		switch typed := ctx.Value(loggerKey{}).(type) {
		case *logrus.Entry:
			return typed
		case *logrus.Logger:
			return logrus.NewEntry(typed)
		}
	}
	return logrus.NewEntry(logrus.StandardLogger())
}
