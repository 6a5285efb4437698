package logger

import (
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

type Logger struct {
	*logrus.Logger
}

func New(mode string) *Logger {
	return NewWithOutput(os.Stdout, mode)
}

func NewWithOutput(out io.Writer, mode string) *Logger {
	logger := logrus.New()

	logger.SetOutput(out)
	if mode == "debug" {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339,
		})
		logger.SetLevel(logrus.InfoLevel)
	}

	return &Logger{logger}
}

// Discard drops everything, for tests.
func Discard() *Logger {
	return NewWithOutput(io.Discard, "")
}
