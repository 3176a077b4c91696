package server

import (
	"os"
	"strings"

	"event-handlers-api/internal/config"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the process logger. Unknown levels fall back to info.
func NewLogger(cfg config.LogConfig) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if strings.EqualFold(cfg.Format, "json") {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return logger
}
