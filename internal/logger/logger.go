// Package logger configures the process-wide logrus logger.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"cleanreports/internal/config"
)

// Setup applies level and format from cfg to the standard logrus logger.
// Unknown levels fall back to info.
func Setup(cfg config.LogConfig) {
	Configure(logrus.StandardLogger(), cfg, os.Stdout)
}

// Configure applies cfg to l and directs its output to w.
func Configure(l *logrus.Logger, cfg config.LogConfig, w io.Writer) {
	l.SetOutput(w)

	level, err := logrus.ParseLevel(strings.TrimSpace(cfg.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	if strings.EqualFold(cfg.Format, "json") {
		l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"})
		return
	}
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}
