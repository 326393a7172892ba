package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/five82/galley/internal/config"
)

// newLogger opens galley's JSON log file. The returned close func is never nil.
func newLogger(cfg config.Config) (*logrus.Logger, func(), error) {
	path := cfg.LogPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, func() {}, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, func() {}, fmt.Errorf("open log file: %w", err)
	}

	log := configureLogger(file, cfg.LogLevel)
	log.WithFields(logrus.Fields{
		"log_path":  path,
		"log_level": log.GetLevel().String(),
	}).Info("logger initialized")

	return log, func() { _ = file.Close() }, nil
}

func configureLogger(w io.Writer, level string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(w)

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		log.SetLevel(logrus.InfoLevel)
		log.WithField("log_level", level).Warn("unknown log level, using info")
		return log
	}
	log.SetLevel(parsed)
	return log
}
