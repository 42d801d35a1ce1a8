package logging

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// ConsoleLogger returns a logger writing human-readable output to stderr.
func ConsoleLogger(level logrus.Level) *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(level)
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	return logger
}

// FileLogger returns a logger appending JSON lines to logPath, creating parent
// directories as needed. The returned file handle is owned by the caller and
// must be closed on shutdown.
func FileLogger(level logrus.Level, logPath string) (*os.File, *logrus.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger := logrus.New()
	logger.SetLevel(level)
	logger.SetOutput(f)
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.AddHook(&consoleHook{level: level})
	return f, logger, nil
}

// consoleHook mirrors file log entries to stderr so local runs stay readable.
type consoleHook struct {
	level logrus.Level
}

func (h *consoleHook) Levels() []logrus.Level {
	levels := make([]logrus.Level, 0, len(logrus.AllLevels))
	for _, l := range logrus.AllLevels {
		if l <= h.level {
			levels = append(levels, l)
		}
	}
	return levels
}

func (h *consoleHook) Fire(entry *logrus.Entry) error {
	line, err := (&logrus.TextFormatter{FullTimestamp: true}).Format(entry)
	if err != nil {
		return err
	}
	_, err = os.Stderr.Write(line)
	return err
}
