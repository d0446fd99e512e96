package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// ConfigureService points the standard logrus logger at the service log
// file. enableLogs raises the level to Debug; otherwise Info. When the
// log file cannot be opened (e.g. a non-root run), output stays on
// stderr and the monitor keeps going.
func ConfigureService(logFile string, enableLogs bool) {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if enableLogs {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}

	w, err := openLogFile(logFile)
	if err != nil {
		logrus.Warnf("service log file unavailable, logging to stderr: %v", err)
		return
	}
	logrus.SetOutput(w)
}

func openLogFile(path string) (io.Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}
