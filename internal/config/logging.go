package config

import (
	"io"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogFile returns a rotating writer for LOG_FILE, or nil when file
// logging is off.
func NewLogFile() (io.WriteCloser, error) {
	path, ok := os.LookupEnv("LOG_FILE")
	if !ok || path == "" {
		return nil, nil
	}

	maxSize, err := lookupInt("LOG_MAX_SIZE_MB", 100)
	if err != nil {
		return nil, err
	}
	maxBackups, err := lookupInt("LOG_MAX_BACKUPS", 3)
	if err != nil {
		return nil, err
	}
	maxAge, err := lookupInt("LOG_MAX_AGE_DAYS", 28)
	if err != nil {
		return nil, err
	}

	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    max(1, maxSize),
		MaxBackups: max(0, maxBackups),
		MaxAge:     max(0, maxAge),
		Compress:   true,
	}, nil
}
