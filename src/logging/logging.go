// Package logging configures the process-wide logrus logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	logger "github.com/sirupsen/logrus"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"text"` // "text" or "json"
	// File switches output to a rotated log file.
	File       string `envconfig:"LOG_FILE"`
	MaxSizeMB  int    `envconfig:"LOG_MAX_SIZE_MB" default:"100"`
	MaxAgeDays int    `envconfig:"LOG_MAX_AGE_DAYS" default:"14"`
	MaxBackups int    `envconfig:"LOG_MAX_BACKUPS" default:"5"`
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}

// Setup applies config to the standard logger. An unknown level falls back
// to debug; an unknown format is an error.
func Setup(config Config) error {
	return configure(logger.StandardLogger(), config)
}

func configure(l *logger.Logger, config Config) error {
	level, err := logger.ParseLevel(strings.ToLower(config.Level))
	if err != nil {
		level = logger.DebugLevel
	}
	l.SetLevel(level)

	switch strings.ToLower(config.Format) {
	case "json":
		l.SetFormatter(&logger.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	case "text", "":
		l.SetFormatter(&logger.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("invalid log format %q", config.Format)
	}

	l.SetOutput(output(config))
	l.WithField("level", level.String()).Debug("Logger initialized")
	return nil
}

func output(config Config) io.Writer {
	if config.File == "" {
		return os.Stdout
	}
	return &lumberjack.Logger{
		Filename:   config.File,
		MaxSize:    config.MaxSizeMB,
		MaxAge:     config.MaxAgeDays,
		MaxBackups: config.MaxBackups,
		Compress:   true,
	}
}
